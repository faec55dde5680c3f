package site

import (
	"fmt"
	"net/url"
	"strings"
)

type RouteKind string

const (
	RouteView        RouteKind = "view"
	RouteYearTab     RouteKind = "year"
	RouteSeasonTab   RouteKind = "season"
	RouteCard        RouteKind = "card"
	RouteCloseDetail RouteKind = "close"
	RouteTag         RouteKind = "tag"
	RouteData        RouteKind = "data"
	RouteNotFound    RouteKind = "404"
)

// Route 描述页面上一个可点击的动作（或可访问的路径）。
// 除 RouteView/RouteTag/RouteData 外都以 POST 提交，处理完重定向回 "/"。
type Route struct {
	Kind  RouteKind
	Key   string
	Index int
	Path  string
}

func YearTab(year string) Route {
	return Route{Kind: RouteYearTab, Key: year, Path: "/tabs/year/" + url.PathEscape(year)}
}

func SeasonTab(season string) Route {
	return Route{Kind: RouteSeasonTab, Key: season, Path: "/tabs/season/" + url.PathEscape(season)}
}

func Card(i int) Route {
	return Route{Kind: RouteCard, Index: i, Path: fmt.Sprintf("/cards/%d", i)}
}

func CloseDetail() Route {
	return Route{Kind: RouteCloseDetail, Path: "/detail/close"}
}

func Tag(tag string) Route {
	return Route{Kind: RouteTag, Key: tag, Path: "/tags/" + url.PathEscape(tag)}
}

// DataFile 是 data/<year>/<season>/<url-encoded title>.json 的 URL 路径。
func DataFile(year, season, title string) Route {
	p := strings.Join([]string{
		"/data",
		EscapeComponent(year),
		EscapeComponent(season),
		EscapeComponent(title) + ".json",
	}, "/")
	return Route{Kind: RouteData, Key: title, Path: p}
}

// encodeURIComponent 不转义的 !'()* 在 QueryEscape 里会被转义，这里还原。
var componentFixup = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeComponent 按 encodeURIComponent 的规则转义一个路径段：
// 除字母数字和 -_.!~*'() 外全部转义，空格为 %20。
func EscapeComponent(s string) string {
	return componentFixup.Replace(url.QueryEscape(s))
}

func (r Route) String() string {
	var parts []string
	parts = append(parts, string(r.Kind))
	if r.Key != "" {
		parts = append(parts, "key="+r.Key)
	}
	if r.Kind == RouteCard {
		parts = append(parts, fmt.Sprintf("index=%d", r.Index))
	}
	if r.Path != "" {
		parts = append(parts, "path="+r.Path)
	}
	return strings.Join(parts, " ")
}
