package render

import (
	"animeseason/internal/domain/anime"
	"animeseason/internal/domain/config"
	"animeseason/internal/view"
	"html/template"
)

type Tab struct {
	Key    string
	Label  string
	Action string
	Active bool
}

type TagStat struct {
	Name  string
	Count int
}

type ViewPage struct {
	Site  config.SiteConfig
	Title string
	// 站点介绍，由 site.intro 渲染
	Intro template.HTML

	Years             []Tab
	Seasons           []Tab
	SeasonTabsVisible bool

	// ShowList 为 false 时显示详情区
	ShowList bool
	List     view.ListPane
	Detail   view.DetailPane

	CloseAction string

	Tags       []TagStat
	LiveReload bool
}

type TagEntry struct {
	Year   string
	Season anime.Season
	Title  string
}

type TagPage struct {
	Site    config.SiteConfig
	Title   string
	Tag     string
	Entries []TagEntry
}

type NotFoundPage struct {
	Site  config.SiteConfig
	Title string
	Path  string
}

var seasonLabels = map[anime.Season]string{
	anime.Winter: "冬",
	anime.Spring: "春",
	anime.Summer: "夏",
	anime.Autumn: "秋",
}

func SeasonLabel(s anime.Season) string {
	if l, ok := seasonLabels[s]; ok {
		return l
	}
	return string(s)
}
