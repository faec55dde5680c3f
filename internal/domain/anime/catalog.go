package anime

import "sort"

type Season string

const (
	Winter Season = "winter"
	Spring Season = "spring"
	Summer Season = "summer"
	Autumn Season = "autumn"
)

// Seasons 是季度按钮的固定顺序，第一个即切换年份时默认激活的季度。
var Seasons = []Season{Winter, Spring, Summer, Autumn}

func ParseSeason(s string) (Season, bool) {
	for _, season := range Seasons {
		if string(season) == s {
			return season, true
		}
	}
	return "", false
}

// Catalog: year -> season -> 有序标题列表。启动时构造，之后只读。
type Catalog map[string]map[Season][]string

func DefaultCatalog() Catalog {
	return Catalog{
		"2024": {
			Winter: {},
			Spring: {},
			Summer: {},
			Autumn: {},
		},
		"2025": {
			Winter: {},
			Spring: {"黑执事 绿魔女篇", "前桥魔女"},
			Summer: {},
			Autumn: {},
		},
	}
}

func (c Catalog) HasYear(year string) bool {
	_, ok := c[year]
	return ok
}

// Titles 对未知的 year/season 返回 nil，与空季度同样处理。
func (c Catalog) Titles(year string, season Season) []string {
	return c[year][season]
}

func (c Catalog) Years() []string {
	years := make([]string, 0, len(c))
	for y := range c {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}

// Clone 深拷贝，交给 view 后不会被调用方改到。
func (c Catalog) Clone() Catalog {
	out := make(Catalog, len(c))
	for y, seasons := range c {
		m := make(map[Season][]string, len(seasons))
		for s, titles := range seasons {
			m[s] = append([]string(nil), titles...)
		}
		out[y] = m
	}
	return out
}
