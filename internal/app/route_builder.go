package app

import (
	"animeseason/internal/domain/anime"
	"animeseason/internal/domain/site"
	"animeseason/internal/render"
	"animeseason/internal/view"
)

// RouteBuilder 根据 catalog 和当前视图状态生成年份/季度按钮。
type RouteBuilder struct {
	Catalog anime.Catalog
}

func (rb *RouteBuilder) BuildYearTabs(active string) []render.Tab {
	years := rb.Catalog.Years()
	tabs := make([]render.Tab, 0, len(years))
	for _, y := range years {
		r := site.YearTab(y)
		tabs = append(tabs, render.Tab{
			Key:    y,
			Label:  y,
			Action: r.Path,
			Active: y == active,
		})
	}
	return tabs
}

func (rb *RouteBuilder) BuildSeasonTabs(active anime.Season) []render.Tab {
	tabs := make([]render.Tab, 0, len(anime.Seasons))
	for _, s := range anime.Seasons {
		r := site.SeasonTab(string(s))
		tabs = append(tabs, render.Tab{
			Key:    string(s),
			Label:  render.SeasonLabel(s),
			Action: r.Path,
			Active: s == active,
		})
	}
	return tabs
}

// BuildViewPage 把视图状态转换成模板数据，简介与标签云由调用方补充。
func (rb *RouteBuilder) BuildViewPage(st view.State) render.ViewPage {
	title := st.Year + " " + render.SeasonLabel(st.Season)
	if st.Mode == view.DetailView && st.Detail.Title != "" {
		title = st.Detail.Title
	}
	return render.ViewPage{
		Title:             title,
		Years:             rb.BuildYearTabs(st.Year),
		Seasons:           rb.BuildSeasonTabs(st.Season),
		SeasonTabsVisible: st.SeasonTabsVisible,
		ShowList:          st.Mode != view.DetailView,
		List:              st.List,
		Detail:            st.Detail,
		CloseAction:       site.CloseDetail().Path,
	}
}
