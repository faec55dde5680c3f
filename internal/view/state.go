package view

import "animeseason/internal/domain/anime"

type Mode string

const (
	ListView   Mode = "list"
	DetailView Mode = "detail"
)

type ListKind string

const (
	ListCards       ListKind = "cards"
	ListPlaceholder ListKind = "placeholder"
	ListError       ListKind = "error"
)

const (
	PlaceholderText = "暂无该季节的动画数据。"
	errorPrefix     = "加载数据失败: "
)

type Card struct {
	Index     int
	Title     string
	IconClass string
	Record    anime.Record
}

// ListPane 同一时刻只会是卡片、占位文字、错误信息三者之一。
type ListPane struct {
	Kind    ListKind
	Cards   []Card
	Message string
}

type DetailPane struct {
	Title       string
	IconClass   string
	Description string
	Tags        []string
	Rows        []anime.DetailRow
}

// State 是整页唯一的视图状态。
type State struct {
	Year              string
	Season            anime.Season
	Mode              Mode
	SeasonTabsVisible bool

	List   ListPane
	Detail DetailPane
}

func (s State) clone() State {
	out := s
	out.List.Cards = append([]Card(nil), s.List.Cards...)
	out.Detail.Tags = append([]string(nil), s.Detail.Tags...)
	out.Detail.Rows = append([]anime.DetailRow(nil), s.Detail.Rows...)
	return out
}
