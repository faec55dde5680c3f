package view

import (
	"animeseason/internal/domain/anime"
	domainerr "animeseason/internal/domain/errors"
	"animeseason/internal/source"
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"sync"
)

var (
	ErrUnknownTab  = errors.New("view: unknown tab")
	ErrUnknownCard = errors.New("view: unknown card")
)

// Settings 是构造后不再变化的静态配置。
type Settings struct {
	Catalog       anime.Catalog
	Labels        map[string]string
	DefaultYear   string
	DefaultSeason anime.Season
}

type Controller struct {
	settings Settings
	src      source.Source
	log      *zap.Logger

	mu    sync.Mutex
	state State
}

// New 构造 controller，初始状态停在默认 (year, season) 的列表视图，尚未加载。
// 调用方需要再调用一次 LoadSeason（对应页面打开时的首次加载）。
func New(settings Settings, src source.Source, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	settings.Catalog = settings.Catalog.Clone()
	labels := make(map[string]string, len(settings.Labels))
	for k, v := range settings.Labels {
		labels[k] = v
	}
	settings.Labels = labels

	return &Controller{
		settings: settings,
		src:      src,
		log:      log,
		state: State{
			Year:              settings.DefaultYear,
			Season:            settings.DefaultSeason,
			Mode:              ListView,
			SeasonTabsVisible: true,
			List:              ListPane{Kind: ListPlaceholder, Message: PlaceholderText},
		},
	}
}

func (c *Controller) Catalog() anime.Catalog {
	return c.settings.Catalog
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// LoadSeason 拉取 (year, season) 的全部记录并替换列表区。
// 拉取期间不持锁：较慢的旧批次仍可能覆盖新选中季度的列表。
func (c *Controller) LoadSeason(ctx context.Context, year string, season anime.Season) {
	titles := c.settings.Catalog.Titles(year, season)
	if len(titles) == 0 {
		c.setList(ListPane{Kind: ListPlaceholder, Message: PlaceholderText})
		return
	}

	records, err := source.LoadBatch(ctx, c.src, year, season, titles)
	if err != nil {
		fields := []zap.Field{
			zap.String("year", year),
			zap.String("season", string(season)),
			zap.Error(err),
		}
		var le *domainerr.SeasonLoadError
		if errors.As(err, &le) {
			fields = append(fields, zap.String("detail", le.Detail()))
		}
		c.log.Error("加载动画数据失败", fields...)
		c.setList(ListPane{Kind: ListError, Message: errorPrefix + err.Error()})
		return
	}

	cards := make([]Card, 0, len(records))
	for i, r := range records {
		cards = append(cards, Card{
			Index:     i,
			Title:     r.Title,
			IconClass: "anime-icon " + r.Icon,
			Record:    r,
		})
	}
	c.log.Debug("season loaded",
		zap.String("year", year),
		zap.String("season", string(season)),
		zap.Int("cards", len(cards)),
	)
	c.setList(ListPane{Kind: ListCards, Cards: cards})
}

func (c *Controller) setList(p ListPane) {
	c.mu.Lock()
	c.state.List = p
	c.mu.Unlock()
}

// ShowDetail 用 record 填充详情区并切换到详情视图。
func (c *Controller) ShowDetail(r anime.Record) {
	d := DetailPane{
		Title:       r.Title,
		IconClass:   "detail-icon " + r.Icon,
		Description: r.Description,
		Tags:        append([]string(nil), r.Tags...),
		Rows:        r.DetailRows(c.settings.Labels),
	}

	c.mu.Lock()
	c.state.Detail = d
	c.state.Mode = DetailView
	c.mu.Unlock()
}

// OpenCard 对应点击列表中第 i 张卡片。
func (c *Controller) OpenCard(i int) error {
	c.mu.Lock()
	cards := c.state.List.Cards
	if c.state.List.Kind != ListCards || i < 0 || i >= len(cards) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownCard, i)
	}
	r := cards[i].Record
	c.mu.Unlock()

	c.ShowDetail(r)
	return nil
}

// SelectYear 激活年份并重置为第一个季度。详情视图的可见性不变。
func (c *Controller) SelectYear(ctx context.Context, year string) error {
	if !c.settings.Catalog.HasYear(year) {
		return fmt.Errorf("%w: year %q", ErrUnknownTab, year)
	}
	first := anime.Seasons[0]

	c.mu.Lock()
	c.state.Year = year
	c.state.SeasonTabsVisible = true
	c.state.Season = first
	c.mu.Unlock()

	c.LoadSeason(ctx, year, first)
	return nil
}

// SelectSeason 在当前年份下切换季度，并强制回到列表视图。
func (c *Controller) SelectSeason(ctx context.Context, season string) error {
	s, ok := anime.ParseSeason(season)
	if !ok {
		return fmt.Errorf("%w: season %q", ErrUnknownTab, season)
	}

	c.mu.Lock()
	c.state.Season = s
	year := c.state.Year
	c.mu.Unlock()

	c.LoadSeason(ctx, year, s)

	c.mu.Lock()
	c.state.Mode = ListView
	c.mu.Unlock()
	return nil
}

// CloseDetail 回到列表视图，不重新加载。
func (c *Controller) CloseDetail() {
	c.mu.Lock()
	c.state.Mode = ListView
	c.mu.Unlock()
}
