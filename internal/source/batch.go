package source

import (
	"animeseason/internal/domain/anime"
	domainerr "animeseason/internal/domain/errors"
	"context"
	"errors"
	"golang.org/x/sync/errgroup"
)

// LoadBatch 并发拉取一个季度的全部标题，结果顺序与 titles 一致。
// 任意一个失败则整批作废，只返回第一个错误。
func LoadBatch(ctx context.Context, src Source, year string, season anime.Season, titles []string) ([]anime.Record, error) {
	if len(titles) == 0 {
		return nil, nil
	}

	records := make([]anime.Record, len(titles))
	g, gctx := errgroup.WithContext(ctx)
	for i, title := range titles {
		g.Go(func() error {
			r, err := src.Fetch(gctx, year, season, title)
			if err != nil {
				return asLoadError(title, err)
			}
			records[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func asLoadError(title string, err error) error {
	var le *domainerr.SeasonLoadError
	if errors.As(err, &le) {
		return err
	}
	return &domainerr.SeasonLoadError{File: FileName(title), Err: err}
}
