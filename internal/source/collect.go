package source

import (
	"animeseason/internal/domain/anime"
	"context"
	"runtime"
	"sync"
)

type Warning struct {
	Path string
	Msg  string
}

// Entry 是目录中的一条记录及其位置，Order 为在季度列表中的下标。
type Entry struct {
	Year   string
	Season anime.Season
	Order  int
	Record anime.Record
}

type job struct {
	year   string
	season anime.Season
	order  int
	title  string
}

type result struct {
	entry Entry
	warn  *Warning
}

// Collect 遍历 catalog 中的每个标题。与 LoadBatch 不同，单个失败只记 warning。
func Collect(ctx context.Context, src Source, catalog anime.Catalog) ([]Entry, []Warning, error) {
	workers := runtime.GOMAXPROCS(0)
	jobs := make(chan job)
	results := make(chan result)

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				r, err := src.Fetch(ctx, j.year, j.season, j.title)
				if err != nil {
					results <- result{warn: &Warning{
						Path: j.year + "/" + string(j.season) + "/" + FileName(j.title),
						Msg:  err.Error(),
					}}
					continue
				}
				results <- result{entry: Entry{
					Year:   j.year,
					Season: j.season,
					Order:  j.order,
					Record: r,
				}}
			}
		}()
	}

	go func() {
		defer func() {
			close(jobs)
			wg.Wait()
			close(results)
		}()
		for _, year := range catalog.Years() {
			for _, season := range anime.Seasons {
				for i, title := range catalog.Titles(year, season) {
					select {
					case jobs <- job{year: year, season: season, order: i, title: title}:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	var out []Entry
	var warns []Warning
	for r := range results {
		if r.warn != nil {
			warns = append(warns, *r.warn)
			continue
		}
		out = append(out, r.entry)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	return out, warns, nil
}
