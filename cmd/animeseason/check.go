package main

import (
	"animeseason/internal/domain/anime"
	"animeseason/internal/domain/config"
	domainerr "animeseason/internal/domain/errors"
	"animeseason/internal/serve"
	"animeseason/internal/source"
	"context"
	"errors"
	"fmt"
	"github.com/spf13/cobra"
	"io"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "逐个季度加载 catalog 中的全部记录并报告结果",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return &exitError{code: 2, err: err}
	}
	failed := checkCatalog(cmd.Context(), cmd.OutOrStdout(), serve.NewSource(cfg), cfg.Catalog)
	if failed > 0 {
		return &exitError{code: 1, err: fmt.Errorf("%d season(s) failed to load", failed)}
	}
	return nil
}

// checkCatalog 使用与页面相同的整批加载逻辑，返回失败的季度数。
func checkCatalog(ctx context.Context, w io.Writer, src source.Source, catalog anime.Catalog) int {
	if ctx == nil {
		ctx = context.Background()
	}
	failed := 0
	for _, year := range catalog.Years() {
		for _, season := range anime.Seasons {
			titles := catalog.Titles(year, season)
			if len(titles) == 0 {
				fmt.Fprintf(w, "%s %-6s  empty\n", year, season)
				continue
			}
			records, err := source.LoadBatch(ctx, src, year, season, titles)
			if err != nil {
				failed++
				fmt.Fprintf(w, "%s %-6s  FAIL  %v%s\n", year, season, err, failDetail(err))
				continue
			}
			fmt.Fprintf(w, "%s %-6s  ok    %d\n", year, season, len(records))
		}
	}
	return failed
}

// 命令行输出可以带上状态码和底层错误
func failDetail(err error) string {
	var le *domainerr.SeasonLoadError
	if errors.As(err, &le) && le.Detail() != "" {
		return " (" + le.Detail() + ")"
	}
	return ""
}
