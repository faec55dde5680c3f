package source

import (
	"animeseason/internal/domain/anime"
	domainerr "animeseason/internal/domain/errors"
	"animeseason/internal/domain/site"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Source 按 (year, season, title) 取回一条作品记录。
type Source interface {
	Fetch(ctx context.Context, year string, season anime.Season, title string) (anime.Record, error)
}

func FileName(title string) string {
	return title + ".json"
}

// FileSource 直接读取 <Root>/<year>/<season>/<title>.json。
type FileSource struct {
	Root string
}

func (s FileSource) Path(year string, season anime.Season, title string) string {
	return filepath.Join(s.Root, year, string(season), FileName(title))
}

func (s FileSource) Fetch(ctx context.Context, year string, season anime.Season, title string) (anime.Record, error) {
	if err := ctx.Err(); err != nil {
		return anime.Record{}, err
	}
	raw, err := os.ReadFile(s.Path(year, season, title))
	if err != nil {
		return anime.Record{}, &domainerr.SeasonLoadError{File: FileName(title), Err: err}
	}
	return decode(title, raw)
}

// HTTPSource 按静态资源布局请求 <BaseURL>/data/<year>/<season>/<encoded>.json。
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPSource(baseURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{
		BaseURL: strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		Client:  client,
	}
}

func (s *HTTPSource) URL(year string, season anime.Season, title string) string {
	return s.BaseURL + site.DataFile(year, string(season), title).Path
}

func (s *HTTPSource) Fetch(ctx context.Context, year string, season anime.Season, title string) (anime.Record, error) {
	file := FileName(title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(year, season, title), nil)
	if err != nil {
		return anime.Record{}, &domainerr.SeasonLoadError{File: file, Err: err}
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return anime.Record{}, &domainerr.SeasonLoadError{File: file, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return anime.Record{}, &domainerr.SeasonLoadError{File: file, Status: resp.StatusCode}
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return anime.Record{}, &domainerr.SeasonLoadError{File: file, Err: err}
	}
	return decode(title, raw)
}

func decode(title string, raw []byte) (anime.Record, error) {
	var r anime.Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return anime.Record{}, &domainerr.SeasonLoadError{
			File: FileName(title),
			Err:  fmt.Errorf("parse: %w", err),
		}
	}
	return r, nil
}
