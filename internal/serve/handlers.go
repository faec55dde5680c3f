package serve

import (
	"animeseason/internal/index"
	"animeseason/internal/render"
	"animeseason/internal/view"
	"errors"
	"go.uber.org/zap"
	"net/http"
	"strconv"
)

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	st := s.ctrl.Snapshot()

	page := s.routes.BuildViewPage(st)
	page.Site = s.cfg.Site
	page.Intro = s.intro
	page.LiveReload = s.liveReload

	stats, err := s.idx.TagStats()
	if err != nil {
		s.log.Warn("tag stats error", zap.Error(err))
	}
	for _, t := range stats {
		page.Tags = append(page.Tags, render.TagStat{Name: t.Name, Count: t.Count})
	}

	htmlBytes, err := s.tpl.RenderView(r.Context(), page)
	if err != nil {
		s.log.Error("render view error", zap.Error(err))
		http.Error(w, "render view error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, htmlBytes)
}

func (s *Server) handleYearTab(w http.ResponseWriter, r *http.Request) {
	if err := s.ctrl.SelectYear(r.Context(), r.PathValue("year")); err != nil {
		s.handleActionError(w, r, err)
		return
	}
	backToView(w, r)
}

func (s *Server) handleSeasonTab(w http.ResponseWriter, r *http.Request) {
	if err := s.ctrl.SelectSeason(r.Context(), r.PathValue("season")); err != nil {
		s.handleActionError(w, r, err)
		return
	}
	backToView(w, r)
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		s.handleNotFound(w, r)
		return
	}
	if err := s.ctrl.OpenCard(n); err != nil {
		s.handleActionError(w, r, err)
		return
	}
	backToView(w, r)
}

func (s *Server) handleCloseDetail(w http.ResponseWriter, r *http.Request) {
	s.ctrl.CloseDetail()
	backToView(w, r)
}

func (s *Server) handleActionError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, view.ErrUnknownTab) || errors.Is(err, view.ErrUnknownCard) {
		s.handleNotFound(w, r)
		return
	}
	s.log.Error("action error", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "action error", http.StatusInternalServerError)
}

// 标签页：/tags/<tag>
func (s *Server) handleTag(w http.ResponseWriter, r *http.Request) {
	tag := r.PathValue("tag")

	items, err := s.idx.ListByTag(tag)
	if errors.Is(err, index.ErrNotFound) || (err == nil && len(items) == 0) {
		s.handleNotFound(w, r)
		return
	}
	if err != nil {
		s.log.Error("tag query error", zap.String("tag", tag), zap.Error(err))
		http.Error(w, "tag query error", http.StatusInternalServerError)
		return
	}

	entries := make([]render.TagEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, render.TagEntry{
			Year:   it.Year,
			Season: it.Season,
			Title:  it.Title,
		})
	}
	page := render.TagPage{
		Site:    s.cfg.Site,
		Title:   tag,
		Tag:     tag,
		Entries: entries,
	}
	htmlBytes, err := s.tpl.RenderTag(r.Context(), page)
	if err != nil {
		s.log.Error("render tag error", zap.Error(err))
		http.Error(w, "render tag error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, htmlBytes)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	page := render.NotFoundPage{
		Site:  s.cfg.Site,
		Title: "404",
		Path:  r.URL.Path,
	}
	htmlBytes, err := s.tpl.RenderNotFound(r.Context(), page)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(htmlBytes)
}

// ===================== 工具 =====================

// 每个动作处理完都回到唯一的页面 "/"
func backToView(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeHTML(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}
