package serve

import (
	"animeseason/internal/app"
	"animeseason/internal/domain/config"
	"animeseason/internal/index"
	"animeseason/internal/render"
	"animeseason/internal/source"
	"animeseason/internal/view"
	"context"
	"errors"
	"fmt"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"html/template"
	"io/fs"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Server struct {
	cfg config.Config
	log *zap.Logger

	src    source.Source
	ctrl   *view.Controller
	routes *app.RouteBuilder
	idx    *index.Store
	intro  template.HTML
	tpl    render.Renderer
	static fs.FS

	liveReload bool
	mux        *http.ServeMux

	sseMu     sync.Mutex
	sseConns  map[chan string]struct{}
	watcher   *fsnotify.Watcher
	watchOnce sync.Once
}

type Option func(*Server)

// WithSource 替换默认的记录来源（默认由 cfg.Source 决定）。
func WithSource(src source.Source) Option {
	return func(s *Server) {
		s.src = src
	}
}

func WithLiveReload(enabled bool) Option {
	return func(s *Server) {
		s.liveReload = enabled
	}
}

func New(cfg config.Config, log *zap.Logger, opts ...Option) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	tpl, err := render.NewTemplateRenderer(cfg.Build.ThemeDir, cfg.Build.Theme)
	if err != nil {
		return nil, fmt.Errorf("serve: failed to create template renderer: %w", err)
	}
	static, err := render.StaticFS(cfg.Build.ThemeDir, cfg.Build.Theme)
	if err != nil {
		return nil, fmt.Errorf("serve: failed to open theme static dir: %w", err)
	}
	intro, err := render.NewMarkdownRenderer().HTML(cfg.Site.Intro)
	if err != nil {
		return nil, fmt.Errorf("serve: failed to render site intro: %w", err)
	}
	st, err := index.Open(index.OpenOptions{Path: cfg.Build.IndexPath})
	if err != nil {
		return nil, fmt.Errorf("serve: failed to open index: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		log:      log.Named("serve"),
		routes:   &app.RouteBuilder{Catalog: cfg.Catalog},
		idx:      st,
		intro:    intro,
		tpl:      tpl,
		static:   static,
		mux:      http.NewServeMux(),
		sseConns: make(map[chan string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.src == nil {
		s.src = NewSource(cfg)
	}
	s.ctrl = view.New(view.Settings{
		Catalog:       cfg.Catalog,
		Labels:        cfg.Labels,
		DefaultYear:   cfg.View.DefaultYear,
		DefaultSeason: cfg.DefaultSeason(),
	}, s.src, log.Named("view"))

	s.registerRoutes()
	return s, nil
}

// NewSource: 配置了 base_url 时走 HTTP，否则直接读 data_dir。
func NewSource(cfg config.Config) source.Source {
	if cfg.Source.BaseURL != "" {
		return source.NewHTTPSource(cfg.Source.BaseURL, nil)
	}
	return source.FileSource{Root: cfg.Build.DataDir}
}

func (s *Server) Controller() *view.Controller {
	return s.ctrl
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) Close() error {
	if s.watcher != nil {
		_ = s.watcher.Close()
	}
	if s.idx != nil {
		return s.idx.Close()
	}
	return nil
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleView)
	s.mux.HandleFunc("POST /tabs/year/{year}", s.handleYearTab)
	s.mux.HandleFunc("POST /tabs/season/{season}", s.handleSeasonTab)
	s.mux.HandleFunc("POST /cards/{n}", s.handleCard)
	s.mux.HandleFunc("POST /detail/close", s.handleCloseDetail)
	s.mux.HandleFunc("GET /tags/{tag}", s.handleTag)

	// 原始静态资源布局：/data/<year>/<season>/<title>.json
	s.mux.Handle("GET /data/", http.StripPrefix("/data/", http.FileServer(http.Dir(s.cfg.Build.DataDir))))
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(s.static)))

	// dev SSE
	s.mux.HandleFunc("GET /dev/events", s.handleSSE)

	s.mux.HandleFunc("/", s.handleNotFound)
}

// Init 对应页面首次打开：重建标签索引，加载默认季度。
func (s *Server) Init(ctx context.Context) error {
	return s.reload(ctx)
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve 在 ln 上提供服务，ctx 取消后优雅关闭。
// 请求的 context 继承 ctx，SSE 这类长连接会随之结束，不会拖住 Shutdown。
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.log.Info("listening", zap.String("addr", ln.Addr().String()))

	// HTTP 来源可能指向本服务自身，所以先监听再做首次加载
	if err := s.Init(ctx); err != nil {
		_ = srv.Close()
		return err
	}
	if err := s.startWatch(ctx); err != nil {
		s.log.Warn("file watch disabled", zap.Error(err))
	}

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// reload 重建标签索引并重新加载当前季度，然后通知页面刷新。
// 首次打开和数据目录变更走同一条路径。
func (s *Server) reload(ctx context.Context) error {
	if err := s.rebuild(ctx); err != nil {
		return err
	}
	st := s.ctrl.Snapshot()
	s.ctrl.LoadSeason(ctx, st.Year, st.Season)
	s.broadcastSSE("reload")
	return nil
}

func (s *Server) rebuild(ctx context.Context) error {
	s.log.Info("index rebuild", zap.String("data_dir", s.cfg.Build.DataDir))
	entries, warns, err := source.Collect(ctx, s.src, s.cfg.Catalog)
	if err != nil {
		return fmt.Errorf("collect: %w", err)
	}
	for _, w := range warns {
		s.log.Warn("skip record", zap.String("path", w.Path), zap.String("reason", w.Msg))
	}
	if err := s.idx.Rebuild(entries); err != nil {
		return fmt.Errorf("index rebuild: %w", err)
	}
	s.log.Info("index rebuild complete", zap.Int("records", len(entries)))
	return nil
}

func (s *Server) startWatch(ctx context.Context) error {
	var err error
	s.watchOnce.Do(func() {
		w, e := fsnotify.NewWatcher()
		if e != nil {
			err = e
			return
		}
		s.watcher = w

		err = filepath.Walk(s.cfg.Build.DataDir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return w.Add(path)
			}
			return nil
		})
		if err != nil {
			return
		}
		go s.watchLoop(ctx)
	})
	return err
}

func (s *Server) watchLoop(ctx context.Context) {
	s.log.Info("watching for data changes")
	debounce := time.NewTicker(time.Hour)
	debounce.Stop()

	trigger := func() {
		select {
		case <-debounce.C:
		default:
		}
		debounce.Reset(200 * time.Millisecond)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create != 0 {
				// 新建的季度目录也要加入监听
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = s.watcher.Add(ev.Name)
				}
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				trigger()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn("watcher error", zap.Error(err))
		case <-debounce.C:
			debounce.Stop()
			ctx2, cancel := context.WithTimeout(ctx, 10*time.Second)
			if err := s.reload(ctx2); err != nil {
				s.log.Error("reload error", zap.Error(err))
			}
			cancel()
		}
	}
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan string, 8)

	s.sseMu.Lock()
	s.sseConns[ch] = struct{}{}
	s.sseMu.Unlock()

	defer func() {
		s.sseMu.Lock()
		delete(s.sseConns, ch)
		close(ch)
		s.sseMu.Unlock()
	}()
	fmt.Fprintf(w, "data: %s\n\n", "hello")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) broadcastSSE(msg string) {
	s.sseMu.Lock()
	defer s.sseMu.Unlock()
	for ch := range s.sseConns {
		select {
		case ch <- msg:
		default:
		}
	}
}
