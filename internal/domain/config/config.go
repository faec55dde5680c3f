package config

import (
	"animeseason/internal/domain/anime"
	domainerr "animeseason/internal/domain/errors"
	"fmt"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
	"net/url"
	"os"
	"strings"
)

type Config struct {
	Site   SiteConfig   `yaml:"site"`
	Build  BuildConfig  `yaml:"build"`
	Source SourceConfig `yaml:"source"`
	View   ViewConfig   `yaml:"view"`

	// 为空时使用 anime.DefaultCatalog()，文件里写了就整体替换
	Catalog anime.Catalog `yaml:"catalog"`
	// 覆盖默认标签表中的条目
	Labels map[string]string `yaml:"labels"`
}

type SiteConfig struct {
	Title    string `yaml:"title"`
	Language string `yaml:"language"`
	Addr     string `yaml:"addr"`
	// Markdown，显示在页面顶部
	Intro string `yaml:"intro"`
}

type BuildConfig struct {
	DataDir   string `yaml:"data_dir"`
	ThemeDir  string `yaml:"theme_dir"`
	Theme     string `yaml:"theme"`
	IndexPath string `yaml:"index_path"`
}

// SourceConfig: BaseURL 为空时直接读 DataDir，否则按 <base>/data/... 走 HTTP。
type SourceConfig struct {
	BaseURL string `yaml:"base_url"`
}

type ViewConfig struct {
	DefaultYear   string `yaml:"default_year"`
	DefaultSeason string `yaml:"default_season"`
}

type envOverrides struct {
	Addr      string `envconfig:"ADDR"`
	DataDir   string `envconfig:"DATA_DIR"`
	SourceURL string `envconfig:"SOURCE_URL"`
}

const envPrefix = "animeseason"

func Default() Config {
	return Config{
		Site: SiteConfig{
			Title:    "新番导视",
			Language: "zh-CN",
			Addr:     ":8080",
		},
		Build: BuildConfig{
			DataDir:   "data",
			ThemeDir:  "",
			Theme:     "default",
			IndexPath: ".animeseason/index.db",
		},
		View: ViewConfig{
			DefaultYear:   "2025",
			DefaultSeason: string(anime.Spring),
		},
		Labels: anime.DefaultLabels(),
	}
}

func (c Config) DefaultSeason() anime.Season {
	s, _ := anime.ParseSeason(c.View.DefaultSeason)
	return s
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	if strings.TrimSpace(c.Site.Title) == "" {
		ve.Add("site.title", "must not be empty")
	}
	if strings.TrimSpace(c.Site.Addr) == "" {
		ve.Add("site.addr", "must not be empty")
	}

	if strings.TrimSpace(c.Build.DataDir) == "" {
		ve.Add("build.data_dir", "must not be empty")
	}
	if strings.TrimSpace(c.Build.IndexPath) == "" {
		ve.Add("build.index_path", "must not be empty")
	}
	if strings.TrimSpace(c.Build.ThemeDir) != "" && strings.TrimSpace(c.Build.Theme) == "" {
		ve.Add("build.theme", "must not be empty when theme_dir is set")
	}

	if u := strings.TrimSpace(c.Source.BaseURL); u != "" && !isValidAbsURL(u) {
		ve.Add("source.base_url", "must be a valid absolute URL")
	}

	if len(c.Catalog) == 0 {
		ve.Add("catalog", "must contain at least one year")
	}
	for year, seasons := range c.Catalog {
		for s := range seasons {
			if _, ok := anime.ParseSeason(string(s)); !ok {
				ve.Add(fmt.Sprintf("catalog.%s", year), fmt.Sprintf("unknown season %q", s))
			}
		}
	}

	if _, ok := anime.ParseSeason(c.View.DefaultSeason); !ok {
		ve.Add("view.default_season", "must be one of winter/spring/summer/autumn")
	}
	if !c.Catalog.HasYear(c.View.DefaultYear) {
		ve.Add("view.default_year", "must be a year listed in catalog")
	}

	if ve.HasAny() {
		return ve
	}
	return nil
}

func isValidAbsURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	return finish(cfg, data)
}

// LoadOrDefault 与 Load 相同，但文件不存在时直接用默认配置。
func LoadOrDefault(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, err
		}
		data = nil
	}
	return finish(cfg, data)
}

func finish(cfg Config, data []byte) (Config, error) {
	// 直接 Unmarshal 到 cfg 上：文件中写到的字段覆盖默认值，其他字段保留 Default
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	if cfg.Catalog == nil {
		cfg.Catalog = anime.DefaultCatalog()
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("config: env: %w", err)
	}
	if env.Addr != "" {
		cfg.Site.Addr = env.Addr
	}
	if env.DataDir != "" {
		cfg.Build.DataDir = env.DataDir
	}
	if env.SourceURL != "" {
		cfg.Source.BaseURL = env.SourceURL
	}
	return nil
}
