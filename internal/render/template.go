package render

import (
	"animeseason/internal/domain/anime"
	"animeseason/internal/domain/site"
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed theme
var embeddedTheme embed.FS

type TemplateRenderer struct {
	tpl *template.Template
}

// NewTemplateRenderer 从 <themeDir>/<themeName>/templates 加载模板；themeDir 为空时用内置主题。
func NewTemplateRenderer(themeDir, themeName string) (*TemplateRenderer, error) {
	if themeDir == "" {
		tpl, err := template.New("").Funcs(templateFuncs()).ParseFS(embeddedTheme, "theme/templates/*.tmpl")
		if err != nil {
			return nil, err
		}
		return &TemplateRenderer{tpl: tpl}, nil
	}

	dir := filepath.Join(themeDir, themeName, "templates")
	if err := CheckThemeTemplates(dir); err != nil {
		return nil, err
	}
	tpl, err := template.New("").Funcs(templateFuncs()).ParseGlob(filepath.Join(dir, "*.tmpl"))
	if err != nil {
		return nil, err
	}
	return &TemplateRenderer{tpl: tpl}, nil
}

// StaticFS 返回主题的静态资源目录。
func StaticFS(themeDir, themeName string) (fs.FS, error) {
	if themeDir == "" {
		return fs.Sub(embeddedTheme, "theme/static")
	}
	return os.DirFS(filepath.Join(themeDir, themeName, "static")), nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"cardURL": func(i int) string {
			return site.Card(i).Path
		},
		"tagURL": func(tag string) string {
			return site.Tag(tag).Path
		},
		"seasonLabel": func(s anime.Season) string {
			return SeasonLabel(s)
		},
	}
}

func (r *TemplateRenderer) RenderView(ctx context.Context, page ViewPage) ([]byte, error) {
	return r.exec("view.tmpl", page)
}

func (r *TemplateRenderer) RenderTag(ctx context.Context, page TagPage) ([]byte, error) {
	return r.exec("tag.tmpl", page)
}

func (r *TemplateRenderer) RenderNotFound(ctx context.Context, page NotFoundPage) ([]byte, error) {
	return r.exec("404.tmpl", page)
}

func (r *TemplateRenderer) exec(name string, data interface{}) ([]byte, error) {
	t := r.tpl.Lookup(name)
	if t == nil {
		return nil, fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func CheckThemeTemplates(dir string) error {
	required := []string{
		"layout.tmpl",
		"view.tmpl",
		"tag.tmpl",
		"404.tmpl",
	}
	for _, name := range required {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("missing template: %s", name)
		}
	}
	return nil
}
