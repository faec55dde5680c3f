package render

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"animeseason/internal/domain/anime"
	"animeseason/internal/domain/config"
	"animeseason/internal/view"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderDoc(t *testing.T, page ViewPage) *goquery.Document {
	t.Helper()
	r, err := NewTemplateRenderer("", "")
	require.NoError(t, err)

	out, err := r.RenderView(context.Background(), page)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	require.NoError(t, err)
	return doc
}

func basePage() ViewPage {
	return ViewPage{
		Site:  config.Default().Site,
		Title: "2025 春",
		Years: []Tab{
			{Key: "2024", Label: "2024", Action: "/tabs/year/2024"},
			{Key: "2025", Label: "2025", Action: "/tabs/year/2025", Active: true},
		},
		Seasons: []Tab{
			{Key: "winter", Label: "冬", Action: "/tabs/season/winter"},
			{Key: "spring", Label: "春", Action: "/tabs/season/spring", Active: true},
		},
		SeasonTabsVisible: true,
		ShowList:          true,
		CloseAction:       "/detail/close",
	}
}

func TestRenderView_CardsInOrder(t *testing.T) {
	page := basePage()
	page.List = view.ListPane{Kind: view.ListCards, Cards: []view.Card{
		{Index: 0, Title: "黑执事 绿魔女篇", IconClass: "anime-icon butler"},
		{Index: 1, Title: "前桥魔女", IconClass: "anime-icon witch"},
	}}

	doc := renderDoc(t, page)

	titles := doc.Find("#anime-list .anime-card .anime-title").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	assert.Equal(t, []string{"黑执事 绿魔女篇", "前桥魔女"}, titles)

	action, _ := doc.Find("#anime-list form.anime-card").Eq(1).Attr("action")
	assert.Equal(t, "/cards/1", action)
	assert.Equal(t, 1, doc.Find("#anime-list .anime-icon.witch").Length())

	style, _ := doc.Find("#anime-detail").Attr("style")
	assert.Contains(t, style, "none")

	assert.Equal(t, "2025", doc.Find("#years button.active").AttrOr("data-year", ""))
	assert.Equal(t, "spring", doc.Find("#seasons button.active").AttrOr("data-season", ""))
}

func TestRenderView_ErrorAndPlaceholder(t *testing.T) {
	page := basePage()
	page.List = view.ListPane{Kind: view.ListError, Message: "加载数据失败: 无法加载文件: 前桥魔女.json"}

	doc := renderDoc(t, page)
	assert.Equal(t, 1, doc.Find("#anime-list .error-message").Length())
	assert.Equal(t, 0, doc.Find("#anime-list .anime-card").Length())
	assert.Contains(t, doc.Find(".error-message").Text(), "前桥魔女.json")

	page.List = view.ListPane{Kind: view.ListPlaceholder, Message: view.PlaceholderText}
	doc = renderDoc(t, page)
	assert.Equal(t, view.PlaceholderText, strings.TrimSpace(doc.Find("#anime-list").Text()))
}

func TestRenderView_Detail(t *testing.T) {
	page := basePage()
	page.ShowList = false
	page.Detail = view.DetailPane{
		Title:       "前桥魔女",
		IconClass:   "detail-icon witch",
		Description: "四个**魔女** <b>剧透</b>",
		Tags:        []string{"魔法少女", "原创"},
		Rows: []anime.DetailRow{
			{Name: "首播日", Label: "首播日", Value: "2025-04-01"},
			{Name: "集数", Label: "集数", Value: "12"},
		},
	}
	doc := renderDoc(t, page)

	assert.Equal(t, "前桥魔女", doc.Find("#detail-title").Text())
	assert.True(t, doc.Find("#detail-icon").HasClass("witch"))
	// 简介是纯文本：标记和 HTML 原样显示
	assert.Equal(t, "四个**魔女** <b>剧透</b>", doc.Find("#detail-desc").Text())
	assert.Equal(t, 0, doc.Find("#detail-desc *").Length())
	assert.Equal(t, []string{"魔法少女", "原创"}, doc.Find("#detail-tags .tag").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	}))
	labels := doc.Find("#detail-info-container p span").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	assert.Equal(t, []string{"首播日:", "集数:"}, labels)

	listStyle, _ := doc.Find("#anime-list").Attr("style")
	detailStyle, _ := doc.Find("#anime-detail").Attr("style")
	assert.Contains(t, listStyle, "none")
	assert.Contains(t, detailStyle, "block")
	assert.Equal(t, 1, doc.Find("#close-detail").Length())
}

func TestMarkdownHTML_EmptyAndUnsafe(t *testing.T) {
	md := NewMarkdownRenderer()

	out, err := md.HTML("  ")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = md.HTML("<script>alert(1)</script>")
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
}

func TestRenderView_Intro(t *testing.T) {
	page := basePage()
	doc := renderDoc(t, page)
	assert.Equal(t, 0, doc.Find("#site-intro").Length())

	intro, err := NewMarkdownRenderer().HTML("按**季度**浏览")
	require.NoError(t, err)
	page.Intro = intro
	doc = renderDoc(t, page)
	assert.Equal(t, "季度", doc.Find("#site-intro strong").Text())
}

func TestRenderTagAndNotFound(t *testing.T) {
	r, err := NewTemplateRenderer("", "")
	require.NoError(t, err)

	out, err := r.RenderTag(context.Background(), TagPage{
		Site:  config.Default().Site,
		Title: "原创",
		Tag:   "原创",
		Entries: []TagEntry{
			{Year: "2025", Season: anime.Spring, Title: "前桥魔女"},
		},
	})
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Contains(t, doc.Find("#tag-entries li").Text(), "2025 春 · 前桥魔女")

	out, err = r.RenderNotFound(context.Background(), NotFoundPage{Site: config.Default().Site, Title: "404", Path: "/nope"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "/nope")
}

func TestNewTemplateRenderer_FromThemeDir(t *testing.T) {
	themeDir := t.TempDir()
	dir := filepath.Join(themeDir, "plain", "templates")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "layout.tmpl"), []byte(`{{define "head"}}{{end}}`), 0o644))
	_, err := NewTemplateRenderer(themeDir, "plain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing template")

	for name, body := range map[string]string{
		"view.tmpl": `{{range .List.Cards}}[{{.Title}}]{{end}}`,
		"tag.tmpl":  `{{.Tag}}`,
		"404.tmpl":  `{{.Path}}`,
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	r, err := NewTemplateRenderer(themeDir, "plain")
	require.NoError(t, err)

	out, err := r.RenderView(context.Background(), ViewPage{List: view.ListPane{Cards: []view.Card{{Title: "a"}, {Title: "b"}}}})
	require.NoError(t, err)
	assert.Equal(t, "[a][b]", string(out))
}
