package render

import (
	"bytes"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"html/template"
	"strings"
)

// MarkdownRenderer 渲染站点配置里的 Markdown 文本（site.intro）。不开 WithUnsafe，原始 HTML 不会透传。
// 动画简介不走这里，简介按纯文本原样显示。
type MarkdownRenderer struct {
	md goldmark.Markdown
}

func NewMarkdownRenderer() *MarkdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
			extension.Strikethrough,
		),
	)
	return &MarkdownRenderer{md: md}
}

func (r *MarkdownRenderer) Render(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// HTML 空文本返回空串，模板据此不输出区块。
func (r *MarkdownRenderer) HTML(src string) (template.HTML, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	out, err := r.Render([]byte(src))
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil
}
