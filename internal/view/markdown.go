package view

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	descriptionMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	descriptionPolicy = newDescriptionPolicy()
)

// 服务卡片只需要段落、强调、列表和链接。
func newDescriptionPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "br", "strong", "em", "del", "ul", "ol", "li", "blockquote", "code")
	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// RenderMarkdown 把服务描述渲染为可直接放进卡片的 HTML，未允许的标签会被剥离。
func RenderMarkdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := descriptionMarkdown.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return template.HTML(descriptionPolicy.SanitizeBytes(buf.Bytes())), nil
}
