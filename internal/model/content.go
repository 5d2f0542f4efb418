package model

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)

	sanitizer = bluemonday.UGCPolicy()
)

// RenderMarkdown converts a page body to sanitized HTML. The markdown
// output passes through the sanitizer so stored content can never inject
// script into the public site.
func RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return sanitizer.Sanitize(buf.String()), nil
}

// SanitizeHTML strips unsafe markup from admin-supplied HTML fragments
// such as event descriptions.
func SanitizeHTML(fragment string) string {
	return sanitizer.Sanitize(fragment)
}
