package render

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

var (
	previewRenderer  goldmark.Markdown
	previewSanitizer *bluemonday.Policy
)

func init() {
	previewRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(ghtml.WithUnsafe()),
	)

	previewSanitizer = bluemonday.UGCPolicy()
}

// PreviewHTML converts a composed comment body to sanitized HTML, for
// inspecting a comment offline without posting it. Returns empty string for
// empty input; a body that fails markdown conversion is sanitized as-is.
func PreviewHTML(body string) string {
	if body == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := previewRenderer.Convert([]byte(body), &buf); err != nil {
		return previewSanitizer.Sanitize(body)
	}

	return previewSanitizer.Sanitize(buf.String())
}
