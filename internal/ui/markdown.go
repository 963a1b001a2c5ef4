package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// renderer caches one glamour renderer per width and style pair.
var renderer struct {
	mu    sync.Mutex
	tr    *glamour.TermRenderer
	width int
	style string
}

func termRenderer(width int, style string) (*glamour.TermRenderer, error) {
	if width < 1 {
		width = 80
	}
	if style == "" {
		style = "dark"
	}
	if renderer.tr != nil && renderer.width == width && renderer.style == style {
		return renderer.tr, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderer.tr, renderer.width, renderer.style = tr, width, style
	return tr, nil
}

// RenderMarkdownWithStyle renders markdown content using the specified glamour style.
// The original content is returned if rendering fails.
func RenderMarkdownWithStyle(content string, width int, style string) string {
	if content == "" {
		return ""
	}

	renderer.mu.Lock()
	defer renderer.mu.Unlock()

	tr, err := termRenderer(width, style)
	if err != nil {
		return content
	}
	rendered, err := tr.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// RenderMarkdown renders markdown with the "dark" style.
func RenderMarkdown(content string, width int) string {
	return RenderMarkdownWithStyle(content, width, "dark")
}
