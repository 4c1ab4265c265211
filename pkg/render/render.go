// Package render turns summary markdown into display surfaces: styled
// terminal text for the panel and sanitized HTML for sharing.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/smartshare/panel/pkg/types"
)

// Terminal renders summaries for in-panel display.
type Terminal struct {
	renderer *glamour.TermRenderer
}

// NewTerminal creates a renderer wrapping at the given width.
func NewTerminal(width int) (*Terminal, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating terminal renderer: %w", err)
	}
	return &Terminal{renderer: renderer}, nil
}

// Render produces terminal output for summary text. Markdown summaries are
// styled; plain-text summaries pass through untouched. On a rendering
// failure the raw text is returned so the summary is never lost.
func (t *Terminal) Render(text string, format types.SummaryFormat) string {
	if format == types.FormatPlainText {
		return text
	}
	out, err := t.renderer.Render(text)
	if err != nil {
		return text
	}
	return out
}

var sharePolicy = bluemonday.UGCPolicy()

var shareMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// ShareHTML converts summary markdown to HTML safe to hand to external
// share surfaces. All markup the sanitizer does not allow is stripped.
func ShareHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := shareMarkdown.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return strings.TrimSpace(sharePolicy.Sanitize(buf.String())), nil
}
