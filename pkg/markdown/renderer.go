// Package markdown renders note content for display.
//
// Rendering is a collaborator of the core, not part of it: it consumes the
// content string and produces terminal output, with no bearing on what gets
// stored.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns Markdown source into styled terminal output.
type Renderer struct {
	tr *glamour.TermRenderer
}

// NewRenderer creates a renderer for the given wrap width and style
// ("dark", "light", or any glamour standard style name).
func NewRenderer(width int, style string) (*Renderer, error) {
	if width <= 0 {
		width = 80
	}
	if style == "" {
		style = "dark"
	}

	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{tr: tr}, nil
}

// Render renders Markdown source. On renderer failure the raw source is
// returned so content is never hidden behind a styling problem.
func (r *Renderer) Render(content string) string {
	if r == nil || r.tr == nil {
		return content
	}
	out, err := r.tr.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n") + "\n"
}
