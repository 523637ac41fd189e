package display

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Renderer turns help text into terminal markdown. A disabled Renderer, or
// one whose glamour setup failed, returns text unchanged.
type Renderer struct {
	enabled bool
	width   int
	tr      *glamour.TermRenderer
}

// NewRenderer creates a Renderer. width <= 0 uses TerminalWidth.
func NewRenderer(enabled bool, width int) *Renderer {
	r := &Renderer{enabled: enabled, width: width}
	if r.width <= 0 {
		r.width = TerminalWidth()
	}
	return r
}

// Enabled reports whether output is rendered.
func (r *Renderer) Enabled() bool {
	return r != nil && r.enabled
}

// SetEnabled turns rendering on or off.
func (r *Renderer) SetEnabled(enabled bool) {
	r.enabled = enabled
}

// RenderHelp renders aligned help rows as a fenced code block so the
// columns survive markdown layout.
func (r *Renderer) RenderHelp(text string) string {
	if !r.Enabled() || text == "" {
		return text
	}
	return r.Render("```text\n" + strings.TrimRight(text, "\n") + "\n```\n")
}

// Render renders markdown, falling back to the raw content on error.
func (r *Renderer) Render(markdown string) string {
	if !r.Enabled() {
		return markdown
	}
	if r.tr == nil {
		tr, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(r.width),
		)
		if err != nil {
			r.enabled = false
			return markdown
		}
		r.tr = tr
	}
	rendered, err := r.tr.Render(markdown)
	if err != nil {
		return markdown
	}
	return rendered
}
