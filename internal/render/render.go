package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/askgemini/internal/markup"
)

// Answer renders raw answer markup for display.
// HTML output escapes the text before applying tags so only the formatter's
// own tags reach the output.
func Answer(text string, opts Options) string {
	return AnswerWith(lipgloss.DefaultRenderer(), text, opts)
}

// AnswerWith is Answer bound to a specific lipgloss renderer.
func AnswerWith(r *lipgloss.Renderer, text string, opts Options) string {
	switch opts.Format {
	case FormatHTML:
		return markup.NewHTML().Format(markup.EscapeHTML(text))
	case FormatPlain:
		return markup.Strip(text)
	}

	out := markup.New(NewANSIRendererWith(r, ThemeFor(opts.Theme))).Format(text)
	if opts.Width > 0 {
		out = r.NewStyle().Width(opts.Width).Render(out)
	}
	return out
}
