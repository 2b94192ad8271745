package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/diogo/askgemini/internal/config"
	"github.com/diogo/askgemini/internal/markup"
)

// ANSIRenderer renders markup spans as lipgloss styles from a palette
type ANSIRenderer struct {
	theme     TUITheme
	renderer  *lipgloss.Renderer
	strong    lipgloss.Style
	italic    lipgloss.Style
	underline lipgloss.Style
}

// Ensure ANSIRenderer implements markup.Renderer
var _ markup.Renderer = (*ANSIRenderer)(nil)

// NewANSIRenderer creates a renderer for theme using the default lipgloss
// renderer, which detects the color profile of stdout.
func NewANSIRenderer(theme TUITheme) *ANSIRenderer {
	return NewANSIRendererWith(lipgloss.DefaultRenderer(), theme)
}

// NewANSIRendererWith creates a renderer bound to a specific lipgloss renderer
func NewANSIRendererWith(r *lipgloss.Renderer, theme TUITheme) *ANSIRenderer {
	return &ANSIRenderer{
		theme:     theme,
		renderer:  r,
		strong:    r.NewStyle().Bold(true),
		italic:    r.NewStyle().Italic(true),
		underline: r.NewStyle().Underline(true),
	}
}

func (a *ANSIRenderer) Strong(s string) string { return a.strong.Render(s) }

func (a *ANSIRenderer) Italic(s string) string { return a.italic.Render(s) }

func (a *ANSIRenderer) Underline(s string) string { return a.underline.Render(s) }

// sgrReset ends every span lipgloss renders
const sgrReset = termenv.CSI + termenv.ResetSeq + "m"

// Color paints s with the palette's colour for name. Unknown names render
// the content unstyled. s may already hold styled spans from earlier rules;
// the foreground is re-opened after each of their resets.
func (a *ANSIRenderer) Color(name, s string) string {
	c, ok := a.theme.SpanColor(name)
	if !ok {
		return s
	}
	tc := a.renderer.ColorProfile().Color(string(c))
	if tc == nil || tc.Sequence(false) == "" {
		return s
	}
	open := termenv.CSI + tc.Sequence(false) + "m"
	return open + strings.ReplaceAll(s, sgrReset, sgrReset+open) + sgrReset
}

// FormatterFor returns an ANSI answer formatter for a theme preference
func FormatterFor(theme config.Theme) *markup.Formatter {
	return markup.New(NewANSIRenderer(ThemeFor(theme)))
}
