// Package render provides the terminal palettes and answer rendering for the
// CLI and the TUI.
package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/askgemini/internal/config"
)

// TUITheme defines the color scheme for the TUI interface
type TUITheme struct {
	Name        string
	Description string

	// Base colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	// Text colors
	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color

	// Span colors for [red], [blue] and [green] markup
	Red   lipgloss.Color
	Blue  lipgloss.Color
	Green lipgloss.Color
}

// Built-in TUI themes, one per theme preference
var (
	// DarkTheme is based on the Tokyo Night color scheme
	DarkTheme = TUITheme{
		Name:        string(config.ThemeDark),
		Description: "Tokyo Night - Dark theme with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),

		Red:   lipgloss.Color("#f7768e"),
		Blue:  lipgloss.Color("#7aa2f7"),
		Green: lipgloss.Color("#9ece6a"),
	}

	// LightTheme is based on the Tokyo Night Day color scheme
	LightTheme = TUITheme{
		Name:        string(config.ThemeLight),
		Description: "Tokyo Night Day - Light theme with muted accents",

		Background: lipgloss.Color("#e1e2e7"),
		Surface:    lipgloss.Color("#d0d5e3"),
		Border:     lipgloss.Color("#a8aecb"),

		Primary:   lipgloss.Color("#2e7de9"),
		Secondary: lipgloss.Color("#587539"),
		Accent:    lipgloss.Color("#9854f1"),
		Warning:   lipgloss.Color("#8c6c3e"),
		Error:     lipgloss.Color("#f52a65"),

		Text:     lipgloss.Color("#3760bf"),
		TextDim:  lipgloss.Color("#6172b0"),
		TextMute: lipgloss.Color("#a8aecb"),

		Red:   lipgloss.Color("#c64343"),
		Blue:  lipgloss.Color("#2e7de9"),
		Green: lipgloss.Color("#387068"),
	}
)

// ThemeFor returns the palette for a theme preference. Unknown values fall
// back to the dark palette, the preference default.
func ThemeFor(theme config.Theme) TUITheme {
	if theme == config.ThemeLight {
		return LightTheme
	}
	return DarkTheme
}

// SpanColor resolves a markup colour name to the palette's colour
func (t TUITheme) SpanColor(name string) (lipgloss.Color, bool) {
	switch name {
	case "red":
		return t.Red, true
	case "blue":
		return t.Blue, true
	case "green":
		return t.Green, true
	default:
		return "", false
	}
}
