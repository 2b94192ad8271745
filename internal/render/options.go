package render

import "github.com/diogo/askgemini/internal/config"

// Format selects the output form of a rendered answer
type Format string

const (
	// FormatANSI styles spans for the terminal
	FormatANSI Format = "ansi"
	// FormatHTML emits the tag form (<b>, <i>, <u>, <span class='red'>)
	FormatHTML Format = "html"
	// FormatPlain drops the markers and keeps the content
	FormatPlain Format = "plain"
)

// Options configures answer rendering.
type Options struct {
	// Width wraps ANSI output at this many cells (0 disables wrapping)
	Width int

	// Theme selects the palette for ANSI output
	Theme config.Theme

	// Format selects ANSI, HTML or plain output
	Format Format
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	return Options{
		Width:  80,
		Theme:  config.ThemeDark,
		Format: FormatANSI,
	}
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithTheme returns Options with the specified theme.
func (o Options) WithTheme(theme config.Theme) Options {
	o.Theme = theme
	return o
}

// WithFormat returns Options with the specified output format.
func (o Options) WithFormat(format Format) Options {
	o.Format = format
	return o
}
