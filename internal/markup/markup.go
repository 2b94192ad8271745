// Package markup converts the answer markup dialect into a presentational form.
//
// The dialect is a fixed, ordered list of inline markers:
//
//	**X**             strong
//	*X*               italic
//	__X__             underline
//	[red]X[/red]      coloured span (also blue and green)
//
// Rules run in that order, each as a global substitution over the output of the
// previous rule. Markers never span line breaks and never enclose an empty
// string; anything that does not match is left as literal text.
package markup

import (
	"html"
	"regexp"
)

// Colors recognised by the colour rules, in rule order.
var Colors = []string{"red", "blue", "green"}

// Renderer produces the presentational form of each marker.
type Renderer interface {
	Strong(s string) string
	Italic(s string) string
	Underline(s string) string
	Color(color, s string) string
}

// Rule is one substitution step of the formatter.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	// Apply renders the captured inner text.
	Apply func(r Renderer, inner string) string
}

// DefaultRules returns the dialect rules in application order.
func DefaultRules() []Rule {
	rules := []Rule{
		{
			Name:    "strong",
			Pattern: regexp.MustCompile(`\*\*(.+?)\*\*`),
			Apply:   func(r Renderer, s string) string { return r.Strong(s) },
		},
		{
			Name:    "italic",
			Pattern: regexp.MustCompile(`\*(.+?)\*`),
			Apply:   func(r Renderer, s string) string { return r.Italic(s) },
		},
		{
			Name:    "underline",
			Pattern: regexp.MustCompile(`__(.+?)__`),
			Apply:   func(r Renderer, s string) string { return r.Underline(s) },
		},
	}
	for _, c := range Colors {
		rules = append(rules, colorRule(c))
	}
	return rules
}

func colorRule(color string) Rule {
	return Rule{
		Name:    color,
		Pattern: regexp.MustCompile(`\[` + color + `\](.+?)\[/` + color + `\]`),
		Apply:   func(r Renderer, s string) string { return r.Color(color, s) },
	}
}

// Formatter applies an ordered rule list with a renderer.
type Formatter struct {
	rules    []Rule
	renderer Renderer
}

// New creates a Formatter. With no rules, DefaultRules is used.
func New(renderer Renderer, rules ...Rule) *Formatter {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Formatter{rules: rules, renderer: renderer}
}

// Format rewrites every recognised marker. It never fails.
func (f *Formatter) Format(text string) string {
	for _, rule := range f.rules {
		text = rule.Pattern.ReplaceAllStringFunc(text, func(match string) string {
			sub := rule.Pattern.FindStringSubmatch(match)
			if len(sub) < 2 {
				return match
			}
			return rule.Apply(f.renderer, sub[1])
		})
	}
	return text
}

// Rules returns a copy of the formatter's rule list.
func (f *Formatter) Rules() []Rule {
	out := make([]Rule, len(f.rules))
	copy(out, f.rules)
	return out
}

// HTMLRenderer emits the tags used by the web rendition of the dialect.
type HTMLRenderer struct{}

func (HTMLRenderer) Strong(s string) string { return "<b>" + s + "</b>" }
func (HTMLRenderer) Italic(s string) string { return "<i>" + s + "</i>" }
func (HTMLRenderer) Underline(s string) string { return "<u>" + s + "</u>" }
func (HTMLRenderer) Color(color, s string) string {
	return "<span class='" + color + "'>" + s + "</span>"
}

// PlainRenderer drops the markers and keeps their content.
type PlainRenderer struct{}

func (PlainRenderer) Strong(s string) string { return s }
func (PlainRenderer) Italic(s string) string { return s }
func (PlainRenderer) Underline(s string) string { return s }
func (PlainRenderer) Color(_, s string) string { return s }

// NewHTML returns a formatter producing HTML.
func NewHTML() *Formatter {
	return New(HTMLRenderer{})
}

// Strip removes all dialect markers from text.
func Strip(text string) string {
	return New(PlainRenderer{}).Format(text)
}

// EscapeHTML escapes text before it is formatted as HTML. None of the dialect
// markers contain characters affected by escaping.
func EscapeHTML(text string) string {
	return html.EscapeString(text)
}
