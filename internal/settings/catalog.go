// Package settings wires the preference cookie to the widgets of the
// settings page: hydration on load and validation plus encoding on save.
package settings

import (
	"strconv"
	"strings"

	"github.com/joestump/surfx/internal/prefs"
	"github.com/joestump/surfx/internal/view"
	"github.com/joestump/surfx/internal/widget"
)

// Widget names. Each is also the name of the widget's hidden input.
const (
	ThemeWidget       = "theme"
	ColorSchemeWidget = "colorscheme"
	AnimationWidget   = "animation"
	SafeSearchWidget  = "safe_search_level"
	EnginesWidget     = widget.Engines
)

// Sidebar sections.
const (
	SectionGeneral = "general"
	SectionUI      = "user_interface"
	SectionEngines = "engines"
	SectionCookies = "cookies"
)

// SafeSearchLabels names each safe search level.
var SafeSearchLabels = []string{"None", "Low", "Moderate"}

// Catalog lists what the settings page offers and what it starts with.
type Catalog struct {
	Themes       []string
	ColorSchemes []string
	Animations   []string
	Engines      []string

	DefaultTheme       string
	DefaultColorScheme string
	DefaultAnimation   string
	DefaultSafeSearch  int
	DefaultEngines     []string
}

// Sections returns the sidebar of the settings page.
func (c Catalog) Sections() []view.SectionSpec {
	return []view.SectionSpec{
		{ID: SectionGeneral, Title: "General"},
		{ID: SectionUI, Title: "User Interface"},
		{ID: SectionEngines, Title: "Engines"},
		{ID: SectionCookies, Title: "Cookies"},
	}
}

// Specs returns the widget definitions in page order.
func (c Catalog) Specs() []widget.Spec {
	safe := make([]widget.Option, len(SafeSearchLabels))
	for i, l := range SafeSearchLabels {
		safe[i] = widget.Option{Value: strconv.Itoa(i), Label: l}
	}
	defaultEngines := c.DefaultEngines
	if defaultEngines == nil {
		defaultEngines = c.Engines
	}
	return []widget.Spec{
		{
			Name:        SafeSearchWidget,
			Kind:        widget.SingleSelect,
			Options:     safe,
			Placeholder: "Select",
			Section:     SectionGeneral,
			Default:     optional(strconv.Itoa(c.DefaultSafeSearch)),
		},
		{
			Name:        ThemeWidget,
			Kind:        widget.SingleSelect,
			Options:     styleOptions(c.Themes),
			Placeholder: "Select",
			Required:    true,
			Section:     SectionUI,
			Default:     optional(c.DefaultTheme),
		},
		{
			Name:        ColorSchemeWidget,
			Kind:        widget.SingleSelect,
			Options:     styleOptions(c.ColorSchemes),
			Placeholder: "Select",
			Required:    true,
			Section:     SectionUI,
			Default:     optional(c.DefaultColorScheme),
		},
		{
			Name:        AnimationWidget,
			Kind:        widget.SingleSelect,
			Options:     styleOptions(c.Animations),
			Placeholder: "None",
			Section:     SectionUI,
			Default:     optional(c.DefaultAnimation),
		},
		{
			Name:     EnginesWidget,
			Kind:     widget.ToggleGroup,
			Options:  engineOptions(c.Engines),
			Required: true,
			Section:  SectionEngines,
			Default:  defaultEngines,
		},
	}
}

// Defaults returns the record a visitor without a cookie gets.
func (c Catalog) Defaults() prefs.Record {
	rec := prefs.Record{
		Theme:       c.DefaultTheme,
		ColorScheme: c.DefaultColorScheme,
		Animation:   c.DefaultAnimation,
		Engines:     c.DefaultEngines,
	}
	if rec.Engines == nil {
		rec.Engines = c.Engines
	}
	if prefs.ValidSafeSearchLevel(c.DefaultSafeSearch) {
		rec.SafeSearchLevel = prefs.Level(c.DefaultSafeSearch)
	}
	return rec
}

// styleOptions labels style asset names the way the page shows them:
// "catppuccin-mocha" reads "Catppuccin Mocha".
func styleOptions(names []string) []widget.Option {
	out := make([]widget.Option, 0, len(names))
	for _, n := range names {
		words := strings.Fields(strings.ReplaceAll(n, "-", " "))
		for i, w := range words {
			words[i] = capitalize(w)
		}
		out = append(out, widget.Option{Value: n, Label: strings.Join(words, " ")})
	}
	return out
}

func engineOptions(names []string) []widget.Option {
	out := make([]widget.Option, 0, len(names))
	for _, n := range names {
		out = append(out, widget.Option{Value: n, Label: capitalize(n)})
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func optional(v string) []string {
	if v == "" {
		return nil
	}
	return []string{v}
}
