package handler

import (
	"net/http"
	"slices"

	"github.com/joestump/surfx/internal/prefs"
	"github.com/joestump/surfx/internal/settings"
)

// Style selects the stylesheets of a page.
type Style struct {
	Theme       string
	ColorScheme string
	Animation   string
}

// styleFromRequest reads the preference cookie and falls back to the
// configured defaults for any field that is absent, unreadable or not
// offered by the catalog.
func styleFromRequest(r *http.Request, codec *prefs.Codec, catalog settings.Catalog) Style {
	st := Style{
		Theme:       catalog.DefaultTheme,
		ColorScheme: catalog.DefaultColorScheme,
		Animation:   catalog.DefaultAnimation,
	}
	rec, ok, err := codec.DecodeRequest(r)
	if err != nil || !ok {
		return st
	}
	if slices.Contains(catalog.Themes, rec.Theme) {
		st.Theme = rec.Theme
	}
	if slices.Contains(catalog.ColorSchemes, rec.ColorScheme) {
		st.ColorScheme = rec.ColorScheme
	}
	if slices.Contains(catalog.Animations, rec.Animation) {
		st.Animation = rec.Animation
	}
	return st
}

// safeSearchFromRequest prefers a valid safesearch query parameter, then the
// cookie, then the configured default.
func safeSearchFromRequest(r *http.Request, codec *prefs.Codec, catalog settings.Catalog) int {
	if level, ok := safeSearchParam(r); ok {
		return level
	}
	if rec, ok, err := codec.DecodeRequest(r); err == nil && ok && rec.SafeSearchLevel != nil {
		return *rec.SafeSearchLevel
	}
	return catalog.DefaultSafeSearch
}
