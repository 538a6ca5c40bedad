package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joestump/surfx/internal/prefs"
	"github.com/joestump/surfx/internal/settings"
)

type testEnv struct {
	router http.Handler
	codec  *prefs.Codec
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	codec := prefs.NewCodec("")
	catalog := settings.Catalog{
		Themes:             []string{"simple"},
		ColorSchemes:       []string{"catppuccin-mocha", "nord"},
		Animations:         []string{"simple-frosted-glow"},
		Engines:            []string{"Bing", "Brave", "DuckDuckGo"},
		DefaultTheme:       "simple",
		DefaultColorScheme: "catppuccin-mocha",
		DefaultAnimation:   "simple-frosted-glow",
		DefaultSafeSearch:  prefs.SafeSearchLow,
	}
	router := NewRouter(Deps{
		SessionManager: scs.New(),
		Catalog:        catalog,
		Codec:          codec,
		Logger:         zerolog.Nop(),
		NoticeDelay:    time.Minute,
	})
	return &testEnv{router: router, codec: codec}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(t *testing.T, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return e.do(t, req)
}

func (e *testEnv) post(t *testing.T, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return e.do(t, req)
}

func prefCookie(value string) *http.Cookie {
	return &http.Cookie{Name: prefs.DefaultCookieName, Value: url.QueryEscape(value)}
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSettingsShowHydratesFromCookie(t *testing.T) {
	env := newTestEnv(t)

	w := env.get(t, "/settings", prefCookie(`{"theme":"simple","colorscheme":"nord","engines":["Bing"]}`))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `name="colorscheme" value="nord"`)
	assert.Contains(t, body, `name="engines" value="Bing,"`)
	assert.Contains(t, body, `>Nord</button>`)
	assert.Contains(t, body, `/static/colorschemes/nord.css`)
	assert.Contains(t, body, widgetHeader("Select all"))
}

func TestSettingsShowWithoutCookie(t *testing.T) {
	env := newTestEnv(t)

	w := env.get(t, "/settings")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, settings.NoCookieText)
	assert.Contains(t, body, `name="colorscheme" value="catppuccin-mocha"`)
	assert.Contains(t, body, `name="engines" value="Bing,Brave,DuckDuckGo,"`)
	assert.Contains(t, body, widgetHeader("Deselect all"))
}

func TestSettingsShowMalformedCookie(t *testing.T) {
	env := newTestEnv(t)

	w := env.get(t, "/settings", prefCookie(`{"theme":`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), settings.DecodeErrorText)
	assert.Contains(t, w.Body.String(), `name="colorscheme" value="catppuccin-mocha"`)
}

func TestSettingsShowSection(t *testing.T) {
	env := newTestEnv(t)

	w := env.get(t, "/settings?section=engines")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `class="engines tab active"`)
	assert.Contains(t, w.Body.String(), `class="general tab" hidden`)
}

func TestSettingsSaveRejectsEmptyRequired(t *testing.T) {
	env := newTestEnv(t)

	w := env.post(t, "/settings", url.Values{
		"theme":             {""},
		"colorscheme":       {"nord"},
		"safe_search_level": {"1"},
		"engines":           {""},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Nil(t, findCookie(w, prefs.DefaultCookieName))
	body := w.Body.String()
	assert.Equal(t, 2, strings.Count(body, `class="error_message"`))
	assert.Contains(t, body, `class="user_interface tab active"`)
	assert.Contains(t, body, `name="colorscheme" value="nord"`)
}

func TestSettingsSaveSetsCookieAndFlash(t *testing.T) {
	env := newTestEnv(t)

	w := env.post(t, "/settings", url.Values{
		"theme":             {"simple"},
		"colorscheme":       {"nord"},
		"animation":         {""},
		"safe_search_level": {"2"},
		"engines":           {"Brave,Bing,"},
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/settings", w.Header().Get("Location"))

	ck := findCookie(w, prefs.DefaultCookieName)
	require.NotNil(t, ck)
	value, err := url.QueryUnescape(ck.Value)
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"simple","colorscheme":"nord","safe_search_level":2,"engines":["Bing","Brave"]}`, value)
	assert.Equal(t, "/", ck.Path)
	assert.False(t, ck.HttpOnly)

	session := findCookie(w, "session")
	require.NotNil(t, session)

	next := env.get(t, "/settings", ck, session)
	require.Equal(t, http.StatusOK, next.Code)
	assert.Contains(t, next.Body.String(), settings.SavedText)
	assert.Contains(t, next.Body.String(), `name="colorscheme" value="nord"`)

	again := env.get(t, "/settings", ck, session)
	assert.NotContains(t, again.Body.String(), settings.SavedText)
}

func TestSettingsNoticeDismissDelay(t *testing.T) {
	env := newTestEnv(t)

	w := env.post(t, "/settings", url.Values{"theme": {"simple"}, "colorscheme": {"nord"}, "engines": {"Bing,"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	ck := findCookie(w, prefs.DefaultCookieName)
	session := findCookie(w, "session")
	require.NotNil(t, ck)
	require.NotNil(t, session)

	next := env.get(t, "/settings", ck, session)
	require.Equal(t, http.StatusOK, next.Code)
	body := next.Body.String()
	assert.Contains(t, body, settings.SavedText)
	assert.Contains(t, body, `data-dismiss style="animation-delay: 60000ms"`)

	again := env.get(t, "/settings", ck, session)
	assert.NotContains(t, again.Body.String(), "data-dismiss")
}

func TestSettingsShowsStoredCookie(t *testing.T) {
	env := newTestEnv(t)
	stored := `{"engines":["Bing"],"theme":"simple","extra":1,"colorscheme":"nord"}`

	w := env.get(t, "/settings", prefCookie(stored))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), strings.ReplaceAll(stored, `"`, "&#34;"))
	assert.Contains(t, w.Body.String(), `name="colorscheme" value="nord"`)

	// Interactions keep showing the stored cookie.
	ev := env.post(t, "/settings/widgets/theme/click", url.Values{"theme": {"simple"}, "colorscheme": {"nord"}, "engines": {"Bing,"}}, prefCookie(stored))
	require.Equal(t, http.StatusOK, ev.Code)
	assert.Contains(t, ev.Body.String(), strings.ReplaceAll(stored, `"`, "&#34;"))
}

func TestSettingsSaveHTMX(t *testing.T) {
	env := newTestEnv(t)
	form := url.Values{"theme": {"simple"}, "colorscheme": {"nord"}, "engines": {"Bing,"}}
	req := httptest.NewRequest(http.MethodPost, "/settings", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")

	w := env.do(t, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "true", w.Header().Get("HX-Refresh"))
	assert.NotNil(t, findCookie(w, prefs.DefaultCookieName))
}

func TestWidgetEvents(t *testing.T) {
	env := newTestEnv(t)
	base := url.Values{
		"theme":       {"simple"},
		"colorscheme": {"catppuccin-mocha"},
		"engines":     {"Bing,"},
	}

	t.Run("click opens", func(t *testing.T) {
		w := env.post(t, "/settings/widgets/colorscheme/click", base)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="open" value="colorscheme"`)
		assert.Contains(t, w.Body.String(), `>Nord</button>`)
	})

	t.Run("pick closes and selects", func(t *testing.T) {
		form := url.Values{"open": {"colorscheme"}, "value": {"nord"}}
		for k, v := range base {
			form[k] = v
		}
		w := env.post(t, "/settings/widgets/colorscheme/pick", form)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="colorscheme" value="nord"`)
		assert.NotContains(t, w.Body.String(), `name="open" value="colorscheme"`)
	})

	t.Run("toggle engine", func(t *testing.T) {
		form := url.Values{"value": {"DuckDuckGo"}}
		for k, v := range base {
			form[k] = v
		}
		w := env.post(t, "/settings/widgets/engines/pick", form)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="engines" value="Bing,DuckDuckGo,"`)
	})

	t.Run("toggle all", func(t *testing.T) {
		w := env.post(t, "/settings/widgets/engines/toggle-all", base)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `name="engines" value="Bing,Brave,DuckDuckGo,"`)
		assert.Contains(t, w.Body.String(), widgetHeader("Deselect all"))
	})

	t.Run("blur keeps selection", func(t *testing.T) {
		form := url.Values{"open": {"theme"}}
		for k, v := range base {
			form[k] = v
		}
		w := env.post(t, "/settings/widgets/theme/blur", form)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), `name="open" value="theme"`)
		assert.Contains(t, w.Body.String(), `name="theme" value="simple"`)
	})
}

func TestWidgetEventErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		target string
		form   url.Values
		status int
	}{
		{name: "unknown widget", target: "/settings/widgets/nope/click", status: http.StatusNotFound},
		{name: "unknown action", target: "/settings/widgets/theme/explode", status: http.StatusNotFound},
		{name: "unknown option", target: "/settings/widgets/theme/pick", form: url.Values{"value": {"neon"}}, status: http.StatusNotFound},
		{name: "select all on a select", target: "/settings/widgets/theme/toggle-all", status: http.StatusBadRequest},
		{name: "unknown section", target: "/settings/sections/nope", status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.post(t, tt.target, tt.form)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestSectionKeepsUnsavedSelection(t *testing.T) {
	env := newTestEnv(t)

	w := env.post(t, "/settings/sections/engines", url.Values{"colorscheme": {"nord"}, "section": {"general"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `class="engines tab active"`)
	assert.Contains(t, w.Body.String(), `name="section" value="engines"`)
	assert.Contains(t, w.Body.String(), `name="colorscheme" value="nord"`)
}

func TestWidgetEventHTMXFragment(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/settings/widgets/theme/click", strings.NewReader("theme=simple"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")

	w := env.do(t, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `id="settings-form"`)
	assert.NotContains(t, w.Body.String(), "<!DOCTYPE html>")
}

func TestSearchRoutes(t *testing.T) {
	env := newTestEnv(t)

	t.Run("index uses cookie style", func(t *testing.T) {
		w := env.get(t, "/", prefCookie(`{"theme":"simple","colorscheme":"nord","safe_search_level":2,"engines":[]}`))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `/static/colorschemes/nord.css`)
		assert.Contains(t, w.Body.String(), `<option value="2" selected>SafeSearch: Moderate</option>`)
	})

	t.Run("blank query redirects home", func(t *testing.T) {
		w := env.get(t, "/search?q=%20%20")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("results page links", func(t *testing.T) {
		w := env.get(t, "/search?q=sweden&page=2")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<title>sweden - surfx</title>")
		assert.Contains(t, w.Body.String(), "page=3")
		assert.Contains(t, w.Body.String(), "page=1")
	})

	t.Run("submit builds canonical url", func(t *testing.T) {
		w := env.post(t, "/search", url.Values{"q": {" go lang "}, "safesearch": {"0"}})
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/search?q=go+lang&safesearch=0", w.Header().Get("Location"))
	})

	t.Run("submit blank", func(t *testing.T) {
		w := env.post(t, "/search", url.Values{"q": {""}})
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})
}

func TestNotFoundAndStatic(t *testing.T) {
	env := newTestEnv(t)

	w := env.get(t, "/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "404 Page Not Found!")

	w = env.get(t, "/static/css/app.css")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
}

// widgetHeader is the rendered select-all button of the engines group.
func widgetHeader(label string) string {
	return `formaction="/settings/widgets/engines/toggle-all">` + label + `</button>`
}
