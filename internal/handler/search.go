package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/joestump/surfx/internal/metrics"
	"github.com/joestump/surfx/internal/nav"
	"github.com/joestump/surfx/internal/prefs"
	"github.com/joestump/surfx/internal/settings"
)

// SafeSearchChoice is one entry of the search bar's safe search select.
type SafeSearchChoice struct {
	Level    int
	Label    string
	Selected bool
}

// SearchPage is the template data for the index and results pages.
type SearchPage struct {
	BasePage
	Query      string
	Page       int
	SafeSearch []SafeSearchChoice
	Next       string
	Previous   string
}

// SearchHandler serves the search bar and the results page shell.
type SearchHandler struct {
	codec   *prefs.Codec
	catalog settings.Catalog
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(codec *prefs.Codec, catalog settings.Catalog) *SearchHandler {
	return &SearchHandler{codec: codec, catalog: catalog}
}

func (h *SearchHandler) page(r *http.Request) SearchPage {
	level := safeSearchFromRequest(r, h.codec, h.catalog)
	choices := make([]SafeSearchChoice, len(settings.SafeSearchLabels))
	for i, l := range settings.SafeSearchLabels {
		choices[i] = SafeSearchChoice{Level: i, Label: l, Selected: i == level}
	}
	return SearchPage{
		BasePage:   BasePage{Style: styleFromRequest(r, h.codec, h.catalog)},
		SafeSearch: choices,
	}
}

// Index serves GET /.
func (h *SearchHandler) Index(w http.ResponseWriter, r *http.Request) {
	render(w, "index.html", h.page(r))
}

// Search serves GET /search?q=&page=&safesearch=. A blank query goes back to
// the index.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		metrics.SearchRedirectsTotal.Inc()
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	data := h.page(r)
	data.Query = q
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		data.Page = p
	}
	data.Next = nav.Next(r.URL)
	data.Previous = nav.Previous(r.URL)
	render(w, "search.html", data)
}

// Submit serves POST /search from the search bar form and redirects to the
// canonical results URL.
func (h *SearchHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	level := -1
	if l, ok := nav.SafeSearchParam(r.PostForm); ok {
		level = l
	}
	target := nav.SearchURL(r.PostForm.Get("q"), level)
	if target == "" {
		metrics.SearchRedirectsTotal.Inc()
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// NotFound serves every unknown route.
func (h *SearchHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	renderStatus(w, http.StatusNotFound, "404.html", h.page(r))
}

func safeSearchParam(r *http.Request) (int, bool) {
	return nav.SafeSearchParam(r.URL.Query())
}
