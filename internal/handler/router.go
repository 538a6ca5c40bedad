package handler

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/joestump/surfx/internal/logging"
	"github.com/joestump/surfx/internal/metrics"
	"github.com/joestump/surfx/internal/prefs"
	"github.com/joestump/surfx/internal/session"
	"github.com/joestump/surfx/internal/settings"
	"github.com/joestump/surfx/web"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	SessionManager *scs.SessionManager
	Catalog        settings.Catalog
	Codec          *prefs.Codec
	Logger         zerolog.Logger
	NoticeDelay    time.Duration
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware(deps.Logger))
	r.Use(middleware.Recoverer)
	r.Use(observeDuration)
	r.Use(deps.SessionManager.LoadAndSave)

	// Static assets (embedded). Use fs.Sub so the file server sees
	// css/app.css directly, not static/css/... paths.
	staticSub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("failed to sub static FS: " + err.Error())
	}
	r.Handle("/static/*", http.StripPrefix("/static", http.FileServerFS(staticSub)))
	r.Handle("/metrics", promhttp.Handler())

	search := NewSearchHandler(deps.Codec, deps.Catalog)
	r.Get("/", search.Index)
	r.Get("/search", search.Search)
	r.Post("/search", search.Submit)

	prefsPage := NewSettingsHandler(deps.Catalog, deps.Codec, session.NewFlashes(deps.SessionManager), deps.NoticeDelay)
	r.Get("/settings", prefsPage.Show)
	r.Post("/settings", prefsPage.Save)
	r.Post("/settings/widgets/{name}/{action}", prefsPage.Event)
	r.Post("/settings/sections/{id}", prefsPage.Section)

	r.NotFound(search.NotFound)

	return r
}

// observeDuration records request latency under the matched route pattern.
func observeDuration(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}
