package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/surfx/internal/logging"
	"github.com/joestump/surfx/internal/metrics"
	"github.com/joestump/surfx/internal/prefs"
	"github.com/joestump/surfx/internal/session"
	"github.com/joestump/surfx/internal/settings"
	"github.com/joestump/surfx/internal/view"
	"github.com/joestump/surfx/internal/widget"
)

// SettingsPage is the template data for the settings page.
type SettingsPage struct {
	BasePage
	Settings *view.Page
	Notice   string

	// NoticeDelay is the CSS time after which the notice hides itself, ""
	// when it stays.
	NoticeDelay string
}

// SettingsHandler serves the settings page. Each request builds its own
// widget state: GET hydrates from the preference cookie, POST from the
// mirrored hidden inputs of the submitted form.
type SettingsHandler struct {
	catalog     settings.Catalog
	codec       *prefs.Codec
	flashes     *session.Flashes
	noticeDelay time.Duration
	now         func() time.Time
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(catalog settings.Catalog, codec *prefs.Codec, flashes *session.Flashes, noticeDelay time.Duration) *SettingsHandler {
	return &SettingsHandler{
		catalog:     catalog,
		codec:       codec,
		flashes:     flashes,
		noticeDelay: noticeDelay,
		now:         time.Now,
	}
}

func (h *SettingsHandler) newSync(r *http.Request) (*settings.Sync, error) {
	log := logging.FromContext(r.Context())
	return settings.New(h.catalog, h.codec, *log)
}

// Show serves GET /settings. An optional ?section= selects the sidebar entry.
func (h *SettingsHandler) Show(w http.ResponseWriter, r *http.Request) {
	s, err := h.newSync(r)
	if err != nil {
		http.Error(w, "could not build settings", http.StatusInternalServerError)
		return
	}
	outcome := s.HydrateRequest(r)
	metrics.HydrationsTotal.WithLabelValues(outcome.String()).Inc()

	if id := r.URL.Query().Get("section"); id != "" {
		if err := s.Page().SelectSection(id); err != nil {
			logging.FromContext(r.Context()).Debug().Err(err).Msg("ignoring unknown section")
		}
	}
	if msg := h.flashes.Pop(r.Context()); msg != "" {
		s.Page().Notice.Show(msg, h.noticeDelay)
	}
	h.render(w, r, http.StatusOK, s)
}

// Event serves POST /settings/widgets/{name}/{action}. The action is one of
// click, blur, pick (with a value field) or toggle-all.
func (h *SettingsHandler) Event(w http.ResponseWriter, r *http.Request) {
	s, ok := h.restore(w, r)
	if !ok {
		return
	}
	name := chi.URLParam(r, "name")
	action := chi.URLParam(r, "action")
	ctrl := s.Controller()

	var err error
	switch action {
	case "click":
		err = ctrl.Click(name)
	case "blur":
		err = ctrl.Blur(name)
	case "pick":
		err = ctrl.Pick(name, r.PostForm.Get("value"))
	case "toggle-all":
		err = ctrl.ToggleAll(name)
	default:
		http.Error(w, "unknown action", http.StatusNotFound)
		return
	}
	if !h.eventError(w, r, err) {
		return
	}
	metrics.WidgetEventsTotal.WithLabelValues(action).Inc()
	h.render(w, r, http.StatusOK, s)
}

// Section serves POST /settings/sections/{id}: switch the sidebar without
// losing unsaved selections.
func (h *SettingsHandler) Section(w http.ResponseWriter, r *http.Request) {
	s, ok := h.restore(w, r)
	if !ok {
		return
	}
	if !h.eventError(w, r, s.Page().SelectSection(chi.URLParam(r, "id"))) {
		return
	}
	metrics.WidgetEventsTotal.WithLabelValues("section").Inc()
	h.render(w, r, http.StatusOK, s)
}

// Save serves POST /settings. Empty required settings re-render the page
// with inline errors and no cookie; otherwise the preference cookie is set
// and the browser reloads the page.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	s, ok := h.restore(w, r)
	if !ok {
		return
	}
	log := logging.FromContext(r.Context())

	ck, err := s.Save(h.now())
	if err != nil {
		var verrs widget.ValidationErrors
		if errors.As(err, &verrs) {
			metrics.SavesTotal.WithLabelValues("invalid").Inc()
			for _, name := range verrs.Widgets() {
				metrics.ValidationFailuresTotal.WithLabelValues(name).Inc()
			}
			log.Info().Strs("widgets", verrs.Widgets()).Msg("settings not saved: empty required settings")
			h.render(w, r, http.StatusUnprocessableEntity, s)
			return
		}
		metrics.SavesTotal.WithLabelValues("error").Inc()
		log.Error().Err(err).Msg("encode preference cookie")
		http.Error(w, "could not save settings", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, ck)
	h.flashes.Put(r.Context(), settings.SavedText)
	metrics.SavesTotal.WithLabelValues("saved").Inc()
	log.Info().Msg("settings saved")

	if isHTMX(r) {
		w.Header().Set("HX-Refresh", "true")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

// restore rebuilds the page state from a submitted settings form: mirrored
// inputs, open widgets and the active section.
func (h *SettingsHandler) restore(w http.ResponseWriter, r *http.Request) (*settings.Sync, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return nil, false
	}
	s, err := h.newSync(r)
	if err != nil {
		http.Error(w, "could not build settings", http.StatusInternalServerError)
		return nil, false
	}
	if err := s.HydrateForm(r.PostForm); err != nil {
		http.Error(w, "invalid settings form", http.StatusBadRequest)
		return nil, false
	}
	log := logging.FromContext(r.Context())
	for _, name := range r.PostForm["open"] {
		if err := s.Controller().Click(name); err != nil {
			log.Debug().Err(err).Str("widget", name).Msg("ignoring open state")
		}
	}
	if id := r.PostForm.Get("section"); id != "" {
		if err := s.Page().SelectSection(id); err != nil {
			log.Debug().Err(err).Msg("ignoring unknown section")
		}
	}
	s.Page().CookieText = cookieText(r, h.codec)
	return s, true
}

// eventError writes the response for a failed interaction and reports
// whether the handler may continue.
func (h *SettingsHandler) eventError(w http.ResponseWriter, r *http.Request, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, widget.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, widget.ErrWrongKind):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		logging.FromContext(r.Context()).Error().Err(err).Msg("settings event")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
	return false
}

func (h *SettingsHandler) render(w http.ResponseWriter, r *http.Request, status int, s *settings.Sync) {
	data := SettingsPage{
		BasePage: BasePage{Style: styleFromRequest(r, h.codec, h.catalog)},
		Settings: s.Page(),
		Notice:   s.Page().Notice.Message(),
	}
	if d := s.Page().Notice.Delay(); data.Notice != "" && d > 0 {
		data.NoticeDelay = fmt.Sprintf("%dms", d.Milliseconds())
	}
	if isHTMX(r) {
		renderFragment(w, status, "settings_form", data)
		return
	}
	renderStatus(w, status, "settings.html", data)
}

// cookieText is what the cookies section shows for r: the stored value as-is.
func cookieText(r *http.Request, codec *prefs.Codec) string {
	value, ok := codec.Value(r)
	if !ok {
		return settings.NoCookieText
	}
	if _, err := codec.DecodeValue(value); err != nil {
		return settings.DecodeErrorText
	}
	return value
}
