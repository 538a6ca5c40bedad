package settings

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/joestump/surfx/internal/prefs"
	"github.com/joestump/surfx/internal/view"
	"github.com/joestump/surfx/internal/widget"
)

// Messages shown in the cookies section.
const (
	NoCookieText    = "No cookies have been saved on your system"
	DecodeErrorText = "Error decoding cookie"
	SavedText       = "Settings saved successfully!"
)

// Outcome tells how a page was hydrated.
type Outcome int

const (
	// OutcomeDefault means no preference cookie was present.
	OutcomeDefault Outcome = iota
	// OutcomeDecodeError means the cookie was present but unreadable; the
	// page kept its defaults.
	OutcomeDecodeError
	// OutcomeHydrated means the cookie's preferences were applied.
	OutcomeHydrated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDefault:
		return "default"
	case OutcomeDecodeError:
		return "decode_error"
	case OutcomeHydrated:
		return "hydrated"
	default:
		return "unknown"
	}
}

// Sync owns one page's widget store, controller and rendered page.
type Sync struct {
	codec *prefs.Codec
	store *widget.Store
	ctrl  *widget.Controller
	page  *view.Page
	log   zerolog.Logger
}

// New lays out a fresh settings page for catalog with every widget at its
// configured default.
func New(catalog Catalog, codec *prefs.Codec, log zerolog.Logger) (*Sync, error) {
	specs := catalog.Specs()
	store, err := widget.NewStore(specs...)
	if err != nil {
		return nil, fmt.Errorf("settings store: %w", err)
	}
	page, err := view.NewPage(catalog.Sections(), specs)
	if err != nil {
		return nil, fmt.Errorf("settings page: %w", err)
	}
	s := &Sync{
		codec: codec,
		store: store,
		ctrl:  widget.NewController(store, page),
		page:  page,
		log:   log.With().Str("component", "settings").Logger(),
	}
	if err := s.ctrl.RenderAll(); err != nil {
		return nil, fmt.Errorf("settings render: %w", err)
	}
	page.CookieText = NoCookieText
	return s, nil
}

// Page returns the rendered page.
func (s *Sync) Page() *view.Page { return s.page }

// Store returns the widget store.
func (s *Sync) Store() *widget.Store { return s.store }

// Controller returns the controller driving the page.
func (s *Sync) Controller() *widget.Controller { return s.ctrl }

// Hydrate applies the preference cookie found in a percent-decoded Cookie
// header. A missing or unreadable cookie leaves every widget at its default.
func (s *Sync) Hydrate(header string) Outcome {
	value, ok := s.codec.Lookup(header)
	return s.hydrate(value, ok)
}

// HydrateRequest hydrates from the preference cookie carried by r.
func (s *Sync) HydrateRequest(r *http.Request) Outcome {
	value, ok := s.codec.Value(r)
	return s.hydrate(value, ok)
}

// hydrate applies a stored cookie value. The cookies section shows the value
// as stored, not as it would be re-encoded.
func (s *Sync) hydrate(value string, ok bool) Outcome {
	if !ok {
		s.page.CookieText = NoCookieText
		return OutcomeDefault
	}
	rec, err := s.codec.DecodeValue(value)
	if err != nil {
		s.log.Warn().Err(err).Msg("preference cookie unreadable, keeping defaults")
		s.page.CookieText = DecodeErrorText
		return OutcomeDecodeError
	}
	s.page.CookieText = value
	s.Apply(rec)
	return OutcomeHydrated
}

// Apply pushes every field present in rec into the store and redraws the
// affected widgets. Values the page does not offer are ignored.
func (s *Sync) Apply(rec prefs.Record) {
	if rec.Theme != "" {
		s.set(ThemeWidget, rec.Theme)
	}
	if rec.ColorScheme != "" {
		s.set(ColorSchemeWidget, rec.ColorScheme)
	}
	if rec.Animation != "" {
		s.set(AnimationWidget, rec.Animation)
	}
	if rec.SafeSearchLevel != nil {
		s.set(SafeSearchWidget, strconv.Itoa(*rec.SafeSearchLevel))
	}
	if len(rec.Engines) > 0 {
		s.set(EnginesWidget, rec.Engines...)
	}
}

// set replaces a widget's selection unless none of values is an option, in
// which case the default stays.
func (s *Sync) set(name string, values ...string) {
	sp, err := s.store.Spec(name)
	if err != nil {
		s.log.Debug().Err(err).Msg("skipping preference")
		return
	}
	var known []string
	for _, v := range values {
		if sp.Label(v) != "" {
			known = append(known, v)
		}
	}
	if len(known) == 0 {
		s.log.Debug().Str("widget", name).Strs("values", values).Msg("ignoring unknown preference values")
		return
	}
	if sp.Kind == widget.SingleSelect {
		known = known[:1]
	}
	if err := s.store.Set(name, known...); err != nil {
		s.log.Debug().Err(err).Str("widget", name).Msg("skipping preference")
		return
	}
	if err := s.ctrl.Render(name); err != nil {
		s.log.Debug().Err(err).Str("widget", name).Msg("render preference")
	}
}

// HydrateForm rebuilds widget state from the mirrored hidden inputs of a
// submitted settings form. Inputs that are absent leave the default; an
// input present but empty clears the widget.
func (s *Sync) HydrateForm(form url.Values) error {
	for _, name := range s.store.Names() {
		if _, present := form[name]; !present {
			continue
		}
		sp, err := s.store.Spec(name)
		if err != nil {
			return err
		}
		values := widget.SplitMirror(sp.Kind, form.Get(name))
		if sp.Kind == widget.SingleSelect && len(values) > 1 {
			values = values[:1]
		}
		if err := s.store.Set(name, values...); err != nil {
			return err
		}
	}
	return s.ctrl.RenderAll()
}

// Record collects the current selection of every widget. Engines keep the
// order in which the page lists them.
func (s *Sync) Record() prefs.Record {
	var rec prefs.Record
	if st, err := s.store.Get(ThemeWidget); err == nil {
		rec.Theme = st.Mirror
	}
	if st, err := s.store.Get(ColorSchemeWidget); err == nil {
		rec.ColorScheme = st.Mirror
	}
	if st, err := s.store.Get(AnimationWidget); err == nil {
		rec.Animation = st.Mirror
	}
	if st, err := s.store.Get(SafeSearchWidget); err == nil && st.Mirror != "" {
		if level, err := strconv.Atoi(st.Mirror); err == nil {
			rec.SafeSearchLevel = prefs.Level(level)
		}
	}
	if st, err := s.store.Get(EnginesWidget); err == nil {
		rec.Engines = st.Selected
	}
	return rec
}

// Save validates the page and, when every required widget has a value,
// returns the preference cookie to set. On failure the error is a
// widget.ValidationErrors and no cookie is produced.
func (s *Sync) Save(now time.Time) (*http.Cookie, error) {
	if errs := s.ctrl.Validate(); len(errs) > 0 {
		return nil, errs
	}
	ck, err := s.codec.Cookie(s.Record(), now)
	if err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return ck, nil
}

// IsValidation reports whether err came from a failed validation.
func IsValidation(err error) bool {
	var verrs widget.ValidationErrors
	return errors.As(err, &verrs)
}
