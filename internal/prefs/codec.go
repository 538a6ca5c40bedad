package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultCookieName is the designated cookie entry holding the record.
const DefaultCookieName = "appCookie"

// CookieLifetime is how long a saved preference cookie stays valid.
const CookieLifetime = 365 * 24 * time.Hour

// ErrMalformedCookie is wrapped by every DecodeError.
var ErrMalformedCookie = errors.New("malformed preference cookie")

// DecodeError reports a preference cookie that is present but cannot be
// parsed as a Record.
type DecodeError struct {
	Value string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %v", ErrMalformedCookie, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrMalformedCookie, e.Err}
}

// Codec reads and writes the single structured preference cookie.
type Codec struct {
	Name     string
	Path     string
	Secure   bool
	Lifetime time.Duration
}

// NewCodec returns a Codec for the named cookie with a one year lifetime.
// An empty name selects DefaultCookieName.
func NewCodec(name string) *Codec {
	if name == "" {
		name = DefaultCookieName
	}
	return &Codec{
		Name:     name,
		Path:     "/",
		Lifetime: CookieLifetime,
	}
}

// wireRecord mirrors Record but keeps safe_search_level raw so an out of
// range or non-integer value becomes a DecodeError rather than a silent zero.
type wireRecord struct {
	Theme           string          `json:"theme"`
	ColorScheme     string          `json:"colorscheme"`
	Animation       string          `json:"animation"`
	SafeSearchLevel json.RawMessage `json:"safe_search_level"`
	Engines         []string        `json:"engines"`
}

// Decode locates the codec's entry in a percent-decoded Cookie header and
// parses it. The boolean is false when the header is empty or carries no
// entry for the codec; callers keep their defaults in that case.
func (c *Codec) Decode(header string) (Record, bool, error) {
	value, ok := c.Lookup(header)
	if !ok {
		return Record{}, false, nil
	}
	rec, err := c.DecodeValue(value)
	if err != nil {
		return Record{}, true, err
	}
	return rec, true, nil
}

// DecodeValue parses the structured value of the preference cookie.
func (c *Codec) DecodeValue(value string) (Record, error) {
	var w wireRecord
	if err := json.Unmarshal([]byte(value), &w); err != nil {
		return Record{}, &DecodeError{Value: value, Err: err}
	}

	rec := Record{
		Theme:       w.Theme,
		ColorScheme: w.ColorScheme,
		Animation:   w.Animation,
		Engines:     uniqueEngines(w.Engines),
	}
	if len(w.SafeSearchLevel) > 0 && string(w.SafeSearchLevel) != "null" {
		var level int
		if err := json.Unmarshal(w.SafeSearchLevel, &level); err != nil {
			return Record{}, &DecodeError{Value: value, Err: fmt.Errorf("safe_search_level: %w", err)}
		}
		if !ValidSafeSearchLevel(level) {
			return Record{}, &DecodeError{Value: value, Err: fmt.Errorf("safe_search_level %d out of range", level)}
		}
		rec.SafeSearchLevel = &level
	}
	return rec, nil
}

// DecodeRequest decodes the preference cookie carried by r.
func (c *Codec) DecodeRequest(r *http.Request) (Record, bool, error) {
	value, ok := c.Value(r)
	if !ok {
		return Record{}, false, nil
	}
	rec, err := c.DecodeValue(value)
	if err != nil {
		return Record{}, true, err
	}
	return rec, true, nil
}

// Value returns the percent-decoded value of the preference cookie carried
// by r, as stored. A value that fails to unescape is returned unchanged.
func (c *Codec) Value(r *http.Request) (string, bool) {
	ck, err := r.Cookie(c.Name)
	if err != nil {
		return "", false
	}
	v, err := url.QueryUnescape(ck.Value)
	if err != nil {
		return ck.Value, true
	}
	return v, true
}

// Lookup returns the codec's entry in a percent-decoded Cookie header.
func (c *Codec) Lookup(header string) (string, bool) {
	return lookup(header, c.Name)
}

// Encode produces the structured cookie value. Engines keep the order of rec.
func (c *Codec) Encode(rec Record) (string, error) {
	out := rec
	out.Engines = uniqueEngines(rec.Engines)
	if out.Engines == nil {
		out.Engines = []string{}
	}
	if out.SafeSearchLevel != nil && !ValidSafeSearchLevel(*out.SafeSearchLevel) {
		return "", fmt.Errorf("encode preferences: safe_search_level %d out of range", *out.SafeSearchLevel)
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode preferences: %w", err)
	}
	return string(b), nil
}

// Cookie builds the Set-Cookie entry for rec, expiring one lifetime after now.
// The value is percent-encoded; it is readable from client scripts.
func (c *Codec) Cookie(rec Record, now time.Time) (*http.Cookie, error) {
	value, err := c.Encode(rec)
	if err != nil {
		return nil, err
	}
	lifetime := c.Lifetime
	if lifetime <= 0 {
		lifetime = CookieLifetime
	}
	path := c.Path
	if path == "" {
		path = "/"
	}
	return &http.Cookie{
		Name:     c.Name,
		Value:    url.QueryEscape(value),
		Path:     path,
		Expires:  now.Add(lifetime).UTC(),
		MaxAge:   int(lifetime / time.Second),
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
		HttpOnly: false,
	}, nil
}

// lookup returns the value of the named entry in a semicolon separated
// cookie header. Pairs split on the first '=' only.
func lookup(header, name string) (string, bool) {
	for _, pair := range strings.Split(header, ";") {
		k, v, found := strings.Cut(pair, "=")
		if !found {
			continue
		}
		if strings.TrimSpace(k) == name {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}
