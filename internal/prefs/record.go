// Package prefs holds the user preference record and the cookie codec that
// persists it between page loads.
package prefs

// Safe search levels understood by the front-end.
const (
	SafeSearchNone = iota
	SafeSearchLow
	SafeSearchModerate
)

// Record is the canonical preference set carried by the preference cookie.
// Empty strings and a nil SafeSearchLevel mean "unset": the server-rendered
// default stays in place for that field.
type Record struct {
	Theme           string   `json:"theme"`
	ColorScheme     string   `json:"colorscheme"`
	Animation       string   `json:"animation,omitempty"`
	SafeSearchLevel *int     `json:"safe_search_level,omitempty"`
	Engines         []string `json:"engines"`
}

// Level returns a pointer to l, for building records in place.
func Level(l int) *int {
	return &l
}

// ValidSafeSearchLevel reports whether l is one of the supported levels.
func ValidSafeSearchLevel(l int) bool {
	return l >= SafeSearchNone && l <= SafeSearchModerate
}

// HasEngine reports whether name is one of the record's engines.
func (r Record) HasEngine(name string) bool {
	for _, e := range r.Engines {
		if e == name {
			return true
		}
	}
	return false
}

// uniqueEngines drops empty names and repeated names, keeping the first
// occurrence so the scan order survives.
func uniqueEngines(engines []string) []string {
	if len(engines) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(engines))
	out := make([]string, 0, len(engines))
	for _, e := range engines {
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
