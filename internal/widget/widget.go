// Package widget keeps the runtime state of the settings page's custom
// selects and toggle groups, and drives their interaction state machine.
package widget

import "strings"

// Kind is the interaction model of a widget.
type Kind int

const (
	// SingleSelect holds at most one value.
	SingleSelect Kind = iota
	// MultiSelect holds a set of values shown as removable chips.
	MultiSelect
	// ToggleGroup holds a set of values shown as switches with a
	// "select all" header.
	ToggleGroup
)

func (k Kind) String() string {
	switch k {
	case SingleSelect:
		return "single-select"
	case MultiSelect:
		return "multi-select"
	case ToggleGroup:
		return "toggle-group"
	default:
		return "unknown"
	}
}

// Option is one selectable entry of a widget.
type Option struct {
	Value string
	Label string
}

// Spec describes a widget as the page presents it. Options are listed in
// scan order, which is also the canonical order of a selection.
type Spec struct {
	Name        string
	Kind        Kind
	Options     []Option
	Placeholder string
	Required    bool
	Section     string
	Default     []string
}

// Label returns the display label of value, or "" when it is not an option.
func (s Spec) Label(value string) string {
	for _, o := range s.Options {
		if o.Value == value {
			return o.Label
		}
	}
	return ""
}

func (s Spec) index(value string) int {
	for i, o := range s.Options {
		if o.Value == value {
			return i
		}
	}
	return -1
}

// State is the runtime state of one widget. Mirror always equals
// JoinMirror(Kind, Selected).
type State struct {
	Name     string
	Kind     Kind
	Selected []string
	Mirror   string
}

// Has reports whether value is selected.
func (s State) Has(value string) bool {
	for _, v := range s.Selected {
		if v == value {
			return true
		}
	}
	return false
}

// JoinMirror renders a selection as the hidden input's text. Sets are
// comma-terminated ("a,b,"); a single-select mirrors its value verbatim.
func JoinMirror(kind Kind, selected []string) string {
	if kind == SingleSelect {
		if len(selected) == 0 {
			return ""
		}
		return selected[0]
	}
	var b strings.Builder
	for _, v := range selected {
		b.WriteString(v)
		b.WriteByte(',')
	}
	return b.String()
}

// SplitMirror parses a hidden input's text. Empty entries produced by
// consecutive or trailing separators are dropped and whitespace is trimmed.
func SplitMirror(kind Kind, mirror string) []string {
	if kind == SingleSelect {
		v := strings.TrimSpace(mirror)
		if v == "" {
			return nil
		}
		return []string{v}
	}
	var out []string
	for _, v := range strings.Split(mirror, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
