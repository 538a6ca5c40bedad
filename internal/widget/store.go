package widget

import (
	"fmt"
	"slices"
)

// Engines is the name of the toggle group listing upstream search engines.
const Engines = "engines"

// Store owns the state of every widget on a page. It never touches the
// rendered page; Controller does that.
type Store struct {
	order  []string
	specs  map[string]Spec
	states map[string]*State
}

// NewStore builds a store for specs and applies each spec's default
// selection. Defaults that are not options are dropped.
func NewStore(specs ...Spec) (*Store, error) {
	s := &Store{
		specs:  make(map[string]Spec, len(specs)),
		states: make(map[string]*State, len(specs)),
	}
	for _, sp := range specs {
		if _, dup := s.specs[sp.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateWidget, sp.Name)
		}
		sp.Options = slices.Clone(sp.Options)
		s.specs[sp.Name] = sp
		s.order = append(s.order, sp.Name)
		s.states[sp.Name] = &State{Name: sp.Name, Kind: sp.Kind}

		def := sp.Default
		if sp.Kind == SingleSelect && len(def) > 1 {
			def = def[:1]
		}
		if err := s.Set(sp.Name, def...); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Names returns widget names in page order.
func (s *Store) Names() []string {
	return slices.Clone(s.order)
}

// Spec returns the definition of the named widget.
func (s *Store) Spec(name string) (Spec, error) {
	sp, ok := s.specs[name]
	if !ok {
		return Spec{}, notFound("widget", name)
	}
	return sp, nil
}

// Get returns a copy of the named widget's state.
func (s *Store) Get(name string) (State, error) {
	st, ok := s.states[name]
	if !ok {
		return State{}, notFound("widget", name)
	}
	out := *st
	out.Selected = slices.Clone(st.Selected)
	return out, nil
}

// Snapshot returns a copy of every widget's state keyed by name.
func (s *Store) Snapshot() map[string]State {
	out := make(map[string]State, len(s.states))
	for _, name := range s.order {
		st, _ := s.Get(name)
		out[name] = st
	}
	return out
}

// Set replaces the selection of the named widget. Values that are not
// options of the widget are ignored. A single-select accepts at most one
// value; an empty call clears the selection.
func (s *Store) Set(name string, values ...string) error {
	st, ok := s.states[name]
	if !ok {
		return notFound("widget", name)
	}
	sp := s.specs[name]
	if sp.Kind == SingleSelect && len(values) > 1 {
		return fmt.Errorf("%w: %q got %d", ErrTooManyValues, name, len(values))
	}
	s.assign(st, sp, values)
	return nil
}

// Toggle flips membership of value in the named widget's selection and
// reports whether value is selected afterwards. Toggling an unselected value
// of a single-select replaces the previous selection.
func (s *Store) Toggle(name, value string) (bool, error) {
	st, ok := s.states[name]
	if !ok {
		return false, notFound("widget", name)
	}
	sp := s.specs[name]
	if sp.index(value) < 0 {
		return false, notFound("option", name+"/"+value)
	}

	if st.Has(value) {
		s.assign(st, sp, slices.DeleteFunc(slices.Clone(st.Selected), func(v string) bool { return v == value }))
		return false, nil
	}
	if sp.Kind == SingleSelect {
		s.assign(st, sp, []string{value})
	} else {
		s.assign(st, sp, append(slices.Clone(st.Selected), value))
	}
	return true, nil
}

// SetAll selects every option of a set widget when on is true and clears it
// otherwise.
func (s *Store) SetAll(name string, on bool) error {
	st, ok := s.states[name]
	if !ok {
		return notFound("widget", name)
	}
	sp := s.specs[name]
	if sp.Kind == SingleSelect {
		return fmt.Errorf("%w: select all on %s %q", ErrWrongKind, sp.Kind, name)
	}
	var values []string
	if on {
		for _, o := range sp.Options {
			values = append(values, o.Value)
		}
	}
	s.assign(st, sp, values)
	return nil
}

// AllSelected reports whether the named widget's selection equals its full
// option universe. A widget without options is never all-selected.
func (s *Store) AllSelected(name string) bool {
	st, ok := s.states[name]
	if !ok {
		return false
	}
	sp := s.specs[name]
	return len(sp.Options) > 0 && len(st.Selected) == len(sp.Options)
}

// AllEnginesSelected reports whether every known engine is enabled.
func (s *Store) AllEnginesSelected() bool {
	return s.AllSelected(Engines)
}

// assign stores values in option order, dropping unknown and repeated
// values, and regenerates the mirror.
func (s *Store) assign(st *State, sp Spec, values []string) {
	picked := make(map[string]bool, len(values))
	for _, v := range values {
		if sp.index(v) >= 0 {
			picked[v] = true
		}
	}
	selected := make([]string, 0, len(picked))
	for _, o := range sp.Options {
		if picked[o.Value] {
			selected = append(selected, o.Value)
		}
	}
	if len(selected) == 0 {
		selected = nil
	}
	st.Selected = selected
	st.Mirror = JoinMirror(sp.Kind, selected)
}
