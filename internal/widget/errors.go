package widget

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is wrapped by every LookupError.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateWidget is returned when two specs share a name.
	ErrDuplicateWidget = errors.New("duplicate widget name")

	// ErrTooManyValues is returned when a single-select is given more than
	// one value.
	ErrTooManyValues = errors.New("single-select takes at most one value")

	// ErrWrongKind is returned when an operation does not apply to the
	// widget's kind.
	ErrWrongKind = errors.New("operation not supported for widget kind")
)

// EmptyMessage is the diagnostic attached to an empty required widget.
const EmptyMessage = "This setting can't be empty"

// LookupError reports a referenced widget, option or section that does not
// exist.
type LookupError struct {
	What string
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q %v", e.What, e.Name, ErrNotFound)
}

func (e *LookupError) Unwrap() error { return ErrNotFound }

func notFound(what, name string) error {
	return &LookupError{What: what, Name: name}
}

// ValidationError reports a required widget left empty at save time.
type ValidationError struct {
	Widget  string
	Section string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Widget + ": " + e.Message
}

// ValidationErrors collects every failing widget, in page order.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "invalid settings: " + strings.Join(msgs, "; ")
}

// Widgets lists the names of the failing widgets.
func (v ValidationErrors) Widgets() []string {
	names := make([]string, len(v))
	for i, e := range v {
		names[i] = e.Widget
	}
	return names
}
