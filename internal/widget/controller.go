package widget

import (
	"errors"
	"fmt"
)

// Header labels of a toggle group's "select all" control.
const (
	SelectAllLabel   = "Select all"
	DeselectAllLabel = "Deselect all"
)

// Renderer is the page the controller draws on. Every method addresses an
// element by widget name (and option value where relevant) and returns a
// LookupError when that element is missing.
type Renderer interface {
	SetLabel(widget, text string) error
	SetOptionSelected(widget, value string, selected bool) error
	AddChip(widget, value, label string) error
	RemoveChip(widget, value string) error
	SetChecked(widget, value string, checked bool) error
	SetHeaderLabel(widget, text string) error
	SetMirror(widget, value string) error
	SetOpen(widget string, open bool) error
	SetInvalid(widget string, invalid bool) error
	InsertError(widget, message string) error
	ClearErrors()
	SelectSection(id string) error
}

// Controller translates user interaction into store mutations and keeps the
// renderer in step with the store.
//
// Each widget tracks its own open state; opening one widget does not close
// another.
type Controller struct {
	store *Store
	view  Renderer
	open  map[string]bool
}

// NewController binds a store to the page it renders on.
func NewController(store *Store, view Renderer) *Controller {
	return &Controller{
		store: store,
		view:  view,
		open:  make(map[string]bool),
	}
}

// Store returns the controller's store.
func (c *Controller) Store() *Store { return c.store }

// IsOpen reports whether the named widget's option list is shown.
func (c *Controller) IsOpen(name string) bool { return c.open[name] }

// Click handles a click on the widget body outside any option: a closed
// widget opens and an open one closes. Any invalid marker and error text on
// the widget are cleared.
func (c *Controller) Click(name string) error {
	if _, err := c.store.Spec(name); err != nil {
		return err
	}
	if err := c.view.SetInvalid(name, false); err != nil {
		return err
	}
	return c.setOpen(name, !c.open[name])
}

// Blur handles loss of focus: the widget closes.
func (c *Controller) Blur(name string) error {
	if _, err := c.store.Spec(name); err != nil {
		return err
	}
	return c.setOpen(name, false)
}

// Pick handles a click on one of the widget's options.
func (c *Controller) Pick(name, value string) error {
	sp, err := c.store.Spec(name)
	if err != nil {
		return err
	}
	switch sp.Kind {
	case SingleSelect:
		err = c.pickSingle(sp, value)
	case MultiSelect:
		err = c.pickMulti(sp, value)
	case ToggleGroup:
		err = c.pickToggle(sp, value)
	default:
		err = fmt.Errorf("%w: %s", ErrWrongKind, sp.Kind)
	}
	if err != nil {
		return err
	}
	return c.setOpen(name, false)
}

func (c *Controller) pickSingle(sp Spec, value string) error {
	prev, err := c.store.Get(sp.Name)
	if err != nil {
		return err
	}
	on, err := c.store.Toggle(sp.Name, value)
	if err != nil {
		return err
	}
	for _, old := range prev.Selected {
		if old != value {
			if err := c.view.SetOptionSelected(sp.Name, old, false); err != nil {
				return err
			}
		}
	}
	if err := c.view.SetOptionSelected(sp.Name, value, on); err != nil {
		return err
	}
	label := sp.Placeholder
	if on {
		label = sp.Label(value)
	}
	if err := c.view.SetLabel(sp.Name, label); err != nil {
		return err
	}
	return c.syncMirror(sp.Name)
}

func (c *Controller) pickMulti(sp Spec, value string) error {
	on, err := c.store.Toggle(sp.Name, value)
	if err != nil {
		return err
	}
	if err := c.view.SetOptionSelected(sp.Name, value, on); err != nil {
		return err
	}
	if on {
		err = c.view.AddChip(sp.Name, value, sp.Label(value))
	} else {
		err = c.view.RemoveChip(sp.Name, value)
	}
	if err != nil {
		return err
	}
	return c.syncMirror(sp.Name)
}

func (c *Controller) pickToggle(sp Spec, value string) error {
	on, err := c.store.Toggle(sp.Name, value)
	if err != nil {
		return err
	}
	if err := c.view.SetChecked(sp.Name, value, on); err != nil {
		return err
	}
	if err := c.syncHeader(sp.Name); err != nil {
		return err
	}
	return c.syncMirror(sp.Name)
}

// ToggleAll handles a click on a toggle group's header. When every member
// is selected all are cleared, otherwise all are selected.
func (c *Controller) ToggleAll(name string) error {
	sp, err := c.store.Spec(name)
	if err != nil {
		return err
	}
	if sp.Kind != ToggleGroup {
		return fmt.Errorf("%w: select all on %s %q", ErrWrongKind, sp.Kind, name)
	}
	target := !c.store.AllSelected(name)
	if err := c.store.SetAll(name, target); err != nil {
		return err
	}
	for _, o := range sp.Options {
		if err := c.view.SetChecked(name, o.Value, target); err != nil {
			return err
		}
	}
	if err := c.view.SetInvalid(name, false); err != nil {
		return err
	}
	if err := c.syncHeader(name); err != nil {
		return err
	}
	return c.syncMirror(name)
}

// Render redraws the named widget entirely from the store.
func (c *Controller) Render(name string) error {
	sp, err := c.store.Spec(name)
	if err != nil {
		return err
	}
	st, err := c.store.Get(name)
	if err != nil {
		return err
	}

	switch sp.Kind {
	case SingleSelect:
		for _, o := range sp.Options {
			if err := c.view.SetOptionSelected(name, o.Value, st.Has(o.Value)); err != nil {
				return err
			}
		}
		label := sp.Placeholder
		if len(st.Selected) > 0 {
			label = sp.Label(st.Selected[0])
		}
		if err := c.view.SetLabel(name, label); err != nil {
			return err
		}
	case MultiSelect:
		for _, o := range sp.Options {
			on := st.Has(o.Value)
			if err := c.view.SetOptionSelected(name, o.Value, on); err != nil {
				return err
			}
			if err := c.view.RemoveChip(name, o.Value); err != nil && !errors.Is(err, ErrNotFound) {
				return err
			}
			if on {
				if err := c.view.AddChip(name, o.Value, o.Label); err != nil {
					return err
				}
			}
		}
	case ToggleGroup:
		for _, o := range sp.Options {
			if err := c.view.SetChecked(name, o.Value, st.Has(o.Value)); err != nil {
				return err
			}
		}
		if err := c.syncHeader(name); err != nil {
			return err
		}
	}
	if err := c.view.SetOpen(name, c.open[name]); err != nil {
		return err
	}
	return c.view.SetMirror(name, st.Mirror)
}

// RenderAll redraws every widget in page order.
func (c *Controller) RenderAll() error {
	for _, name := range c.store.Names() {
		if err := c.Render(name); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks every required widget. Each empty one is marked invalid
// and gets a single diagnostic; the sidebar switches to the section of the
// first failure. A nil result means the page may be saved.
func (c *Controller) Validate() ValidationErrors {
	c.view.ClearErrors()

	var errs ValidationErrors
	for _, name := range c.store.Names() {
		sp, _ := c.store.Spec(name)
		st, _ := c.store.Get(name)
		if !sp.Required || st.Mirror != "" {
			_ = c.view.SetInvalid(name, false)
			continue
		}
		errs = append(errs, &ValidationError{Widget: name, Section: sp.Section, Message: EmptyMessage})
		// Lookups below fail only when the page lacks the widget; the
		// validation result stands regardless.
		_ = c.view.SetInvalid(name, true)
		_ = c.view.InsertError(name, EmptyMessage)
	}
	if len(errs) > 0 && errs[0].Section != "" {
		_ = c.view.SelectSection(errs[0].Section)
	}
	return errs
}

func (c *Controller) setOpen(name string, open bool) error {
	if open {
		c.open[name] = true
	} else {
		delete(c.open, name)
	}
	return c.view.SetOpen(name, open)
}

func (c *Controller) syncHeader(name string) error {
	label := SelectAllLabel
	if c.store.AllSelected(name) {
		label = DeselectAllLabel
	}
	return c.view.SetHeaderLabel(name, label)
}

func (c *Controller) syncMirror(name string) error {
	st, err := c.store.Get(name)
	if err != nil {
		return err
	}
	return c.view.SetMirror(name, st.Mirror)
}
