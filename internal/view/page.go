// Package view is the render target of the settings page: a plain model of
// every element the templates draw, mutated only through widget.Renderer.
package view

import (
	"fmt"
	"slices"

	"github.com/joestump/surfx/internal/widget"
)

// AllSections is the sidebar entry that shows every section.
const AllSections = "all"

// Option is a rendered option of a select or a switch of a toggle group.
type Option struct {
	ID       string
	Value    string
	Label    string
	Selected bool
}

// Chip is a removable tag of a multi-select.
type Chip struct {
	Value string
	Label string
}

// Widget is the rendered state of one widget.
type Widget struct {
	Name        string
	Kind        widget.Kind
	Section     string
	Required    bool
	Placeholder string
	Label       string
	Header      string
	Mirror      string
	Open        bool
	Invalid     bool
	Error       string
	Options     []*Option
	Chips       []Chip
}

// IsSingle, IsMulti and IsToggle let templates branch on the widget kind.
func (w *Widget) IsSingle() bool { return w.Kind == widget.SingleSelect }
func (w *Widget) IsMulti() bool  { return w.Kind == widget.MultiSelect }
func (w *Widget) IsToggle() bool { return w.Kind == widget.ToggleGroup }

func (w *Widget) option(value string) (*Option, error) {
	for _, o := range w.Options {
		if o.Value == value {
			return o, nil
		}
	}
	return nil, &widget.LookupError{What: "option", Name: w.Name + "/" + value}
}

// Section is a sidebar category and the settings it groups.
type Section struct {
	ID      string
	Title   string
	Active  bool
	Visible bool
	Widgets []*Widget
}

// Page is the settings page model. It implements widget.Renderer.
type Page struct {
	Sections   []*Section
	Active     string
	CookieText string
	Notice     *Notice

	widgets map[string]*Widget
	order   []*Widget
}

var _ widget.Renderer = (*Page)(nil)

// SectionSpec names a sidebar section.
type SectionSpec struct {
	ID    string
	Title string
}

// NewPage lays out one element per widget spec under its section. Widgets
// whose section is not listed are appended to the last section.
func NewPage(sections []SectionSpec, specs []widget.Spec) (*Page, error) {
	p := &Page{
		widgets: make(map[string]*Widget, len(specs)),
		Notice:  &Notice{},
		Active:  AllSections,
	}
	byID := make(map[string]*Section, len(sections))
	for _, s := range sections {
		sec := &Section{ID: s.ID, Title: s.Title, Visible: true}
		p.Sections = append(p.Sections, sec)
		byID[s.ID] = sec
	}
	if len(p.Sections) == 0 {
		return nil, fmt.Errorf("view: page needs at least one section")
	}

	for i, sp := range specs {
		w := &Widget{
			Name:        sp.Name,
			Kind:        sp.Kind,
			Section:     sp.Section,
			Required:    sp.Required,
			Placeholder: sp.Placeholder,
			Label:       sp.Placeholder,
			Header:      widget.SelectAllLabel,
		}
		for j, o := range sp.Options {
			w.Options = append(w.Options, &Option{
				ID:    fmt.Sprintf("option-%d-%d", i, j),
				Value: o.Value,
				Label: o.Label,
			})
		}
		sec, ok := byID[sp.Section]
		if !ok {
			sec = p.Sections[len(p.Sections)-1]
		}
		sec.Widgets = append(sec.Widgets, w)
		p.widgets[sp.Name] = w
		p.order = append(p.order, w)
	}
	return p, nil
}

// Widget returns the rendered element of the named widget.
func (p *Page) Widget(name string) (*Widget, error) {
	w, ok := p.widgets[name]
	if !ok {
		return nil, &widget.LookupError{What: "widget", Name: name}
	}
	return w, nil
}

// Widgets returns every widget element in page order.
func (p *Page) Widgets() []*Widget { return slices.Clone(p.order) }

// Errors returns the widgets currently carrying an inline error.
func (p *Page) Errors() []*Widget {
	var out []*Widget
	for _, w := range p.order {
		if w.Error != "" {
			out = append(out, w)
		}
	}
	return out
}

func (p *Page) SetLabel(name, text string) error {
	w, err := p.Widget(name)
	if err != nil {
		return err
	}
	w.Label = text
	return nil
}

func (p *Page) SetOptionSelected(name, value string, selected bool) error {
	w, err := p.Widget(name)
	if err != nil {
		return err
	}
	o, err := w.option(value)
	if err != nil {
		return err
	}
	o.Selected = selected
	return nil
}

func (p *Page) AddChip(name, value, label string) error {
	w, err := p.Widget(name)
	if err != nil {
		return err
	}
	if _, err := w.option(value); err != nil {
		return err
	}
	for _, c := range w.Chips {
		if c.Value == value {
			return nil
		}
	}
	w.Chips = append(w.Chips, Chip{Value: value, Label: label})
	return nil
}

func (p *Page) RemoveChip(name, value string) error {
	w, err := p.Widget(name)
	if err != nil {
		return err
	}
	i := slices.IndexFunc(w.Chips, func(c Chip) bool { return c.Value == value })
	if i < 0 {
		return &widget.LookupError{What: "chip", Name: name + "/" + value}
	}
	w.Chips = slices.Delete(w.Chips, i, i+1)
	return nil
}

func (p *Page) SetChecked(name, value string, checked bool) error {
	return p.SetOptionSelected(name, value, checked)
}

func (p *Page) SetHeaderLabel(name, text string) error {
	w, err := p.Widget(name)
	if err != nil {
		return err
	}
	w.Header = text
	return nil
}

func (p *Page) SetMirror(name, value string) error {
	w, err := p.Widget(name)
	if err != nil {
		return err
	}
	w.Mirror = value
	return nil
}

func (p *Page) SetOpen(name string, open bool) error {
	w, err := p.Widget(name)
	if err != nil {
		return err
	}
	w.Open = open
	return nil
}

// SetInvalid toggles the invalid marker. Clearing it also drops the
// widget's error text.
func (p *Page) SetInvalid(name string, invalid bool) error {
	w, err := p.Widget(name)
	if err != nil {
		return err
	}
	w.Invalid = invalid
	if !invalid {
		w.Error = ""
	}
	return nil
}

// InsertError attaches message above the widget, replacing any previous one.
func (p *Page) InsertError(name, message string) error {
	w, err := p.Widget(name)
	if err != nil {
		return err
	}
	w.Error = message
	return nil
}

func (p *Page) ClearErrors() {
	for _, w := range p.order {
		w.Error = ""
	}
}

// SelectSection marks the sidebar entry id active and shows only its
// settings; AllSections shows everything.
func (p *Page) SelectSection(id string) error {
	if id != AllSections && !slices.ContainsFunc(p.Sections, func(s *Section) bool { return s.ID == id }) {
		return &widget.LookupError{What: "section", Name: id}
	}
	p.Active = id
	for _, s := range p.Sections {
		s.Active = s.ID == id
		s.Visible = id == AllSections || s.ID == id
	}
	return nil
}
