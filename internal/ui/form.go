package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/fitlife/internal/format"
	"github.com/verte-zerg/fitlife/internal/submit"
	"github.com/verte-zerg/fitlife/internal/validate"
)

type formField struct {
	name     string
	label    string
	required bool
	bounds   *validate.NumberInput
	input    textinput.Model
}

// form is a column of text inputs with one submit button. Numeric fields
// are clamped when they lose focus or the form is submitted.
type form struct {
	title   string
	fields  []formField
	focus   int
	invalid map[string]bool
	button  *submit.Button
}

func newField(name, label, placeholder string, required bool, bounds *validate.NumberInput) formField {
	input := textinput.New()
	input.Prompt = label + ": "
	input.Placeholder = placeholder
	input.CharLimit = 16
	input.Cursor.SetMode(cursor.CursorBlink)
	return formField{
		name:     name,
		label:    label,
		required: required,
		bounds:   bounds,
		input:    input,
	}
}

func newForm(title string, button *submit.Button, fields ...formField) *form {
	return &form{
		title:   title,
		fields:  fields,
		invalid: map[string]bool{},
		button:  button,
	}
}

// ReadField implements display.Reader.
func (f *form) ReadField(name string) (string, bool) {
	for _, field := range f.fields {
		if field.name == name {
			return field.input.Value(), true
		}
	}
	return "", false
}

func (f *form) setValue(name, value string) {
	for i := range f.fields {
		if f.fields[i].name == name {
			f.fields[i].input.SetValue(value)
			return
		}
	}
}

func (f *form) number(name string) (float64, bool) {
	raw, ok := f.ReadField(name)
	if !ok {
		return 0, false
	}
	return validate.ParseNumber(raw)
}

func (f *form) commit(i int) {
	if i < 0 || i >= len(f.fields) || f.fields[i].bounds == nil {
		return
	}
	value := f.fields[i].input.Value()
	clamped := f.fields[i].bounds.OnChange(value)
	if clamped != value {
		f.fields[i].input.SetValue(clamped)
	}
}

func (f *form) commitAll() {
	for i := range f.fields {
		f.commit(i)
	}
}

func (f *form) setFocus(idx int) tea.Cmd {
	count := len(f.fields)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	f.commit(f.focus)
	f.focus = idx
	var cmd tea.Cmd
	for i := range f.fields {
		if i == f.focus {
			cmd = f.fields[i].input.Focus()
		} else {
			f.fields[i].input.Blur()
		}
	}
	return cmd
}

func (f *form) blur() {
	f.commit(f.focus)
	for i := range f.fields {
		f.fields[i].input.Blur()
	}
}

func (f *form) update(msg tea.KeyMsg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

// validate marks empty required fields and reports whether the form may be
// submitted.
func (f *form) validate() bool {
	names := make([]string, 0, len(f.fields))
	for _, field := range f.fields {
		if field.required {
			names = append(names, field.name)
		}
	}
	return validate.ValidateRequiredFields(validate.RequiredFields(f, names...), func(name string, valid bool) {
		f.invalid[name] = !valid
	})
}

func (f *form) reset() {
	for i := range f.fields {
		f.fields[i].input.SetValue("")
	}
	f.invalid = map[string]bool{}
}

func (f *form) focusedLabel() string {
	if len(f.fields) == 0 {
		return f.title
	}
	return f.fields[f.focus].label
}

func (f *form) view(editing bool, spin spinner.Model) string {
	lines := []string{titleStyle.Render(f.title), ""}
	for i, field := range f.fields {
		line := field.input.View()
		if f.invalid[field.name] {
			line = invalidStyle.Render("! ") + line
		} else {
			line = "  " + line
		}
		if editing && i == f.focus {
			if tips := format.Tooltip(field.label); len(tips) > 0 {
				line += "  " + tooltipStyle.Render(strings.Join(tips, " · "))
			}
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", renderButton(f.button, spin))
	return strings.Join(lines, "\n")
}

func renderButton(b *submit.Button, spin spinner.Model) string {
	if b.Disabled() {
		return busyButtonStyle.Render(spin.View() + " " + b.Label())
	}
	return buttonStyle.Render(b.Label())
}
