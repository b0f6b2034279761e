package tui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/autopeer-io/fleetconsole/internal/console/pages"
)

// form edits the draft of a page. Every keystroke is pushed to the view-model
// right away; the text typed so far is kept here so half-typed numbers survive.
type form struct {
	target pages.Form
	fields []pages.Field
	inputs []string
	focus  int
	err    string
}

func newForm(target pages.Form) *form {
	f := &form{target: target, fields: target.FormFields()}
	for _, field := range f.fields {
		f.inputs = append(f.inputs, target.DraftValue(field.Name))
	}
	return f
}

// handleKey applies one key. closed reports that the user dismissed the form.
func (f *form) handleKey(msg tea.KeyMsg, submit func() tea.Cmd) (cmd tea.Cmd, closed bool) {
	field := f.fields[f.focus]

	switch msg.String() {
	case "esc":
		return nil, true
	case "tab", "down":
		f.focus = (f.focus + 1) % len(f.fields)
		return nil, false
	case "shift+tab", "up":
		f.focus = (f.focus + len(f.fields) - 1) % len(f.fields)
		return nil, false
	case "enter":
		if err := f.check(); err != nil {
			f.err = err.Error()
			return nil, false
		}
		f.err = ""
		return submit(), false
	}

	switch field.Kind {
	case pages.FieldEnum:
		switch msg.String() {
		case "left", "right", " ":
			f.cycle(field, msg.String() == "left")
		}
	case pages.FieldBool:
		switch msg.String() {
		case "left", "right", " ":
			b, _ := strconv.ParseBool(f.inputs[f.focus])
			f.set(strconv.FormatBool(!b))
		}
	default:
		switch msg.Type {
		case tea.KeyBackspace:
			if r := []rune(f.inputs[f.focus]); len(r) > 0 {
				f.set(string(r[:len(r)-1]))
			}
		case tea.KeySpace:
			f.set(f.inputs[f.focus] + " ")
		case tea.KeyRunes:
			f.set(f.inputs[f.focus] + string(msg.Runes))
		}
	}
	return nil, false
}

func (f *form) cycle(field pages.Field, back bool) {
	if len(field.Options) == 0 {
		return
	}
	i := slices.Index(field.Options, f.inputs[f.focus])
	if back {
		i = (i - 1 + len(field.Options)) % len(field.Options)
	} else {
		i = (i + 1) % len(field.Options)
	}
	f.set(field.Options[i])
}

func (f *form) set(value string) {
	f.inputs[f.focus] = value
	if err := f.target.UpdateField(f.fields[f.focus].Name, value); err != nil {
		f.err = err.Error()
		return
	}
	f.err = ""
}

func (f *form) check() error {
	var errs []error
	for i, field := range f.fields {
		if err := field.Check(f.inputs[i]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *form) view(saving bool) string {
	var b strings.Builder
	b.WriteString("New\n")
	for i, field := range f.fields {
		cursor := " "
		if i == f.focus {
			cursor = ">"
		}
		value := f.inputs[i]
		switch field.Kind {
		case pages.FieldEnum:
			value = "< " + value + " >"
		case pages.FieldBool:
			if value == "true" {
				value = "[x]"
			} else {
				value = "[ ]"
			}
		}
		req := ""
		if field.Required {
			req = "*"
		}
		fmt.Fprintf(&b, "%s %-24s %s\n", cursor, field.Label+req, value)
	}
	if saving {
		b.WriteString("Saving…\n")
	}
	if f.err != "" {
		b.WriteString(f.err + "\n")
	}
	return b.String()
}
