package pages

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// FieldKind tells an input surface which control to offer for a field.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldNumber
	FieldEnum
	FieldBool
)

// Field describes one input of a creation form together with its declarative
// constraints. Constraints are checked by the input surface before submitting;
// the view-models never validate.
type Field struct {
	Name     string
	Label    string
	Kind     FieldKind
	Options  []string
	Required bool
	Min, Max *float64
}

// Form is the creation form of a page.
type Form interface {
	FormFields() []Field
	// DraftValue renders the current draft value of a field as input text.
	DraftValue(name string) string
	UpdateField(name, value string) error
}

// ErrConstraint is returned by CheckForm when an input violates its field's constraints.
var ErrConstraint = errors.New("constraint violated")

// CheckForm applies the declarative constraints of every field to the draft of f.
func CheckForm(f Form) error {
	var errs []error
	for _, field := range f.FormFields() {
		if err := field.Check(f.DraftValue(field.Name)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Check reports whether value satisfies the field's constraints.
func (f Field) Check(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		if f.Required {
			return fmt.Errorf("%s: %w: required", f.Label, ErrConstraint)
		}
		return nil
	}

	switch f.Kind {
	case FieldEnum:
		if !slices.Contains(f.Options, value) {
			return fmt.Errorf("%s: %w: must be one of %s", f.Label, ErrConstraint, strings.Join(f.Options, ", "))
		}
		return nil
	case FieldNumber:
	default:
		return nil
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%s: %w: not a number", f.Label, ErrConstraint)
	}
	if f.Min != nil && n < *f.Min {
		return fmt.Errorf("%s: %w: must be at least %s", f.Label, ErrConstraint, formatNumber(*f.Min))
	}
	if f.Max != nil && n > *f.Max {
		return fmt.Errorf("%s: %w: must be at most %s", f.Label, ErrConstraint, formatNumber(*f.Max))
	}
	return nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatOptionalNumber(f *float64) string {
	if f == nil {
		return ""
	}
	return formatNumber(*f)
}

func enumOptions[E ~string](values []E) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}
