package v1

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownField is returned by SetField for a name the form does not have.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidValue is returned by SetField when text cannot be coerced to the field type.
	ErrInvalidValue = errors.New("invalid value")
)

func unknownField(kind, name string) error {
	return fmt.Errorf("%s %q: %w", kind, name, ErrUnknownField)
}

// setNumber follows HTML number inputs: blank text is zero.
func setNumber(dst *float64, name, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		*dst = 0
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%s: %w: %q is not a number", name, ErrInvalidValue, value)
	}
	*dst = f
	return nil
}

func setOptionalNumber(dst **float64, name, value string) error {
	if strings.TrimSpace(value) == "" {
		*dst = nil
		return nil
	}
	var f float64
	if err := setNumber(&f, name, value); err != nil {
		return err
	}
	*dst = &f
	return nil
}

func setOptionalString(dst **string, value string) {
	if value == "" {
		*dst = nil
		return
	}
	*dst = &value
}

func setBool(dst *bool, name, value string) error {
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fmt.Errorf("%s: %w: %q is not a checkbox state", name, ErrInvalidValue, value)
	}
	*dst = b
	return nil
}

// setEnum stores the literal of allowed that value names. Any other value leaves
// dst unchanged.
func setEnum[E ~string](dst *E, name, value string, allowed []E) error {
	v := E(normalizeEnum(value))
	for _, a := range allowed {
		if a == v {
			*dst = v
			return nil
		}
	}
	return fmt.Errorf("%s: %w: %q is not one of %v", name, ErrInvalidValue, value, allowed)
}

// normalizeEnum maps user input such as "in-use" onto the wire literal "IN_USE".
func normalizeEnum(value string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(value), "-", "_"))
}
