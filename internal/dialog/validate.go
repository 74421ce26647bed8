package dialog

import (
	"errors"
	"strings"
	"time"
)

// Literal input formats the dialogs accept for dates.
const (
	DateLayout     = "02.01.2006"
	DateTimeLayout = "02.01.2006 15:04"
)

// ValidationError marks input that must be re-prompted on the same step.
type ValidationError struct {
	Field string
	Hint  string
}

func (e *ValidationError) Error() string {
	return "invalid value for " + e.Field + ": " + e.Hint
}

// IsValidation reports whether err is a recoverable input error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidateFunc parses raw input into the value stored in the draft.
// Returning a *ValidationError leaves the session and draft untouched.
type ValidateFunc func(raw string) (string, error)

// NonEmpty accepts any non-empty text verbatim.
func NonEmpty(field string) ValidateFunc {
	return func(raw string) (string, error) {
		if strings.TrimSpace(raw) == "" {
			return "", &ValidationError{Field: field, Hint: "empty input"}
		}
		return raw, nil
	}
}

// Date accepts DD.MM.YYYY and normalizes to RFC 3339 (midnight UTC).
func Date(field string) ValidateFunc {
	return func(raw string) (string, error) {
		t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
		if err != nil {
			return "", &ValidationError{Field: field, Hint: "want " + DateLayout}
		}
		return t.UTC().Format(time.RFC3339), nil
	}
}

// DateTime accepts DD.MM.YYYY HH:MM and normalizes to RFC 3339.
func DateTime(field string) ValidateFunc {
	return func(raw string) (string, error) {
		t, err := time.Parse(DateTimeLayout, strings.TrimSpace(raw))
		if err != nil {
			return "", &ValidationError{Field: field, Hint: "want " + DateTimeLayout}
		}
		return t.UTC().Format(time.RFC3339), nil
	}
}

// OneOf accepts only members of a fixed set, verbatim.
func OneOf(field string, allowed ...string) ValidateFunc {
	return func(raw string) (string, error) {
		for _, a := range allowed {
			if raw == a {
				return raw, nil
			}
		}
		return "", &ValidationError{Field: field, Hint: "not in the allowed set"}
	}
}
