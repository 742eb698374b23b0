// Package validation holds the field-level error shared by domain services.
package validation

import "fmt"

// Error reports a rejected input field. It unwraps to the owning package's
// invalid-input sentinel so callers can match with errors.Is.
type Error struct {
	Field   string
	Message string
	Kind    error
}

// New returns a field error of the given kind.
func New(kind error, field, message string) *Error {
	return &Error{Field: field, Message: message, Kind: kind}
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Kind
}
