package validation

import (
	"errors"
	"fmt"
)

// Error reports input rejected before any computation ran. Field names
// the offending input field, Reason says what was wrong with it.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// New creates a validation error for a single field
func New(field, reason string) *Error {
	return &Error{Field: field, Reason: reason}
}

// Newf creates a validation error with a formatted reason
func Newf(field, format string, args ...interface{}) *Error {
	return &Error{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Is reports whether err is, or wraps, a validation error.
func Is(err error) bool {
	var verr *Error
	return errors.As(err, &verr)
}
