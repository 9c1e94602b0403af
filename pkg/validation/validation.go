// Package validation carries field-scoped input errors from the domain packages
// to whichever surface renders them next to the offending field.
package validation

import (
	"errors"
	"strings"
)

// FieldError is a rule violation tied to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Errors collects every violation found in one pass over a form.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}

// Add records a violation for field.
func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Err returns nil when nothing was recorded so callers can `return errs.Err()`.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// IsValidation reports whether err (or anything it wraps) is an input error.
func IsValidation(err error) bool {
	var list Errors
	if errors.As(err, &list) {
		return true
	}
	var single FieldError
	return errors.As(err, &single)
}

// Fields flattens err into its field errors; non-validation errors yield nil.
func Fields(err error) []FieldError {
	var list Errors
	if errors.As(err, &list) {
		return list
	}
	var single FieldError
	if errors.As(err, &single) {
		return []FieldError{single}
	}
	return nil
}
