package domain

import (
	"errors"
	"sort"
	"strings"
)

// Sentinel errors shared across services and repositories.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrVendorNotFound     = errors.New("vendor not found")
	ErrEmailTaken         = errors.New("email already taken")
	ErrVendorNameTaken    = errors.New("vendor name already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("access forbidden")
)

// ValidationError carries per-field messages for a rejected submission.
// A request that produces one performs no mutation.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns an empty ValidationError ready for Add calls.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records the first message for a field; later messages for the same
// field are ignored so the earliest (most specific) check wins.
func (e *ValidationError) Add(field, message string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = message
	}
}

// Any reports whether at least one field failed.
func (e *ValidationError) Any() bool {
	return len(e.Fields) > 0
}

// Error renders the field messages in a stable order.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidation unwraps err into a *ValidationError, or nil when err is not one.
func AsValidation(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
