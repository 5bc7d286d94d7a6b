package core

import "github.com/pkg/errors"

// FieldError reports a validation failure on one named field; Field holds
// the field's JSON name as rendered in API responses.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries a request-level message, per-field errors or
// both. The API error handler renders it as a 400 with a field map.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, fields ...FieldError) error {
	return &ValidationError{Err: err, Fields: fields}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown signals an unrecoverable condition; the API error handler
// reacts to it by triggering a graceful server stop.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

// IsShutdown checks the cause chain for a shutdown error.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
