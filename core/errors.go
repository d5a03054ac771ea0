package core

import "github.com/pkg/errors"

// FieldError pins a validation failure to a single input field.
type FieldError struct {
	Field string
	Error string
}

// ValidationError groups the field errors of a rejected input. API handlers
// translate it to a 400 response carrying the per-field messages.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown signals an unrecoverable integrity problem. The web server treats
// it as fatal and stops instead of serving further requests.
type shutdown struct {
	message string
}

// NewShutdownError returns an error that IsShutdown reports true for.
func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string { return s.message }

// IsShutdown checks whether err (or its cause) was built with NewShutdownError.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
