package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// PersistenceError wraps a failure reported by the record store.
// The store reports failures through `Success: false` + a human-readable
// message rather than transport errors; both forms end up here.
type PersistenceError struct {
	Collection string
	Message    string
	Err        error // underlying transport error, if any
}

func NewPersistenceError(collection, message string, err ...error) error {
	pErr := &PersistenceError{Collection: collection, Message: message}
	if len(err) > 0 {
		pErr.Err = err[0]
	}
	return pErr
}

func (err PersistenceError) Error() string {
	if err.Message != "" {
		return err.Message
	}
	if err.Err != nil {
		return err.Err.Error()
	}
	return "record store operation failed"
}

func (err PersistenceError) Unwrap() error { return err.Err }

// ErrZeroMaxScore is returned when a grade carries a max score of zero,
// which makes its percentage undefined.
var ErrZeroMaxScore = errors.New("grade max score is zero")

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
