package logic

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a service matches exactly one of these
// with errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNoData        = errors.New("no data")
	ErrInvalidSeason = errors.New("invalid season")
	ErrUnknownField  = errors.New("unknown field")
	ErrStorage       = errors.New("storage error")
)

// Error carries a kind, the message shown to the caller and an optional cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// storageError wraps a persistence failure. The driver message is forwarded
// as-is; errors that already carry a kind pass through untouched.
func storageError(err error) error {
	if err == nil {
		return nil
	}
	var le *Error
	if errors.As(err, &le) {
		return err
	}
	return &Error{Kind: ErrStorage, Message: err.Error(), Err: err}
}

// Message returns the caller-facing message of err.
func Message(err error) string {
	var le *Error
	if errors.As(err, &le) {
		return le.Message
	}
	return err.Error()
}
