// Package apperr defines the error taxonomy shared by stores and handlers.
//
// Stores wrap one of the sentinels with fmt.Errorf("...: %w", ErrX) when they
// detect a specific condition; anything else that escapes a store is an
// internal failure. Handlers call Status to pick the HTTP code.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNoOpUpdate marks a recognized update that would change nothing.
	ErrNoOpUpdate = errors.New("no changes to apply")
	// ErrConflict marks a uniqueness violation.
	ErrConflict = errors.New("already exists")
	// ErrInvalidQuery marks a search the service refuses to run.
	ErrInvalidQuery = errors.New("invalid query")
)

// Validation returns an ErrValidation carrying msg as its text.
func Validation(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

// NotFound returns an ErrNotFound carrying msg as its text.
func NotFound(msg string) error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

// Error pairs a sentinel kind with a caller-facing message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Unwrap lets errors.Is match the sentinel.
func (e *Error) Unwrap() error { return e.Kind }

// New builds an *Error of the given kind.
func New(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Status maps err to an HTTP status code. Unknown errors are 500.
func Status(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNoOpUpdate), errors.Is(err, ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the text that is safe to show a caller. Internal failures
// get fallback so store details never leak.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	if Status(err) == http.StatusInternalServerError {
		return fallback
	}
	return err.Error()
}
