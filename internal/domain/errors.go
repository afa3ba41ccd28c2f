package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo functions when the requested row does not
// exist. Services translate it into one of the specific kinds below.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned by repo functions when a write is rejected by a
// uniqueness constraint.
var ErrConflict = errors.New("conflict")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. a blank required field).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// Error kinds raised by the services. Handlers map them to HTTP statuses:
// the *NotFound kinds to 404, the rest to 409.
var (
	ErrClientNotFound          = errors.New("client not found")
	ErrClientAlreadyExists     = errors.New("client already exists")
	ErrTripNotFound            = errors.New("trip not found")
	ErrClientAlreadyRegistered = errors.New("client already registered")
	ErrTripFull                = errors.New("trip full")
	ErrRegistrationNotFound    = errors.New("registration not found")
)

// Error is a domain failure with a message meant for the API caller.
// Kind is one of the sentinels above, so errors.Is(err, ErrTripFull) works
// on any error chain that contains an *Error.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Errorf builds an *Error of the given kind with a formatted message.
func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Message returns the caller-facing message carried by err, or fallback if
// err has no *Error in its chain.
func Message(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return fallback
}
