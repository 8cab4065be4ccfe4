package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map each kind to a single HTTP status.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrStore        = errors.New("store failure")
)

// ErrCorruptRecord marks a persisted record that failed to parse.
var ErrCorruptRecord = fmt.Errorf("%w: corrupt record", ErrStore)

// Error carries a kind and a message that is safe to show to clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func Validation(msg string) *Error {
	return &Error{Kind: ErrValidation, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: ErrUnauthorized, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: ErrNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: ErrConflict, Message: msg}
}

// StoreError wraps a backend failure for op on key.
func StoreError(op, key string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", ErrStore, op, key, err)
}

// Message returns the client-facing message carried by err, or fallback
// when err is not a *Error.
func Message(err error, fallback string) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return fallback
}
