package service

import (
	"errors"
	"fmt"

	"tour-manager/internal/database"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrPersistence = errors.New("persistence error")
)

// Error carries a caller-facing message, its kind and the underlying cause.
type Error struct {
	Kind  error
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Cause.Error()
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func ValidationError(msg string) error {
	return &Error{Kind: ErrValidation, Msg: msg}
}

func NotFoundError(msg string) error {
	return &Error{Kind: ErrNotFound, Msg: msg}
}

func ConflictError(msg string, cause error) error {
	return &Error{Kind: ErrConflict, Msg: msg, Cause: cause}
}

func PersistenceError(op string, cause error) error {
	return &Error{Kind: ErrPersistence, Msg: "failed to " + op, Cause: cause}
}

// Message returns the text safe to show a caller: the message of a
// service Error without its cause.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return err.Error()
}

// storeError maps a record store failure onto the service error kinds.
// notFound is the message used when the record is missing.
func storeError(op, notFound string, err error) error {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return NotFoundError(notFound)
	case errors.Is(err, database.ErrConflict):
		return ConflictError(fmt.Sprintf("cannot %s", op), err)
	default:
		return PersistenceError(op, err)
	}
}
