package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidCloneConfiguration is returned synchronously when a clone cannot be created
// from the supplied durations, budget or pack. It is a validation error.
var ErrInvalidCloneConfiguration = fmt.Errorf("%w: invalid clone configuration", ErrValidation)

// ErrGeneration indicates the journal text generator was unreachable or returned
// content that could not be parsed.
var ErrGeneration = errors.New("journal generation failed")

// ErrDuplicateEntry signals that a journal entry was rejected by the duplicate guard.
var ErrDuplicateEntry = errors.New("duplicate journal entry rejected")

// ErrPersistence indicates a store write failed and may be retried.
var ErrPersistence = errors.New("persistence failure")

// ErrTerminal indicates the clone is finished or dismissed and accepts no further writes.
var ErrTerminal = errors.New("clone is in a terminal state")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError. err may be nil.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
