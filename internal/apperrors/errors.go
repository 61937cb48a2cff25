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

// ErrInvalidTransition indicates a lifecycle transition from a terminal state
// or along an undefined edge.
var ErrInvalidTransition = errors.New("invalid lifecycle transition")

// ErrAlreadyTerminal indicates a reconciliation action on an item that is no
// longer unmatched.
var ErrAlreadyTerminal = errors.New("record already in a terminal reconciliation state")

// ErrInvalidExceptionType indicates an exception type outside the enumerated set.
var ErrInvalidExceptionType = errors.New("invalid exception type")

// ErrMissingDetail indicates an exception classification without a detail text.
var ErrMissingDetail = errors.New("exception detail is required")

// AppError wraps a lower-level error with an HTTP-ish status code and a message
// suitable for logging. Repositories use it so services don't leak driver errors.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
