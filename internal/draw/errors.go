package draw

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes draw errors.
type ErrorCode string

const (
	// ErrCodeValidation indicates the entrant list or a result breaks a
	// draw invariant. The caller fixes the input and retries.
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeNotReady indicates an operation needs a completed draw.
	ErrCodeNotReady ErrorCode = "NOT_READY"
)

// Error is returned by the engine. No error leaves the engine in a
// partially updated state.
type Error struct {
	Code    ErrorCode
	Message string

	// Details carries machine-readable context (expected/got counts, the
	// offending entrant).
	Details map[string]string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsValidationError reports whether err is, or wraps, a validation error.
func IsValidationError(err error) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == ErrCodeValidation
	}
	return false
}

// IsNotReadyError reports whether err is, or wraps, a not-ready error.
func IsNotReadyError(err error) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == ErrCodeNotReady
	}
	return false
}

// NewCountError reports an entrant list of the wrong size.
func NewCountError(got int) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("expected %d entrants, got %d", EntrantCount, got),
		Details: map[string]string{
			"expected": fmt.Sprintf("%d", EntrantCount),
			"got":      fmt.Sprintf("%d", got),
		},
	}
}

// NewDuplicateError reports an entrant listed more than once.
func NewDuplicateError(e Entrant) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("entrant %q is listed more than once", e),
		Details: map[string]string{"entrant": string(e)},
	}
}

// NewNotReadyError reports a render or lookup before any draw exists.
func NewNotReadyError() *Error {
	return &Error{
		Code:    ErrCodeNotReady,
		Message: "no draw has been generated",
	}
}

func newInvariantError(format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf(format, args...),
	}
}
