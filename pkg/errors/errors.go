package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

// WithDetails returns a copy of e carrying an additional diagnostic
// payload (e.g. empty-domain reports, final telemetry counters).
func (e *Error) WithDetails(details interface{}) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrConflict           = New("CONFLICT", http.StatusConflict, "conflict")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")

	// ErrInputInfeasible reports that at least one CSP variable has an
	// empty domain after normalisation. Fatal: search is not attempted
	// (spec §7).
	ErrInputInfeasible = New("INPUT_INFEASIBLE", http.StatusUnprocessableEntity, "no feasible timetable exists for this input")

	// ErrBudgetExhausted reports that MAX_BACKTRACKS was hit across every
	// MAX_ATTEMPTS restart. It is a no-solution result, not an exceptional
	// condition (spec §7), hence the 200 status when surfaced over HTTP.
	ErrBudgetExhausted = New("BUDGET_EXHAUSTED", http.StatusOK, "search budget exhausted without finding a timetable")

	// ErrInternalInconsistency reports that the conflict index disagreed
	// with the assignment list. Must never happen in a correct
	// implementation (spec §7).
	ErrInternalInconsistency = New("INTERNAL_INCONSISTENCY", http.StatusInternalServerError, "conflict index disagreed with assignment list")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
