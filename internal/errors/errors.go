// Package errors provides structured error types for the beam checker.
//
// Solver failures carry a machine-readable code so the CLI and the HTTP
// API can report the offending condition without parsing messages:
//
//	err := errors.New(errors.ErrCodeGeometry, "effective depth d=%.1f mm is not positive", d)
//	if errors.Is(err, errors.ErrCodeGeometry) {
//	    // report under "geometry"
//	}
//
// A failing code check (NG) is never an error; it is a normal result.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation failures, rejected before any solving
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Geometry that cannot host a section (d <= 0, cover too large)
	ErrCodeGeometry Code = "GEOMETRY_INFEASIBLE"

	// Bars that do not fit even after layering
	ErrCodeLayout Code = "LAYOUT_INFEASIBLE"

	// No flexural assumption case is self-consistent
	ErrCodeNoEquilibrium Code = "NO_EQUILIBRIUM"

	// Unexpected internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// coder is implemented by error types that are not *Error but still
// belong to a category.
type coder interface {
	Code() Code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// Is reports whether err has the given error code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}
