// Package errors provides structured error types for the Flowgrid application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - INFEASIBLE_*: Layout search precondition failures (recoverable via fallback)
//   - UNDEFINED_*/UNSUPPORTED_*: Element defects that must surface distinctly
//   - NOT_FOUND/INTERNAL_ERROR: Resource and internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFrame, "frame width must be positive, got %v", w)
//	if errors.Is(err, errors.ErrCodeInvalidFrame) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidManifest, origErr, "failed to load %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidFrame    Code = "INVALID_FRAME"
	ErrCodeInvalidSpacing  Code = "INVALID_SPACING"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidSource   Code = "INVALID_SOURCE"

	// Height search precondition failures. Both are recoverable: the
	// caller substitutes a fixed fallback height and still produces a
	// (degraded) layout.
	ErrCodeInfeasibleFloor Code = "INFEASIBLE_LOWER_BOUND"
	ErrCodeInfeasibleCeil  Code = "INFEASIBLE_UPPER_BOUND"

	// Element defects. Not recoverable by guessing; surfaced distinctly
	// so the caller can decide instead of masking a bad element.
	ErrCodeUndefinedAspect  Code = "UNDEFINED_ASPECT_RATIO"
	ErrCodeUnsupportedMedia Code = "UNSUPPORTED_MEDIA"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsInfeasible reports whether err is one of the two search precondition
// failures. These are the only errors the layout pipeline recovers from
// via the fallback height.
func IsInfeasible(err error) bool {
	return Is(err, ErrCodeInfeasibleFloor) || Is(err, ErrCodeInfeasibleCeil)
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
