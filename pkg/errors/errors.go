// Package errors provides structured error types for qrsmith.
//
// Every failure the engine can surface falls into one of three categories:
//   - CONFIG_INVALID: malformed or out-of-range style configuration
//   - ENCODING_FAILED: the payload cannot be encoded at the requested level
//   - RENDER_FAILED: an internal invariant was violated while building geometry
//
// Config errors are fixed by the caller changing its input. Encoding errors
// come from the upstream encoder and are propagated with their cause intact.
// Render errors are defects; callers log them and report a generic failure.
// None of them are retried: the engine is deterministic, so the same input
// produces the same error.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfig, "width must be positive, got %v", w)
//	if errors.Is(err, errors.ErrCodeConfig) {
//	    // Tell the user to fix the style
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeEncoding, origErr, "encode %d bytes at level %s", n, level)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Caller-fixable input errors
	ErrCodeConfig      Code = "CONFIG_INVALID"
	ErrCodeInvalidPath Code = "INVALID_PATH"

	// Upstream encoder errors
	ErrCodeEncoding Code = "ENCODING_FAILED"

	// Engine defects
	ErrCodeRender Code = "RENDER_FAILED"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// Config is shorthand for New(ErrCodeConfig, ...).
func Config(format string, args ...any) *Error {
	return New(ErrCodeConfig, format, args...)
}

// Render is shorthand for New(ErrCodeRender, ...).
func Render(format string, args ...any) *Error {
	return New(ErrCodeRender, format, args...)
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
// Config and encoding errors carry an actionable message. Render errors are
// defects and collapse to a generic message so a half-built document is never
// described as usable.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Code == ErrCodeRender || e.Code == ErrCodeInternal {
			return "failed to generate QR code"
		}
		return e.Message
	}
	return err.Error()
}
