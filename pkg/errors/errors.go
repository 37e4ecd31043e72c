// Package errors provides structured error types for teeplot.
//
// Every failure the library raises itself carries a machine-readable [Code]
// so that callers can tell an invalid call apart from a filename collision or
// a broken renderer without matching on message text:
//
//   - INVALID_ARGUMENT: unsupported formats, bad policies, malformed snippets
//   - INVALID_TYPE: a call option or reserved kwarg of the wrong type
//   - COLLISION: a repeated output path under the "error" collision policy
//   - SIGNATURE: a post-process callable with no supported signature
//   - CONFIG: invalid configuration at construction time
//   - RENDER, IO: figure rendering and filesystem failures
//
// Errors returned by user plotters are never wrapped.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidArgument, "unsupported format %q", f)
//	if errors.Is(err, errors.ErrCodeInvalidArgument) {
//	    // Handle validation error
//	}
//
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "create %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Call validation errors
	ErrCodeInvalidArgument Code = "INVALID_ARGUMENT"
	ErrCodeInvalidType     Code = "INVALID_TYPE"
	ErrCodeInvalidAttr     Code = "INVALID_ATTR"

	// Save-time errors
	ErrCodeCollision Code = "COLLISION"
	ErrCodeSignature Code = "SIGNATURE"
	ErrCodeRender    Code = "RENDER"
	ErrCodeIO        Code = "IO"

	// Startup errors
	ErrCodeConfig Code = "CONFIG"

	// Environment errors
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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// TypeError reports a value whose dynamic type is not accepted for name.
// The message names both the value and its type.
func TypeError(name, want string, got any) *Error {
	return New(ErrCodeInvalidType, "%s must be %s, not %T %v", name, want, got, got)
}
