// Package errors provides structured error types for moneyflow.
//
// Errors carry a machine-readable [Code] so the CLI and the HTTP API can
// report the same failure consistently:
//   - INVALID_*: input validation failures (HTTP 400)
//   - *_NOT_FOUND: missing files or cache entries
//   - INTERNAL_*: unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", f)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // Handle validation error
//	}
//
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "read %s", path)
//
// The layout core never returns these: malformed input there is dropped or
// defaulted to zero rather than reported.
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
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle     Code = "INVALID_STYLE"
	ErrCodeInvalidVizType   Code = "INVALID_VIZ_TYPE"
	ErrCodeInvalidDimension Code = "INVALID_DIMENSION"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidPath      Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Backend errors
	ErrCodeCache   Code = "CACHE_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

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

// Is reports whether err has the given error code.
// Only the outermost *Error in the chain is consulted.
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

// IsValidation reports whether err carries one of the INVALID_* codes.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidStyle,
		ErrCodeInvalidVizType, ErrCodeInvalidDimension, ErrCodeInvalidConfig,
		ErrCodeInvalidPath:
		return true
	}
	return false
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
