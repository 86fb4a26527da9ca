// Package errors provides structured error types for archdeps.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the report modes and the CLI
//   - Machine-readable reason codes for degraded results
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Only [ErrCodeInvalidPath] stops a run. Every other code describes a
// degraded input (a missing record, an unparseable identifier) that is
// reported and then skipped, so the run still writes whatever was parsed.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnparseableIdentifier, "installed = %s", raw)
//	if errors.Is(err, errors.ErrCodeUnparseableIdentifier) {
//	    // Report and continue
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidArchive, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Fatal input errors
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Degraded input, reported and skipped
	ErrCodeInvalidArchive        Code = "INVALID_ARCHIVE"
	ErrCodeMissingRecord         Code = "MISSING_RECORD"
	ErrCodeUnparseableLine       Code = "UNPARSEABLE_LINE"
	ErrCodeUnparseableIdentifier Code = "UNPARSEABLE_IDENTIFIER"
	ErrCodeInvalidIdentifier     Code = "INVALID_IDENTIFIER"

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

// IsFatal reports whether err must stop a run. Only path errors qualify;
// everything else degrades the result for a single archive.
func IsFatal(err error) bool {
	return Is(err, ErrCodeInvalidPath) || Is(err, ErrCodeInvalidConfig)
}

// CountByCode tallies a list of issues by code. Errors without a code are
// counted under [ErrCodeInternal].
func CountByCode(errs []error) map[Code]int {
	counts := make(map[Code]int)
	for _, err := range errs {
		code := GetCode(err)
		if code == "" {
			code = ErrCodeInternal
		}
		counts[code]++
	}
	return counts
}
