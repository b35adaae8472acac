// Package errors provides structured error types for sysgraph.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the lifecycle manager, components and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - NOT_FOUND: Lookup misses that the caller asked to treat as errors
//   - LOAD_FAILED, DEPENDENCY_CYCLE, TYPE_MISMATCH: system construction failures
//   - UNAVAILABLE: an external resource could not be acquired
//   - TEARDOWN_FAILED, INTERNAL_ERROR: shutdown and unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidKey, "system key cannot be empty")
//	if errors.Is(err, errors.ErrCodeInvalidKey) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeLoadFailed, origErr, "load %s", key)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidKey    Code = "INVALID_KEY"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Lookup errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Construction errors
	ErrCodeLoadFailed   Code = "LOAD_FAILED"
	ErrCodeCycle        Code = "DEPENDENCY_CYCLE"
	ErrCodeTypeMismatch Code = "TYPE_MISMATCH"
	ErrCodeUnavailable  Code = "UNAVAILABLE"

	// Shutdown and internal errors
	ErrCodeTeardown Code = "TEARDOWN_FAILED"
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
// Only the outermost *Error in the chain is consulted, so a LOAD_FAILED
// wrapping an UNAVAILABLE reports LOAD_FAILED. Use [HasCode] to search the
// whole chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// HasCode reports whether any *Error in err's chain carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Code == code {
			return true
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				if HasCode(inner, code) {
					return true
				}
			}
			return false
		}
		err = errors.Unwrap(err)
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
// Messages of nested *Error causes are joined with ": " and their codes are
// left out; the first cause that is not an *Error contributes its own text.
// Joined errors are rendered one by one, separated by "; ".
func UserMessage(err error) string {
	var parts []string
	for err != nil {
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			var msgs []string
			for _, inner := range joined.Unwrap() {
				if inner != nil {
					msgs = append(msgs, UserMessage(inner))
				}
			}
			parts = append(parts, strings.Join(msgs, "; "))
			break
		}
		e, ok := err.(*Error)
		if !ok {
			parts = append(parts, err.Error())
			break
		}
		parts = append(parts, e.Message)
		err = e.Cause
	}
	return strings.Join(parts, ": ")
}
