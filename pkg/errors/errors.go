// Package errors provides structured error types for scenedoc.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine and the CLI
//   - Machine-readable codes for per-node issues
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Per-node conversion codes describe a degraded, not failed, operation:
//   - EXPORT_SKIPPED: a node's extraction failed and the node was omitted
//   - UNSUPPORTED_VARIANT: a paint, effect or type outside the recognized set
//   - FONT_LOAD_FAILURE: every candidate font for a text node failed to load
//   - STRUCTURAL_FALLBACK: a boolean operation or vector degraded to a simpler shape
//   - CREATION_FAILURE: any other construction failure, replaced by a placeholder
//
// NOTHING_PRODUCED is the only code that marks a whole operation as failed.
// The remaining codes follow the INVALID_* / *_NOT_FOUND / INTERNAL_* naming.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "unknown format: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidInput) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFontLoadFailure, origErr, "load %s", font)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Per-node conversion issues
	ErrCodeExportSkipped      Code = "EXPORT_SKIPPED"
	ErrCodeUnsupportedVariant Code = "UNSUPPORTED_VARIANT"
	ErrCodeFontLoadFailure    Code = "FONT_LOAD_FAILURE"
	ErrCodeStructuralFallback Code = "STRUCTURAL_FALLBACK"
	ErrCodeCreationFailure    Code = "CREATION_FAILURE"

	// Whole-operation failure
	ErrCodeNothingProduced Code = "NOTHING_PRODUCED"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Dropped reports whether a per-node code means the node is missing from the
// result. The other per-node codes leave a degraded stand-in in its place.
func (c Code) Dropped() bool {
	return c == ErrCodeExportSkipped || c == ErrCodeFontLoadFailure
}

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

// PanicError converts a recovered panic value into a coded error.
// Errors are wrapped as is; anything else is formatted.
func PanicError(code Code, r any, format string, args ...any) *Error {
	if err, ok := r.(error); ok {
		return Wrap(code, err, format, args...)
	}
	return Wrap(code, fmt.Errorf("panic: %v", r), format, args...)
}
