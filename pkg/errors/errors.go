// Package errors provides structured error types for the Chartstack application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the layout engine and CLI
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_DATA: Data shape failures detected during consolidation
//   - NOT_FOUND_*: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidScale, "unknown scale family: %s", family)
//	if errors.Is(err, errors.ErrCodeInvalidScale) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeConversion, origErr, "failed to convert %s", path)
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle    Code = "INVALID_STYLE"
	ErrCodeInvalidScale    Code = "INVALID_SCALE"
	ErrCodeInvalidDomain   Code = "INVALID_DOMAIN"
	ErrCodeInvalidPalette  Code = "INVALID_PALETTE"
	ErrCodeInvalidEasing   Code = "INVALID_EASING"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"

	// Data shape errors
	ErrCodeEmptyData      Code = "EMPTY_DATA"
	ErrCodeMismatchedData Code = "MISMATCHED_DATA"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Export errors
	ErrCodeConversion Code = "CONVERSION_FAILED"

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

// ConversionError provides additional information for failed format conversions.
type ConversionError struct {
	Format  string // Target format that failed (png, pdf)
	Tool    string // External tool involved, if any
	Message string
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("conversion to %s failed: %s", e.Format, e.Message)
	case e.Tool != "":
		return fmt.Sprintf("conversion to %s failed: %s not available", e.Format, e.Tool)
	default:
		return fmt.Sprintf("conversion to %s failed", e.Format)
	}
}

// Code returns the error code for this error type.
func (e *ConversionError) Code() Code {
	return ErrCodeConversion
}
