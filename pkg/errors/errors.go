// Package errors provides structured error types for the menupress engine.
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
//   - INVALID_*: Menu content and option validation failures
//   - TEMPLATE_*: Template compatibility failures
//   - GENERATION_*: Unexpected internal failures during packing or export
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidItem, "item name too long: %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidItem) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeGenerationFailed, origErr, "rasterize %s", format)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Menu content validation errors
	ErrCodeInvalidMenu     Code = "INVALID_MENU"
	ErrCodeInvalidSection  Code = "INVALID_SECTION"
	ErrCodeInvalidItem     Code = "INVALID_ITEM"
	ErrCodeInvalidPrice    Code = "INVALID_PRICE"
	ErrCodeInvalidCurrency Code = "INVALID_CURRENCY"

	// Option validation errors
	ErrCodeInvalidContext  Code = "INVALID_CONTEXT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidPreset   Code = "INVALID_PRESET"
	ErrCodeInvalidTemplate Code = "INVALID_TEMPLATE"
	ErrCodeInvalidTuning   Code = "INVALID_TUNING"

	// Template compatibility errors
	ErrCodeTemplateIncompatible Code = "TEMPLATE_INCOMPATIBLE"

	// Internal errors
	ErrCodeGenerationFailed Code = "GENERATION_FAILED"
	ErrCodeUnsupported      Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Field   string // Offending field path for validation errors (optional)
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

// NewField creates a new validation Error annotated with the field that
// violated the rule, e.g. "sections[2].items[0].price".
func NewField(code Code, field, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Field:   field,
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

// GetField extracts the field path from a validation error, if available.
func GetField(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
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

// IsValidation reports whether err belongs to the menu/option validation class.
// Validation failures are deterministic and fixable by the caller.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidMenu, ErrCodeInvalidSection, ErrCodeInvalidItem,
		ErrCodeInvalidPrice, ErrCodeInvalidCurrency, ErrCodeInvalidContext,
		ErrCodeInvalidFormat, ErrCodeInvalidPreset, ErrCodeInvalidTemplate,
		ErrCodeInvalidTuning:
		return true
	}
	return false
}

// IsCompatibility reports whether err is a template compatibility failure.
func IsCompatibility(err error) bool {
	return GetCode(err) == ErrCodeTemplateIncompatible
}
