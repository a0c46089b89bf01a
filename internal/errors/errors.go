package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates the caller specified an invalid argument
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeInternal indicates an internal system error
	CodeInternal Code = "internal"

	// CodeValidation indicates a rejected entry (e.g. missing required name)
	CodeValidation Code = "validation"

	// CodeParse indicates a malformed serialized blob; callers recover
	// locally rather than surface this to the user
	CodeParse Code = "parse_error"

	// CodeImportFormat indicates an import file that cannot be accepted:
	// wrong extension, invalid JSON, or an unrecognized payload shape
	CodeImportFormat Code = "import_format"

	// CodeQuotaExceeded indicates a storage write failure; in-memory state
	// is kept and the failure is surfaced as a rate-limited notice
	CodeQuotaExceeded Code = "quota_exceeded"

	// CodeCorruptedSave indicates a persisted record that exists but cannot
	// be decoded; the load is aborted and the sheet stays at defaults
	CodeCorruptedSave Code = "corrupted_save"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	// If it's already our error type, preserve the code
	var sheetErr *Error
	if errors.As(err, &sheetErr) {
		return &Error{
			Code:    sheetErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(sheetErr.Meta),
		}
	}

	// Otherwise, create unknown error
	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// Helper functions for common error types

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// Internal creates an internal error
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// Validation creates a validation error
func Validation(message string) *Error {
	return New(CodeValidation, message)
}

// Validationf creates a formatted validation error
func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

// Parse creates a parse error
func Parse(message string) *Error {
	return New(CodeParse, message)
}

// ImportFormat creates an import format error
func ImportFormat(message string) *Error {
	return New(CodeImportFormat, message)
}

// ImportFormatf creates a formatted import format error
func ImportFormatf(format string, args ...any) *Error {
	return Newf(CodeImportFormat, format, args...)
}

// QuotaExceeded creates a storage quota error
func QuotaExceeded(message string) *Error {
	return New(CodeQuotaExceeded, message)
}

// CorruptedSave creates a corrupted save error
func CorruptedSave(message string) *Error {
	return New(CodeCorruptedSave, message)
}

// Error checking functions

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var sheetErr *Error
	if errors.As(err, &sheetErr) {
		return sheetErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return Is(err, CodeValidation)
}

// IsImportFormat checks if the error is an import format error
func IsImportFormat(err error) bool {
	return Is(err, CodeImportFormat)
}

// IsQuotaExceeded checks if the error is a storage quota error
func IsQuotaExceeded(err error) bool {
	return Is(err, CodeQuotaExceeded)
}

// IsCorruptedSave checks if the error is a corrupted save error
func IsCorruptedSave(err error) bool {
	return Is(err, CodeCorruptedSave)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var sheetErr *Error
	if errors.As(err, &sheetErr) {
		return sheetErr.Code
	}
	return CodeUnknown
}

// copyMeta creates a copy of the metadata map
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
