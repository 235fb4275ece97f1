// Package sqerr provides standardized error handling for seqsquash.
// All errors have stable, machine-readable codes, structured context, and proper wrapping.
package sqerr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Code represents a stable, machine-readable error code.
// Format: E{category}{number} where category is 1-9 and number is 001-999.
type Code string

// Error codes organized by category.
const (
	// Model errors (E1xxx) - problems with model definitions
	ErrModelInvalid   Code = "E1001" // Model definition is malformed or unreadable
	ErrModelNotFound  Code = "E1002" // Model directory or file does not exist
	ErrModelDuplicate Code = "E1003" // Model with the same name already loaded
	ErrModelEmpty     Code = "E1004" // Model yields no persistable attributes

	// Attribute/type errors (E2xxx) - problems with field metadata
	ErrAttributeInvalid Code = "E2001" // Attribute entry is nil or malformed
	ErrTypeUnknown      Code = "E2002" // Declared type could not be resolved
	ErrTypeUnsupported  Code = "E2003" // Type wrapper is not supported by the generator
	ErrEnumInvalid      Code = "E2004" // Enum field has no usable values
	ErrEnumCollision    Code = "E2005" // Two fields derive the same enum type name

	// Generation errors (E3xxx) - problems while emitting the script
	ErrGeneration  Code = "E3001" // Script generation failed
	ErrOutputWrite Code = "E3002" // Output file could not be written

	// Database errors (E4xxx) - problems with the upstream connection
	ErrDBConnection Code = "E4001" // Database connection failed
	ErrDBClose      Code = "E4002" // Database connection failed to close

	// Runtime errors (E5xxx) - problems with JS evaluation
	ErrJSExecution Code = "E5001" // JavaScript evaluation failed
	ErrJSTimeout   Code = "E5002" // JavaScript evaluation timed out

	// Internal errors (E9xxx) - unexpected internal errors
	ErrInternal Code = "E9001" // Internal error
)

// Error is the standard error type for seqsquash.
// It provides structured error information with codes, context, and wrapping support.
type Error struct {
	code    Code           // Machine-readable error code
	message string         // Human-readable error message
	context map[string]any // Structured context data
	cause   error          // Wrapped underlying error
}

// Error returns the formatted error string.
// Format:
//
//	[E2002] unknown column type
//	  field: role
//	  table: users
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.code, e.message))

	// Write context in sorted order for deterministic output
	if len(e.context) > 0 {
		keys := make([]string, 0, len(e.context))
		for k := range e.context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			b.WriteString(fmt.Sprintf("\n  %s: %v", k, e.context[k]))
		}
	}

	if e.cause != nil {
		b.WriteString(fmt.Sprintf("\n  cause: %v", e.cause))
	}

	return b.String()
}

// Unwrap returns the underlying cause error for errors.Unwrap compatibility.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether the target error matches this error.
// It matches if target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}

	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.code == targetErr.code
	}

	return false
}

// GetCode returns the error code.
func (e *Error) GetCode() Code {
	return e.code
}

// GetMessage returns the error message.
func (e *Error) GetMessage() string {
	return e.message
}

// GetContext returns the error context map.
func (e *Error) GetContext() map[string]any {
	return e.context
}

// With adds a key-value pair to the error context.
// Returns the error for method chaining.
func (e *Error) With(key string, value any) *Error {
	if e.context == nil {
		e.context = make(map[string]any)
	}
	e.context[key] = value
	return e
}

// WithTable adds table context to the error.
func (e *Error) WithTable(table string) *Error {
	return e.With("table", table)
}

// WithField adds field context to the error.
func (e *Error) WithField(name string) *Error {
	return e.With("field", name)
}

// WithModel adds model context to the error.
func (e *Error) WithModel(name string) *Error {
	return e.With("model", name)
}

// WithFile adds file location context to the error.
func (e *Error) WithFile(path string, line int) *Error {
	e.With("file", path)
	if line > 0 {
		e.With("line", line)
	}
	return e
}

// New creates a new Error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{
		code:    code,
		message: msg,
		context: make(map[string]any),
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		code:    code,
		message: fmt.Sprintf(format, args...),
		context: make(map[string]any),
	}
}

// Wrap creates a new Error that wraps an existing error.
func Wrap(code Code, err error, msg string) *Error {
	if err == nil {
		return New(code, msg)
	}
	return &Error{
		code:    code,
		message: msg,
		context: make(map[string]any),
		cause:   err,
	}
}

// Wrapf creates a new Error that wraps an existing error with a formatted message.
func Wrapf(code Code, err error, format string, args ...any) *Error {
	return Wrap(code, err, fmt.Sprintf(format, args...))
}

// GetErrorCode extracts the error code from an error chain.
// Returns empty string if no code is found.
func GetErrorCode(err error) Code {
	if err == nil {
		return ""
	}

	var sqErr *Error
	if errors.As(err, &sqErr) {
		return sqErr.code
	}

	return ""
}

// Is checks if an error has the specified code.
func Is(err error, code Code) bool {
	return GetErrorCode(err) == code
}

// HasCode checks if an error has any error code.
func HasCode(err error) bool {
	return GetErrorCode(err) != ""
}
