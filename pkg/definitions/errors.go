package definitions

import (
	"errors"
	"fmt"
)

// DefinitionError defines the base interface for all errors raised while
// building or resolving definitions
type DefinitionError interface {
	error
	ErrorCode() ErrorCode
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode represents the type of error that occurred
type ErrorCode int

const (
	// Core error types
	UnknownErrorCode ErrorCode = iota

	// NotInstantiableErrorCode signals that a class or a required parameter
	// cannot be resolved to a concrete value
	NotInstantiableErrorCode

	// InvalidConfigErrorCode signals a self-contradictory definition or a
	// type mismatch between a resolved value and its declared parameter type
	InvalidConfigErrorCode

	// ArgumentErrorCode signals a malformed argument, such as a named
	// variadic argument that is not a collection
	ArgumentErrorCode

	// Container error types, also usable by container implementations
	NotFoundErrorCode
	CircularReferenceErrorCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case NotInstantiableErrorCode:
		return "NotInstantiableError"
	case InvalidConfigErrorCode:
		return "InvalidConfigError"
	case ArgumentErrorCode:
		return "ArgumentError"
	case NotFoundErrorCode:
		return "NotFoundError"
	case CircularReferenceErrorCode:
		return "CircularReferenceError"
	default:
		return "UnknownError"
	}
}

// BaseError provides a common implementation of the DefinitionError interface
type BaseError struct {
	Code        ErrorCode              // type of error
	Message     string                 // error message
	Cause       error                  // underlying error cause
	ContextData map[string]interface{} // additional context information
	Hints       []string               // helpful suggestions for fixing the error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.Message
}

// ErrorCode returns the error code
func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

// Context returns the error context data
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return make(map[string]interface{})
	}
	return e.ContextData
}

// Suggestions returns helpful suggestions for fixing the error
func (e *BaseError) Suggestions() []string {
	return e.Hints
}

// Unwrap returns the underlying error cause for error chain inspection
func (e *BaseError) Unwrap() error {
	return e.Cause
}

// WithCause adds an underlying error cause
func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

// WithContext adds context data to the error
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestion adds a helpful suggestion for fixing the error
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// NewError creates a new BaseError with the specified code and message
func NewError(code ErrorCode, message string) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Hints:   make([]string, 0),
	}
}

// NewErrorf creates a new BaseError with formatted message
func NewErrorf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return NewError(code, fmt.Sprintf(format, args...))
}

// NewNotInstantiable creates a NotInstantiable error
func NewNotInstantiable(format string, args ...interface{}) *BaseError {
	return NewErrorf(NotInstantiableErrorCode, format, args...)
}

// NewInvalidConfig creates an InvalidConfig error
func NewInvalidConfig(format string, args ...interface{}) *BaseError {
	return NewErrorf(InvalidConfigErrorCode, format, args...)
}

// NewArgumentError creates an ArgumentError
func NewArgumentError(format string, args ...interface{}) *BaseError {
	return NewErrorf(ArgumentErrorCode, format, args...)
}

// NewNotFound creates a NotFound error for the given service id. Container
// implementations are free to return their own error types instead, as long
// as those expose a `NotFound() bool` method
func NewNotFound(id string) *BaseError {
	return NewErrorf(NotFoundErrorCode, "no definition or class found for %q", id).
		WithContext("id", id)
}

// NewCircularReference creates a CircularReference error for the given chain
func NewCircularReference(chain ...string) *BaseError {
	return NewErrorf(CircularReferenceErrorCode, "circular reference detected while building: %v", chain).
		WithContext("chain", chain)
}

// notFounder is implemented by container errors that signal an unregistered id
type notFounder interface {
	NotFound() bool
}

// NotFound marks BaseError NotFound instances for foreign error inspection
func (e *BaseError) NotFound() bool {
	return e.Code == NotFoundErrorCode
}

// IsNotFound reports whether err signals "service not registered". Both our
// own NotFoundErrorCode errors and any container error exposing a
// `NotFound() bool` method qualify. Every other failure, including circular
// references, is a real fault and must not be absorbed
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var nf notFounder
	if errors.As(err, &nf) {
		return nf.NotFound()
	}
	var de DefinitionError
	if errors.As(err, &de) {
		return de.ErrorCode() == NotFoundErrorCode
	}
	return false
}

// ErrorCodeOf extracts the ErrorCode from an error chain, or UnknownErrorCode
func ErrorCodeOf(err error) ErrorCode {
	var de DefinitionError
	if errors.As(err, &de) {
		return de.ErrorCode()
	}
	return UnknownErrorCode
}
