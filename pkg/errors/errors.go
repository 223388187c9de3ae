package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoBaseURL is returned when a relative path has no base address to resolve against.
var ErrNoBaseURL = errors.New("no base URL configured")

// ValidationError represents a validation failure with field-level details
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// HTTPStatus returns the HTTP status code for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// StatusError is returned when a remote endpoint answers with a non-success status.
type StatusError struct {
	StatusCode int
	URL        string
}

// NewStatusError creates a new status error
func NewStatusError(statusCode int, url string) *StatusError {
	return &StatusError{
		StatusCode: statusCode,
		URL:        url,
	}
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s from %s",
		e.StatusCode, http.StatusText(e.StatusCode), e.URL)
}

// HTTPStatus returns the upstream failure as a gateway error
func (e *StatusError) HTTPStatus() int {
	return http.StatusBadGateway
}

// DecodeError represents a response body that could not be decoded
type DecodeError struct {
	ContentType string
	Err         error
}

// NewDecodeError creates a new decode error
func NewDecodeError(contentType string, err error) *DecodeError {
	return &DecodeError{
		ContentType: contentType,
		Err:         err,
	}
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	if e.ContentType != "" {
		return fmt.Sprintf("failed to decode %s body: %v", e.ContentType, e.Err)
	}
	return fmt.Sprintf("failed to decode body: %v", e.Err)
}

// Unwrap returns the wrapped error
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status code for this error
func (e *DecodeError) HTTPStatus() int {
	return http.StatusBadGateway
}

// InternalError represents an internal server error with context
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status code for this error
func (e *InternalError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// HTTPStatuser interface for errors that can provide an HTTP status
type HTTPStatuser interface {
	HTTPStatus() int
}

// HTTPStatusOf returns the HTTP status carried by err, or 500 if it carries none.
func HTTPStatusOf(err error) int {
	var s HTTPStatuser
	if errors.As(err, &s) {
		return s.HTTPStatus()
	}
	return http.StatusInternalServerError
}
