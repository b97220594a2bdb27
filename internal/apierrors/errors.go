// Package apierrors defines the failures the account and profile services
// report to the request-handling layer.
package apierrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an APIError.
type Kind int

const (
	KindServer Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindCredential
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindCredential:
		return "credential"
	default:
		return "server"
	}
}

// APIError is a failure with a user-visible message and the HTTP status it maps to.
type APIError struct {
	Kind       Kind
	Message    string
	HTTPStatus int
	Err        error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewErrValidation reports malformed or missing input.
func NewErrValidation(format string, args ...any) *APIError {
	return &APIError{
		Kind:       KindValidation,
		Message:    fmt.Sprintf(format, args...),
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// NewErrIdentityTaken reports a duplicate email or username.
func NewErrIdentityTaken() *APIError {
	return &APIError{
		Kind:       KindConflict,
		Message:    "email or username already exists",
		HTTPStatus: http.StatusConflict,
	}
}

// NewErrUserNotFound reports a missing account, looked up by any key.
func NewErrUserNotFound() *APIError {
	return &APIError{
		Kind:       KindNotFound,
		Message:    "User not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// NewErrFileNotFound reports a missing uploaded file.
func NewErrFileNotFound(key string) *APIError {
	return &APIError{
		Kind:       KindNotFound,
		Message:    fmt.Sprintf("file %q not found", key),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewErrInvalidPassword reports a password that does not match the stored hash.
func NewErrInvalidPassword() *APIError {
	return &APIError{
		Kind:       KindCredential,
		Message:    "Invalid password",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewErrInternalServerError wraps an unexpected storage or hashing failure.
// The underlying message is passed through to the caller.
func NewErrInternalServerError(err error) *APIError {
	msg := "server error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &APIError{
		Kind:       KindServer,
		Message:    msg,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// As extracts an APIError from err's chain.
func As(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// KindOf returns the kind of err; errors that are not APIErrors are server failures.
func KindOf(err error) Kind {
	if apiErr, ok := As(err); ok {
		return apiErr.Kind
	}
	return KindServer
}

// FromError converts any error into an APIError, treating unknown errors as server failures.
func FromError(err error) *APIError {
	if apiErr, ok := As(err); ok {
		return apiErr
	}
	return NewErrInternalServerError(err)
}
