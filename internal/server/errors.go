// Package server provides the HTTP REST API for the card copy service.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/cardcopy/internal/server/middleware"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnauthorized indicates a request without credentials
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrForbidden indicates a request whose credentials were rejected
type ErrForbidden struct {
	Message string
	Cause   error
}

func (e *ErrForbidden) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *ErrForbidden) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var unauthorizedErr *ErrUnauthorized
	var forbiddenErr *ErrForbidden

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &unauthorizedErr):
		return http.StatusUnauthorized
	case errors.As(err, &forbiddenErr):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// authError maps a middleware failure to the error type the API reports.
func authError(err error) error {
	if errors.Is(err, middleware.ErrMissingToken) {
		return &ErrUnauthorized{Message: "Access token required"}
	}
	return &ErrForbidden{Message: "Invalid or expired token", Cause: err}
}
