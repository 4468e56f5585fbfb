// Package middleware provides HTTP middleware for bearer token authentication.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// identityKey is the context key for storing the authenticated identity.
const identityKey ContextKey = "identity"

// Authentication failures passed to an ErrorWriter
var (
	ErrMissingToken = errors.New("access token required")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (Identity, error)
}

// Identity is the authenticated caller described by token claims.
type Identity interface {
	GetUserID() string
	GetRole() string
}

// ErrorWriter writes the response for a failed authentication.
// err wraps ErrMissingToken or ErrInvalidToken.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// AuthMiddleware creates middleware that validates bearer tokens and adds the
// caller's identity to the request context. A nil onError writes JSON
// 401 responses for missing tokens and 403 responses for invalid ones.
func AuthMiddleware(validator TokenValidator, onError ErrorWriter) func(http.Handler) http.Handler {
	if onError == nil {
		onError = WriteError
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				onError(w, r, ErrMissingToken)
				return
			}

			identity, err := validator.ValidateToken(tokenString)
			if err != nil {
				onError(w, r, fmt.Errorf("%w: %v", ErrInvalidToken, err))
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an Authorization header.
// The "Bearer" prefix is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// WriteError is the default ErrorWriter.
func WriteError(w http.ResponseWriter, _ *http.Request, err error) {
	status := http.StatusForbidden
	message := "Invalid or expired token"
	if errors.Is(err, ErrMissingToken) {
		status = http.StatusUnauthorized
		message = "Access token required"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": message})
}

// GetIdentity extracts the authenticated identity from the request context.
func GetIdentity(r *http.Request) (Identity, error) {
	identity, ok := r.Context().Value(identityKey).(Identity)
	if !ok {
		return nil, fmt.Errorf("identity not found in request context")
	}
	return identity, nil
}
