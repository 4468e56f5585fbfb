package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator is a test implementation of TokenValidator for unit tests.
type testTokenValidator struct {
	validTokens map[string]*testClaims
}

func newTestTokenValidator() *testTokenValidator {
	return &testTokenValidator{
		validTokens: make(map[string]*testClaims),
	}
}

func (v *testTokenValidator) addValidToken(token, userID, role string) {
	v.validTokens[token] = &testClaims{userID: userID, role: role}
}

func (v *testTokenValidator) ValidateToken(tokenString string) (Identity, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}
	claims, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

type testClaims struct {
	userID string
	role   string
}

func (c *testClaims) GetUserID() string { return c.userID }

func (c *testClaims) GetRole() string { return c.role }

func okHandler(t *testing.T, seen *Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := GetIdentity(r)
		require.NoError(t, err)
		*seen = identity
		w.WriteHeader(http.StatusOK)
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	validator := newTestTokenValidator()
	validator.addValidToken("valid-test-token-123", "user-42", "admin")

	var seen Identity
	handler := AuthMiddleware(validator, nil)(okHandler(t, &seen))

	for _, header := range []string{"Bearer valid-test-token-123", "bearer valid-test-token-123", "BEARER  valid-test-token-123"} {
		t.Run(header, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/generate", nil)
			req.Header.Set("Authorization", header)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			require.NotNil(t, seen)
			assert.Equal(t, "user-42", seen.GetUserID())
			assert.Equal(t, "admin", seen.GetRole())
		})
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	handler := AuthMiddleware(newTestTokenValidator(), nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not be called")
	}))

	headers := []string{"", "Bearer", "Basic dXNlcjpwYXNz", "Bearer a b", "token-without-scheme"}
	for _, header := range headers {
		t.Run(fmt.Sprintf("%q", header), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/generate", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "Access token required", body["error"])
		})
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	handler := AuthMiddleware(newTestTokenValidator(), nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not be called")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/generate", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "Invalid or expired token", decodeError(t, rec)["error"])
}

func TestAuthMiddleware_CustomErrorWriter(t *testing.T) {
	var got error
	onError := func(w http.ResponseWriter, _ *http.Request, err error) {
		got = err
		w.WriteHeader(http.StatusTeapot)
	}
	handler := AuthMiddleware(newTestTokenValidator(), onError)(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodPost, "/api/generate", nil)
	req.Header.Set("Authorization", "Bearer forged")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.True(t, errors.Is(got, ErrInvalidToken))
	assert.Contains(t, got.Error(), "invalid token")
}

func TestGetIdentity_NotSet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetIdentity(req)
	assert.Error(t, err)

	ctx := context.WithValue(req.Context(), identityKey, &testClaims{userID: "u"})
	identity, err := GetIdentity(req.WithContext(ctx))
	require.NoError(t, err)
	assert.Equal(t, "u", identity.GetUserID())
}
