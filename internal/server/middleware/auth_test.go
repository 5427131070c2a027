package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"striketrack/backend/internal/security"
)

func okHandler(t *testing.T, wantUserID, wantEmail string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r.Context())
		if !ok || userID != wantUserID {
			t.Errorf("user ID in context = %q, ok = %v, want %q", userID, ok, wantUserID)
		}
		email, ok := GetEmail(r.Context())
		if !ok || email != wantEmail {
			t.Errorf("email in context = %q, ok = %v, want %q", email, ok, wantEmail)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	tokens := security.NewTestTokenProvider()
	handler := NewAuthMiddleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("downstream handler should not run without a token")
	}))

	for _, header := range []string{"", "Basic abc", "Bearer", "Bearer   "} {
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want %d", header, rec.Code, http.StatusUnauthorized)
		}
		if msg := decodeError(t, rec); msg != "missing authorization token" {
			t.Errorf("header %q: error = %q, want %q", header, msg, "missing authorization token")
		}
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	tokens := security.NewTestTokenProvider()
	handler := NewAuthMiddleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("downstream handler should not run with an invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if msg := decodeError(t, rec); msg != "invalid or expired token" {
		t.Errorf("error = %q, want %q", msg, "invalid or expired token")
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := issuedAt
	tokens := security.NewTokenProvider([]byte("test-secret"), "test-issuer", "test-audience", time.Hour).
		WithClock(func() time.Time { return clock })

	token, _, err := tokens.Issue("u1", "a@b.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	clock = issuedAt.Add(2 * time.Hour)

	handler := NewAuthMiddleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("downstream handler should not run with an expired token")
	}))
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if msg := decodeError(t, rec); msg != "invalid or expired token" {
		t.Errorf("error = %q, want %q", msg, "invalid or expired token")
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := security.NewTestTokenProvider()
	token, _, err := tokens.Issue("u1", "a@b.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	handler := NewAuthMiddleware(tokens)(okHandler(t, "u1", "a@b.com"))
	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAuthMiddleware_BearerPrefixCaseInsensitive(t *testing.T) {
	tokens := security.NewTestTokenProvider()
	token, _, err := tokens.Issue("u1", "a@b.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for _, prefix := range []string{"Bearer ", "bearer ", "BEARER "} {
		handler := NewAuthMiddleware(tokens)(okHandler(t, "u1", "a@b.com"))
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req.Header.Set("Authorization", prefix+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("prefix %q: status = %d, want %d", prefix, rec.Code, http.StatusOK)
		}
	}
}
