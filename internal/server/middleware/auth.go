package middleware

import (
	"net/http"
	"strings"

	"striketrack/backend/internal/security"
	"striketrack/backend/internal/server/httpjson"
)

const bearerPrefix = "bearer "

// TokenValidator validates a session token and returns its claims.
// *security.TokenProvider satisfies it.
type TokenValidator interface {
	Validate(token string) (*security.Claims, error)
}

// NewAuthMiddleware returns middleware that validates the Bearer token from
// the Authorization header and sets the principal's user ID and email in the
// request context. A missing token yields 401 "missing authorization token";
// an invalid or expired one yields 401 "invalid or expired token". The
// principal is not re-fetched from storage here: claims reflect state at
// token issuance.
func NewAuthMiddleware(tokens TokenValidator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r)
			if token == "" {
				httpjson.Error(w, http.StatusUnauthorized, "missing authorization token")
				return
			}
			claims, err := tokens.Validate(token)
			if err != nil {
				httpjson.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			ctx := WithIdentity(r.Context(), claims.Subject, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearer returns the Bearer token from the Authorization header, or "" if missing or malformed.
func extractBearer(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(v) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
