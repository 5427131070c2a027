package security

import "time"

// NewTestTokenProvider returns a TokenProvider with a fixed secret and short
// TTL. For unit tests only. Callers must not use in production.
func NewTestTokenProvider() *TokenProvider {
	return NewTokenProvider([]byte("unit-test-secret"), "test-issuer", "test-audience", 15*time.Minute)
}
