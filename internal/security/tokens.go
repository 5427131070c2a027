package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is malformed, tampered with,
	// signed under a different secret, or expired.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims holds the JWT claims for a session token. Subject carries the user ID.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenProvider issues and validates HS256 session tokens signed with a shared
// secret. Tokens are stateless: validity is determined entirely by signature
// and expiry, so invalidating outstanding tokens requires rotating the secret.
type TokenProvider struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewTokenProvider returns a TokenProvider that signs with secret (HS256).
// issuer and audience are set on claims and checked during validation.
// ttl is the validity window from issuance.
func NewTokenProvider(secret []byte, issuer, audience string, ttl time.Duration) *TokenProvider {
	return &TokenProvider{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

// WithClock overrides the provider's time source. Used by tests to exercise
// expiry without sleeping.
func (p *TokenProvider) WithClock(now func() time.Time) *TokenProvider {
	p.now = now
	return p
}

// Issue signs a session token for the given user and email. Returns the
// encoded token and its expiration time.
func (p *TokenProvider) Issue(userID, email string) (token string, expiresAt time.Time, err error) {
	issued := p.now().UTC()
	expiresAt = issued.Add(p.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    p.issuer,
			Audience:  jwt.ClaimStrings{p.audience},
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email: email,
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err = t.SignedString(p.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Validate parses and validates a session token (signature, exp, iss, aud).
// Every failure collapses to ErrInvalidToken: callers treat it as
// "unauthenticated", never as a server fault.
func (p *TokenProvider) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return p.now() }))
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Issuer != p.issuer {
		return nil, ErrInvalidToken
	}
	audOk := false
	for _, a := range claims.Audience {
		if a == p.audience {
			audOk = true
			break
		}
	}
	if !audOk {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
