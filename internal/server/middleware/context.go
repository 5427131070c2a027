package middleware

import "context"

type contextKey struct{ name string }

var (
	userIDKey = contextKey{"user_id"}
	emailKey  = contextKey{"email"}
	holderKey = contextKey{"identity_holder"}
)

// identityHolder is a slot that WithIdentity fills, so middleware that runs
// upstream of the auth guard can observe the principal after the chain
// returns. Context values only flow downstream; the holder flows back up.
type identityHolder struct {
	userID string
}

// WithIdentity returns a context with the authenticated principal's user ID
// and email set. The values reflect the token's claims at issuance time, not
// current storage state.
func WithIdentity(ctx context.Context, userID, email string) context.Context {
	if h, ok := ctx.Value(holderKey).(*identityHolder); ok {
		h.userID = userID
	}
	ctx = context.WithValue(ctx, userIDKey, userID)
	ctx = context.WithValue(ctx, emailKey, email)
	return ctx
}

// CaptureIdentity returns a context carrying an identity slot and a lookup
// that reports the user ID once a downstream WithIdentity has filled it.
func CaptureIdentity(ctx context.Context) (context.Context, func() (string, bool)) {
	h := &identityHolder{}
	return context.WithValue(ctx, holderKey, h), func() (string, bool) {
		return h.userID, h.userID != ""
	}
}

// GetUserID returns the user ID from context and true if set; otherwise "", false.
func GetUserID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	return v, ok
}

// GetEmail returns the email from context and true if set; otherwise "", false.
func GetEmail(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(emailKey).(string)
	return v, ok
}
