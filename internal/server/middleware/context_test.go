package middleware

import (
	"context"
	"testing"
)

func TestIdentityContext(t *testing.T) {
	ctx := WithIdentity(context.Background(), "u1", "a@b.com")

	userID, ok := GetUserID(ctx)
	if !ok || userID != "u1" {
		t.Errorf("GetUserID = %q, %v, want %q, true", userID, ok, "u1")
	}
	email, ok := GetEmail(ctx)
	if !ok || email != "a@b.com" {
		t.Errorf("GetEmail = %q, %v, want %q, true", email, ok, "a@b.com")
	}
}

func TestCaptureIdentity(t *testing.T) {
	ctx, principal := CaptureIdentity(context.Background())

	if userID, ok := principal(); ok {
		t.Errorf("principal before WithIdentity = %q, true, want false", userID)
	}

	WithIdentity(ctx, "u1", "a@b.com")

	userID, ok := principal()
	if !ok || userID != "u1" {
		t.Errorf("principal after WithIdentity = %q, %v, want %q, true", userID, ok, "u1")
	}
}

func TestIdentityContext_Empty(t *testing.T) {
	ctx := context.Background()

	if userID, ok := GetUserID(ctx); ok {
		t.Errorf("GetUserID on empty context = %q, true, want false", userID)
	}
	if email, ok := GetEmail(ctx); ok {
		t.Errorf("GetEmail on empty context = %q, true, want false", email)
	}
}
