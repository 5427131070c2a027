package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"striketrack/backend/internal/security"
	userdomain "striketrack/backend/internal/user/domain"
)

type memUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*userdomain.User
	byEmail map[string]*userdomain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{
		byID:    map[string]*userdomain.User{},
		byEmail: map[string]*userdomain.User{},
	}
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*userdomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byEmail[email], nil
}

func (r *memUserRepo) Create(ctx context.Context, u *userdomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[u.ID] = u
	r.byEmail[u.Email] = u
	return nil
}

func (r *memUserRepo) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		u2 := *u
		u2.PasswordHash = passwordHash
		r.byID[id] = &u2
		r.byEmail[u.Email] = &u2
	}
	return nil
}

func newTestAuthService() (*AuthService, *memUserRepo) {
	repo := newMemUserRepo()
	hasher := security.NewHasher(bcrypt.MinCost)
	tokens := security.NewTokenProvider([]byte("test-secret"), "striketrack-auth", "striketrack-api", time.Hour)
	return NewAuthService(repo, hasher, tokens), repo
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	res, err := svc.Register(ctx, "A@B.com", "secret123", " Alice ")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if res.Token == "" {
		t.Error("Register: empty token")
	}
	if res.User.Email != "a@b.com" {
		t.Errorf("Register: email = %q, want normalized %q", res.User.Email, "a@b.com")
	}
	if res.User.Name != "Alice" {
		t.Errorf("Register: name = %q, want trimmed %q", res.User.Name, "Alice")
	}
	if res.User.PasswordHash == "secret123" {
		t.Error("Register: plaintext password stored")
	}

	login, err := svc.Login(ctx, "a@b.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != res.User.ID {
		t.Errorf("Login: user ID = %q, want %q", login.User.ID, res.User.ID)
	}
	if login.Token == "" {
		t.Error("Login: empty token")
	}
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@b.com", "secret123", "Alice"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "a@b.com", "different9", "Bob"); err != ErrEmailAlreadyRegistered {
		t.Errorf("duplicate Register: want ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "not-an-email", "secret123", ""); err == nil {
		t.Error("Register with invalid email: want error, got nil")
	}
	if _, err := svc.Register(ctx, "a@b.com", "short", ""); err == nil {
		t.Error("Register with short password: want error, got nil")
	}
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "a@b.com", "secret123", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Login(ctx, "a@b.com", "wrong-password"); err != ErrInvalidCredentials {
		t.Errorf("Login wrong password: want ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	// Unknown email and wrong password yield the same sentinel: the caller
	// cannot learn which field was wrong.
	if _, err := svc.Login(context.Background(), "nobody@b.com", "secret123"); err != ErrInvalidCredentials {
		t.Errorf("Login unknown email: want ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	res, err := svc.Register(ctx, "a@b.com", "secret123", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.ChangePassword(ctx, res.User.ID, "wrong-current", "newsecret1"); err != ErrInvalidCredentials {
		t.Errorf("ChangePassword wrong current: want ErrInvalidCredentials, got %v", err)
	}
	if err := svc.ChangePassword(ctx, res.User.ID, "secret123", "short"); err == nil {
		t.Error("ChangePassword short new password: want error, got nil")
	}
	if err := svc.ChangePassword(ctx, res.User.ID, "secret123", "newsecret1"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, err := svc.Login(ctx, "a@b.com", "secret123"); err != ErrInvalidCredentials {
		t.Errorf("Login with old password after change: want ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "a@b.com", "newsecret1"); err != nil {
		t.Errorf("Login with new password: %v", err)
	}
}
