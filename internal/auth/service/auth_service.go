package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"striketrack/backend/internal/security"
	userdomain "striketrack/backend/internal/user/domain"
)

// Sentinel errors for the auth service; the handler maps them to HTTP statuses.
var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	// ErrInvalidInput wraps request validation failures (bad email, weak password).
	ErrInvalidInput = errors.New("invalid input")
)

// AuthResult holds the outcome of Register or Login: a session token and the principal.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *userdomain.User
}

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
	Create(ctx context.Context, u *userdomain.User) error
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}

// AuthService implements password-based register, login, and password change.
type AuthService struct {
	userRepo UserRepo
	hasher   *security.Hasher
	tokens   *security.TokenProvider
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(userRepo UserRepo, hasher *security.Hasher, tokens *security.TokenProvider) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// Register creates a user with the given email and password and returns a
// session token for the new principal. Duplicate emails are rejected with
// ErrEmailAlreadyRegistered.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}
	hashed, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &userdomain.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Login authenticates with email/password and returns a session token.
// Every mismatch collapses to ErrInvalidCredentials so callers cannot tell
// which of the two fields was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// ChangePassword replaces the principal's credential after verifying the
// current password. Outstanding tokens stay valid: tokens are stateless and
// there is no revocation.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	if err := validatePassword(next); err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, []byte(current)); err != nil {
		return ErrInvalidCredentials
	}
	hashed, err := s.hasher.Hash([]byte(next))
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePasswordHash(ctx, userID, hashed)
}

func (s *AuthService) issue(user *userdomain.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	const simpleEmail = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	ok, _ := regexp.MatchString(simpleEmail, email)
	if !ok {
		return fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}
	return nil
}
