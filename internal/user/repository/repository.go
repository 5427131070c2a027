package repository

import (
	"context"

	"striketrack/backend/internal/user/domain"
)

// Repository defines persistence for users.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	UpdateName(ctx context.Context, id, name string) error
	// UpdatePasswordHash replaces the stored credential hash. No-op if the user does not exist.
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}
