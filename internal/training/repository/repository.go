package repository

import (
	"context"

	"striketrack/backend/internal/training/domain"
)

// Repository defines persistence for training sessions and per-user stats.
type Repository interface {
	CreateSession(ctx context.Context, s *domain.Session) error
	// ListSessionsByUser returns the user's sessions, newest first, at most limit rows.
	ListSessionsByUser(ctx context.Context, userID string, limit int) ([]*domain.Session, error)
	// GetStats returns the user's aggregate stats, or nil if no session was ever recorded.
	GetStats(ctx context.Context, userID string) (*domain.Stats, error)
	// ApplyStats folds one session into the user's aggregate row atomically:
	// concurrent inserts for the same user must not lose updates.
	ApplyStats(ctx context.Context, s *domain.Session) error
}
