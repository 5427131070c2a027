package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"striketrack/backend/internal/training/domain"
)

// ErrInvalidInput wraps session validation failures; the handler maps it to 400.
var ErrInvalidInput = errors.New("invalid input")

// Repo is the minimal training repository needed by the service.
type Repo interface {
	CreateSession(ctx context.Context, s *domain.Session) error
	ListSessionsByUser(ctx context.Context, userID string, limit int) ([]*domain.Session, error)
	GetStats(ctx context.Context, userID string) (*domain.Stats, error)
	ApplyStats(ctx context.Context, s *domain.Session) error
}

// DefaultListLimit bounds ListSessions when the caller gives no limit.
const DefaultListLimit = 50

// Service records training sessions and serves per-user aggregates.
type Service struct {
	repo Repo
}

// NewService returns a Service backed by the given repository.
func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// Record validates and persists a session for the given user, then folds it
// into the user's aggregate stats. Returns the stored session.
func (s *Service) Record(ctx context.Context, userID string, sess *domain.Session) (*domain.Session, error) {
	sess.ID = uuid.New().String()
	sess.UserID = userID
	sess.CreatedAt = time.Now().UTC()
	if err := sess.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, err
	}
	if err := s.repo.ApplyStats(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// List returns the user's sessions, newest first. limit <= 0 uses DefaultListLimit.
func (s *Service) List(ctx context.Context, userID string, limit int) ([]*domain.Session, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.repo.ListSessionsByUser(ctx, userID, limit)
}

// Stats returns the user's aggregates. A user with no recorded sessions gets
// zero-valued stats, not an error.
func (s *Service) Stats(ctx context.Context, userID string) (*domain.Stats, error) {
	st, err := s.repo.GetStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		st = &domain.Stats{UserID: userID}
	}
	return st, nil
}
