package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"striketrack/backend/internal/training/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a training repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateSession persists the session. The session must have ID set; it is not assigned by this method.
func (r *PostgresRepository) CreateSession(ctx context.Context, s *domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO training_sessions (id, user_id, technique, duration, score, velocity, accuracy, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.UserID, s.Technique, s.Duration, s.Score, s.Velocity, s.Accuracy, s.CreatedAt)
	return err
}

// ListSessionsByUser returns the user's sessions, newest first, at most limit rows.
func (r *PostgresRepository) ListSessionsByUser(ctx context.Context, userID string, limit int) ([]*domain.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, technique, duration, score, velocity, accuracy, created_at
		 FROM training_sessions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		var s domain.Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.Technique, &s.Duration, &s.Score, &s.Velocity, &s.Accuracy, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, &s)
	}
	return sessions, rows.Err()
}

// GetStats returns the user's aggregate stats, or nil if no session was ever recorded.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetStats(ctx context.Context, userID string) (*domain.Stats, error) {
	var st domain.Stats
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, session_count, total_duration, avg_score, best_score, updated_at
		 FROM user_stats WHERE user_id = $1`, userID).
		Scan(&st.UserID, &st.SessionCount, &st.TotalDuration, &st.AvgScore, &st.BestScore, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

// ApplyStats folds one session into the user's aggregate row. The whole
// read-modify-write runs inside a single INSERT ... ON CONFLICT DO UPDATE, so
// concurrent inserts for the same user serialize on the row lock and the
// running average (avg*n + v) / (n+1) never sees a stale n.
func (r *PostgresRepository) ApplyStats(ctx context.Context, s *domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_stats (user_id, session_count, total_duration, avg_score, best_score, updated_at)
		 VALUES ($1, 1, $2, $3, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE SET
		     avg_score      = (user_stats.avg_score * user_stats.session_count + $3) / (user_stats.session_count + 1),
		     session_count  = user_stats.session_count + 1,
		     total_duration = user_stats.total_duration + $2,
		     best_score     = GREATEST(user_stats.best_score, $3),
		     updated_at     = $4`,
		s.UserID, s.Duration, s.Score, time.Now().UTC())
	return err
}
