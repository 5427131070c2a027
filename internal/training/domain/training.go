package domain

import (
	"errors"
	"time"
)

// Session is one recorded training session. Rows are append-only and owned
// exclusively by the principal who created them.
type Session struct {
	ID        string
	UserID    string
	Technique string
	Duration  float64 // minutes
	Score     float64
	Velocity  float64
	Accuracy  float64
	CreatedAt time.Time
}

// Validate validates the session for persistence. Returns an error describing the first validation failure.
func (s *Session) Validate() error {
	if s.UserID == "" {
		return errors.New("user id is required")
	}
	if s.Technique == "" {
		return errors.New("technique is required")
	}
	if s.Duration <= 0 {
		return errors.New("duration must be positive")
	}
	if s.Score < 0 {
		return errors.New("score must not be negative")
	}
	if s.Velocity < 0 {
		return errors.New("velocity must not be negative")
	}
	if s.Accuracy < 0 {
		return errors.New("accuracy must not be negative")
	}
	return nil
}

// Stats holds per-principal running totals, updated on every session insert.
type Stats struct {
	UserID        string
	SessionCount  int64
	TotalDuration float64
	AvgScore      float64
	BestScore     float64
	UpdatedAt     time.Time
}

// Apply folds one new session into the running totals. The average update is
// exactly (avg*n + v) / (n+1) with n the count before the increment; the best
// score is max(best, v) with an absent best treated as 0.
func (st *Stats) Apply(s *Session, at time.Time) {
	n := float64(st.SessionCount)
	st.AvgScore = (st.AvgScore*n + s.Score) / (n + 1)
	st.SessionCount++
	st.TotalDuration += s.Duration
	if s.Score > st.BestScore {
		st.BestScore = s.Score
	}
	st.UpdatedAt = at
}
