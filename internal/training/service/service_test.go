package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"striketrack/backend/internal/training/domain"
)

type memTrainingRepo struct {
	mu       sync.Mutex
	sessions []*domain.Session
	stats    map[string]*domain.Stats
}

func newMemTrainingRepo() *memTrainingRepo {
	return &memTrainingRepo{stats: map[string]*domain.Stats{}}
}

func (r *memTrainingRepo) CreateSession(ctx context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sessions = append(r.sessions, &cp)
	return nil
}

func (r *memTrainingRepo) ListSessionsByUser(ctx context.Context, userID string, limit int) ([]*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Session
	for i := len(r.sessions) - 1; i >= 0 && len(out) < limit; i-- {
		if r.sessions[i].UserID == userID {
			out = append(out, r.sessions[i])
		}
	}
	return out, nil
}

func (r *memTrainingRepo) GetStats(ctx context.Context, userID string) (*domain.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats[userID], nil
}

func (r *memTrainingRepo) ApplyStats(ctx context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	st, ok := r.stats[s.UserID]
	if !ok {
		st = &domain.Stats{UserID: s.UserID}
		r.stats[s.UserID] = st
	}
	st.Apply(s, time.Now().UTC())
	return nil
}

func TestService_RecordUpdatesStats(t *testing.T) {
	repo := newMemTrainingRepo()
	svc := NewService(repo)
	ctx := context.Background()

	wantAvg := []float64{80, 85, 90}
	for i, score := range []float64{80, 90, 100} {
		sess := &domain.Session{Technique: "jab", Duration: 10, Score: score, Velocity: 8, Accuracy: 0.9}
		if _, err := svc.Record(ctx, "u1", sess); err != nil {
			t.Fatalf("Record: %v", err)
		}
		st, err := svc.Stats(ctx, "u1")
		if err != nil {
			t.Fatalf("Stats: %v", err)
		}
		if st.AvgScore != wantAvg[i] {
			t.Errorf("after insert %d: AvgScore = %v, want %v", i+1, st.AvgScore, wantAvg[i])
		}
	}

	st, err := svc.Stats(ctx, "u1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.SessionCount != 3 || st.BestScore != 100 || st.TotalDuration != 30 {
		t.Errorf("Stats = %+v, want count=3 best=100 totalDuration=30", st)
	}
}

func TestService_RecordAssignsIDAndOwner(t *testing.T) {
	repo := newMemTrainingRepo()
	svc := NewService(repo)

	sess, err := svc.Record(context.Background(), "u1", &domain.Session{Technique: "hook", Duration: 5, Score: 70})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if sess.ID == "" {
		t.Error("Record: session ID not assigned")
	}
	if sess.UserID != "u1" {
		t.Errorf("Record: UserID = %q, want %q", sess.UserID, "u1")
	}
	if sess.CreatedAt.IsZero() {
		t.Error("Record: CreatedAt not set")
	}
}

func TestService_RecordRejectsInvalid(t *testing.T) {
	repo := newMemTrainingRepo()
	svc := NewService(repo)

	if _, err := svc.Record(context.Background(), "u1", &domain.Session{Technique: "", Duration: 5}); err == nil {
		t.Fatal("Record with missing technique: want error, got nil")
	}
	if len(repo.sessions) != 0 {
		t.Error("invalid session was persisted")
	}
}

func TestService_StatsZeroValueForNewUser(t *testing.T) {
	svc := NewService(newMemTrainingRepo())

	st, err := svc.Stats(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.SessionCount != 0 || st.AvgScore != 0 || st.BestScore != 0 {
		t.Errorf("Stats for new user = %+v, want zero values", st)
	}
}

func TestService_ListNewestFirstWithLimit(t *testing.T) {
	repo := newMemTrainingRepo()
	svc := NewService(repo)
	ctx := context.Background()

	for _, technique := range []string{"jab", "cross", "hook"} {
		if _, err := svc.Record(ctx, "u1", &domain.Session{Technique: technique, Duration: 5, Score: 50}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := svc.List(ctx, "u1", 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List: got %d sessions, want 2", len(got))
	}
	if got[0].Technique != "hook" || got[1].Technique != "cross" {
		t.Errorf("List order: got [%s, %s], want [hook, cross]", got[0].Technique, got[1].Technique)
	}
}
