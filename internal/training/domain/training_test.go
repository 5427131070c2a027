package domain

import (
	"testing"
	"time"
)

func TestStats_Apply_RunningAverage(t *testing.T) {
	now := time.Now().UTC()
	st := &Stats{UserID: "u1"}

	scores := []float64{80, 90, 100}
	wantAvg := []float64{80, 85, 90}
	for i, score := range scores {
		st.Apply(&Session{UserID: "u1", Technique: "jab", Duration: 10, Score: score}, now)
		if st.AvgScore != wantAvg[i] {
			t.Errorf("after score %v: AvgScore = %v, want %v", score, st.AvgScore, wantAvg[i])
		}
	}
	if st.SessionCount != 3 {
		t.Errorf("SessionCount = %d, want 3", st.SessionCount)
	}
	if st.TotalDuration != 30 {
		t.Errorf("TotalDuration = %v, want 30", st.TotalDuration)
	}
	if st.BestScore != 100 {
		t.Errorf("BestScore = %v, want 100", st.BestScore)
	}
}

func TestStats_Apply_BestScoreKeepsMax(t *testing.T) {
	now := time.Now().UTC()
	st := &Stats{UserID: "u1"}
	for _, score := range []float64{50, 95, 70} {
		st.Apply(&Session{Score: score, Duration: 1}, now)
	}
	if st.BestScore != 95 {
		t.Errorf("BestScore = %v, want 95", st.BestScore)
	}
}

func TestSession_Validate(t *testing.T) {
	valid := Session{UserID: "u1", Technique: "jab", Duration: 5, Score: 80, Velocity: 7.5, Accuracy: 0.9}

	tests := []struct {
		name    string
		mutate  func(*Session)
		wantErr bool
	}{
		{"valid", func(*Session) {}, false},
		{"zero score and accuracy ok", func(s *Session) { s.Score = 0; s.Accuracy = 0 }, false},
		{"missing user", func(s *Session) { s.UserID = "" }, true},
		{"missing technique", func(s *Session) { s.Technique = "" }, true},
		{"zero duration", func(s *Session) { s.Duration = 0 }, true},
		{"negative score", func(s *Session) { s.Score = -1 }, true},
		{"negative velocity", func(s *Session) { s.Velocity = -1 }, true},
		{"negative accuracy", func(s *Session) { s.Accuracy = -0.1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
