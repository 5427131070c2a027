// Package handler exposes the training routes under /api/training.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"striketrack/backend/internal/server/httpjson"
	"striketrack/backend/internal/server/middleware"
	"striketrack/backend/internal/training/domain"
	"striketrack/backend/internal/training/service"
)

// TrainingService is the service surface the handler needs.
type TrainingService interface {
	Record(ctx context.Context, userID string, sess *domain.Session) (*domain.Session, error)
	List(ctx context.Context, userID string, limit int) ([]*domain.Session, error)
	Stats(ctx context.Context, userID string) (*domain.Stats, error)
}

// TrainingHandler serves session recording, listing, and aggregate stats.
type TrainingHandler struct {
	service TrainingService
}

// NewTrainingHandler returns a TrainingHandler backed by the given service.
func NewTrainingHandler(service TrainingService) *TrainingHandler {
	return &TrainingHandler{service: service}
}

type sessionRequest struct {
	Technique string  `json:"technique"`
	Duration  float64 `json:"duration"`
	Score     float64 `json:"score"`
	Velocity  float64 `json:"velocity"`
	Accuracy  float64 `json:"accuracy"`
}

type sessionResponse struct {
	ID        string    `json:"id"`
	Technique string    `json:"technique"`
	Duration  float64   `json:"duration"`
	Score     float64   `json:"score"`
	Velocity  float64   `json:"velocity"`
	Accuracy  float64   `json:"accuracy"`
	CreatedAt time.Time `json:"created_at"`
}

type statsResponse struct {
	SessionCount  int64   `json:"session_count"`
	TotalDuration float64 `json:"total_duration"`
	AvgScore      float64 `json:"avg_score"`
	BestScore     float64 `json:"best_score"`
}

// CreateSession handles POST /api/training/sessions.
func (h *TrainingHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "missing authorization token")
		return
	}
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sess, err := h.service.Record(r.Context(), userID, &domain.Session{
		Technique: req.Technique,
		Duration:  req.Duration,
		Score:     req.Score,
		Velocity:  req.Velocity,
		Accuracy:  req.Accuracy,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("record session failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		httpjson.InternalError(w)
		return
	}
	httpjson.Write(w, http.StatusCreated, toSessionResponse(sess))
}

// ListSessions handles GET /api/training/sessions?limit=N.
func (h *TrainingHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "missing authorization token")
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httpjson.Error(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	sessions, err := h.service.List(r.Context(), userID, limit)
	if err != nil {
		slog.Error("list sessions failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		httpjson.InternalError(w)
		return
	}
	out := make([]sessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResponse(s))
	}
	httpjson.Write(w, http.StatusOK, out)
}

// GetStats handles GET /api/training/stats.
func (h *TrainingHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "missing authorization token")
		return
	}
	st, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		slog.Error("load stats failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		httpjson.InternalError(w)
		return
	}
	httpjson.Write(w, http.StatusOK, statsResponse{
		SessionCount:  st.SessionCount,
		TotalDuration: st.TotalDuration,
		AvgScore:      st.AvgScore,
		BestScore:     st.BestScore,
	})
}

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:        s.ID,
		Technique: s.Technique,
		Duration:  s.Duration,
		Score:     s.Score,
		Velocity:  s.Velocity,
		Accuracy:  s.Accuracy,
		CreatedAt: s.CreatedAt,
	}
}
