// Package handler exposes the profile routes under /api/users.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	authservice "striketrack/backend/internal/auth/service"
	"striketrack/backend/internal/server/httpjson"
	"striketrack/backend/internal/server/middleware"
	"striketrack/backend/internal/user/domain"
)

// UserRepo is the repository surface the handler needs.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateName(ctx context.Context, id, name string) error
}

// PasswordChanger is the auth-service surface for password changes.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID, current, next string) error
}

// UserHandler serves the authenticated principal's profile.
type UserHandler struct {
	repo      UserRepo
	passwords PasswordChanger
}

// NewUserHandler returns a UserHandler with the given dependencies.
func NewUserHandler(repo UserRepo, passwords PasswordChanger) *UserHandler {
	return &UserHandler{repo: repo, passwords: passwords}
}

type profileResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type updateProfileRequest struct {
	Name string `json:"name"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Me handles GET /api/users/me. The profile is read from storage, not from
// the token claims, so it reflects current state.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "missing authorization token")
		return
	}
	u, err := h.repo.GetByID(r.Context(), userID)
	if err != nil {
		slog.Error("load profile failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		httpjson.InternalError(w)
		return
	}
	if u == nil {
		// Token subject no longer exists (account deleted after issuance).
		httpjson.Error(w, http.StatusUnauthorized, "invalid or expired token")
		return
	}
	httpjson.Write(w, http.StatusOK, profileResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	})
}

// UpdateMe handles PUT /api/users/me (display name only).
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "missing authorization token")
		return
	}
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.repo.UpdateName(r.Context(), userID, req.Name); err != nil {
		slog.Error("update profile failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		httpjson.InternalError(w)
		return
	}
	h.Me(w, r)
}

// ChangePassword handles PUT /api/users/me/password. Outstanding tokens stay
// valid after a change: tokens are stateless and there is no revocation.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "missing authorization token")
		return
	}
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	err := h.passwords.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, authservice.ErrInvalidCredentials):
		httpjson.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, authservice.ErrInvalidInput):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("change password failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		httpjson.InternalError(w)
	}
}
