// Package handler exposes the auth routes: register and login.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"striketrack/backend/internal/auth/service"
	"striketrack/backend/internal/server/httpjson"
	userdomain "striketrack/backend/internal/user/domain"
)

// AuthService is the service surface the handler needs.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*service.AuthResult, error)
	Login(ctx context.Context, email, password string) (*service.AuthResult, error)
}

// AuthHandler serves POST /auth/register and POST /auth/login.
type AuthHandler struct {
	service AuthService
}

// NewAuthHandler returns an AuthHandler backed by the given service.
func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type authResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.service.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeAuthError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusCreated, toAuthResponse(res))
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeAuthError(w, r, err)
		return
	}
	httpjson.Write(w, http.StatusOK, toAuthResponse(res))
}

// writeAuthError maps service errors to HTTP statuses. Credential mismatches
// and validation failures are expected outcomes and keep their message;
// anything else is a server fault, logged with detail and answered generically.
func writeAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrEmailAlreadyRegistered):
		httpjson.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		httpjson.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("auth request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		httpjson.InternalError(w)
	}
}

func toAuthResponse(res *service.AuthResult) authResponse {
	return authResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      toUserResponse(res.User),
	}
}

func toUserResponse(u *userdomain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}
