// Package handler serves readiness/liveness for load balancers and CI.
package handler

import (
	"context"
	"net/http"

	"striketrack/backend/internal/server/httpjson"
)

// Pinger reports storage reachability (e.g. *sql.DB).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves GET /healthz. A nil Pinger skips the DB check.
type Handler struct {
	db Pinger
}

// NewHandler returns a health Handler that pings db when set.
func NewHandler(db Pinger) *Handler {
	return &Handler{db: db}
}

type healthResponse struct {
	Status string `json:"status"`
}

// Check handles GET /healthz.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			httpjson.Write(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded"})
			return
		}
	}
	httpjson.Write(w, http.StatusOK, healthResponse{Status: "ok"})
}
