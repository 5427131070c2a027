package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"striketrack/backend/internal/server/httpjson"
)

// NewRecoveryMiddleware returns middleware that keeps a handler panic from
// crashing the process: the stack is logged and the client gets a generic 500.
func NewRecoveryMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slog.Error("panic recovered",
						slog.Any("panic", rec),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())),
					)
					httpjson.InternalError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
