// Package server builds the HTTP router and runs the server.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	authhandler "striketrack/backend/internal/auth/handler"
	healthhandler "striketrack/backend/internal/health/handler"
	"striketrack/backend/internal/metrics"
	"striketrack/backend/internal/server/middleware"
	traininghandler "striketrack/backend/internal/training/handler"
	userhandler "striketrack/backend/internal/user/handler"
)

// RouterDeps holds everything NewRouter needs to wire the route groups.
type RouterDeps struct {
	Logger            *slog.Logger
	CORSAllowedOrigin string
	Tokens            middleware.TokenValidator
	RateLimiter       *middleware.RateLimiter // nil disables limiting
	Metrics           *metrics.Collector      // nil disables request metrics
	Gatherer          prometheus.Gatherer     // nil disables /metrics
	TracerProvider    trace.TracerProvider    // nil uses the global provider
	MeterProvider     metric.MeterProvider    // nil uses the global provider

	Auth     authhandler.AuthService
	Users    userhandler.UserRepo
	Password userhandler.PasswordChanger
	Training traininghandler.TrainingService
	Health   healthhandler.Pinger
}

// NewRouter builds the chi router. Middleware order:
//
//	CORS → recovery → tracing → logging → metrics, then the bearer-token
//	guard and per-principal rate limiter on the /api group only.
//
// /auth, /healthz, and /metrics stay outside the guard.
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(otelhttp.NewMiddleware("http.server", otelOptions(deps)...))
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}

	authHandler := authhandler.NewAuthHandler(deps.Auth)
	userHandler := userhandler.NewUserHandler(deps.Users, deps.Password)
	trainingHandler := traininghandler.NewTrainingHandler(deps.Training)
	healthHandler := healthhandler.NewHandler(deps.Health)

	// Public routes.
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})
	r.Get("/healthz", healthHandler.Check)
	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	// Protected routes: guard first, then the per-principal rate limit.
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.Tokens))
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware())
		}

		r.Route("/api/users/me", func(r chi.Router) {
			r.Get("/", userHandler.Me)
			r.Put("/", userHandler.UpdateMe)
			r.Put("/password", userHandler.ChangePassword)
		})

		r.Route("/api/training", func(r chi.Router) {
			r.Post("/sessions", trainingHandler.CreateSession)
			r.Get("/sessions", trainingHandler.ListSessions)
			r.Get("/stats", trainingHandler.GetStats)
		})
	})

	return r
}

// otelOptions builds the otelhttp options: explicit providers when set, the
// process-wide globals otherwise. Span names carry the request method and path.
func otelOptions(deps *RouterDeps) []otelhttp.Option {
	opts := []otelhttp.Option{
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	}
	if deps.TracerProvider != nil {
		opts = append(opts, otelhttp.WithTracerProvider(deps.TracerProvider))
	}
	if deps.MeterProvider != nil {
		opts = append(opts, otelhttp.WithMeterProvider(deps.MeterProvider))
	}
	return opts
}
