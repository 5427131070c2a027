package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	authservice "striketrack/backend/internal/auth/service"
	"striketrack/backend/internal/config"
	"striketrack/backend/internal/db"
	"striketrack/backend/internal/logger"
	"striketrack/backend/internal/metrics"
	"striketrack/backend/internal/security"
	"striketrack/backend/internal/server"
	"striketrack/backend/internal/server/middleware"
	"striketrack/backend/internal/telemetry/otel"
	trainingrepo "striketrack/backend/internal/training/repository"
	trainingservice "striketrack/backend/internal/training/service"
	userrepo "striketrack/backend/internal/user/repository"
)

func main() {
	log := logger.SetupDefault(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.UsingDevSecret() {
		slog.Warn("JWT_SECRET not set; using insecure development secret")
	}
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		slog.Error("db", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer conn.Close()

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "striketrack-backend", cfg.OTLPInsecure)
	if err != nil {
		slog.Error("telemetry", slog.String("error", err.Error()))
		os.Exit(1)
	}
	providers.SetGlobal()
	defer func() { _ = providers.Shutdown(context.Background()) }()

	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewTokenProvider([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL())

	users := userrepo.NewPostgresRepository(conn)
	auth := authservice.NewAuthService(users, hasher, tokens)
	training := trainingservice.NewService(trainingrepo.NewPostgresRepository(conn))

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	var limiter *middleware.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(middleware.RateLimiterConfigForPerMinute(cfg.RateLimitPerMinute))
		defer limiter.Stop()
	}

	router := server.NewRouter(&server.RouterDeps{
		Logger:            log,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		Tokens:            tokens,
		RateLimiter:       limiter,
		Metrics:           collector,
		Gatherer:          registry,
		TracerProvider:    providers.TracerProvider,
		MeterProvider:     providers.MeterProvider,
		Auth:              auth,
		Users:             users,
		Password:          auth,
		Training:          training,
		Health:            conn,
	})

	if err := server.Serve(ctx, cfg.HTTPAddr, router); err != nil {
		slog.Error("serve", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
