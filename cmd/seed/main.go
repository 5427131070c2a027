// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the dev user (dev@example.com) already exists.
package main

import (
	"context"
	"log"
	"time"

	"striketrack/backend/internal/config"
	"striketrack/backend/internal/db"
	"striketrack/backend/internal/security"
	trainingdomain "striketrack/backend/internal/training/domain"
	trainingrepo "striketrack/backend/internal/training/repository"
	trainingservice "striketrack/backend/internal/training/service"
	userdomain "striketrack/backend/internal/user/domain"
	userrepo "striketrack/backend/internal/user/repository"
)

const (
	devUserEmail = "dev@example.com"
	devPassword  = "password123"
	devUserID    = "dev-user-001"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	users := userrepo.NewPostgresRepository(conn)

	existing, err := users.GetByEmail(ctx, devUserEmail)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	if existing != nil {
		log.Printf("seed: dev user %s already exists, skipping", devUserEmail)
		return
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	hashed, err := hasher.Hash([]byte(devPassword))
	if err != nil {
		log.Fatalf("seed: hash: %v", err)
	}

	now := time.Now().UTC()
	if err := users.Create(ctx, &userdomain.User{
		ID:           devUserID,
		Email:        devUserEmail,
		Name:         "Dev User",
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		log.Fatalf("seed: create user: %v", err)
	}

	training := trainingservice.NewService(trainingrepo.NewPostgresRepository(conn))
	samples := []*trainingdomain.Session{
		{Technique: "jab", Duration: 15, Score: 80, Velocity: 7.2, Accuracy: 0.84},
		{Technique: "cross", Duration: 20, Score: 90, Velocity: 8.9, Accuracy: 0.78},
		{Technique: "hook", Duration: 10, Score: 100, Velocity: 9.4, Accuracy: 0.91},
	}
	for _, s := range samples {
		if _, err := training.Record(ctx, devUserID, s); err != nil {
			log.Fatalf("seed: record session: %v", err)
		}
	}

	log.Printf("seed: created %s with %d training sessions (password %q)", devUserEmail, len(samples), devPassword)
}
