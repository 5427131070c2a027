package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"striketrack/backend/internal/user/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a user repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, name, password_hash, created_at, updated_at FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail returns the user with the given email, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, email, name, password_hash, created_at, updated_at FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// Create persists the user to the database. The user must have ID set; it is not assigned by this method.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	name := sql.NullString{String: u.Name, Valid: u.Name != ""}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, name, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	return err
}

// UpdateName updates the user's display name. No-op if the user does not exist.
func (r *PostgresRepository) UpdateName(ctx context.Context, id, name string) error {
	nameVal := sql.NullString{String: name, Valid: name != ""}
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = $2, updated_at = $3 WHERE id = $1`,
		id, nameVal, time.Now().UTC())
	return err
}

// UpdatePasswordHash replaces the stored credential hash. No-op if the user does not exist.
func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $2, updated_at = $3 WHERE id = $1`,
		id, passwordHash, time.Now().UTC())
	return err
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var name sql.NullString
	err := row.Scan(&u.ID, &u.Email, &name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if name.Valid {
		u.Name = name.String
	}
	return &u, nil
}
