// Package admin implements the admin user repository using PostgreSQL.
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/archive-backend/internal/adapter/postgres"
	"github.com/heartmarshall/archive-backend/internal/domain"
)

// Repo provides admin user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new admin repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const adminColumns = `id, username, password_hash, is_active, created_at, updated_at, last_login_at`

const getByUsernameSQL = `SELECT ` + adminColumns + ` FROM admin_users WHERE username = $1`

const upsertSQL = `
INSERT INTO admin_users (id, username, password_hash, is_active, created_at, updated_at)
VALUES ($1, $2, $3, TRUE, $4, $4)
ON CONFLICT (username) DO UPDATE SET
    password_hash = EXCLUDED.password_hash,
    is_active     = TRUE,
    updated_at    = EXCLUDED.updated_at
RETURNING ` + adminColumns

const touchLastLoginSQL = `UPDATE admin_users SET last_login_at = $2 WHERE id = $1`

// GetByUsername returns the admin with the given username.
// Returns domain.ErrNotFound when absent and domain.ErrUnavailable when the
// store cannot be reached.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, getByUsernameSQL, username)
	u, err := scanAdmin(row)
	if err != nil {
		return nil, postgres.MapError(err, "admin_user", username)
	}
	return u, nil
}

// Upsert creates the admin or replaces its password hash, re-activating it.
// created_at of an existing row is preserved.
func (r *Repo) Upsert(ctx context.Context, username, passwordHash string, now time.Time) (*domain.AdminUser, error) {
	row := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, upsertSQL, uuid.New(), username, passwordHash, now)
	u, err := scanAdmin(row)
	if err != nil {
		return nil, postgres.MapError(err, "admin_user", username)
	}
	return u, nil
}

// TouchLastLogin stamps last_login_at.
func (r *Repo) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, touchLastLoginSQL, id, at)
	if err != nil {
		return postgres.MapError(err, "admin_user", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("admin_user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Ping checks that the store answers queries.
func (r *Repo) Ping(ctx context.Context) error {
	var one int
	if err := r.db.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
		return postgres.MapError(err, "database", "ping")
	}
	return nil
}

func scanAdmin(row pgx.Row) (*domain.AdminUser, error) {
	var u domain.AdminUser
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt); err != nil {
		return nil, err
	}
	return &u, nil
}
