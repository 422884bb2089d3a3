// Package setting stores key/value site settings.
package setting

import (
	"context"

	postgres "github.com/heartmarshall/archive-backend/internal/adapter/postgres"
	"github.com/heartmarshall/archive-backend/internal/domain"
)

// Repo provides site setting persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new settings repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const getSQL = `SELECT key, value, created_at, updated_at FROM site_settings WHERE key = $1`

const upsertSQL = `
INSERT INTO site_settings (key, value)
VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
RETURNING key, value, created_at, updated_at`

// Get returns the setting for key or domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, key string) (domain.SiteSetting, error) {
	var s domain.SiteSetting
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, getSQL, key).
		Scan(&s.Key, &s.Value, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.SiteSetting{}, postgres.MapError(err, "site_setting", key)
	}
	return s, nil
}

// Upsert stores value under key, keeping the original created_at.
func (r *Repo) Upsert(ctx context.Context, key, value string) (domain.SiteSetting, error) {
	var s domain.SiteSetting
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, upsertSQL, key, value).
		Scan(&s.Key, &s.Value, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.SiteSetting{}, postgres.MapError(err, "site_setting", key)
	}
	return s, nil
}
