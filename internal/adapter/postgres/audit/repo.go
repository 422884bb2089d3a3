// Package audit implements the append-only audit log using PostgreSQL.
// Entries are never updated or deleted.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/archive-backend/internal/adapter/postgres"
	"github.com/heartmarshall/archive-backend/internal/domain"
	"github.com/heartmarshall/archive-backend/pkg/ctxutil"
)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	db  postgres.Querier
	now func() time.Time
}

// New creates a new audit repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db, now: time.Now}
}

const insertSQL = `
INSERT INTO audit_logs (id, actor, action, entity, entity_id, created_at, metadata)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

const listByActionSQL = `
SELECT id, actor, action, entity, entity_id, created_at, metadata
FROM audit_logs
WHERE action = $1
ORDER BY created_at DESC, id
LIMIT $2`

const listRecentSQL = `
SELECT id, actor, action, entity, entity_id, created_at, metadata
FROM audit_logs
ORDER BY created_at DESC, id
LIMIT $1`

const countByActionSQL = `SELECT count(*) FROM audit_logs WHERE action = $1`

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Log appends an entry. Missing ID, actor and timestamp are filled in; the
// actor defaults to the one carried by ctx (see ctxutil.ActorFromCtx).
func (r *Repo) Log(ctx context.Context, entry domain.AuditEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Actor == "" {
		entry.Actor = ctxutil.ActorFromCtx(ctx)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.now().UTC()
	}
	if entry.Metadata == nil {
		entry.Metadata = map[string]any{}
	}

	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("audit_log marshal metadata: %w", err)
	}

	_, err = postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, insertSQL,
		entry.ID, entry.Actor, string(entry.Action), entry.Entity, entry.EntityID, entry.CreatedAt, metadata,
	)
	if err != nil {
		return postgres.MapError(err, "audit_log", entry.ID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByAction returns entries with the given action, newest first.
func (r *Repo) ListByAction(ctx context.Context, action domain.AuditAction, limit int) ([]domain.AuditEntry, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, listByActionSQL, string(action), limit)
	if err != nil {
		return nil, postgres.MapError(err, "audit_log", action)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListRecent returns the newest entries across all actions.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, listRecentSQL, limit)
	if err != nil {
		return nil, postgres.MapError(err, "audit_log", "recent")
	}
	defer rows.Close()
	return scanEntries(rows)
}

// CountByAction counts entries with the given action.
func (r *Repo) CountByAction(ctx context.Context, action domain.AuditAction) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, countByActionSQL, string(action)).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "audit_log", action)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanEntries(rows pgx.Rows) ([]domain.AuditEntry, error) {
	entries := []domain.AuditEntry{}
	for rows.Next() {
		var (
			e        domain.AuditEntry
			action   string
			metadata []byte
		)
		if err := rows.Scan(&e.ID, &e.Actor, &action, &e.Entity, &e.EntityID, &e.CreatedAt, &metadata); err != nil {
			return nil, fmt.Errorf("scan audit_log: %w", err)
		}
		e.Action = domain.AuditAction(action)
		e.Metadata = map[string]any{}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, fmt.Errorf("audit_log %s unmarshal metadata: %w", e.ID, err)
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit_logs: %w", err)
	}
	return entries, nil
}
