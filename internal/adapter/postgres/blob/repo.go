// Package blob stores media bytes inside PostgreSQL for the embedded media
// backend.
package blob

import (
	"context"
	"time"

	"github.com/google/uuid"

	postgres "github.com/heartmarshall/archive-backend/internal/adapter/postgres"
	"github.com/heartmarshall/archive-backend/internal/domain"
)

// Repo provides media blob persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new blob repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const insertSQL = `
INSERT INTO media_blobs (id, kind, filename, content_type, data)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at`

const getSQL = `
SELECT id, kind, filename, content_type, data, created_at
FROM media_blobs
WHERE id = $1 AND kind = $2`

const deleteSQL = `DELETE FROM media_blobs WHERE id = $1`

// A blob is referenced when any content row stores its "pg:<id>" reference.
const pruneSQL = `
DELETE FROM media_blobs m
WHERE m.created_at < $1
  AND NOT EXISTS (SELECT 1 FROM gallery_items g WHERE g.storage_public_id = 'pg:' || m.id::text)
  AND NOT EXISTS (SELECT 1 FROM notes_logs n WHERE n.audio_storage_id = 'pg:' || m.id::text)
  AND NOT EXISTS (SELECT 1 FROM research_items r WHERE r.storage_public_id = 'pg:' || m.id::text)`

// Put stores b. A zero ID is replaced by a fresh UUID.
func (r *Repo) Put(ctx context.Context, b domain.MediaBlob) (domain.MediaBlob, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	id, err := uuid.Parse(b.ID)
	if err != nil {
		return domain.MediaBlob{}, domain.NewValidationError("id", "invalid blob id")
	}
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, insertSQL,
		id, string(b.Kind), b.Filename, b.ContentType, b.Data,
	).Scan(&b.CreatedAt)
	if err != nil {
		return domain.MediaBlob{}, postgres.MapError(err, "media_blob", b.ID)
	}
	return b, nil
}

// Get returns blob id of the given kind or domain.ErrNotFound.
// A malformed id is reported as not found.
func (r *Repo) Get(ctx context.Context, kind domain.MediaKind, id string) (domain.MediaBlob, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return domain.MediaBlob{}, domain.ErrNotFound
	}

	var (
		b       domain.MediaBlob
		rawID   uuid.UUID
		rawKind string
	)
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, getSQL, uid, string(kind)).
		Scan(&rawID, &rawKind, &b.Filename, &b.ContentType, &b.Data, &b.CreatedAt)
	if err != nil {
		return domain.MediaBlob{}, postgres.MapError(err, "media_blob", id)
	}
	b.ID = rawID.String()
	b.Kind = domain.MediaKind(rawKind)
	return b, nil
}

// Delete removes blob id and reports whether it existed.
func (r *Repo) Delete(ctx context.Context, id string) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, deleteSQL, uid)
	if err != nil {
		return false, postgres.MapError(err, "media_blob", id)
	}
	return tag.RowsAffected() > 0, nil
}

// PruneUnreferenced deletes blobs created before cutoff that no content row
// references, returning the number removed.
func (r *Repo) PruneUnreferenced(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, pruneSQL, cutoff)
	if err != nil {
		return 0, postgres.MapError(err, "media_blob", "prune")
	}
	return tag.RowsAffected(), nil
}
