// Package books adds book-specific operations on top of the generic content
// repository: reference-checked deletion, upsert by original title and the
// lookups used by imports and previews.
package books

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/archive-backend/internal/adapter/postgres"
	"github.com/heartmarshall/archive-backend/internal/adapter/postgres/content"
	"github.com/heartmarshall/archive-backend/internal/domain"
)

// Repo provides book persistence backed by PostgreSQL.
type Repo struct {
	*content.Repo[domain.Book]
	db postgres.Querier
}

// New creates a new books repository.
func New(db postgres.Querier) *Repo {
	return &Repo{Repo: content.New(db, content.BookSchema), db: db}
}

const referencedSQL = `SELECT EXISTS(SELECT 1 FROM reading_list WHERE book_id = $1)`

const upsertSQL = `
INSERT INTO books AS b (slug, original_title, title, subtitle, authors, first_publish_year, cover_url, description, google_info)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (original_title) DO UPDATE SET
    title              = EXCLUDED.title,
    subtitle           = EXCLUDED.subtitle,
    authors            = EXCLUDED.authors,
    first_publish_year = EXCLUDED.first_publish_year,
    cover_url          = EXCLUDED.cover_url,
    description        = EXCLUDED.description,
    google_info        = EXCLUDED.google_info,
    updated_at         = now()
RETURNING id, slug, (xmax = 0) AS inserted`

const listPreviewsSQL = `
SELECT id, slug, original_title, title, subtitle, authors, first_publish_year, cover_url, description, google_info, created_at, updated_at
FROM books
WHERE cover_url IS NOT NULL AND cover_url <> ''
ORDER BY updated_at DESC, id DESC
LIMIT $1`

const listByIDsSQL = `
SELECT id, slug, original_title, title, subtitle, authors, first_publish_year, cover_url, description, google_info, created_at, updated_at
FROM books
WHERE id = ANY($1::bigint[])`

const listMissingMetadataSQL = `
SELECT id, slug, original_title, title, subtitle, authors, first_publish_year, cover_url, description, google_info, created_at, updated_at
FROM books
WHERE cover_url IS NULL OR first_publish_year IS NULL
ORDER BY id
LIMIT $1`

const slugsSQL = `SELECT slug FROM books`

// Delete removes a book. It refuses with domain.ErrReferenced while a
// reading-list entry points at the book; the foreign key backs this up when
// an entry is added concurrently.
func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	var referenced bool
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, referencedSQL, id).Scan(&referenced); err != nil {
		return false, postgres.MapError(err, "book", id)
	}
	if referenced {
		return false, fmt.Errorf("book %d: %w", id, domain.ErrReferenced)
	}
	return r.Repo.Delete(ctx, id)
}

// GetByIDOrSlug resolves a numeric id first, then a slug.
func (r *Repo) GetByIDOrSlug(ctx context.Context, idOrSlug string) (domain.Book, error) {
	if id, err := strconv.ParseInt(idOrSlug, 10, 64); err == nil && id > 0 {
		b, err := r.GetByID(ctx, id)
		if err == nil {
			return b, nil
		}
	}
	return r.GetByNaturalKey(ctx, idOrSlug)
}

// UpsertByOriginalTitle inserts the book or updates the row with the same
// original title. An existing row keeps its slug.
func (r *Repo) UpsertByOriginalTitle(ctx context.Context, b domain.Book) (domain.BookUpsert, error) {
	authors := b.Authors
	if authors == nil {
		authors = []string{}
	}
	var res domain.BookUpsert
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, upsertSQL,
		b.Slug, b.OriginalTitle, b.Title, b.Subtitle, authors, b.FirstPublishYear, b.CoverURL, b.Description, b.GoogleInfo,
	).Scan(&res.ID, &res.Slug, &res.Inserted)
	if err != nil {
		return domain.BookUpsert{}, postgres.MapError(err, "book", b.OriginalTitle)
	}
	return res, nil
}

// ListPreviews returns books that have a cover, most recently updated first.
func (r *Repo) ListPreviews(ctx context.Context, limit int) ([]domain.Book, error) {
	return r.queryBooks(ctx, "previews", listPreviewsSQL, limit)
}

// ListByIDs returns the books with the given ids, in no particular order.
func (r *Repo) ListByIDs(ctx context.Context, ids []int64) ([]domain.Book, error) {
	if len(ids) == 0 {
		return []domain.Book{}, nil
	}
	return r.queryBooks(ctx, "by_ids", listByIDsSQL, ids)
}

// ListMissingMetadata returns books lacking a cover or publish year.
func (r *Repo) ListMissingMetadata(ctx context.Context, limit int) ([]domain.Book, error) {
	return r.queryBooks(ctx, "missing_metadata", listMissingMetadataSQL, limit)
}

// Slugs returns every slug in use, for seeding a domain.SlugSet.
func (r *Repo) Slugs(ctx context.Context) ([]string, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, slugsSQL)
	if err != nil {
		return nil, postgres.MapError(err, "book", "slugs")
	}
	slugs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect book slugs: %w", err)
	}
	return slugs, nil
}

func (r *Repo) queryBooks(ctx context.Context, what, sql string, arg any) ([]domain.Book, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sql, arg)
	if err != nil {
		return nil, postgres.MapError(err, "book", what)
	}
	defer rows.Close()

	out := []domain.Book{}
	for rows.Next() {
		b, err := content.BookSchema.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "book", what)
	}
	return out, nil
}
