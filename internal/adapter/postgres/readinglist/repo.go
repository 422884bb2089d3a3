// Package readinglist stores reading-list entries, each joined to its book.
package readinglist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/archive-backend/internal/adapter/postgres"
	"github.com/heartmarshall/archive-backend/internal/domain"
)

// Repo provides reading-list persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new reading-list repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const joinedColumns = `
    r.id, r.book_id, r.reading_note, r.created_at, r.updated_at,
    b.id, b.slug, b.original_title, b.title, b.subtitle, b.authors, b.first_publish_year,
    b.cover_url, b.description, b.google_info, b.created_at, b.updated_at`

const listSQL = `
SELECT` + joinedColumns + `
FROM reading_list r
JOIN books b ON b.id = r.book_id
ORDER BY r.created_at DESC, r.id DESC
LIMIT $1 OFFSET $2`

const getSQL = `
SELECT` + joinedColumns + `
FROM reading_list r
JOIN books b ON b.id = r.book_id
WHERE r.id = $1`

const countSQL = `SELECT count(*) FROM reading_list`

const insertSQL = `
INSERT INTO reading_list (book_id, reading_note)
VALUES ($1, $2)
RETURNING id, book_id, reading_note, created_at, updated_at`

const updateNoteSQL = `
UPDATE reading_list SET reading_note = $2, updated_at = now()
WHERE id = $1
RETURNING id, book_id, reading_note, created_at, updated_at`

const deleteSQL = `DELETE FROM reading_list WHERE id = $1`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns entries joined with their books, newest first.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]domain.ReadingListItem, error) {
	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, listSQL, limit, offset)
	if err != nil {
		return nil, postgres.MapError(err, "reading_list", "list")
	}
	defer rows.Close()

	items := []domain.ReadingListItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reading_list: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "reading_list", "list")
	}
	return items, nil
}

// ListPage returns one numbered page, clamping past-the-end pages.
func (r *Repo) ListPage(ctx context.Context, page, perPage int) (domain.Page[domain.ReadingListItem], error) {
	if perPage < 1 {
		perPage = 1
	}
	total, err := r.Count(ctx)
	if err != nil {
		return domain.Page[domain.ReadingListItem]{}, err
	}
	page = domain.ClampPage(page, total, perPage)

	items, err := r.List(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return domain.Page[domain.ReadingListItem]{}, err
	}
	return domain.NewPage(items, page, perPage, total), nil
}

// GetByID returns one joined entry.
func (r *Repo) GetByID(ctx context.Context, id int64) (domain.ReadingListItem, error) {
	item, err := scanItem(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, getSQL, id))
	if err != nil {
		return domain.ReadingListItem{}, postgres.MapError(err, "reading_list", id)
	}
	return item, nil
}

// Count returns the number of entries.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, countSQL).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "reading_list", "count")
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Insert adds bookID to the list. A second entry for the same book returns
// domain.ErrAlreadyExists; a missing book returns domain.ErrReferenced.
func (r *Repo) Insert(ctx context.Context, bookID int64, note string) (domain.ReadingListEntry, error) {
	e, err := scanEntry(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, insertSQL, bookID, note))
	if err != nil {
		return domain.ReadingListEntry{}, postgres.MapError(err, "reading_list", bookID)
	}
	return e, nil
}

// UpdateNote replaces the note of entry id.
func (r *Repo) UpdateNote(ctx context.Context, id int64, note string) (domain.ReadingListEntry, error) {
	e, err := scanEntry(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, updateNoteSQL, id, note))
	if err != nil {
		return domain.ReadingListEntry{}, postgres.MapError(err, "reading_list", id)
	}
	return e, nil
}

// Delete removes entry id and reports whether it existed.
func (r *Repo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, deleteSQL, id)
	if err != nil {
		return false, postgres.MapError(err, "reading_list", id)
	}
	return tag.RowsAffected() > 0, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanEntry(row pgx.Row) (domain.ReadingListEntry, error) {
	var e domain.ReadingListEntry
	err := row.Scan(&e.ID, &e.BookID, &e.ReadingNote, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func scanItem(row pgx.Row) (domain.ReadingListItem, error) {
	var (
		it domain.ReadingListItem
		b  = &it.Book
	)
	err := row.Scan(
		&it.ID, &it.BookID, &it.ReadingNote, &it.CreatedAt, &it.UpdatedAt,
		&b.ID, &b.Slug, &b.OriginalTitle, &b.Title, &b.Subtitle, &b.Authors, &b.FirstPublishYear,
		&b.CoverURL, &b.Description, &b.GoogleInfo, &b.CreatedAt, &b.UpdatedAt,
	)
	if b.Authors == nil {
		b.Authors = []string{}
	}
	return it, err
}
