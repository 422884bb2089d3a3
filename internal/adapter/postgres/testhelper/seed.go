package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

// Unique returns prefix plus a short random suffix, for natural keys in a
// database shared across tests.
func Unique(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// SeedAdmin inserts an active admin user with the given password hash.
func SeedAdmin(t *testing.T, pool *pgxpool.Pool, username, passwordHash string) domain.AdminUser {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	u := domain.AdminUser{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO admin_users (id, username, password_hash, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Username, u.PasswordHash, u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAdmin: %v", err)
	}
	return u
}

// SeedBook inserts a book with a unique slug and original title derived from title.
func SeedBook(t *testing.T, pool *pgxpool.Pool, title string) domain.Book {
	t.Helper()

	b := domain.Book{
		Slug:          Unique(domain.Slugify(title)),
		OriginalTitle: Unique(title),
		Title:         title,
		Authors:       []string{"Test Author"},
	}

	err := pool.QueryRow(context.Background(),
		`INSERT INTO books (slug, original_title, title, authors)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		b.Slug, b.OriginalTitle, b.Title, b.Authors,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedBook: %v", err)
	}
	return b
}

// SeedReadingEntry puts bookID on the reading list.
func SeedReadingEntry(t *testing.T, pool *pgxpool.Pool, bookID int64, note string) domain.ReadingListEntry {
	t.Helper()

	e := domain.ReadingListEntry{BookID: bookID, ReadingNote: note}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO reading_list (book_id, reading_note) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		bookID, note,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedReadingEntry: %v", err)
	}
	return e
}
