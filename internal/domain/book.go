package domain

import (
	"strings"
	"time"
)

// Book is a catalog entry. Slug and OriginalTitle are unique.
type Book struct {
	ID               int64          `json:"id"`
	Slug             string         `json:"slug"`
	OriginalTitle    string         `json:"original_title"`
	Title            string         `json:"title"`
	Subtitle         string         `json:"subtitle"`
	Authors          []string       `json:"authors"`
	FirstPublishYear *int           `json:"first_publish_year"`
	CoverURL         *string        `json:"cover_url"`
	Description      string         `json:"description"`
	GoogleInfo       map[string]any `json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// BookUpsert reports the outcome of an upsert by original title.
type BookUpsert struct {
	ID       int64
	Slug     string
	Inserted bool
}

// AuthorLine joins authors for admin forms.
func (b Book) AuthorLine() string {
	return strings.Join(b.Authors, ", ")
}

// DisplayTitle falls back to the original title, then "Untitled".
func (b Book) DisplayTitle() string {
	if b.Title != "" {
		return b.Title
	}
	if b.OriginalTitle != "" {
		return b.OriginalTitle
	}
	return "Untitled"
}

// ReadingListEntry links a book to the public reading list.
// At most one entry exists per book.
type ReadingListEntry struct {
	ID          int64     `json:"id"`
	BookID      int64     `json:"book_id"`
	ReadingNote string    `json:"reading_note"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ReadingListItem is an entry joined with its book.
type ReadingListItem struct {
	ReadingListEntry
	Book Book `json:"book"`
}

// MaxReadingNoteLength bounds reading-list notes.
const MaxReadingNoteLength = 280

// CatalogBook is one external catalog search hit.
type CatalogBook struct {
	OpenKey          string   `json:"open_key"`
	Title            string   `json:"title"`
	Subtitle         string   `json:"subtitle"`
	Authors          []string `json:"authors"`
	FirstPublishYear *int     `json:"first_publish_year"`
	CoverURL         string   `json:"cover_url"`
	ISBN             string   `json:"isbn"`
	EditionCount     int      `json:"edition_count"`
}
