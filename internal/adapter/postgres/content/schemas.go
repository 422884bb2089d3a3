package content

import (
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

// BookSchema maps domain.Book onto books. Books have no publish flag.
var BookSchema = Schema[domain.Book]{
	Table:  "books",
	Entity: "book",
	Columns: []string{
		"slug", "original_title", "title", "subtitle", "authors",
		"first_publish_year", "cover_url", "description", "google_info",
	},
	NaturalKey:    "slug",
	SearchColumns: []string{"title", "original_title", "array_to_string(authors, ' ')"},
	Scan: func(row pgx.Row) (domain.Book, error) {
		var b domain.Book
		err := row.Scan(&b.ID, &b.Slug, &b.OriginalTitle, &b.Title, &b.Subtitle, &b.Authors,
			&b.FirstPublishYear, &b.CoverURL, &b.Description, &b.GoogleInfo, &b.CreatedAt, &b.UpdatedAt)
		if b.Authors == nil {
			b.Authors = []string{}
		}
		return b, err
	},
	Values: func(b domain.Book) []any {
		authors := b.Authors
		if authors == nil {
			authors = []string{}
		}
		return []any{b.Slug, b.OriginalTitle, b.Title, b.Subtitle, authors,
			b.FirstPublishYear, b.CoverURL, b.Description, b.GoogleInfo}
	},
}

// GallerySchema maps domain.GalleryItem onto gallery_items.
var GallerySchema = Schema[domain.GalleryItem]{
	Table:  "gallery_items",
	Entity: "gallery_item",
	Columns: []string{
		"category", "title", "caption", "image_url", "storage_public_id", "sort_order", "is_published",
	},
	CategoryColumn: "category",
	PublishColumn:  "is_published",
	SortColumn:     "sort_order",
	SearchColumns:  []string{"title", "caption"},
	Scan: func(row pgx.Row) (domain.GalleryItem, error) {
		var (
			g        domain.GalleryItem
			category string
		)
		err := row.Scan(&g.ID, &category, &g.Title, &g.Caption, &g.ImageURL, &g.StoragePublicID,
			&g.SortOrder, &g.IsPublished, &g.CreatedAt, &g.UpdatedAt)
		g.Category = domain.GalleryCategory(category)
		return g, err
	},
	Values: func(g domain.GalleryItem) []any {
		return []any{string(g.Category), g.Title, g.Caption, g.ImageURL, g.StoragePublicID, g.SortOrder, g.IsPublished}
	},
}

// MusicSchema maps domain.MusicLink onto music_links.
var MusicSchema = Schema[domain.MusicLink]{
	Table:         "music_links",
	Entity:        "music_link",
	Columns:       []string{"title", "youtube_url", "youtube_id", "sort_order", "is_published"},
	PublishColumn: "is_published",
	SortColumn:    "sort_order",
	SearchColumns: []string{"title"},
	Scan: func(row pgx.Row) (domain.MusicLink, error) {
		var m domain.MusicLink
		err := row.Scan(&m.ID, &m.Title, &m.YouTubeURL, &m.YouTubeID, &m.SortOrder, &m.IsPublished,
			&m.CreatedAt, &m.UpdatedAt)
		return m, err
	},
	Values: func(m domain.MusicLink) []any {
		return []any{m.Title, m.YouTubeURL, m.YouTubeID, m.SortOrder, m.IsPublished}
	},
}

// NoteSchema maps domain.NoteEntry onto notes_logs.
var NoteSchema = Schema[domain.NoteEntry]{
	Table:  "notes_logs",
	Entity: "note",
	Columns: []string{
		"kind", "title", "body", "source_filename", "audio_url", "audio_filename", "audio_storage_id", "is_published",
	},
	CategoryColumn: "kind",
	PublishColumn:  "is_published",
	SearchColumns:  []string{"title", "body"},
	Scan: func(row pgx.Row) (domain.NoteEntry, error) {
		var (
			n    domain.NoteEntry
			kind string
		)
		err := row.Scan(&n.ID, &kind, &n.Title, &n.Body, &n.SourceFilename, &n.AudioURL, &n.AudioFilename,
			&n.AudioStorageID, &n.IsPublished, &n.CreatedAt, &n.UpdatedAt)
		n.Kind = domain.NoteKind(kind)
		return n, err
	},
	Values: func(n domain.NoteEntry) []any {
		return []any{string(n.Kind), n.Title, n.Body, n.SourceFilename, n.AudioURL, n.AudioFilename,
			n.AudioStorageID, n.IsPublished}
	},
}

// CertificationSchema maps domain.Certification onto certifications.
var CertificationSchema = Schema[domain.Certification]{
	Table:  "certifications",
	Entity: "certification",
	Columns: []string{
		"title", "credly_url", "badge_uuid", "badge_host", "iframe_width", "iframe_height", "sort_order", "is_published",
	},
	NaturalKey:    "badge_uuid",
	PublishColumn: "is_published",
	SortColumn:    "sort_order",
	SearchColumns: []string{"title"},
	Scan: func(row pgx.Row) (domain.Certification, error) {
		var c domain.Certification
		err := row.Scan(&c.ID, &c.Title, &c.CredlyURL, &c.BadgeUUID, &c.BadgeHost, &c.IframeWidth,
			&c.IframeHeight, &c.SortOrder, &c.IsPublished, &c.CreatedAt, &c.UpdatedAt)
		return c, err
	},
	Values: func(c domain.Certification) []any {
		return []any{c.Title, c.CredlyURL, c.BadgeUUID, c.BadgeHost, c.IframeWidth, c.IframeHeight,
			c.SortOrder, c.IsPublished}
	},
}

// ResearchSchema maps domain.ResearchItem onto research_items.
var ResearchSchema = Schema[domain.ResearchItem]{
	Table:  "research_items",
	Entity: "research_item",
	Columns: []string{
		"kind", "title", "url", "description", "source_filename", "storage_public_id", "sort_order", "is_published",
	},
	CategoryColumn: "kind",
	PublishColumn:  "is_published",
	SortColumn:     "sort_order",
	SearchColumns:  []string{"title", "description"},
	Scan: func(row pgx.Row) (domain.ResearchItem, error) {
		var (
			r    domain.ResearchItem
			kind string
		)
		err := row.Scan(&r.ID, &kind, &r.Title, &r.URL, &r.Description, &r.SourceFilename,
			&r.StoragePublicID, &r.SortOrder, &r.IsPublished, &r.CreatedAt, &r.UpdatedAt)
		r.Kind = domain.ResearchKind(kind)
		return r, err
	},
	Values: func(r domain.ResearchItem) []any {
		return []any{string(r.Kind), r.Title, r.URL, r.Description, r.SourceFilename, r.StoragePublicID,
			r.SortOrder, r.IsPublished}
	},
}
