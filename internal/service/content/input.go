package content

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

// Listing limits. Values arrive as raw query strings and are parsed with
// domain.ParsePositiveInt.
const (
	DefaultPublicLimit = 20
	MaxPublicLimit     = 50
	DefaultPage        = 1
	MaxPage            = 100000
	DefaultPerPage     = 24
	MaxPerPage         = 100
	DefaultAdminBooks  = 100
	MaxAdminBooks      = 200
	DefaultAdminList   = 200
	MaxAdminList       = 500
	DefaultNotesPublic = 50
	MaxNotesPublic     = 200
	DefaultCatalog     = 10
	MaxCatalog         = 20
	PreviewBooks       = 8
)

// FileUpload is a file attached to a form.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

func required(errs []domain.FieldError, field, value, message string) []domain.FieldError {
	if value == "" {
		errs = append(errs, domain.FieldError{Field: field, Message: message})
	}
	return errs
}

func validationResult(errs []domain.FieldError) error {
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Books
// ---------------------------------------------------------------------------

// BookInput holds the admin book form.
type BookInput struct {
	Title       string
	Subtitle    string
	Authors     string // comma separated
	Year        string
	CoverURL    string
	Description string
	Slug        string
}

// Validate checks all fields and collects all errors.
func (i BookInput) Validate() error {
	var errs []domain.FieldError
	errs = required(errs, "title", strings.TrimSpace(i.Title), "Title is required")
	return validationResult(errs)
}

func (i BookInput) record() domain.Book {
	title := strings.TrimSpace(i.Title)
	b := domain.Book{
		Title:       title,
		Subtitle:    strings.TrimSpace(i.Subtitle),
		Authors:     domain.SplitAuthors(i.Authors),
		Description: strings.TrimSpace(i.Description),
		Slug:        domain.Slugify(domain.TrimOr(i.Slug, title)),
	}
	if y := strings.TrimSpace(i.Year); y != "" {
		b.FirstPublishYear = domain.ExtractYear(y)
	}
	if c := strings.TrimSpace(i.CoverURL); c != "" {
		b.CoverURL = &c
	}
	return b
}

// CatalogImportInput is an external catalog hit chosen for import.
type CatalogImportInput struct {
	OpenKey string
	ISBN    string
	BookInput
}

// ---------------------------------------------------------------------------
// Reading list
// ---------------------------------------------------------------------------

func normalizeReadingNote(note string) (string, error) {
	note = strings.TrimSpace(note)
	if utf8.RuneCountInString(note) > domain.MaxReadingNoteLength {
		return "", domain.NewValidationError("reading_note", "Reading note must be 280 characters or fewer")
	}
	return note, nil
}

// ---------------------------------------------------------------------------
// Gallery
// ---------------------------------------------------------------------------

// GalleryInput holds the gallery item form. ImageURL and StorageRef come
// from a previous UploadGalleryImage call.
type GalleryInput struct {
	Category    string
	Title       string
	Caption     string
	ImageURL    string
	StorageRef  string
	SortOrder   string
	IsPublished string
}

func (i GalleryInput) record() domain.GalleryItem {
	return domain.GalleryItem{
		Category:        domain.NormalizeGalleryCategory(i.Category),
		Title:           domain.TrimOr(i.Title, domain.DefaultContentTitle),
		Caption:         strings.TrimSpace(i.Caption),
		ImageURL:        strings.TrimSpace(i.ImageURL),
		StoragePublicID: strings.TrimSpace(i.StorageRef),
		SortOrder:       domain.ParseSortOrder(i.SortOrder),
		IsPublished:     domain.ParseFormBool(i.IsPublished),
	}
}

// ---------------------------------------------------------------------------
// Music
// ---------------------------------------------------------------------------

// MusicInput holds the music link form.
type MusicInput struct {
	Title       string
	YouTubeURL  string
	SortOrder   string
	IsPublished string
}

// Validate checks all fields and collects all errors.
func (i MusicInput) Validate() error {
	var errs []domain.FieldError
	errs = required(errs, "youtube_url", domain.ExtractYouTubeID(i.YouTubeURL), "Provide a valid YouTube URL")
	return validationResult(errs)
}

func (i MusicInput) record() domain.MusicLink {
	return domain.MusicLink{
		Title:       domain.TrimOr(i.Title, domain.DefaultContentTitle),
		YouTubeURL:  strings.TrimSpace(i.YouTubeURL),
		YouTubeID:   domain.ExtractYouTubeID(i.YouTubeURL),
		SortOrder:   domain.ParseSortOrder(i.SortOrder),
		IsPublished: domain.ParseFormBool(i.IsPublished),
	}
}

// ---------------------------------------------------------------------------
// Notes and logs
// ---------------------------------------------------------------------------

// NoteInput holds the note form. Text replaces Body when attached; Audio is
// stored as notes-audio.
type NoteInput struct {
	Kind        string
	Title       string
	Body        string
	IsPublished string
	Text        *FileUpload
	Audio       *FileUpload
}

// ---------------------------------------------------------------------------
// Certifications
// ---------------------------------------------------------------------------

// CertificationInput holds the Credly badge form.
type CertificationInput struct {
	Title       string
	CredlyURL   string
	SortOrder   string
	IsPublished string
}

// Validate checks all fields and collects all errors.
func (i CertificationInput) Validate() error {
	var errs []domain.FieldError
	errs = required(errs, "credly_url", domain.ExtractBadgeUUID(i.CredlyURL), "Provide a valid Credly badge public URL")
	return validationResult(errs)
}

func (i CertificationInput) record() domain.Certification {
	return domain.Certification{
		Title:        domain.TrimOr(i.Title, domain.DefaultBadgeTitle),
		CredlyURL:    strings.TrimSpace(i.CredlyURL),
		BadgeUUID:    domain.ExtractBadgeUUID(i.CredlyURL),
		BadgeHost:    domain.CredlyHost,
		IframeWidth:  domain.CredlyIframeWidth,
		IframeHeight: domain.CredlyIframeHeight,
		SortOrder:    domain.ParseSortOrder(i.SortOrder),
		IsPublished:  domain.ParseFormBool(i.IsPublished),
	}
}

// ---------------------------------------------------------------------------
// Research items
// ---------------------------------------------------------------------------

// ResearchInput holds the repository or research PDF form.
type ResearchInput struct {
	Kind        string
	Title       string
	URL         string
	Description string
	SortOrder   string
	IsPublished string
	PDF         *FileUpload
}

// Validate checks the fields that do not depend on an upload.
func (i ResearchInput) Validate() error {
	var errs []domain.FieldError
	if !domain.ResearchKind(normalizeKind(i.Kind)).IsValid() {
		errs = append(errs, domain.FieldError{Field: "kind", Message: "Choose either Repository or Research PDF"})
	}
	errs = required(errs, "title", strings.TrimSpace(i.Title), "Title is required")
	return validationResult(errs)
}

func normalizeKind(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func validResearchURL(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") || strings.HasPrefix(u, "/")
}

// ---------------------------------------------------------------------------
// Settings
// ---------------------------------------------------------------------------

func normalizeBanner(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.NewValidationError("text", "Notice banner text is required")
	}
	if utf8.RuneCountInString(text) > domain.MaxHomeBannerLength {
		return "", domain.NewValidationError("text", "Notice banner text must be 240 characters or fewer")
	}
	return text, nil
}
