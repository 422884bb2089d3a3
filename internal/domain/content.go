package domain

import (
	"net/url"
	"regexp"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Gallery
// ---------------------------------------------------------------------------

// GalleryCategory groups gallery items. "all" doubles as the no-filter value.
type GalleryCategory string

const (
	GallerySketches GalleryCategory = "sketches"
	GalleryMoments  GalleryCategory = "moments"
	GalleryAll      GalleryCategory = "all"
)

// NormalizeGalleryCategory maps unknown or blank input to GalleryAll.
func NormalizeGalleryCategory(raw string) GalleryCategory {
	switch c := GalleryCategory(strings.ToLower(strings.TrimSpace(raw))); c {
	case GallerySketches, GalleryMoments, GalleryAll:
		return c
	}
	return GalleryAll
}

// Filter returns the category filter value; "all" filters nothing.
func (c GalleryCategory) Filter() string {
	if c == GalleryAll {
		return ""
	}
	return string(c)
}

// GalleryItem is an uploaded image with caption.
type GalleryItem struct {
	ID              int64           `json:"id"`
	Category        GalleryCategory `json:"category"`
	Title           string          `json:"title"`
	Caption         string          `json:"caption"`
	ImageURL        string          `json:"image_url"`
	StoragePublicID string          `json:"storage_public_id"`
	SortOrder       int             `json:"sort_order"`
	IsPublished     bool            `json:"is_published"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ---------------------------------------------------------------------------
// Music
// ---------------------------------------------------------------------------

var (
	youtubeIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	youtubeURLPattern = []*regexp.Regexp{
		regexp.MustCompile(`youtube\.com/watch\?v=([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`youtube\.com/embed/([A-Za-z0-9_-]{11})`),
		regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`),
	}
)

// ExtractYouTubeID accepts a bare 11-character id or a watch, embed or
// short URL. Returns "" when nothing matches.
func ExtractYouTubeID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if youtubeIDPattern.MatchString(s) {
		return s
	}
	for _, p := range youtubeURLPattern {
		if m := p.FindStringSubmatch(s); m != nil {
			return m[1]
		}
	}
	return ""
}

// MusicLink is a YouTube video shown on the music page.
type MusicLink struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	YouTubeURL  string    `json:"youtube_url"`
	YouTubeID   string    `json:"youtube_id"`
	SortOrder   int       `json:"sort_order"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EmbedURL returns the iframe URL for the video.
func (m MusicLink) EmbedURL() string {
	if m.YouTubeID == "" {
		return ""
	}
	return "https://www.youtube.com/embed/" + m.YouTubeID
}

// ---------------------------------------------------------------------------
// Notes and logs
// ---------------------------------------------------------------------------

// NoteKind distinguishes notes from logs.
type NoteKind string

const (
	NoteKindNote NoteKind = "note"
	NoteKindLog  NoteKind = "log"
)

// NormalizeNoteKind defaults unknown kinds to note.
func NormalizeNoteKind(raw string) NoteKind {
	if k := NoteKind(strings.ToLower(strings.TrimSpace(raw))); k == NoteKindLog {
		return k
	}
	return NoteKindNote
}

// NoteEntry is a text note or log, optionally with an audio attachment.
type NoteEntry struct {
	ID             int64     `json:"id"`
	Kind           NoteKind  `json:"kind"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	SourceFilename string    `json:"source_filename"`
	AudioURL       string    `json:"audio_url"`
	AudioFilename  string    `json:"audio_filename"`
	AudioStorageID string    `json:"audio_storage_id"`
	IsPublished    bool      `json:"is_published"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ---------------------------------------------------------------------------
// Certifications
// ---------------------------------------------------------------------------

var badgeUUIDPattern = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)

// Credly embed defaults.
const (
	CredlyHost          = "https://www.credly.com"
	CredlyIframeWidth   = 150
	CredlyIframeHeight  = 270
	DefaultBadgeTitle   = "Credly Badge"
	DefaultContentTitle = "Untitled"
)

// ExtractBadgeUUID finds the badge UUID in a Credly URL, lowercased.
func ExtractBadgeUUID(s string) string {
	return strings.ToLower(badgeUUIDPattern.FindString(s))
}

// Certification is an embedded Credly badge. BadgeUUID is unique.
type Certification struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	CredlyURL    string    `json:"credly_url"`
	BadgeUUID    string    `json:"badge_uuid"`
	BadgeHost    string    `json:"badge_host"`
	IframeWidth  int       `json:"iframe_width"`
	IframeHeight int       `json:"iframe_height"`
	SortOrder    int       `json:"sort_order"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ---------------------------------------------------------------------------
// Research items
// ---------------------------------------------------------------------------

// ResearchKind separates repository links from uploaded research PDFs.
type ResearchKind string

const (
	ResearchRepository ResearchKind = "repository"
	ResearchPDF        ResearchKind = "research_pdf"
)

// IsValid reports whether k is a known kind.
func (k ResearchKind) IsValid() bool {
	return k == ResearchRepository || k == ResearchPDF
}

// ResearchItem is a GitHub repository link or a research PDF.
type ResearchItem struct {
	ID              int64        `json:"id"`
	Kind            ResearchKind `json:"kind"`
	Title           string       `json:"title"`
	URL             string       `json:"url"`
	Description     string       `json:"description"`
	SourceFilename  string       `json:"source_filename"`
	StoragePublicID string       `json:"storage_public_id"`
	SortOrder       int          `json:"sort_order"`
	IsPublished     bool         `json:"is_published"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// KindLabel is the human label of the item kind.
func (r ResearchItem) KindLabel() string {
	if r.Kind == ResearchRepository {
		return "Repository"
	}
	return "Research PDF"
}

// RepoPath returns "owner/repo" for github.com repository URLs, else "".
func (r ResearchItem) RepoPath() string {
	if r.Kind != ResearchRepository {
		return ""
	}
	u, err := url.Parse(strings.TrimSpace(r.URL))
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Host)
	if host != "github.com" && host != "www.github.com" {
		return ""
	}
	var parts []string
	for _, p := range strings.Split(u.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return ""
	}
	return parts[0] + "/" + parts[1]
}

// RepoPreviewImage returns the GitHub social preview for repository items.
func (r ResearchItem) RepoPreviewImage() string {
	path := r.RepoPath()
	if path == "" {
		return ""
	}
	return "https://opengraph.githubassets.com/1/" + path
}

// ---------------------------------------------------------------------------
// Site settings
// ---------------------------------------------------------------------------

// SiteSetting is a key/value display setting.
type SiteSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Home banner setting.
const (
	HomeBannerKey         = "home_notice_banner_text"
	DefaultHomeBannerText = "this should be something fun for those willing to read"
	MaxHomeBannerLength   = 240
)

// ---------------------------------------------------------------------------
// Dashboard
// ---------------------------------------------------------------------------

// DashboardCounts summarizes the admin landing page.
type DashboardCounts struct {
	Books          int `json:"books"`
	ReadingList    int `json:"reading_list"`
	Gallery        int `json:"gallery"`
	Music          int `json:"music"`
	Notes          int `json:"notes"`
	Certifications int `json:"certifications"`
	Research       int `json:"research"`
	FailedLogins   int `json:"failed_logins"`
}
