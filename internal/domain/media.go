package domain

import "time"

// MediaKind selects the validation rules and URL namespace of an upload.
type MediaKind string

const (
	MediaGallery     MediaKind = "gallery"
	MediaNotesAudio  MediaKind = "notes-audio"
	MediaResearchPDF MediaKind = "research-pdf"
)

// IsValid reports whether k is a storable media kind.
func (k MediaKind) IsValid() bool {
	switch k {
	case MediaGallery, MediaNotesAudio, MediaResearchPDF:
		return true
	}
	return false
}

// StoredMedia is the result of a successful upload.
type StoredMedia struct {
	URL        string
	StorageRef string
	Filename   string
}

// MediaBlob is a binary asset held inside the primary store.
type MediaBlob struct {
	ID          string
	Kind        MediaKind
	Filename    string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}
