package media

import (
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

// Upload limits.
const (
	MaxAudioBytes = 20 << 20
	MaxPDFBytes   = 25 << 20
	MaxTextBytes  = 2 << 20
)

var (
	imageTypes = map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
		"image/gif":  true,
	}
	audioExtensions = map[string]bool{
		".mp3": true, ".wav": true, ".m4a": true, ".ogg": true,
		".aac": true, ".flac": true, ".webm": true,
	}
	textExtensions = map[string]bool{".txt": true, ".md": true, ".log": true}

	unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
)

// SanitizeFilename reduces name to a safe base name. When nothing usable
// remains a random name with fallbackExt is returned.
func SanitizeFilename(name, fallbackExt string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	if name == "" {
		return strings.ReplaceAll(uuid.NewString(), "-", "") + fallbackExt
	}
	return name
}

func extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

func fileError(message string) error {
	return domain.NewValidationError("file", message)
}

func validateUpload(in UploadInput) (UploadInput, error) {
	if len(in.Data) == 0 {
		return in, fileError("Missing file")
	}

	switch in.Kind {
	case domain.MediaGallery:
		ct := normalizeContentType(in.ContentType)
		if ct == "" || ct == "application/octet-stream" {
			ct = normalizeContentType(http.DetectContentType(in.Data))
		}
		if !imageTypes[ct] {
			return in, fileError("Unsupported image format")
		}
		in.ContentType = ct
		in.Filename = SanitizeFilename(in.Filename, ".bin")

	case domain.MediaNotesAudio:
		ext := extension(in.Filename)
		if !audioExtensions[ext] {
			return in, fileError("Only audio files are allowed (.mp3, .wav, .m4a, .ogg, .aac, .flac, .webm)")
		}
		if len(in.Data) > MaxAudioBytes {
			return in, fileError("Audio file is too large (max 20MB)")
		}
		in.Filename = SanitizeFilename(in.Filename, ext)
		if in.ContentType = normalizeContentType(in.ContentType); in.ContentType == "" {
			in.ContentType = "application/octet-stream"
		}

	case domain.MediaResearchPDF:
		if extension(in.Filename) != ".pdf" {
			return in, fileError("Only PDF files are allowed (.pdf)")
		}
		if len(in.Data) > MaxPDFBytes {
			return in, fileError("PDF file is too large (max 25MB)")
		}
		in.Filename = SanitizeFilename(in.Filename, ".pdf")
		in.ContentType = "application/pdf"

	default:
		return in, domain.NewValidationError("kind", "unknown media kind")
	}

	return in, nil
}

func normalizeContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}

// ReadText validates an uploaded note body and returns it trimmed. Text
// uploads are never stored as media.
func ReadText(filename string, data []byte) (string, error) {
	if !textExtensions[extension(filename)] {
		return "", fileError("Only .txt, .md, and .log uploads are allowed")
	}
	if len(data) > MaxTextBytes {
		return "", fileError("File is too large (max 2MB)")
	}
	if !utf8.Valid(data) {
		return "", fileError("Upload must be UTF-8 text")
	}
	return strings.TrimSpace(string(data)), nil
}
