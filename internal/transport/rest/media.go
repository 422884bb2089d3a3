package rest

import (
	"bytes"
	"context"
	"log/slog"
	"mime"
	"net/http"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

type blobOpener interface {
	Open(ctx context.Context, kind domain.MediaKind, id string) (domain.MediaBlob, error)
}

// MediaHandler serves blobs held by the embedded media backend.
type MediaHandler struct {
	blobs blobOpener
	log   *slog.Logger
}

// NewMediaHandler creates a MediaHandler.
func NewMediaHandler(blobs blobOpener, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{blobs: blobs, log: logger.With("handler", "media")}
}

// Serve handles GET /media/{kind}/{id}/{filename}. The filename segment is
// cosmetic; the blob is addressed by kind and id.
func (h *MediaHandler) Serve(w http.ResponseWriter, r *http.Request) {
	kind := domain.MediaKind(r.PathValue("kind"))
	if !kind.IsValid() {
		http.NotFound(w, r)
		return
	}

	blob, err := h.blobs.Open(r.Context(), kind, r.PathValue("id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	contentType := blob.ContentType
	if kind == domain.MediaResearchPDF {
		contentType = "application/pdf"
		filename := domain.TrimOr(blob.Filename, "research.pdf")
		w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": filename}))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeContent(w, r, blob.Filename, blob.CreatedAt, bytes.NewReader(blob.Data))
}
