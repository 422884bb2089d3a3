// Package media validates uploads and hands them to the configured storage
// backend. Exactly one backend is active per process.
package media

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

// Backend persists validated media. Implementations: blobstore (embedded,
// refs "pg:…") and objectstore (external, refs "s3:…").
type Backend interface {
	Name() string
	Owns(ref string) bool
	Put(ctx context.Context, kind domain.MediaKind, filename, contentType string, data []byte) (domain.StoredMedia, error)
	Delete(ctx context.Context, ref string) error
}

// UploadInput is one file to store.
type UploadInput struct {
	Kind        domain.MediaKind
	Filename    string
	ContentType string
	Data        []byte
}

// Service validates and stores media.
type Service struct {
	log     *slog.Logger
	backend Backend
}

// NewService creates a media service over backend.
func NewService(logger *slog.Logger, backend Backend) *Service {
	return &Service{
		log:     logger.With("service", "media", "backend", backend.Name()),
		backend: backend,
	}
}

// Backend returns the active backend name.
func (s *Service) Backend() string { return s.backend.Name() }

// Upload validates input for its kind and stores it. Nothing is persisted
// when validation fails.
func (s *Service) Upload(ctx context.Context, input UploadInput) (domain.StoredMedia, error) {
	normalized, err := validateUpload(input)
	if err != nil {
		return domain.StoredMedia{}, err
	}

	stored, err := s.backend.Put(ctx, normalized.Kind, normalized.Filename, normalized.ContentType, normalized.Data)
	if err != nil {
		return domain.StoredMedia{}, fmt.Errorf("media.Upload %s: %w", normalized.Kind, err)
	}

	s.log.InfoContext(ctx, "media stored",
		slog.String("kind", string(normalized.Kind)),
		slog.String("ref", stored.StorageRef),
		slog.Int("bytes", len(normalized.Data)))

	return stored, nil
}

// Delete removes the blob behind ref. Empty refs and refs owned by another
// backend are ignored, so callers may pass whatever a record holds.
func (s *Service) Delete(ctx context.Context, ref string) error {
	if ref == "" {
		return nil
	}
	if !s.backend.Owns(ref) {
		s.log.DebugContext(ctx, "media delete skipped: foreign ref", slog.String("ref", ref))
		return nil
	}
	if err := s.backend.Delete(ctx, ref); err != nil {
		return fmt.Errorf("media.Delete: %w", err)
	}
	return nil
}

// DeleteQuietly deletes ref and logs a failure instead of returning it.
// Used after a record write has already committed.
func (s *Service) DeleteQuietly(ctx context.Context, ref string) {
	if err := s.Delete(ctx, ref); err != nil {
		s.log.ErrorContext(ctx, "orphaned media blob",
			slog.String("ref", ref),
			slog.String("error", err.Error()))
	}
}
