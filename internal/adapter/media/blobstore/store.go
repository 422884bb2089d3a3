// Package blobstore is the embedded media backend: bytes live in the
// media_blobs table and are served by the application under a base path.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

// RefPrefix marks references owned by this backend.
const RefPrefix = "pg:"

// blobRepo is the persistence this backend needs.
type blobRepo interface {
	Put(ctx context.Context, b domain.MediaBlob) (domain.MediaBlob, error)
	Get(ctx context.Context, kind domain.MediaKind, id string) (domain.MediaBlob, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Store implements the media backend over a blob repository.
type Store struct {
	repo     blobRepo
	basePath string
	log      *slog.Logger
}

// New creates an embedded store. basePath is the URL prefix, e.g. "/media".
func New(repo blobRepo, basePath string, logger *slog.Logger) *Store {
	return &Store{
		repo:     repo,
		basePath: strings.TrimRight(basePath, "/"),
		log:      logger.With("adapter", "blobstore"),
	}
}

// Name identifies the backend in logs.
func (s *Store) Name() string { return "embedded" }

// Owns reports whether ref was produced by this backend.
func (s *Store) Owns(ref string) bool {
	return strings.HasPrefix(ref, RefPrefix)
}

// Put stores data and returns its public URL and reference.
func (s *Store) Put(ctx context.Context, kind domain.MediaKind, filename, contentType string, data []byte) (domain.StoredMedia, error) {
	b, err := s.repo.Put(ctx, domain.MediaBlob{
		ID:          uuid.NewString(),
		Kind:        kind,
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		return domain.StoredMedia{}, fmt.Errorf("blobstore put: %w", err)
	}
	return domain.StoredMedia{
		URL:        s.URL(kind, b.ID, filename),
		StorageRef: RefPrefix + b.ID,
		Filename:   filename,
	}, nil
}

// URL builds the public path of a blob.
func (s *Store) URL(kind domain.MediaKind, id, filename string) string {
	return s.basePath + "/" + string(kind) + "/" + id + "/" + url.PathEscape(filename)
}

// Open returns the blob for the media handler.
func (s *Store) Open(ctx context.Context, kind domain.MediaKind, id string) (domain.MediaBlob, error) {
	if !kind.IsValid() {
		return domain.MediaBlob{}, domain.ErrNotFound
	}
	return s.repo.Get(ctx, kind, id)
}

// Delete removes the blob behind ref. Foreign, malformed and already
// deleted references are a no-op.
func (s *Store) Delete(ctx context.Context, ref string) error {
	if !s.Owns(ref) {
		s.log.DebugContext(ctx, "ignoring foreign media ref", slog.String("ref", ref))
		return nil
	}
	id := strings.TrimPrefix(ref, RefPrefix)
	if _, err := uuid.Parse(id); err != nil {
		s.log.WarnContext(ctx, "ignoring malformed media ref", slog.String("ref", ref))
		return nil
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("blobstore delete %s: %w", id, err)
	}
	if !deleted {
		s.log.DebugContext(ctx, "media blob already gone", slog.String("ref", ref))
	}
	return nil
}
