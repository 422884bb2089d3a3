// Package objectstore is the external media backend on MinIO or any
// S3-compatible service.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/heartmarshall/archive-backend/internal/config"
	"github.com/heartmarshall/archive-backend/internal/domain"
)

// RefPrefix marks references owned by this backend.
const RefPrefix = "s3:"

// objectClient is the subset of *minio.Client the store uses.
type objectClient interface {
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error
}

// Store implements the media backend over object storage.
type Store struct {
	client        objectClient
	bucket        string
	publicBaseURL string
	log           *slog.Logger
}

// Connect creates a MinIO client from cfg and ensures the bucket exists.
func Connect(ctx context.Context, cfg config.MediaConfig, logger *slog.Logger) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(checkCtx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(checkCtx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}
	return New(client, cfg.Bucket, cfg.PublicBaseURL, logger), nil
}

// New wraps an existing client.
func New(client objectClient, bucket, publicBaseURL string, logger *slog.Logger) *Store {
	return &Store{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		log:           logger.With("adapter", "objectstore"),
	}
}

// Name identifies the backend in logs.
func (s *Store) Name() string { return "external" }

// Owns reports whether ref was produced by this backend.
func (s *Store) Owns(ref string) bool {
	return strings.HasPrefix(ref, RefPrefix)
}

// Put uploads data under <kind>/<uuid>/<filename>.
func (s *Store) Put(ctx context.Context, kind domain.MediaKind, filename, contentType string, data []byte) (domain.StoredMedia, error) {
	key := string(kind) + "/" + uuid.NewString() + "/" + filename
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return domain.StoredMedia{}, fmt.Errorf("put object %s: %w", key, err)
	}
	return domain.StoredMedia{
		URL:        s.URL(key),
		StorageRef: RefPrefix + key,
		Filename:   filename,
	}, nil
}

// URL builds the public URL of key.
func (s *Store) URL(key string) string {
	return s.publicBaseURL + "/" + s.bucket + "/" + (&url.URL{Path: key}).EscapedPath()
}

// Delete removes the object behind ref. Foreign and malformed references
// are a no-op; removing a missing object succeeds.
func (s *Store) Delete(ctx context.Context, ref string) error {
	if !s.Owns(ref) {
		s.log.DebugContext(ctx, "ignoring foreign media ref", slog.String("ref", ref))
		return nil
	}
	key := strings.TrimPrefix(ref, RefPrefix)
	parts := strings.Split(key, "/")
	if len(parts) != 3 || !domain.MediaKind(parts[0]).IsValid() || parts[2] == "" {
		s.log.WarnContext(ctx, "ignoring malformed media ref", slog.String("ref", ref))
		return nil
	}
	if _, err := uuid.Parse(parts[1]); err != nil {
		s.log.WarnContext(ctx, "ignoring malformed media ref", slog.String("ref", ref))
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", key, err)
	}
	return nil
}
