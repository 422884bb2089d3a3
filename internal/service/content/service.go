// Package content implements the admin and public operations of every
// content kind: books, reading list, gallery, music, notes, certifications,
// research items and site settings.
//
// Every mutation runs in one transaction with its audit entry. Media blobs
// are uploaded before the record is written and old blobs are deleted only
// after the write committed, so a failure never leaves a record pointing at
// a missing blob.
package content

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heartmarshall/archive-backend/internal/domain"
	"github.com/heartmarshall/archive-backend/internal/service/media"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type store[T any] interface {
	ListPublished(ctx context.Context, f domain.ContentFilter, limit int, cursor string) ([]T, string, error)
	List(ctx context.Context, f domain.ContentFilter, order domain.ListOrder, limit int) ([]T, error)
	ListPage(ctx context.Context, f domain.ContentFilter, order domain.ListOrder, page, perPage int) (domain.Page[T], error)
	Count(ctx context.Context, f domain.ContentFilter) (int, error)
	GetByID(ctx context.Context, id int64) (T, error)
	GetByIDForUpdate(ctx context.Context, id int64) (T, error)
	Exists(ctx context.Context, column string, value any, excludeID int64) (bool, error)
	Insert(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id int64, item T) (T, error)
	SetPublished(ctx context.Context, id int64, published bool) (T, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type bookStore interface {
	store[domain.Book]
	GetByIDOrSlug(ctx context.Context, idOrSlug string) (domain.Book, error)
	ListPreviews(ctx context.Context, limit int) ([]domain.Book, error)
	Slugs(ctx context.Context) ([]string, error)
}

type readingStore interface {
	List(ctx context.Context, limit, offset int) ([]domain.ReadingListItem, error)
	ListPage(ctx context.Context, page, perPage int) (domain.Page[domain.ReadingListItem], error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, bookID int64, note string) (domain.ReadingListEntry, error)
	UpdateNote(ctx context.Context, id int64, note string) (domain.ReadingListEntry, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type settingStore interface {
	Get(ctx context.Context, key string) (domain.SiteSetting, error)
	Upsert(ctx context.Context, key, value string) (domain.SiteSetting, error)
}

type mediaStore interface {
	Upload(ctx context.Context, input media.UploadInput) (domain.StoredMedia, error)
	DeleteQuietly(ctx context.Context, ref string)
}

type catalogSearcher interface {
	Search(ctx context.Context, query string, limit int) []domain.CatalogBook
}

type auditLog interface {
	Log(ctx context.Context, entry domain.AuditEntry) error
	CountByAction(ctx context.Context, action domain.AuditAction) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Stores groups the repositories the service reads and writes.
type Stores struct {
	Books          bookStore
	Reading        readingStore
	Gallery        store[domain.GalleryItem]
	Music          store[domain.MusicLink]
	Notes          store[domain.NoteEntry]
	Certifications store[domain.Certification]
	Research       store[domain.ResearchItem]
	Settings       settingStore
}

// Service implements the content business logic.
type Service struct {
	log     *slog.Logger
	stores  Stores
	media   mediaStore
	catalog catalogSearcher
	audit   auditLog
	tx      txManager
}

// NewService creates a new content service.
func NewService(
	logger *slog.Logger,
	stores Stores,
	media mediaStore,
	catalog catalogSearcher,
	audit auditLog,
	tx txManager,
) *Service {
	return &Service{
		log:     logger.With("service", "content"),
		stores:  stores,
		media:   media,
		catalog: catalog,
		audit:   audit,
		tx:      tx,
	}
}

// ---------------------------------------------------------------------------
// Helpers (private)
// ---------------------------------------------------------------------------

// audited runs fn and logs the entry it returns in the same transaction.
func (s *Service) audited(ctx context.Context, fn func(ctx context.Context) (domain.AuditEntry, error)) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		entry, err := fn(ctx)
		if err != nil {
			return err
		}
		return s.audit.Log(ctx, entry)
	})
}

// degraded reports whether err means the store is unreachable. Public reads
// then render empty instead of failing.
func (s *Service) degraded(ctx context.Context, op string, err error) bool {
	if !errors.Is(err, domain.ErrUnavailable) {
		return false
	}
	s.log.WarnContext(ctx, "store unavailable, serving empty result",
		slog.String("op", op),
		slog.String("error", err.Error()))
	return true
}

// uploadFor stores file when present and returns the stored media.
func (s *Service) uploadFor(ctx context.Context, kind domain.MediaKind, file *FileUpload) (*domain.StoredMedia, error) {
	if file == nil || len(file.Data) == 0 {
		return nil, nil
	}
	stored, err := s.media.Upload(ctx, media.UploadInput{
		Kind:        kind,
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Data:        file.Data,
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// replaced deletes oldRef once a write moved the record to newRef.
func (s *Service) replaced(ctx context.Context, oldRef, newRef string) {
	if oldRef != "" && oldRef != newRef {
		s.media.DeleteQuietly(ctx, oldRef)
	}
}

// abandon drops a blob uploaded for a write that did not commit.
func (s *Service) abandon(ctx context.Context, stored *domain.StoredMedia) {
	if stored != nil {
		s.media.DeleteQuietly(ctx, stored.StorageRef)
	}
}

func auditEntry(action domain.AuditAction, entity string, id int64, meta map[string]any) domain.AuditEntry {
	return domain.AuditEntry{
		Action:   action,
		Entity:   entity,
		EntityID: formatID(id),
		Metadata: meta,
	}
}
