package content

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

// ListPublicGallery returns one cursor page of published items. Unknown
// categories list everything.
func (s *Service) ListPublicGallery(ctx context.Context, category, limitRaw, cursor string) ([]domain.GalleryItem, string, error) {
	limit := domain.ParsePositiveInt(limitRaw, DefaultPublicLimit, MaxPublicLimit)
	f := domain.ContentFilter{Category: domain.NormalizeGalleryCategory(category).Filter()}

	items, next, err := s.stores.Gallery.ListPublished(ctx, f, limit, cursor)
	if err != nil {
		if s.degraded(ctx, "gallery.list_public", err) {
			return []domain.GalleryItem{}, "", nil
		}
		return nil, "", fmt.Errorf("content.ListPublicGallery: %w", err)
	}
	return items, next, nil
}

// ListAdminGallery returns every item of category in editorial order.
func (s *Service) ListAdminGallery(ctx context.Context, category string) ([]domain.GalleryItem, error) {
	f := domain.ContentFilter{Category: domain.NormalizeGalleryCategory(category).Filter()}
	items, err := s.stores.Gallery.List(ctx, f, domain.OrderEditorial, 0)
	if err != nil {
		return nil, fmt.Errorf("content.ListAdminGallery: %w", err)
	}
	return items, nil
}

// GetGalleryItem returns an item by id.
func (s *Service) GetGalleryItem(ctx context.Context, id int64) (domain.GalleryItem, error) {
	return s.stores.Gallery.GetByID(ctx, id)
}

// CountGallery returns the number of gallery items.
func (s *Service) CountGallery(ctx context.Context) (int, error) {
	return s.stores.Gallery.Count(ctx, domain.ContentFilter{})
}

// UploadGalleryImage validates and stores an image. The result is passed
// back in GalleryInput.ImageURL and GalleryInput.StorageRef.
func (s *Service) UploadGalleryImage(ctx context.Context, file FileUpload) (domain.StoredMedia, error) {
	stored, err := s.uploadFor(ctx, domain.MediaGallery, &file)
	if err != nil {
		return domain.StoredMedia{}, err
	}
	if stored == nil {
		return domain.StoredMedia{}, domain.NewValidationError("file", "Missing image file")
	}
	return *stored, nil
}

// CreateGalleryItem stores a new gallery item.
func (s *Service) CreateGalleryItem(ctx context.Context, input GalleryInput) (domain.GalleryItem, error) {
	item := input.record()

	var created domain.GalleryItem
	err := s.audited(ctx, func(ctx context.Context) (domain.AuditEntry, error) {
		var err error
		created, err = s.stores.Gallery.Insert(ctx, item)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		return auditEntry(domain.ActionFor("gallery", "create"), "gallery_item", created.ID, nil), nil
	})
	if err != nil {
		return domain.GalleryItem{}, wrap("content.CreateGalleryItem", err)
	}
	return created, nil
}

// UpdateGalleryItem rewrites an item. An input without an image keeps the
// current one; a new image replaces it and the old blob is deleted once the
// write committed.
func (s *Service) UpdateGalleryItem(ctx context.Context, id int64, input GalleryInput) (domain.GalleryItem, error) {
	next := input.record()

	var current, updated domain.GalleryItem
	err := s.audited(ctx, func(ctx context.Context) (domain.AuditEntry, error) {
		var err error
		current, err = s.stores.Gallery.GetByIDForUpdate(ctx, id)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		if next.ImageURL == "" {
			next.ImageURL = current.ImageURL
			next.StoragePublicID = current.StoragePublicID
		}
		updated, err = s.stores.Gallery.Update(ctx, id, next)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		return auditEntry(domain.ActionFor("gallery", "update"), "gallery_item", id, nil), nil
	})
	if err != nil {
		return domain.GalleryItem{}, wrap("content.UpdateGalleryItem", err)
	}

	s.replaced(ctx, current.StoragePublicID, updated.StoragePublicID)
	return updated, nil
}

// DeleteGalleryItem removes an item and then its image blob.
func (s *Service) DeleteGalleryItem(ctx context.Context, id int64) error {
	var current domain.GalleryItem
	err := s.audited(ctx, func(ctx context.Context) (domain.AuditEntry, error) {
		var err error
		current, err = s.stores.Gallery.GetByIDForUpdate(ctx, id)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		if _, err := s.stores.Gallery.Delete(ctx, id); err != nil {
			return domain.AuditEntry{}, err
		}
		return auditEntry(domain.ActionFor("gallery", "delete"), "gallery_item", id, nil), nil
	})
	if err != nil {
		return wrap("content.DeleteGalleryItem", err)
	}

	s.media.DeleteQuietly(ctx, current.StoragePublicID)
	return nil
}

// SetGalleryArchived hides an item from the public gallery or restores it.
// Archiving unpublishes; restoring publishes.
func (s *Service) SetGalleryArchived(ctx context.Context, id int64, archived bool) (domain.GalleryItem, error) {
	action := domain.AuditGalleryRestore
	if archived {
		action = domain.AuditGalleryArchive
	}

	var updated domain.GalleryItem
	err := s.audited(ctx, func(ctx context.Context) (domain.AuditEntry, error) {
		var err error
		updated, err = s.stores.Gallery.SetPublished(ctx, id, !archived)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		return auditEntry(action, "gallery_item", id, nil), nil
	})
	if err != nil {
		return domain.GalleryItem{}, wrap("content.SetGalleryArchived", err)
	}

	s.log.InfoContext(ctx, "gallery item visibility changed",
		slog.Int64("id", id),
		slog.Bool("archived", archived))
	return updated, nil
}
