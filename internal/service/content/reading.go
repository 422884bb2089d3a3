package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

// ListPublicReadingPage returns one page of the reading list joined with books.
func (s *Service) ListPublicReadingPage(ctx context.Context, pageRaw, perPageRaw string) (domain.Page[domain.ReadingListItem], error) {
	page := domain.ParsePositiveInt(pageRaw, DefaultPage, MaxPage)
	perPage := domain.ParsePositiveInt(perPageRaw, DefaultPerPage, MaxPerPage)

	p, err := s.stores.Reading.ListPage(ctx, page, perPage)
	if err != nil {
		if s.degraded(ctx, "reading.list_page", err) {
			return domain.EmptyPage[domain.ReadingListItem](perPage), nil
		}
		return domain.Page[domain.ReadingListItem]{}, fmt.Errorf("content.ListPublicReadingPage: %w", err)
	}
	return p, nil
}

// ListAdminReading returns the newest reading-list entries.
func (s *Service) ListAdminReading(ctx context.Context, limitRaw string) ([]domain.ReadingListItem, error) {
	limit := domain.ParsePositiveInt(limitRaw, DefaultAdminList, MaxAdminList)
	items, err := s.stores.Reading.List(ctx, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("content.ListAdminReading: %w", err)
	}
	return items, nil
}

// CountReading returns the number of reading-list entries.
func (s *Service) CountReading(ctx context.Context) (int, error) {
	return s.stores.Reading.Count(ctx)
}

// AddToReading puts a book on the reading list. A book can be listed once.
func (s *Service) AddToReading(ctx context.Context, bookID int64, note string) (domain.ReadingListEntry, error) {
	if bookID <= 0 {
		return domain.ReadingListEntry{}, domain.NewValidationError("book_id", "Choose a book from library before adding")
	}
	note, err := normalizeReadingNote(note)
	if err != nil {
		return domain.ReadingListEntry{}, err
	}

	var created domain.ReadingListEntry
	err = s.audited(ctx, func(ctx context.Context) (domain.AuditEntry, error) {
		if _, err := s.stores.Books.GetByID(ctx, bookID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.AuditEntry{}, domain.NewValidationError("book_id", "Book not found")
			}
			return domain.AuditEntry{}, err
		}

		created, err = s.stores.Reading.Insert(ctx, bookID, note)
		switch {
		case errors.Is(err, domain.ErrAlreadyExists):
			return domain.AuditEntry{}, domain.NewValidationError("book_id", "Book is already in reading list")
		case errors.Is(err, domain.ErrReferenced):
			return domain.AuditEntry{}, domain.NewValidationError("book_id", "Book not found")
		case err != nil:
			return domain.AuditEntry{}, err
		}
		return auditEntry(domain.ActionFor("reading", "create"), "reading_item", created.ID,
			map[string]any{"book_id": formatID(bookID)}), nil
	})
	if err != nil {
		return domain.ReadingListEntry{}, wrap("content.AddToReading", err)
	}
	return created, nil
}

// UpdateReadingNote replaces the note of an entry.
func (s *Service) UpdateReadingNote(ctx context.Context, id int64, note string) (domain.ReadingListEntry, error) {
	note, err := normalizeReadingNote(note)
	if err != nil {
		return domain.ReadingListEntry{}, err
	}

	var updated domain.ReadingListEntry
	err = s.audited(ctx, func(ctx context.Context) (domain.AuditEntry, error) {
		updated, err = s.stores.Reading.UpdateNote(ctx, id, note)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		return auditEntry(domain.ActionFor("reading", "update"), "reading_item", id, nil), nil
	})
	if err != nil {
		return domain.ReadingListEntry{}, wrap("content.UpdateReadingNote", err)
	}
	return updated, nil
}

// RemoveFromReading deletes an entry. The book itself stays.
func (s *Service) RemoveFromReading(ctx context.Context, id int64) error {
	err := s.audited(ctx, func(ctx context.Context) (domain.AuditEntry, error) {
		deleted, err := s.stores.Reading.Delete(ctx, id)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		if !deleted {
			return domain.AuditEntry{}, domain.ErrNotFound
		}
		return auditEntry(domain.ActionFor("reading", "delete"), "reading_item", id, nil), nil
	})
	return wrap("content.RemoveFromReading", err)
}
