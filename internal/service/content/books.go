package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

// ListPublicBooks returns one cursor page of books matching query.
func (s *Service) ListPublicBooks(ctx context.Context, query, limitRaw, cursor string) ([]domain.Book, string, error) {
	limit := domain.ParsePositiveInt(limitRaw, DefaultPublicLimit, MaxPublicLimit)
	books, next, err := s.stores.Books.ListPublished(ctx, domain.ContentFilter{Query: query}, limit, cursor)
	if err != nil {
		if s.degraded(ctx, "books.list_public", err) {
			return []domain.Book{}, "", nil
		}
		return nil, "", fmt.Errorf("content.ListPublicBooks: %w", err)
	}
	return books, next, nil
}

// ListPublicBooksPage returns one numbered page of books matching query.
func (s *Service) ListPublicBooksPage(ctx context.Context, query, pageRaw, perPageRaw string) (domain.Page[domain.Book], error) {
	page := domain.ParsePositiveInt(pageRaw, DefaultPage, MaxPage)
	perPage := domain.ParsePositiveInt(perPageRaw, DefaultPerPage, MaxPerPage)

	p, err := s.stores.Books.ListPage(ctx, domain.ContentFilter{Query: query}, domain.OrderID, page, perPage)
	if err != nil {
		if s.degraded(ctx, "books.list_page", err) {
			return domain.EmptyPage[domain.Book](perPage), nil
		}
		return domain.Page[domain.Book]{}, fmt.Errorf("content.ListPublicBooksPage: %w", err)
	}
	return p, nil
}

// GetPublicBook looks a book up by numeric id or slug.
func (s *Service) GetPublicBook(ctx context.Context, idOrSlug string) (domain.Book, error) {
	b, err := s.stores.Books.GetByIDOrSlug(ctx, strings.TrimSpace(idOrSlug))
	if err != nil {
		if s.degraded(ctx, "books.get_public", err) {
			return domain.Book{}, domain.ErrNotFound
		}
		return domain.Book{}, err
	}
	return b, nil
}

// ListPreviewBooks returns the most recently updated books with a cover.
func (s *Service) ListPreviewBooks(ctx context.Context) ([]domain.Book, error) {
	books, err := s.stores.Books.ListPreviews(ctx, PreviewBooks)
	if err != nil {
		if s.degraded(ctx, "books.previews", err) {
			return []domain.Book{}, nil
		}
		return nil, fmt.Errorf("content.ListPreviewBooks: %w", err)
	}
	return books, nil
}

// ListAdminBooks returns books matching query for the admin table.
func (s *Service) ListAdminBooks(ctx context.Context, query, limitRaw string) ([]domain.Book, error) {
	limit := domain.ParsePositiveInt(limitRaw, DefaultAdminBooks, MaxAdminBooks)
	books, err := s.stores.Books.List(ctx, domain.ContentFilter{Query: query}, domain.OrderID, limit)
	if err != nil {
		return nil, fmt.Errorf("content.ListAdminBooks: %w", err)
	}
	return books, nil
}

// GetAdminBook returns a book by id.
func (s *Service) GetAdminBook(ctx context.Context, id int64) (domain.Book, error) {
	return s.stores.Books.GetByID(ctx, id)
}

// CountBooks returns the number of books.
func (s *Service) CountBooks(ctx context.Context) (int, error) {
	return s.stores.Books.Count(ctx, domain.ContentFilter{})
}

// CreateBook adds a book from the admin form. The slug is made unique
// against existing slugs.
func (s *Service) CreateBook(ctx context.Context, input BookInput) (domain.Book, error) {
	return s.createBook(ctx, input, domain.ActionFor("books", "create"), nil)
}

// ImportCatalogBook adds a book picked from an external catalog search.
func (s *Service) ImportCatalogBook(ctx context.Context, input CatalogImportInput) (domain.Book, error) {
	meta := map[string]any{
		"source_open_key": strings.TrimSpace(input.OpenKey),
		"source_isbn":     strings.TrimSpace(input.ISBN),
	}
	return s.createBook(ctx, input.BookInput, domain.AuditBooksImport, meta)
}

func (s *Service) createBook(ctx context.Context, input BookInput, action domain.AuditAction, meta map[string]any) (domain.Book, error) {
	if err := input.Validate(); err != nil {
		return domain.Book{}, err
	}
	book := input.record()
	book.OriginalTitle = book.Title

	var created domain.Book
	err := s.audited(ctx, func(ctx context.Context) (domain.AuditEntry, error) {
		taken, err := s.stores.Books.Exists(ctx, "original_title", book.OriginalTitle, 0)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		if taken {
			return domain.AuditEntry{}, domain.NewValidationError("title", "A book with this title already exists")
		}

		slugs, err := s.stores.Books.Slugs(ctx)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		book.Slug = domain.NewSlugSet(slugs...).Allocate(book.Slug)

		created, err = s.stores.Books.Insert(ctx, book)
		if err != nil {
			return domain.AuditEntry{}, bookConflict(err)
		}
		return auditEntry(action, "book", created.ID, meta), nil
	})
	if err != nil {
		return domain.Book{}, wrap("content.CreateBook", err)
	}

	s.log.InfoContext(ctx, "book created", slog.Int64("id", created.ID), slog.String("slug", created.Slug))
	return created, nil
}

// UpdateBook rewrites the editable fields of a book. The slug is recomputed
// from the slug field or the title; a collision with another book is a
// validation error.
func (s *Service) UpdateBook(ctx context.Context, id int64, input BookInput) (domain.Book, error) {
	if err := input.Validate(); err != nil {
		return domain.Book{}, err
	}
	next := input.record()

	var updated domain.Book
	err := s.audited(ctx, func(ctx context.Context) (domain.AuditEntry, error) {
		current, err := s.stores.Books.GetByID(ctx, id)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		taken, err := s.stores.Books.Exists(ctx, "slug", next.Slug, id)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		if taken {
			return domain.AuditEntry{}, domain.NewValidationError("slug", "Slug already exists")
		}

		next.OriginalTitle = current.OriginalTitle
		next.GoogleInfo = current.GoogleInfo
		updated, err = s.stores.Books.Update(ctx, id, next)
		if err != nil {
			return domain.AuditEntry{}, bookConflict(err)
		}
		return auditEntry(domain.ActionFor("books", "update"), "book", id, nil), nil
	})
	if err != nil {
		return domain.Book{}, wrap("content.UpdateBook", err)
	}
	return updated, nil
}

// DeleteBook removes a book. A book on the reading list cannot be deleted.
func (s *Service) DeleteBook(ctx context.Context, id int64) error {
	err := s.audited(ctx, func(ctx context.Context) (domain.AuditEntry, error) {
		deleted, err := s.stores.Books.Delete(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrReferenced) {
				return domain.AuditEntry{}, domain.NewValidationError("book_id", "Remove from reading list first")
			}
			return domain.AuditEntry{}, err
		}
		if !deleted {
			return domain.AuditEntry{}, domain.ErrNotFound
		}
		return auditEntry(domain.ActionFor("books", "delete"), "book", id, nil), nil
	})
	return wrap("content.DeleteBook", err)
}

// SearchCatalog queries the external catalog. It never fails; an
// unreachable catalog yields no results.
func (s *Service) SearchCatalog(ctx context.Context, query, limitRaw string) []domain.CatalogBook {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.CatalogBook{}
	}
	limit := domain.ParsePositiveInt(limitRaw, DefaultCatalog, MaxCatalog)
	return s.catalog.Search(ctx, query, limit)
}

// bookTitleConstraint guards books.original_title; the other unique key on
// books is the slug.
const bookTitleConstraint = "books_original_title_key"

// bookConflict turns a unique violation from a books write into the field
// error for the column that collided.
func bookConflict(err error) error {
	if !errors.Is(err, domain.ErrAlreadyExists) {
		return err
	}
	if domain.ViolatedConstraint(err) == bookTitleConstraint {
		return domain.NewValidationError("title", "A book with this title already exists")
	}
	return domain.NewValidationError("slug", "Slug already exists")
}

// wrap adds op to store errors. Validation and lookup errors are returned
// unchanged so callers can show them as-is.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) || errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
