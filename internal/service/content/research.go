package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

// ListPublicResearch returns published items of one kind.
func (s *Service) ListPublicResearch(ctx context.Context, kind domain.ResearchKind) ([]domain.ResearchItem, error) {
	f := domain.ContentFilter{Category: string(kind), PublishedOnly: true}
	items, err := s.stores.Research.List(ctx, f, domain.OrderEditorial, 0)
	if err != nil {
		if s.degraded(ctx, "research.list_public", err) {
			return []domain.ResearchItem{}, nil
		}
		return nil, fmt.Errorf("content.ListPublicResearch: %w", err)
	}
	return items, nil
}

// ListAdminResearch returns every item grouped by kind.
func (s *Service) ListAdminResearch(ctx context.Context) ([]domain.ResearchItem, error) {
	items, err := s.stores.Research.List(ctx, domain.ContentFilter{}, domain.OrderEditorial, 0)
	if err != nil {
		return nil, fmt.Errorf("content.ListAdminResearch: %w", err)
	}
	return items, nil
}

// CountResearch returns the number of research items.
func (s *Service) CountResearch(ctx context.Context) (int, error) {
	return s.stores.Research.Count(ctx, domain.ContentFilter{})
}

// CreateResearchItem stores a repository link or research PDF.
func (s *Service) CreateResearchItem(ctx context.Context, input ResearchInput) (domain.ResearchItem, error) {
	return s.saveResearchItem(ctx, 0, input)
}

// UpdateResearchItem rewrites an item. Switching to a repository drops the
// stored PDF; uploading a new PDF replaces the old one.
func (s *Service) UpdateResearchItem(ctx context.Context, id int64, input ResearchInput) (domain.ResearchItem, error) {
	return s.saveResearchItem(ctx, id, input)
}

// saveResearchItem uploads a new PDF first, then writes the row. On update
// the current row is locked inside the transaction; a PDF item without a
// new upload keeps the locked row's file, and that file is the one replaced.
func (s *Service) saveResearchItem(ctx context.Context, id int64, input ResearchInput) (domain.ResearchItem, error) {
	if err := input.Validate(); err != nil {
		return domain.ResearchItem{}, err
	}

	item := domain.ResearchItem{
		Kind:        domain.ResearchKind(normalizeKind(input.Kind)),
		Title:       strings.TrimSpace(input.Title),
		URL:         strings.TrimSpace(input.URL),
		Description: strings.TrimSpace(input.Description),
		SortOrder:   domain.ParseSortOrder(input.SortOrder),
		IsPublished: domain.ParseFormBool(input.IsPublished),
	}

	var pdf *domain.StoredMedia
	if item.Kind == domain.ResearchPDF && input.PDF != nil && input.PDF.Filename != "" {
		var err error
		if pdf, err = s.uploadFor(ctx, domain.MediaResearchPDF, input.PDF); err != nil {
			return domain.ResearchItem{}, err
		}
		if pdf != nil {
			item.URL = pdf.URL
			item.SourceFilename = pdf.Filename
			item.StoragePublicID = pdf.StorageRef
		}
	}

	var saved domain.ResearchItem
	var previousRef string
	err := s.audited(ctx, func(ctx context.Context) (domain.AuditEntry, error) {
		var current domain.ResearchItem
		if id != 0 {
			var err error
			if current, err = s.stores.Research.GetByIDForUpdate(ctx, id); err != nil {
				return domain.AuditEntry{}, err
			}
			previousRef = current.StoragePublicID
		}
		if item.Kind == domain.ResearchPDF && pdf == nil {
			item.SourceFilename = current.SourceFilename
			item.StoragePublicID = current.StoragePublicID
			if item.URL == "" && current.StoragePublicID != "" {
				item.URL = current.URL
			}
		}
		if !validResearchURL(item.URL) {
			return domain.AuditEntry{}, invalidResearchURL()
		}

		var err error
		verb := "create"
		if id == 0 {
			saved, err = s.stores.Research.Insert(ctx, item)
		} else {
			verb = "update"
			saved, err = s.stores.Research.Update(ctx, id, item)
		}
		if err != nil {
			return domain.AuditEntry{}, err
		}
		return auditEntry(domain.ActionFor("github_research", verb), "github_research_item", saved.ID,
			map[string]any{"kind": string(saved.Kind)}), nil
	})
	if err != nil {
		s.abandon(ctx, pdf)
		return domain.ResearchItem{}, wrap("content.SaveResearchItem", err)
	}

	s.replaced(ctx, previousRef, saved.StoragePublicID)
	return saved, nil
}

func invalidResearchURL() error {
	return domain.NewValidationError("url", "Provide a valid URL or upload a PDF file")
}

// DeleteResearchItem removes an item and then its PDF blob.
func (s *Service) DeleteResearchItem(ctx context.Context, id int64) error {
	var current domain.ResearchItem
	err := s.audited(ctx, func(ctx context.Context) (domain.AuditEntry, error) {
		var err error
		current, err = s.stores.Research.GetByIDForUpdate(ctx, id)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		if _, err := s.stores.Research.Delete(ctx, id); err != nil {
			return domain.AuditEntry{}, err
		}
		return auditEntry(domain.ActionFor("github_research", "delete"), "github_research_item", id, nil), nil
	})
	if err != nil {
		return wrap("content.DeleteResearchItem", err)
	}

	s.media.DeleteQuietly(ctx, current.StoragePublicID)
	return nil
}
