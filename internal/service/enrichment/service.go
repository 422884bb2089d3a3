// Package enrichment fills missing book metadata (cover, first publish
// year) from the external catalog.
package enrichment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

//go:generate moq -out book_store_mock_test.go -pkg enrichment . bookStore
//go:generate moq -out catalog_searcher_mock_test.go -pkg enrichment . catalogSearcher
//go:generate moq -out audit_log_mock_test.go -pkg enrichment . auditLog

type bookStore interface {
	ListMissingMetadata(ctx context.Context, limit int) ([]domain.Book, error)
	Update(ctx context.Context, id int64, item domain.Book) (domain.Book, error)
}

type catalogSearcher interface {
	Search(ctx context.Context, query string, limit int) []domain.CatalogBook
}

type auditLog interface {
	Log(ctx context.Context, entry domain.AuditEntry) error
}

const (
	defaultBatch    = 50
	candidatesLimit = 5
)

// Options controls one enrichment run.
type Options struct {
	Limit  int
	DryRun bool
}

// Result holds run statistics.
type Result struct {
	Checked  int
	Enriched int
	NoMatch  int
	Errors   int
	DryRun   bool
}

// Service enriches books from the catalog.
type Service struct {
	log     *slog.Logger
	books   bookStore
	catalog catalogSearcher
	audit   auditLog
}

// NewService creates a new enrichment service.
func NewService(log *slog.Logger, books bookStore, catalog catalogSearcher, audit auditLog) *Service {
	return &Service{
		log:     log.With("service", "enrichment"),
		books:   books,
		catalog: catalog,
		audit:   audit,
	}
}

// Run looks up up to opts.Limit books missing a cover or publish year and
// fills whichever fields the best catalog match provides. Existing values
// are never overwritten.
func (s *Service) Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Limit < 1 {
		opts.Limit = defaultBatch
	}
	res := Result{DryRun: opts.DryRun}

	books, err := s.books.ListMissingMetadata(ctx, opts.Limit)
	if err != nil {
		return res, fmt.Errorf("enrichment.Run: %w", err)
	}

	for _, b := range books {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Checked++

		match, ok := bestMatch(b, s.catalog.Search(ctx, query(b), candidatesLimit))
		if !ok {
			res.NoMatch++
			continue
		}
		updated, changed := apply(b, match)
		if !changed {
			res.NoMatch++
			continue
		}

		if !opts.DryRun {
			if _, err := s.books.Update(ctx, b.ID, updated); err != nil {
				s.log.ErrorContext(ctx, "enrich book",
					slog.Int64("book_id", b.ID),
					slog.String("error", err.Error()))
				res.Errors++
				continue
			}
		}
		res.Enriched++
		s.log.DebugContext(ctx, "book enriched",
			slog.Int64("book_id", b.ID),
			slog.String("open_key", match.OpenKey))
	}

	if !opts.DryRun && res.Enriched > 0 {
		entry := domain.AuditEntry{
			Action: domain.ActionFor("books", "enrich"),
			Entity: "book",
			Metadata: map[string]any{
				"checked":  res.Checked,
				"enriched": res.Enriched,
				"no_match": res.NoMatch,
				"errors":   res.Errors,
			},
		}
		if err := s.audit.Log(ctx, entry); err != nil {
			return res, fmt.Errorf("enrichment.Run audit: %w", err)
		}
	}

	s.log.InfoContext(ctx, "enrichment finished",
		slog.Int("checked", res.Checked),
		slog.Int("enriched", res.Enriched),
		slog.Int("no_match", res.NoMatch),
		slog.Int("errors", res.Errors),
		slog.Bool("dry_run", res.DryRun))
	return res, nil
}

func query(b domain.Book) string {
	q := b.DisplayTitle()
	if len(b.Authors) > 0 {
		q += " " + b.Authors[0]
	}
	return q
}

// bestMatch picks the first candidate whose title equals the book's title
// or original title, ignoring case and surrounding space.
func bestMatch(b domain.Book, candidates []domain.CatalogBook) (domain.CatalogBook, bool) {
	titles := []string{fold(b.Title), fold(b.OriginalTitle)}
	for _, c := range candidates {
		t := fold(c.Title)
		if t == "" {
			continue
		}
		for _, want := range titles {
			if want != "" && t == want {
				return c, true
			}
		}
	}
	return domain.CatalogBook{}, false
}

func apply(b domain.Book, c domain.CatalogBook) (domain.Book, bool) {
	changed := false
	if (b.CoverURL == nil || *b.CoverURL == "") && c.CoverURL != "" {
		cover := c.CoverURL
		b.CoverURL = &cover
		changed = true
	}
	if b.FirstPublishYear == nil && c.FirstPublishYear != nil {
		year := *c.FirstPublishYear
		b.FirstPublishYear = &year
		changed = true
	}
	return b, changed
}

func fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
