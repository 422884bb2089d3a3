// Package importer loads a books export into the catalog. Rows are upserted
// by original title, so running the same file twice updates instead of
// duplicating.
package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

type bookStore interface {
	Slugs(ctx context.Context) ([]string, error)
	Exists(ctx context.Context, column string, value any, excludeID int64) (bool, error)
	UpsertByOriginalTitle(ctx context.Context, b domain.Book) (domain.BookUpsert, error)
}

type auditLog interface {
	Log(ctx context.Context, entry domain.AuditEntry) error
}

// Options controls a run.
type Options struct {
	// DryRun normalizes and counts without writing.
	DryRun bool
}

// RowError is a failed entry. Index is 1-based.
type RowError struct {
	Index   int
	Message string
}

// Report holds import statistics.
type Report struct {
	Total    int
	Migrated int
	Updated  int
	Skipped  int
	Errors   []RowError
	DryRun   bool
}

// Service runs book imports.
type Service struct {
	log   *slog.Logger
	books bookStore
	audit auditLog
}

// NewService creates an import service.
func NewService(logger *slog.Logger, books bookStore, audit auditLog) *Service {
	return &Service{
		log:   logger.With("service", "importer"),
		books: books,
		audit: audit,
	}
}

// Run imports raw. A failing row is recorded in the report and the run
// continues; only setup failures and cancellation abort it.
func (s *Service) Run(ctx context.Context, raw []RawBook, opts Options) (Report, error) {
	report := Report{Total: len(raw), DryRun: opts.DryRun}

	existing, err := s.books.Slugs(ctx)
	if err != nil {
		return report, fmt.Errorf("importer.Run: load slugs: %w", err)
	}
	used := domain.NewSlugSet(existing...)

	for i, r := range raw {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		book, ok := Normalize(r, used)
		if !ok {
			report.Skipped++
			continue
		}

		inserted, err := s.importOne(ctx, book, used, opts.DryRun)
		if err != nil {
			report.Errors = append(report.Errors, RowError{Index: i + 1, Message: err.Error()})
			s.log.ErrorContext(ctx, "import row failed",
				slog.Int("index", i+1),
				slog.String("original_title", book.OriginalTitle),
				slog.String("error", err.Error()))
			continue
		}
		if inserted {
			report.Migrated++
		} else {
			report.Updated++
		}
	}

	if !opts.DryRun {
		entry := domain.AuditEntry{
			Action: domain.AuditBooksBulk,
			Entity: "book",
			Metadata: map[string]any{
				"total":    report.Total,
				"migrated": report.Migrated,
				"updated":  report.Updated,
				"skipped":  report.Skipped,
				"errors":   len(report.Errors),
			},
		}
		if err := s.audit.Log(ctx, entry); err != nil {
			return report, fmt.Errorf("importer.Run: audit: %w", err)
		}
	}

	s.log.InfoContext(ctx, "import complete",
		slog.Int("total", report.Total),
		slog.Int("migrated", report.Migrated),
		slog.Int("updated", report.Updated),
		slog.Int("skipped", report.Skipped),
		slog.Int("errors", len(report.Errors)),
		slog.Bool("dry_run", opts.DryRun))
	return report, nil
}

// importOne writes book and reports whether a new row was created. An
// existing row keeps its slug, so the freshly allocated one is released.
func (s *Service) importOne(ctx context.Context, book domain.Book, used *domain.SlugSet, dryRun bool) (bool, error) {
	if dryRun {
		exists, err := s.books.Exists(ctx, "original_title", book.OriginalTitle, 0)
		if err != nil {
			used.Release(book.Slug)
			return false, err
		}
		if exists {
			used.Release(book.Slug)
		}
		return !exists, nil
	}

	res, err := s.books.UpsertByOriginalTitle(ctx, book)
	if err != nil {
		used.Release(book.Slug)
		return false, err
	}
	if !res.Inserted && res.Slug != book.Slug {
		used.Release(book.Slug)
	}
	return res.Inserted, nil
}

// Summary renders the report for command output.
func (r Report) Summary() string {
	return fmt.Sprintf("migrated=%d updated=%d skipped=%d errors=%d total=%d dry_run=%t",
		r.Migrated, r.Updated, r.Skipped, len(r.Errors), r.Total, r.DryRun)
}
