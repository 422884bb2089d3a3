package content

import (
	"context"
	"fmt"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

// Counts aggregates the admin dashboard numbers.
func (s *Service) Counts(ctx context.Context) (domain.DashboardCounts, error) {
	var (
		c   domain.DashboardCounts
		err error
	)
	steps := []struct {
		name string
		dst  *int
		fn   func(context.Context) (int, error)
	}{
		{"books", &c.Books, s.CountBooks},
		{"reading_list", &c.ReadingList, s.CountReading},
		{"gallery", &c.Gallery, s.CountGallery},
		{"music", &c.Music, s.CountMusic},
		{"notes", &c.Notes, s.CountNotes},
		{"certifications", &c.Certifications, s.CountCertifications},
		{"research", &c.Research, s.CountResearch},
		{"failed_logins", &c.FailedLogins, func(ctx context.Context) (int, error) {
			return s.audit.CountByAction(ctx, domain.AuditAuthLoginFailed)
		}},
	}
	for _, step := range steps {
		if *step.dst, err = step.fn(ctx); err != nil {
			return domain.DashboardCounts{}, fmt.Errorf("content.Counts %s: %w", step.name, err)
		}
	}
	return c, nil
}
