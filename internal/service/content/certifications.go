package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

// ListPublicCertifications returns published badges.
func (s *Service) ListPublicCertifications(ctx context.Context) ([]domain.Certification, error) {
	badges, err := s.stores.Certifications.List(ctx, domain.ContentFilter{PublishedOnly: true}, domain.OrderEditorial, 0)
	if err != nil {
		if s.degraded(ctx, "certifications.list_public", err) {
			return []domain.Certification{}, nil
		}
		return nil, fmt.Errorf("content.ListPublicCertifications: %w", err)
	}
	return badges, nil
}

// ListAdminCertifications returns every badge.
func (s *Service) ListAdminCertifications(ctx context.Context) ([]domain.Certification, error) {
	badges, err := s.stores.Certifications.List(ctx, domain.ContentFilter{}, domain.OrderEditorial, 0)
	if err != nil {
		return nil, fmt.Errorf("content.ListAdminCertifications: %w", err)
	}
	return badges, nil
}

// CountCertifications returns the number of badges.
func (s *Service) CountCertifications(ctx context.Context) (int, error) {
	return s.stores.Certifications.Count(ctx, domain.ContentFilter{})
}

// CreateCertification adds a Credly badge.
func (s *Service) CreateCertification(ctx context.Context, input CertificationInput) (domain.Certification, error) {
	return s.saveCertification(ctx, 0, input)
}

// UpdateCertification rewrites a badge.
func (s *Service) UpdateCertification(ctx context.Context, id int64, input CertificationInput) (domain.Certification, error) {
	return s.saveCertification(ctx, id, input)
}

func (s *Service) saveCertification(ctx context.Context, id int64, input CertificationInput) (domain.Certification, error) {
	if err := input.Validate(); err != nil {
		return domain.Certification{}, err
	}
	badge := input.record()

	var saved domain.Certification
	err := s.audited(ctx, func(ctx context.Context) (domain.AuditEntry, error) {
		dup, err := s.stores.Certifications.Exists(ctx, "badge_uuid", badge.BadgeUUID, id)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		if dup {
			return domain.AuditEntry{}, badgeExists()
		}

		verb := "create"
		if id == 0 {
			saved, err = s.stores.Certifications.Insert(ctx, badge)
		} else {
			verb = "update"
			saved, err = s.stores.Certifications.Update(ctx, id, badge)
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			return domain.AuditEntry{}, badgeExists()
		}
		if err != nil {
			return domain.AuditEntry{}, err
		}
		return auditEntry(domain.ActionFor("certifications", verb), "certification", saved.ID,
			map[string]any{"badge_uuid": saved.BadgeUUID}), nil
	})
	if err != nil {
		return domain.Certification{}, wrap("content.SaveCertification", err)
	}
	return saved, nil
}

func badgeExists() error {
	return domain.NewValidationError("credly_url", "Badge already exists")
}

// DeleteCertification removes a badge.
func (s *Service) DeleteCertification(ctx context.Context, id int64) error {
	err := s.audited(ctx, func(ctx context.Context) (domain.AuditEntry, error) {
		deleted, err := s.stores.Certifications.Delete(ctx, id)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		if !deleted {
			return domain.AuditEntry{}, domain.ErrNotFound
		}
		return auditEntry(domain.ActionFor("certifications", "delete"), "certification", id, nil), nil
	})
	return wrap("content.DeleteCertification", err)
}
