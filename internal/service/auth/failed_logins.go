package auth

import (
	"context"
	"fmt"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

const (
	defaultFailedLoginsLimit = 200
	maxFailedLoginsLimit     = 1000
)

// FailedLogins returns recent failed-login audit entries, newest first.
// limit < 1 uses the default; larger values are capped.
func (s *Service) FailedLogins(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit < 1 {
		limit = defaultFailedLoginsLimit
	}
	limit = min(limit, maxFailedLoginsLimit)

	entries, err := s.audit.ListByAction(ctx, domain.AuditAuthLoginFailed, limit)
	if err != nil {
		return nil, fmt.Errorf("auth.FailedLogins: %w", err)
	}
	return entries, nil
}

// CountFailedLogins returns the number of failed-login audit entries.
func (s *Service) CountFailedLogins(ctx context.Context) (int, error) {
	n, err := s.audit.CountByAction(ctx, domain.AuditAuthLoginFailed)
	if err != nil {
		return 0, fmt.Errorf("auth.CountFailedLogins: %w", err)
	}
	return n, nil
}

// LockoutStatus reports the current lockout state of username.
func (s *Service) LockoutStatus(ctx context.Context, username string) (domain.LoginAttempts, error) {
	st, err := s.lockout.Get(ctx, username)
	if err != nil {
		return domain.LoginAttempts{}, fmt.Errorf("auth.LockoutStatus: %w", err)
	}
	return st, nil
}
