package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/archive-backend/internal/auth"
	"github.com/heartmarshall/archive-backend/internal/domain"
)

// Bootstrap creates the admin or resets its password. When a bootstrap
// token is configured, input.Token must match it.
func (s *Service) Bootstrap(ctx context.Context, input BootstrapInput) (*domain.AdminUser, error) {
	input.Username = strings.TrimSpace(input.Username)

	if s.cfg.BootstrapToken != "" && !auth.ConstantTimeEqual(input.Token, s.cfg.BootstrapToken) {
		s.log.WarnContext(ctx, "bootstrap rejected: bad token", slog.String("username", input.Username))
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth.Bootstrap hash password: %w", err)
	}

	var user *domain.AdminUser
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.admins.Upsert(ctx, input.Username, hash, s.now().UTC())
		if err != nil {
			return fmt.Errorf("upsert admin: %w", err)
		}
		return s.audit.Log(ctx, domain.AuditEntry{
			Actor:    input.Username,
			Action:   domain.AuditAuthBootstrap,
			Entity:   "admin_user",
			EntityID: user.ID.String(),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Bootstrap: %w", err)
	}

	s.log.InfoContext(ctx, "admin bootstrapped", slog.String("username", user.Username))

	return user, nil
}
