package content

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

// HomeBanner returns the home page notice. A missing or blank setting, or
// an unreachable store, yields the default text.
func (s *Service) HomeBanner(ctx context.Context) string {
	setting, err := s.stores.Settings.Get(ctx, domain.HomeBannerKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !s.degraded(ctx, "settings.home_banner", err) {
			s.log.ErrorContext(ctx, "read home banner", slog.String("error", err.Error()))
		}
		return domain.DefaultHomeBannerText
	}
	return domain.TrimOr(setting.Value, domain.DefaultHomeBannerText)
}

// UpdateHomeBanner stores a new home page notice.
func (s *Service) UpdateHomeBanner(ctx context.Context, text string) (string, error) {
	text, err := normalizeBanner(text)
	if err != nil {
		return "", err
	}

	var saved domain.SiteSetting
	err = s.audited(ctx, func(ctx context.Context) (domain.AuditEntry, error) {
		var err error
		saved, err = s.stores.Settings.Upsert(ctx, domain.HomeBannerKey, text)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		return domain.AuditEntry{
			Action:   domain.AuditSettingsUpdate,
			Entity:   "site_setting",
			EntityID: domain.HomeBannerKey,
		}, nil
	})
	if err != nil {
		return "", wrap("content.UpdateHomeBanner", err)
	}
	return strings.TrimSpace(saved.Value), nil
}
