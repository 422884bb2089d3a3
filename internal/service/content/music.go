package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

// ListPublicMusic returns published links, newest first unless sort is "oldest".
func (s *Service) ListPublicMusic(ctx context.Context, sort string) ([]domain.MusicLink, error) {
	order := domain.OrderNewest
	if strings.ToLower(strings.TrimSpace(sort)) == "oldest" {
		order = domain.OrderOldest
	}
	links, err := s.stores.Music.List(ctx, domain.ContentFilter{PublishedOnly: true}, order, 0)
	if err != nil {
		if s.degraded(ctx, "music.list_public", err) {
			return []domain.MusicLink{}, nil
		}
		return nil, fmt.Errorf("content.ListPublicMusic: %w", err)
	}
	return links, nil
}

// ListAdminMusic returns every link in editorial order.
func (s *Service) ListAdminMusic(ctx context.Context) ([]domain.MusicLink, error) {
	links, err := s.stores.Music.List(ctx, domain.ContentFilter{}, domain.OrderEditorial, 0)
	if err != nil {
		return nil, fmt.Errorf("content.ListAdminMusic: %w", err)
	}
	return links, nil
}

// CountMusic returns the number of music links.
func (s *Service) CountMusic(ctx context.Context) (int, error) {
	return s.stores.Music.Count(ctx, domain.ContentFilter{})
}

// CreateMusicLink adds a video. The same video cannot be added twice.
func (s *Service) CreateMusicLink(ctx context.Context, input MusicInput) (domain.MusicLink, error) {
	return s.saveMusicLink(ctx, 0, input)
}

// UpdateMusicLink rewrites a link.
func (s *Service) UpdateMusicLink(ctx context.Context, id int64, input MusicInput) (domain.MusicLink, error) {
	return s.saveMusicLink(ctx, id, input)
}

func (s *Service) saveMusicLink(ctx context.Context, id int64, input MusicInput) (domain.MusicLink, error) {
	if err := input.Validate(); err != nil {
		return domain.MusicLink{}, err
	}
	link := input.record()

	var saved domain.MusicLink
	err := s.audited(ctx, func(ctx context.Context) (domain.AuditEntry, error) {
		dup, err := s.stores.Music.Exists(ctx, "youtube_id", link.YouTubeID, id)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		if dup {
			return domain.AuditEntry{}, domain.NewValidationError("youtube_url", "Video already added")
		}

		verb := "create"
		if id == 0 {
			saved, err = s.stores.Music.Insert(ctx, link)
		} else {
			verb = "update"
			saved, err = s.stores.Music.Update(ctx, id, link)
		}
		if err != nil {
			return domain.AuditEntry{}, err
		}
		return auditEntry(domain.ActionFor("music", verb), "music_link", saved.ID,
			map[string]any{"youtube_id": saved.YouTubeID}), nil
	})
	if err != nil {
		return domain.MusicLink{}, wrap("content.SaveMusicLink", err)
	}
	return saved, nil
}

// DeleteMusicLink removes a link.
func (s *Service) DeleteMusicLink(ctx context.Context, id int64) error {
	err := s.audited(ctx, func(ctx context.Context) (domain.AuditEntry, error) {
		deleted, err := s.stores.Music.Delete(ctx, id)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		if !deleted {
			return domain.AuditEntry{}, domain.ErrNotFound
		}
		return auditEntry(domain.ActionFor("music", "delete"), "music_link", id, nil), nil
	})
	return wrap("content.DeleteMusicLink", err)
}
