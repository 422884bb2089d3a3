package content

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/archive-backend/internal/domain"
	"github.com/heartmarshall/archive-backend/internal/service/media"
)

// ListPublicNotes returns the newest published notes and logs.
func (s *Service) ListPublicNotes(ctx context.Context, limitRaw string) ([]domain.NoteEntry, error) {
	limit := domain.ParsePositiveInt(limitRaw, DefaultNotesPublic, MaxNotesPublic)
	notes, err := s.stores.Notes.List(ctx, domain.ContentFilter{PublishedOnly: true}, domain.OrderNewest, limit)
	if err != nil {
		if s.degraded(ctx, "notes.list_public", err) {
			return []domain.NoteEntry{}, nil
		}
		return nil, fmt.Errorf("content.ListPublicNotes: %w", err)
	}
	return notes, nil
}

// ListAdminNotes returns the newest notes, drafts included.
func (s *Service) ListAdminNotes(ctx context.Context, limitRaw string) ([]domain.NoteEntry, error) {
	limit := domain.ParsePositiveInt(limitRaw, DefaultAdminList, MaxAdminList)
	notes, err := s.stores.Notes.List(ctx, domain.ContentFilter{}, domain.OrderNewest, limit)
	if err != nil {
		return nil, fmt.Errorf("content.ListAdminNotes: %w", err)
	}
	return notes, nil
}

// GetNote returns a note by id.
func (s *Service) GetNote(ctx context.Context, id int64) (domain.NoteEntry, error) {
	return s.stores.Notes.GetByID(ctx, id)
}

// CountNotes returns the number of notes and logs.
func (s *Service) CountNotes(ctx context.Context) (int, error) {
	return s.stores.Notes.Count(ctx, domain.ContentFilter{})
}

// CreateNote stores a new note.
func (s *Service) CreateNote(ctx context.Context, input NoteInput) (domain.NoteEntry, error) {
	return s.saveNote(ctx, 0, input)
}

// UpdateNote rewrites a note. Attachments not re-uploaded are kept.
func (s *Service) UpdateNote(ctx context.Context, id int64, input NoteInput) (domain.NoteEntry, error) {
	return s.saveNote(ctx, id, input)
}

// saveNote uploads attachments first, then writes the row. On update the
// current row is locked inside the transaction; attachments not re-uploaded
// are carried over from it and its audio blob is the one replaced.
func (s *Service) saveNote(ctx context.Context, id int64, input NoteInput) (domain.NoteEntry, error) {
	note := domain.NoteEntry{
		Kind:        domain.NormalizeNoteKind(input.Kind),
		Title:       strings.TrimSpace(input.Title),
		Body:        strings.TrimSpace(input.Body),
		IsPublished: domain.ParseFormBool(input.IsPublished),
	}

	newText := input.Text != nil && input.Text.Filename != ""
	if newText {
		body, err := media.ReadText(input.Text.Filename, input.Text.Data)
		if err != nil {
			return domain.NoteEntry{}, err
		}
		note.Body = body
		note.SourceFilename = filepath.Base(strings.TrimSpace(input.Text.Filename))
		if note.Title == "" {
			note.Title = note.SourceFilename
		}
	}

	var errs []domain.FieldError
	errs = required(errs, "title", note.Title, "Title is required")
	errs = required(errs, "body", note.Body, "Content is required (text or file upload)")
	if err := validationResult(errs); err != nil {
		return domain.NoteEntry{}, err
	}

	audio, err := s.uploadFor(ctx, domain.MediaNotesAudio, input.Audio)
	if err != nil {
		return domain.NoteEntry{}, err
	}
	if audio != nil {
		note.AudioURL = audio.URL
		note.AudioFilename = audio.Filename
		note.AudioStorageID = audio.StorageRef
	}

	var saved domain.NoteEntry
	var previousAudio string
	err = s.audited(ctx, func(ctx context.Context) (domain.AuditEntry, error) {
		var err error
		verb := "create"
		if id == 0 {
			saved, err = s.stores.Notes.Insert(ctx, note)
		} else {
			verb = "update"
			var current domain.NoteEntry
			if current, err = s.stores.Notes.GetByIDForUpdate(ctx, id); err != nil {
				return domain.AuditEntry{}, err
			}
			previousAudio = current.AudioStorageID
			if !newText {
				note.SourceFilename = current.SourceFilename
			}
			if audio == nil {
				note.AudioURL = current.AudioURL
				note.AudioFilename = current.AudioFilename
				note.AudioStorageID = current.AudioStorageID
			}
			saved, err = s.stores.Notes.Update(ctx, id, note)
		}
		if err != nil {
			return domain.AuditEntry{}, err
		}
		return auditEntry(domain.ActionFor("notes", verb), "note", saved.ID,
			map[string]any{"kind": string(saved.Kind)}), nil
	})
	if err != nil {
		s.abandon(ctx, audio)
		return domain.NoteEntry{}, wrap("content.SaveNote", err)
	}

	s.replaced(ctx, previousAudio, saved.AudioStorageID)
	return saved, nil
}

// DeleteNote removes a note and then its audio blob.
func (s *Service) DeleteNote(ctx context.Context, id int64) error {
	var current domain.NoteEntry
	err := s.audited(ctx, func(ctx context.Context) (domain.AuditEntry, error) {
		var err error
		current, err = s.stores.Notes.GetByIDForUpdate(ctx, id)
		if err != nil {
			return domain.AuditEntry{}, err
		}
		if _, err := s.stores.Notes.Delete(ctx, id); err != nil {
			return domain.AuditEntry{}, err
		}
		return auditEntry(domain.ActionFor("notes", "delete"), "note", id, nil), nil
	})
	if err != nil {
		return wrap("content.DeleteNote", err)
	}

	s.media.DeleteQuietly(ctx, current.AudioStorageID)
	return nil
}
