package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction is a dotted taxonomy string, "<area>.<verb>".
type AuditAction string

const (
	AuditAuthLogin       AuditAction = "auth.login"
	AuditAuthLoginFailed AuditAction = "auth.login_failed"
	AuditAuthBootstrap   AuditAction = "auth.bootstrap"

	AuditSettingsUpdate AuditAction = "settings.update"
	AuditBooksImport    AuditAction = "books.import"
	AuditBooksBulk      AuditAction = "books.bulk_import"
	AuditGalleryArchive AuditAction = "gallery.archive"
	AuditGalleryRestore AuditAction = "gallery.unarchive"
)

// Failed-login reasons recorded in audit metadata.
const (
	ReasonLockedOut          = "locked_out"
	ReasonInvalidCredentials = "invalid_credentials"
)

// ActionFor builds "<area>.<verb>" for content mutations, e.g. ActionFor("books", "delete").
func ActionFor(area, verb string) AuditAction {
	return AuditAction(area + "." + verb)
}

func (a AuditAction) String() string { return string(a) }

// AuditEntry is an append-only record of a security or content-mutation event.
type AuditEntry struct {
	ID        uuid.UUID
	Actor     string
	Action    AuditAction
	Entity    string
	EntityID  string
	CreatedAt time.Time
	Metadata  map[string]any
}
