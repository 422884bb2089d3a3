package auth

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/archive-backend/internal/config"
	"github.com/heartmarshall/archive-backend/internal/domain"
)

// adminRepo defines the admin user repository interface needed by auth service.
type adminRepo interface {
	GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
	Upsert(ctx context.Context, username, passwordHash string, now time.Time) (*domain.AdminUser, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	Ping(ctx context.Context) error
}

// lockoutStore defines the shared failed-login counter interface.
type lockoutStore interface {
	Get(ctx context.Context, username string) (domain.LoginAttempts, error)
	RegisterFailure(ctx context.Context, username string, now time.Time) (domain.LoginAttempts, error)
	Reset(ctx context.Context, username string) error
}

// auditLog defines the audit log interface needed by auth service.
type auditLog interface {
	Log(ctx context.Context, entry domain.AuditEntry) error
	ListByAction(ctx context.Context, action domain.AuditAction, limit int) ([]domain.AuditEntry, error)
	CountByAction(ctx context.Context, action domain.AuditAction) (int, error)
}

// txManager defines the transaction manager interface needed by auth service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// passwordHasher defines password hashing needed by auth service.
type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// Service implements admin authentication.
type Service struct {
	log     *slog.Logger
	admins  adminRepo
	lockout lockoutStore
	audit   auditLog
	tx      txManager
	hasher  passwordHasher
	cfg     config.AuthConfig
	now     func() time.Time

	dummyOnce sync.Once
	dummy     string
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	admins adminRepo,
	lockout lockoutStore,
	audit auditLog,
	tx txManager,
	hasher passwordHasher,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:     logger.With("service", "auth"),
		admins:  admins,
		lockout: lockout,
		audit:   audit,
		tx:      tx,
		hasher:  hasher,
		cfg:     cfg,
		now:     time.Now,
	}
}

// dummyHash is verified against when no admin matches, computed once with
// the configured hasher so the cost matches a real check.
func (s *Service) dummyHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(uuid.NewString())
		if err != nil {
			s.log.Error("compute dummy password hash", slog.String("error", err.Error()))
			return
		}
		s.dummy = hash
	})
	return s.dummy
}
