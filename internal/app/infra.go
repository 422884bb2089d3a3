package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/archive-backend/internal/adapter/media/blobstore"
	"github.com/heartmarshall/archive-backend/internal/adapter/media/objectstore"
	"github.com/heartmarshall/archive-backend/internal/adapter/postgres"
	"github.com/heartmarshall/archive-backend/internal/adapter/postgres/admin"
	"github.com/heartmarshall/archive-backend/internal/adapter/postgres/audit"
	"github.com/heartmarshall/archive-backend/internal/adapter/postgres/blob"
	"github.com/heartmarshall/archive-backend/internal/adapter/postgres/books"
	"github.com/heartmarshall/archive-backend/internal/adapter/postgres/content"
	"github.com/heartmarshall/archive-backend/internal/adapter/postgres/lockout"
	"github.com/heartmarshall/archive-backend/internal/adapter/postgres/readinglist"
	"github.com/heartmarshall/archive-backend/internal/adapter/postgres/setting"
	"github.com/heartmarshall/archive-backend/internal/adapter/provider/openlibrary"
	"github.com/heartmarshall/archive-backend/internal/adapter/redisstore"
	"github.com/heartmarshall/archive-backend/internal/auth"
	"github.com/heartmarshall/archive-backend/internal/config"
	"github.com/heartmarshall/archive-backend/internal/domain"
	authsvc "github.com/heartmarshall/archive-backend/internal/service/auth"
	contentsvc "github.com/heartmarshall/archive-backend/internal/service/content"
	"github.com/heartmarshall/archive-backend/internal/service/enrichment"
	"github.com/heartmarshall/archive-backend/internal/service/importer"
	"github.com/heartmarshall/archive-backend/internal/service/media"
)

// LockoutStore is the failed-login counter shared by every instance.
type LockoutStore interface {
	Get(ctx context.Context, username string) (domain.LoginAttempts, error)
	RegisterFailure(ctx context.Context, username string, now time.Time) (domain.LoginAttempts, error)
	Reset(ctx context.Context, username string) error
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Infra holds the connections and repositories shared by the server and
// the maintenance commands.
type Infra struct {
	Config *config.Config
	Log    *slog.Logger
	Pool   *pgxpool.Pool
	// Redis is nil unless redis.addr is configured.
	Redis *redis.Client

	Tx     *postgres.TxManager
	Audit  *audit.Repo
	Admins *admin.Repo
	Books  *books.Repo
	Blobs  *blob.Repo
}

// Setup loads configuration, builds the logger and opens the infrastructure.
func Setup(ctx context.Context) (*Infra, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return Open(ctx, cfg, NewLogger(cfg.Log))
}

// Open connects to PostgreSQL (and Redis when configured) and applies
// migrations when database.auto_migrate is set.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Infra, error) {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	infra := New(cfg, logger, pool)

	if cfg.Redis.Enabled() {
		client, err := redisstore.NewClient(ctx, cfg.Redis)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		infra.Redis = client
	}

	return infra, nil
}

// New wraps an open pool. Redis is left nil.
func New(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) *Infra {
	return &Infra{
		Config: cfg,
		Log:    logger,
		Pool:   pool,
		Tx:     postgres.NewTxManager(pool),
		Audit:  audit.New(pool),
		Admins: admin.New(pool),
		Books:  books.New(pool),
		Blobs:  blob.New(pool),
	}
}

// Close releases every connection.
func (i *Infra) Close() {
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			i.Log.Warn("close redis", slog.String("error", err.Error()))
		}
	}
	i.Pool.Close()
}

// Lockout returns the configured lockout store.
func (i *Infra) Lockout() LockoutStore {
	if i.Config.Auth.LockoutStore == config.LockoutStoreRedis {
		return redisstore.NewLockoutStore(i.Redis, i.Config.Redis.Prefix, i.Config.Auth.LockoutRetention)
	}
	return lockout.New(i.Pool)
}

// AuthService builds the admin authentication service.
func (i *Infra) AuthService() *authsvc.Service {
	return authsvc.NewService(
		i.Log,
		i.Admins,
		i.Lockout(),
		i.Audit,
		i.Tx,
		auth.NewPasswordHasher(i.Config.Auth.PBKDF2Rounds),
		i.Config.Auth,
	)
}

// MediaBackend returns the configured backend. The embedded store is
// returned separately because only it serves /media.
func (i *Infra) MediaBackend(ctx context.Context) (media.Backend, *blobstore.Store, error) {
	if i.Config.Media.Backend == config.MediaBackendExternal {
		store, err := objectstore.Connect(ctx, i.Config.Media, i.Log)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to object storage: %w", err)
		}
		return store, nil, nil
	}
	store := blobstore.New(i.Blobs, i.Config.Media.BasePath, i.Log)
	return store, store, nil
}

// Catalog builds the Open Library client.
func (i *Infra) Catalog() *openlibrary.Client {
	return openlibrary.NewClient(i.Config.Catalog.BaseURL, i.Config.Catalog.Timeout, i.Log)
}

// ContentService builds the content service over mediaSvc.
func (i *Infra) ContentService(mediaSvc *media.Service) *contentsvc.Service {
	stores := contentsvc.Stores{
		Books:          i.Books,
		Reading:        readinglist.New(i.Pool),
		Gallery:        content.New(i.Pool, content.GallerySchema),
		Music:          content.New(i.Pool, content.MusicSchema),
		Notes:          content.New(i.Pool, content.NoteSchema),
		Certifications: content.New(i.Pool, content.CertificationSchema),
		Research:       content.New(i.Pool, content.ResearchSchema),
		Settings:       setting.New(i.Pool),
	}
	return contentsvc.NewService(i.Log, stores, mediaSvc, i.Catalog(), i.Audit, i.Tx)
}

// Importer builds the bulk book importer.
func (i *Infra) Importer() *importer.Service {
	return importer.NewService(i.Log, i.Books, i.Audit)
}

// Enricher builds the book metadata enricher.
func (i *Infra) Enricher() *enrichment.Service {
	return enrichment.NewService(i.Log, i.Books, i.Catalog(), i.Audit)
}
