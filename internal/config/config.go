package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Redis     RedisConfig     `yaml:"redis"`
	Media     MediaConfig     `yaml:"media"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	Import    ImportConfig    `yaml:"import"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// TrustedProxies are addresses or CIDRs allowed to set X-Forwarded-For.
	TrustedProxies  []string      `yaml:"trusted_proxies" env:"SERVER_TRUSTED_PROXIES" env-separator:","`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// Lockout store backends.
const (
	LockoutStorePostgres = "postgres"
	LockoutStoreRedis    = "redis"
)

// AuthConfig holds admin authentication settings.
type AuthConfig struct {
	SessionSecret           string        `yaml:"session_secret"            env:"AUTH_SESSION_SECRET"            env-required:"true"`
	SessionMaxAge           time.Duration `yaml:"session_max_age"           env:"AUTH_SESSION_MAX_AGE"           env-default:"168h"`
	CookieSecure            bool          `yaml:"cookie_secure"             env:"AUTH_COOKIE_SECURE"             env-default:"true"`
	FallbackUsername        string        `yaml:"fallback_username"         env:"ADMIN_USERNAME"`
	FallbackPassword        string        `yaml:"fallback_password"         env:"ADMIN_PASSWORD"`
	BootstrapToken          string        `yaml:"bootstrap_token"           env:"ADMIN_BOOTSTRAP_TOKEN"`
	RecordAttemptedPassword bool          `yaml:"record_attempted_password" env:"AUTH_RECORD_ATTEMPTED_PASSWORD" env-default:"false"`
	LockoutStore            string        `yaml:"lockout_store"             env:"AUTH_LOCKOUT_STORE"             env-default:"postgres"`
	LockoutRetention        time.Duration `yaml:"lockout_retention"         env:"AUTH_LOCKOUT_RETENTION"         env-default:"24h"`
	PBKDF2Rounds            int           `yaml:"pbkdf2_rounds"             env:"AUTH_PBKDF2_ROUNDS"             env-default:"29000"`
}

// HasFallback reports whether degraded env credentials are configured.
func (c AuthConfig) HasFallback() bool {
	return c.FallbackUsername != "" && c.FallbackPassword != ""
}

// RedisConfig holds the optional Redis connection. An empty Addr disables it.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
	Prefix   string `yaml:"prefix"   env:"REDIS_PREFIX"   env-default:"archive"`
}

// Enabled reports whether a Redis address is configured.
func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// Media backends.
const (
	MediaBackendEmbedded = "embedded"
	MediaBackendExternal = "external"
)

// MediaConfig selects and configures the media backend.
type MediaConfig struct {
	Backend       string        `yaml:"backend"         env:"MEDIA_BACKEND"         env-default:"embedded"`
	BasePath      string        `yaml:"base_path"       env:"MEDIA_BASE_PATH"       env-default:"/media"`
	Endpoint      string        `yaml:"endpoint"        env:"MEDIA_S3_ENDPOINT"`
	AccessKey     string        `yaml:"access_key"      env:"MEDIA_S3_ACCESS_KEY"`
	SecretKey     string        `yaml:"secret_key"      env:"MEDIA_S3_SECRET_KEY"`
	Bucket        string        `yaml:"bucket"          env:"MEDIA_S3_BUCKET"       env-default:"archive-media"`
	PublicBaseURL string        `yaml:"public_base_url" env:"MEDIA_PUBLIC_BASE_URL"`
	UseSSL        bool          `yaml:"use_ssl"         env:"MEDIA_S3_USE_SSL"      env-default:"true"`
	BlobGrace     time.Duration `yaml:"blob_grace"      env:"MEDIA_BLOB_GRACE"      env-default:"24h"`
}

// CatalogConfig configures the Open Library client.
type CatalogConfig struct {
	BaseURL string        `yaml:"base_url" env:"CATALOG_BASE_URL" env-default:"https://openlibrary.org"`
	Timeout time.Duration `yaml:"timeout"  env:"CATALOG_TIMEOUT"  env-default:"4s"`
}

// RateLimitConfig bounds login attempts per client IP.
type RateLimitConfig struct {
	LoginPerMinute int `yaml:"login_per_minute" env:"RATE_LIMIT_LOGIN_PER_MINUTE" env-default:"20"`
	LoginBurst     int `yaml:"login_burst"      env:"RATE_LIMIT_LOGIN_BURST"      env-default:"5"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// ImportConfig holds bulk book import settings.
type ImportConfig struct {
	File   string `yaml:"file"    env:"IMPORT_FILE"    env-default:"books.json"`
	DryRun bool   `yaml:"dry_run" env:"IMPORT_DRY_RUN" env-default:"false"`
}
