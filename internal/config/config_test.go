package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://u:p@localhost:5432/testdb")
	t.Setenv("AUTH_SESSION_SECRET", "this-is-a-very-long-session-secret-for-tests")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// chdirTemp moves into an empty directory so no stray config.yaml or .env is read.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	return dir
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  trusted_proxies: ["10.0.0.0/8", "192.0.2.1"]

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 4
  auto_migrate: false

auth:
  session_secret: "this-is-a-very-long-session-secret-for-tests"
  cookie_secure: false
  fallback_username: "admin"
  fallback_password: "env-secret"
  record_attempted_password: true

media:
  backend: "external"
  endpoint: "minio:9000"
  access_key: "minio"
  secret_key: "minio123"
  bucket: "media"
  use_ssl: false

catalog:
  timeout: "2s"

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	chdirTemp(t)
	path := writeFile(t, t.TempDir(), "config.yaml", validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9090 {
		t.Errorf("server = %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if got := strings.Join(cfg.Server.TrustedProxies, ","); got != "10.0.0.0/8,192.0.2.1" {
		t.Errorf("server.trusted_proxies = %q", got)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Database.MaxConns != 4 || cfg.Database.AutoMigrate {
		t.Errorf("database = %+v", cfg.Database)
	}

	if !cfg.Auth.HasFallback() {
		t.Error("fallback credentials should be configured")
	}
	if !cfg.Auth.RecordAttemptedPassword {
		t.Error("auth.record_attempted_password should be true")
	}
	if cfg.Auth.LockoutStore != LockoutStorePostgres {
		t.Errorf("auth.lockout_store = %q, want default postgres", cfg.Auth.LockoutStore)
	}
	if cfg.Auth.PBKDF2Rounds != 29000 {
		t.Errorf("auth.pbkdf2_rounds = %d, want 29000", cfg.Auth.PBKDF2Rounds)
	}

	if cfg.Media.Backend != MediaBackendExternal {
		t.Errorf("media.backend = %q", cfg.Media.Backend)
	}
	if cfg.Media.PublicBaseURL != "http://minio:9000" {
		t.Errorf("media.public_base_url = %q, want derived from endpoint", cfg.Media.PublicBaseURL)
	}

	if cfg.Catalog.Timeout != 2*time.Second {
		t.Errorf("catalog.timeout = %v, want 2s", cfg.Catalog.Timeout)
	}
	if cfg.Catalog.BaseURL != "https://openlibrary.org" {
		t.Errorf("catalog.base_url = %q", cfg.Catalog.BaseURL)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	chdirTemp(t)
	path := writeFile(t, t.TempDir(), "config.yaml", validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DOTENV_PATH", "")
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Media.Backend != MediaBackendEmbedded || cfg.Media.BasePath != "/media" {
		t.Errorf("media = %+v, want embedded defaults", cfg.Media)
	}
	if cfg.Auth.HasFallback() {
		t.Error("fallback must be off by default")
	}
	if len(cfg.Server.TrustedProxies) != 0 {
		t.Errorf("trusted proxies = %v, want none by default", cfg.Server.TrustedProxies)
	}
	if cfg.Auth.RecordAttemptedPassword {
		t.Error("attempted passwords must not be recorded by default")
	}
}

func TestLoad_Dotenv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DOTENV_PATH", "")
	// Registered with t.Setenv so the values loaded from .env are restored.
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("AUTH_SESSION_SECRET", "")
	os.Unsetenv("DATABASE_DSN")
	os.Unsetenv("AUTH_SESSION_SECRET")
	t.Setenv("SERVER_PORT", "7070")

	dir := chdirTemp(t)
	writeFile(t, dir, ".env", strings.Join([]string{
		"DATABASE_DSN=postgres://u:p@db:5432/archive",
		"AUTH_SESSION_SECRET=dotenv-session-secret-that-is-long-enough",
		"SERVER_PORT=6060",
	}, "\n"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.DSN != "postgres://u:p@db:5432/archive" {
		t.Errorf("database.dsn = %q, want value from .env", cfg.Database.DSN)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("server.port = %d, process env must win over .env", cfg.Server.Port)
	}
}

func TestLoad_ExplicitDotenvMissing(t *testing.T) {
	validEnv(t)
	chdirTemp(t)
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DOTENV_PATH", "/nonexistent/.env")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit dotenv path")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	chdirTemp(t)
	path := writeFile(t, t.TempDir(), "config.yaml", `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "short session secret",
			mutate:  func(c *Config) { c.Auth.SessionSecret = "short" },
			wantErr: "session_secret",
		},
		{
			name:    "fallback username without password",
			mutate:  func(c *Config) { c.Auth.FallbackUsername = "admin" },
			wantErr: "set together",
		},
		{
			name:    "weak pbkdf2 rounds",
			mutate:  func(c *Config) { c.Auth.PBKDF2Rounds = 10 },
			wantErr: "pbkdf2_rounds",
		},
		{
			name:    "redis lockout without redis",
			mutate:  func(c *Config) { c.Auth.LockoutStore = LockoutStoreRedis },
			wantErr: "requires redis.addr",
		},
		{
			name: "redis lockout with redis",
			mutate: func(c *Config) {
				c.Auth.LockoutStore = LockoutStoreRedis
				c.Redis.Addr = "localhost:6379"
			},
		},
		{
			name:    "unknown lockout store",
			mutate:  func(c *Config) { c.Auth.LockoutStore = "memory" },
			wantErr: "lockout_store",
		},
		{
			name:    "unknown media backend",
			mutate:  func(c *Config) { c.Media.Backend = "ftp" },
			wantErr: "media: backend",
		},
		{
			name:    "relative base path",
			mutate:  func(c *Config) { c.Media.BasePath = "media" },
			wantErr: "base_path",
		},
		{
			name:    "external without credentials",
			mutate:  func(c *Config) { c.Media.Backend = MediaBackendExternal },
			wantErr: "requires endpoint",
		},
		{
			name:    "zero catalog timeout",
			mutate:  func(c *Config) { c.Catalog.Timeout = 0 },
			wantErr: "catalog.timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NormalizesMediaURLs(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Media.BasePath = "/files/"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Media.BasePath != "/files" {
		t.Errorf("base_path = %q, want trailing slash trimmed", cfg.Media.BasePath)
	}

	ext := validConfig()
	ext.Media = MediaConfig{
		Backend:       MediaBackendExternal,
		Endpoint:      "s3.example.com",
		AccessKey:     "a",
		SecretKey:     "s",
		Bucket:        "b",
		PublicBaseURL: "https://cdn.example.com/",
	}
	if err := ext.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ext.Media.PublicBaseURL != "https://cdn.example.com" {
		t.Errorf("public_base_url = %q", ext.Media.PublicBaseURL)
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Auth: AuthConfig{
			SessionSecret: "this-is-a-very-long-session-secret-for-tests",
			LockoutStore:  LockoutStorePostgres,
			PBKDF2Rounds:  29000,
		},
		Media: MediaConfig{
			Backend:  MediaBackendEmbedded,
			BasePath: "/media",
		},
		Catalog: CatalogConfig{Timeout: 4 * time.Second},
	}
}
