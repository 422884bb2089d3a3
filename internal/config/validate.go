package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.SessionSecret) < 32 {
		return fmt.Errorf("auth.session_secret must be at least 32 characters (got %d)", len(c.Auth.SessionSecret))
	}
	if (c.Auth.FallbackUsername == "") != (c.Auth.FallbackPassword == "") {
		return fmt.Errorf("auth.fallback_username and auth.fallback_password must be set together")
	}
	if c.Auth.PBKDF2Rounds < 1000 {
		return fmt.Errorf("auth.pbkdf2_rounds must be >= 1000 (got %d)", c.Auth.PBKDF2Rounds)
	}

	switch c.Auth.LockoutStore {
	case LockoutStorePostgres:
	case LockoutStoreRedis:
		if !c.Redis.Enabled() {
			return fmt.Errorf("auth.lockout_store=redis requires redis.addr")
		}
	default:
		return fmt.Errorf("auth.lockout_store must be %q or %q (got %q)", LockoutStorePostgres, LockoutStoreRedis, c.Auth.LockoutStore)
	}

	if err := c.Media.validate(); err != nil {
		return fmt.Errorf("media: %w", err)
	}

	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("catalog.timeout must be > 0 (got %v)", c.Catalog.Timeout)
	}
	if c.RateLimit.LoginPerMinute < 0 {
		return fmt.Errorf("rate_limit.login_per_minute must be >= 0 (got %d)", c.RateLimit.LoginPerMinute)
	}

	return nil
}

func (m *MediaConfig) validate() error {
	switch m.Backend {
	case MediaBackendEmbedded:
		if !strings.HasPrefix(m.BasePath, "/") {
			return fmt.Errorf("base_path must start with / (got %q)", m.BasePath)
		}
		m.BasePath = strings.TrimRight(m.BasePath, "/")
	case MediaBackendExternal:
		if m.Endpoint == "" || m.AccessKey == "" || m.SecretKey == "" {
			return fmt.Errorf("external backend requires endpoint, access_key and secret_key")
		}
		if m.Bucket == "" {
			return fmt.Errorf("bucket is required")
		}
		if m.PublicBaseURL == "" {
			scheme := "http"
			if m.UseSSL {
				scheme = "https"
			}
			m.PublicBaseURL = scheme + "://" + m.Endpoint
		}
		m.PublicBaseURL = strings.TrimRight(m.PublicBaseURL, "/")
	default:
		return fmt.Errorf("backend must be %q or %q (got %q)", MediaBackendEmbedded, MediaBackendExternal, m.Backend)
	}
	return nil
}
