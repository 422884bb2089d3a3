// Package session keeps the admin login in a signed cookie.
package session

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/heartmarshall/archive-backend/internal/config"
)

const (
	// CookieName is the admin session cookie.
	CookieName = "archive_admin"

	keyAuthenticated = "admin_authenticated"
	keyUsername      = "admin_username"
	keyFallback      = "auth_fallback"
)

// Admin is the principal held by an authenticated session.
type Admin struct {
	Username string
	Fallback bool
}

// Manager reads and writes the admin session cookie. Lockout state is
// never stored here.
type Manager struct {
	store *sessions.CookieStore
}

// NewManager builds a cookie store signed with cfg.SessionSecret.
func NewManager(cfg config.AuthConfig) *Manager {
	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}
}

// Login replaces whatever the session held with admin.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, admin Admin) error {
	// A stale or tampered cookie still yields a usable new session.
	sess, _ := m.store.Get(r, CookieName)

	sess.Values = map[any]any{
		keyAuthenticated: true,
		keyUsername:      admin.Username,
		keyFallback:      admin.Fallback,
	}
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("session.Login: %w", err)
	}
	return nil
}

// Logout expires the cookie.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, CookieName)

	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("session.Logout: %w", err)
	}
	return nil
}

// Current returns the logged-in admin, if any.
func (m *Manager) Current(r *http.Request) (Admin, bool) {
	sess, err := m.store.Get(r, CookieName)
	if err != nil {
		return Admin{}, false
	}

	if ok, _ := sess.Values[keyAuthenticated].(bool); !ok {
		return Admin{}, false
	}
	username, _ := sess.Values[keyUsername].(string)
	if username == "" {
		return Admin{}, false
	}
	fallback, _ := sess.Values[keyFallback].(bool)

	return Admin{Username: username, Fallback: fallback}, true
}

// CurrentAdmin adapts Current for middleware.RequireAdmin.
func (m *Manager) CurrentAdmin(r *http.Request) (string, bool) {
	admin, ok := m.Current(r)
	return admin.Username, ok
}
