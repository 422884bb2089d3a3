package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/archive-backend/internal/transport/middleware"
)

// LoginPath is the admin login endpoint; the login rate limit applies to it.
const LoginPath = "/admin/login"

// RouterDeps carries the handlers and guards mounted by NewRouter.
type RouterDeps struct {
	Health *HealthHandler
	Auth   *AuthHandler
	Admin  *AdminHandler
	// Media is nil when media is served by an external backend.
	Media        *MediaHandler
	RequireAdmin middleware.Middleware
	// LoginLimit is nil when login rate limiting is disabled.
	LoginLimit middleware.Middleware
	// Proxies may forward the client address. Nil trusts no proxy.
	Proxies *middleware.TrustedProxies
}

// NewRouter builds the HTTP handler with the standard middleware chain:
// request id, logger, recovery, then the login rate limit.
func NewRouter(deps RouterDeps, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", deps.Health.Live)
	mux.HandleFunc("GET /ready", deps.Health.Ready)
	mux.HandleFunc("GET /health", deps.Health.Health)

	mux.HandleFunc("POST "+LoginPath, deps.Auth.Login)
	mux.HandleFunc("POST /admin/logout", deps.Auth.Logout)

	admin := deps.RequireAdmin
	mux.Handle("GET /admin/dashboard", admin(http.HandlerFunc(deps.Admin.Dashboard)))
	mux.Handle("GET /admin/failed-logins", admin(http.HandlerFunc(deps.Admin.FailedLogins)))

	if deps.Media != nil {
		mux.HandleFunc("GET /media/{kind}/{id}/{filename...}", deps.Media.Serve)
	}

	chain := []middleware.Middleware{
		middleware.RequestID(deps.Proxies),
		middleware.Logger(logger),
		middleware.Recovery(logger),
	}
	if deps.LoginLimit != nil {
		chain = append(chain, middleware.When(middleware.Route(http.MethodPost, LoginPath), deps.LoginLimit))
	}
	return middleware.Chain(chain...)(mux)
}
