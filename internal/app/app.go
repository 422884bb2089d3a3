package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/archive-backend/internal/adapter/redisstore"
	"github.com/heartmarshall/archive-backend/internal/config"
	"github.com/heartmarshall/archive-backend/internal/service/media"
	"github.com/heartmarshall/archive-backend/internal/transport/middleware"
	"github.com/heartmarshall/archive-backend/internal/transport/rest"
	"github.com/heartmarshall/archive-backend/internal/transport/session"
)

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// the server down within server.shutdown_timeout.
func Run(ctx context.Context) error {
	infra, err := Setup(ctx)
	if err != nil {
		return err
	}
	defer infra.Close()

	cfg, logger := infra.Config, infra.Log
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("media_backend", cfg.Media.Backend),
		slog.String("lockout_store", cfg.Auth.LockoutStore),
	)

	handler, stop, err := Handler(ctx, infra)
	if err != nil {
		return err
	}
	defer stop()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Handler wires services and handlers over infra. stop releases background
// workers owned by the handler.
func Handler(ctx context.Context, infra *Infra) (http.Handler, func(), error) {
	cfg, logger := infra.Config, infra.Log

	backend, embedded, err := infra.MediaBackend(ctx)
	if err != nil {
		return nil, nil, err
	}
	mediaSvc := media.NewService(logger, backend)
	contentSvc := infra.ContentService(mediaSvc)
	authSvc := infra.AuthService()
	sessions := session.NewManager(cfg.Auth)

	health := rest.NewHealthHandler(infra.Pool, BuildVersion())
	if infra.Redis != nil {
		health.WithComponent("redis", rest.PingFunc(func(ctx context.Context) error {
			return infra.Redis.Ping(ctx).Err()
		}))
	}

	proxies, err := middleware.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		return nil, nil, fmt.Errorf("server.trusted_proxies: %w", err)
	}

	deps := rest.RouterDeps{
		Health:       health,
		Auth:         rest.NewAuthHandler(authSvc, sessions, logger),
		Admin:        rest.NewAdminHandler(contentSvc, authSvc, logger),
		RequireAdmin: middleware.RequireAdmin(sessions),
		Proxies:      proxies,
	}
	if embedded != nil {
		deps.Media = rest.NewMediaHandler(embedded, logger)
	}

	limit, stop, err := loginLimiter(cfg, infra)
	if err != nil {
		return nil, nil, err
	}
	deps.LoginLimit = limit

	return rest.NewRouter(deps, logger), stop, nil
}

// loginLimiter returns nil when rate_limit.login_per_minute is 0. With
// Redis configured the window is shared across instances.
func loginLimiter(cfg *config.Config, infra *Infra) (middleware.Middleware, func(), error) {
	perMinute := cfg.RateLimit.LoginPerMinute
	if perMinute == 0 {
		return nil, func() {}, nil
	}

	if infra.Redis != nil {
		limiter, err := redisstore.NewFixedWindowLimiter(infra.Redis, cfg.Redis.Prefix, perMinute, time.Minute)
		if err != nil {
			return nil, nil, fmt.Errorf("login rate limiter: %w", err)
		}
		return middleware.RateLimit(limiter, time.Minute), func() {}, nil
	}

	visitors := middleware.NewVisitors(perMinute, cfg.RateLimit.LoginBurst, 10*time.Minute)
	retry := time.Minute / time.Duration(perMinute)
	return middleware.RateLimit(visitors, retry), visitors.Stop, nil
}
