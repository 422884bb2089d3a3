//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/archive-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/archive-backend/internal/app"
	"github.com/heartmarshall/archive-backend/internal/auth"
	"github.com/heartmarshall/archive-backend/internal/config"
)

const testPBKDF2Rounds = 1000

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	Infra  *app.Infra
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			SessionSecret: "e2e-session-secret-0123456789abcdef",
			SessionMaxAge: time.Hour,
			LockoutStore:  config.LockoutStorePostgres,
			PBKDF2Rounds:  testPBKDF2Rounds,
		},
		Media: config.MediaConfig{
			Backend:  config.MediaBackendEmbedded,
			BasePath: "/media",
		},
		Catalog: config.CatalogConfig{
			BaseURL: "http://127.0.0.1:1",
			Timeout: time.Second,
		},
		Log: config.LogConfig{Level: "debug", Format: "text"},
	}
}

// ---------------------------------------------------------------------------
// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper). Login rate limiting
// is disabled; each test gets its own cookie jar.
// ---------------------------------------------------------------------------

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	cfg := testConfig()
	require.NoError(t, cfg.Validate())

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug}))
	infra := app.New(cfg, logger, pool)

	handler, stop, err := app.Handler(context.Background(), infra)
	require.NoError(t, err)
	t.Cleanup(stop)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testServer{
		URL:    srv.URL,
		Client: &http.Client{Jar: jar, Timeout: 10 * time.Second},
		Pool:   pool,
		Infra:  infra,
	}
}

// seedAdmin inserts an active admin with password and returns its username.
func (ts *testServer) seedAdmin(t *testing.T, password string) string {
	t.Helper()

	hash, err := auth.NewPasswordHasher(testPBKDF2Rounds).Hash(password)
	require.NoError(t, err)

	username := testhelper.Unique("admin")
	testhelper.SeedAdmin(t, ts.Pool, username, hash)
	return username
}

// login posts credentials and returns the response and its body.
func (ts *testServer) login(t *testing.T, username, password string) (*http.Response, []byte) {
	t.Helper()

	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/admin/login", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-Id", "e2e-client")

	return ts.do(t, req)
}

// get issues a GET with the test client's cookies.
func (ts *testServer) get(t *testing.T, path string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+path, nil)
	require.NoError(t, err)
	return ts.do(t, req)
}

func (ts *testServer) do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

// decode unmarshals a JSON body into a fresh T.
func decode[T any](t *testing.T, body []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(body, &v), "body: %s", body)
	return v
}
