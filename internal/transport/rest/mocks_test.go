package rest

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/heartmarshall/archive-backend/internal/domain"
	"github.com/heartmarshall/archive-backend/internal/service/auth"
	"github.com/heartmarshall/archive-backend/internal/transport/session"
)

type authServiceMock struct {
	authenticateFn func(ctx context.Context, input auth.LoginInput) (*auth.LoginResult, error)
	inputs         []auth.LoginInput
}

func (m *authServiceMock) Authenticate(ctx context.Context, input auth.LoginInput) (*auth.LoginResult, error) {
	m.inputs = append(m.inputs, input)
	return m.authenticateFn(ctx, input)
}

type sessionManagerMock struct {
	logins  []session.Admin
	logouts int
	err     error
}

func (m *sessionManagerMock) Login(_ http.ResponseWriter, _ *http.Request, admin session.Admin) error {
	m.logins = append(m.logins, admin)
	return m.err
}

func (m *sessionManagerMock) Logout(http.ResponseWriter, *http.Request) error {
	m.logouts++
	return m.err
}

type dashboardMock struct {
	counts domain.DashboardCounts
	err    error
}

func (m *dashboardMock) Counts(context.Context) (domain.DashboardCounts, error) {
	return m.counts, m.err
}

type failedLoginsMock struct {
	entries []domain.AuditEntry
	err     error
	limits  []int
}

func (m *failedLoginsMock) FailedLogins(_ context.Context, limit int) ([]domain.AuditEntry, error) {
	m.limits = append(m.limits, limit)
	return m.entries, m.err
}

type blobOpenerMock struct {
	blobs map[string]domain.MediaBlob
	calls atomic.Int32
}

func (m *blobOpenerMock) Open(_ context.Context, kind domain.MediaKind, id string) (domain.MediaBlob, error) {
	m.calls.Add(1)
	b, ok := m.blobs[id]
	if !ok || b.Kind != kind {
		return domain.MediaBlob{}, domain.ErrNotFound
	}
	return b, nil
}
