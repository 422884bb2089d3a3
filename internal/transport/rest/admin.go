package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/archive-backend/internal/domain"
)

type dashboardService interface {
	Counts(ctx context.Context) (domain.DashboardCounts, error)
}

type failedLoginService interface {
	FailedLogins(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}

// AdminHandler serves session-protected admin endpoints.
type AdminHandler struct {
	content dashboardService
	auth    failedLoginService
	log     *slog.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(content dashboardService, auth failedLoginService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		content: content,
		auth:    auth,
		log:     logger.With("handler", "admin"),
	}
}

// Dashboard returns content counts.
// GET /admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := h.content.Counts(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

type failedLoginResponse struct {
	ID                string    `json:"id"`
	At                time.Time `json:"at"`
	Username          string    `json:"username"`
	Reason            string    `json:"reason"`
	RemoteAddr        string    `json:"remote_addr,omitempty"`
	ClientID          string    `json:"client_id,omitempty"`
	UserAgent         string    `json:"user_agent,omitempty"`
	AttemptedPassword *string   `json:"attempted_password,omitempty"`
	PasswordRedacted  bool      `json:"password_redacted,omitempty"`
}

// FailedLogins lists recent failed login attempts, newest first.
// GET /admin/failed-logins?limit=200
func (h *AdminHandler) FailedLogins(w http.ResponseWriter, r *http.Request) {
	// Non-positive or unparsable limits fall through to the service default.
	limit := domain.ParsePositiveInt(r.URL.Query().Get("limit"), 0, 1000)

	entries, err := h.auth.FailedLogins(r.Context(), limit)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]failedLoginResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toFailedLogin(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func toFailedLogin(e domain.AuditEntry) failedLoginResponse {
	str := func(key string) string {
		v, _ := e.Metadata[key].(string)
		return v
	}

	resp := failedLoginResponse{
		ID:         e.ID.String(),
		At:         e.CreatedAt,
		Username:   str("username"),
		Reason:     str("reason"),
		RemoteAddr: str("remote_addr"),
		ClientID:   str("client_id"),
		UserAgent:  str("user_agent"),
	}
	if pw, ok := e.Metadata["attempted_password"].(string); ok {
		resp.AttemptedPassword = &pw
	}
	resp.PasswordRedacted, _ = e.Metadata["password_redacted"].(bool)
	return resp
}
