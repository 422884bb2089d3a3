package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/archive-backend/internal/domain"
	"github.com/heartmarshall/archive-backend/internal/service/auth"
	"github.com/heartmarshall/archive-backend/internal/transport/session"
	"github.com/heartmarshall/archive-backend/pkg/ctxutil"
)

// ClientIDHeader optionally identifies the client device in audit entries.
const ClientIDHeader = "X-Client-Id"

// authService defines the minimal interface needed by AuthHandler.
type authService interface {
	Authenticate(ctx context.Context, input auth.LoginInput) (*auth.LoginResult, error)
}

// sessionManager writes the admin session cookie.
type sessionManager interface {
	Login(w http.ResponseWriter, r *http.Request, admin session.Admin) error
	Logout(w http.ResponseWriter, r *http.Request) error
}

// AuthHandler serves admin login and logout.
type AuthHandler struct {
	svc      authService
	sessions sessionManager
	log      *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, sessions sessionManager, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, sessions: sessions, log: logger.With("handler", "auth")}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Username string `json:"username"`
	Fallback bool   `json:"fallback"`
}

type loginErrorResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retry_after,omitempty"`
}

// Login handles POST /admin/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Authenticate(r.Context(), auth.LoginInput{
		Username:   req.Username,
		Password:   req.Password,
		RemoteAddr: ctxutil.RemoteAddrFromCtx(r.Context()),
		ClientID:   r.Header.Get(ClientIDHeader),
		UserAgent:  r.UserAgent(),
	})
	if err != nil {
		h.loginFailed(w, r, err)
		return
	}

	if err := h.sessions.Login(w, r, session.Admin{Username: result.Username, Fallback: result.Fallback}); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Username: result.Username, Fallback: result.Fallback})
}

func (h *AuthHandler) loginFailed(w http.ResponseWriter, r *http.Request, err error) {
	var le *auth.LoginError
	if !errors.As(err, &le) {
		handleError(h.log, w, r, err)
		return
	}

	resp := loginErrorResponse{Error: "invalid credentials"}
	if le.Wait > 0 {
		resp.RetryAfter = domain.WaitSeconds(le.Wait)
	}

	status := http.StatusUnauthorized
	var locked *domain.LockedError
	if errors.As(err, &locked) {
		status = http.StatusTooManyRequests
		resp.Error = locked.Error()
		resp.RetryAfter = domain.WaitSeconds(locked.Wait)
		w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfter))
	}

	writeJSON(w, status, resp)
}

// Logout handles POST /admin/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(w, r); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
