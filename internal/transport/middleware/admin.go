package middleware

import (
	"net/http"

	"github.com/heartmarshall/archive-backend/pkg/ctxutil"
)

// AdminSession resolves the logged-in admin from a request.
type AdminSession interface {
	CurrentAdmin(r *http.Request) (username string, ok bool)
}

// RequireAdmin rejects requests without an admin session with 401 and
// records the admin as the actor for audit entries written downstream.
func RequireAdmin(sessions AdminSession) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, ok := sessions.CurrentAdmin(r)
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"authentication required"}` + "\n"))
				return
			}

			ctx := ctxutil.WithActor(r.Context(), username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
