// Command prune-lockouts deletes login_attempts rows whose lock expired
// more than auth.lockout_retention ago. Redis-held counters expire on
// their own. It is intended to be invoked by an external cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/archive-backend/internal/app"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	infra, err := app.Setup(ctx)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}
	defer infra.Close()

	cutoff := time.Now().Add(-infra.Config.Auth.LockoutRetention)

	deleted, err := infra.Lockout().PruneBefore(ctx, cutoff)
	if err != nil {
		infra.Log.Error("prune lockouts failed",
			slog.String("error", err.Error()),
			slog.Time("cutoff", cutoff),
		)
		os.Exit(1)
	}

	infra.Log.Info("prune lockouts completed",
		slog.Int64("deleted", deleted),
		slog.Time("cutoff", cutoff),
		slog.String("store", infra.Config.Auth.LockoutStore),
	)
}
