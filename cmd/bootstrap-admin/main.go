// Command bootstrap-admin creates the admin account or resets its password.
// The account is upserted by username and the action is audited.
//
// Flags (each defaults to its environment variable):
//
//	--username  ADMIN_USERNAME
//	--password  ADMIN_PASSWORD
//	--token     ADMIN_BOOTSTRAP_TOKEN, required when auth.bootstrap_token is set
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/archive-backend/internal/app"
	"github.com/heartmarshall/archive-backend/internal/service/auth"
	"github.com/heartmarshall/archive-backend/pkg/ctxutil"
)

func main() {
	username := flag.String("username", os.Getenv("ADMIN_USERNAME"), "admin username")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password")
	token := flag.String("token", os.Getenv("ADMIN_BOOTSTRAP_TOKEN"), "bootstrap token")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	infra, err := app.Setup(ctx)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}
	defer infra.Close()

	ctx = ctxutil.WithActor(ctx, "bootstrap-admin")
	user, err := infra.AuthService().Bootstrap(ctx, auth.BootstrapInput{
		Username: *username,
		Password: *password,
		Token:    *token,
	})
	if err != nil {
		infra.Log.Error("bootstrap admin", slog.String("error", err.Error()))
		os.Exit(1)
	}

	infra.Log.Info("admin ready", slog.String("username", user.Username))
}
