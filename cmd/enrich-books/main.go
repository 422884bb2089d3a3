// Command enrich-books fills missing covers and first publish years from
// Open Library. Values already present are never overwritten.
//
// Flags:
//
//	--limit    books to check in this run (default 50)
//	--dry-run  report matches without writing
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/archive-backend/internal/app"
	"github.com/heartmarshall/archive-backend/internal/service/enrichment"
	"github.com/heartmarshall/archive-backend/pkg/ctxutil"
)

func main() {
	limit := flag.Int("limit", 50, "books to check")
	dryRun := flag.Bool("dry-run", false, "do not write to the database")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	infra, err := app.Setup(ctx)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}
	defer infra.Close()

	ctx = ctxutil.WithActor(ctx, "enrich-books")
	res, err := infra.Enricher().Run(ctx, enrichment.Options{Limit: *limit, DryRun: *dryRun})
	if err != nil {
		infra.Log.Error("enrichment failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("checked=%d enriched=%d no_match=%d errors=%d dry_run=%t\n",
		res.Checked, res.Enriched, res.NoMatch, res.Errors, res.DryRun)
}
