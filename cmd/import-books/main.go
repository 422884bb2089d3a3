// Command import-books bulk-loads books from a JSON or YAML export. Rows
// are upserted by original title; slugs are allocated without collisions.
//
// Flags:
//
//	--file     input path (default import.file)
//	--dry-run  report what would change without writing
//
// Exit codes: 0 = success (row errors are reported, not fatal), 1 = error.
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
	"github.com/heartmarshall/archive-backend/internal/service/importer"
	"github.com/heartmarshall/archive-backend/pkg/ctxutil"
)

func main() {
	file := flag.String("file", "", "path to the books export (.json, .yaml)")
	dryRun := flag.Bool("dry-run", false, "do not write to the database")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	infra, err := app.Setup(ctx)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}
	defer infra.Close()

	path := *file
	if path == "" {
		path = infra.Config.Import.File
	}

	raw, err := importer.ReadFile(path)
	if err != nil {
		infra.Log.Error("read import file", slog.String("path", path), slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx = ctxutil.WithActor(ctx, "import-books")
	report, err := infra.Importer().Run(ctx, raw, importer.Options{DryRun: *dryRun || infra.Config.Import.DryRun})
	if err != nil {
		infra.Log.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, rowErr := range report.Errors {
		fmt.Fprintf(os.Stderr, "row %d: %s\n", rowErr.Index, rowErr.Message)
	}
	fmt.Println(report.Summary())
}
