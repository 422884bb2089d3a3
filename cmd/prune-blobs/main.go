// Command prune-blobs deletes embedded media blobs that no content row
// references and that are older than media.blob_grace. Uploads abandoned
// by a crash between storing a blob and saving its record end up here.
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
	"github.com/heartmarshall/archive-backend/internal/config"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	infra, err := app.Setup(ctx)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}
	defer infra.Close()

	if infra.Config.Media.Backend != config.MediaBackendEmbedded {
		infra.Log.Info("media backend is not embedded, nothing to prune",
			slog.String("backend", infra.Config.Media.Backend))
		return
	}

	cutoff := time.Now().Add(-infra.Config.Media.BlobGrace)

	deleted, err := infra.Blobs.PruneUnreferenced(ctx, cutoff)
	if err != nil {
		infra.Log.Error("prune blobs failed",
			slog.String("error", err.Error()),
			slog.Time("cutoff", cutoff),
		)
		os.Exit(1)
	}

	infra.Log.Info("prune blobs completed",
		slog.Int64("deleted", deleted),
		slog.Time("cutoff", cutoff),
	)
}
