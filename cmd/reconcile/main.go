// Command reconcile replays entries in reconciliation_log: applications
// whose fan-out webhook delivery or ETL projection did not complete. It
// re-runs the Projector for each unresolved entry and marks it resolved on
// success, leaving failures in place for the next run.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/seeg/recruiting-platform/internal/config"
	"github.com/seeg/recruiting-platform/internal/platform/logger"
	"github.com/seeg/recruiting-platform/internal/platform/postgres"
	"github.com/seeg/recruiting-platform/internal/platform/storage"

	etlRepo "github.com/seeg/recruiting-platform/modules/etl/repository"
	etlService "github.com/seeg/recruiting-platform/modules/etl/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer l.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pgClient, err := postgres.New(ctx, cfg.Database)
	if err != nil {
		l.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pgClient.Close()

	lakeWriter, err := storage.NewLakeWriter(cfg.S3)
	if err != nil {
		l.Fatal("Failed to initialize object lake writer", zap.Error(err))
	}

	reconcileRepo := etlRepo.NewReconciliationRepository(pgClient.Pool)
	projector := etlService.NewProjector(pgClient.Pool, lakeWriter, l)

	entries, err := reconcileRepo.ListUnresolved(ctx)
	if err != nil {
		l.Fatal("Failed to list unresolved reconciliation entries", zap.Error(err))
	}

	l.Info("Replaying reconciliation log", zap.Int("count", len(entries)))

	var replayed, failed int
	for _, entry := range entries {
		keys, err := projector.Run(ctx, entry.ApplicationID)
		if err != nil {
			failed++
			l.Warn("Replay failed, leaving entry unresolved",
				zap.String("application_id", entry.ApplicationID),
				zap.Error(err),
			)
			continue
		}

		if err := reconcileRepo.MarkResolved(ctx, entry.ID); err != nil {
			l.Warn("Projection succeeded but failed to mark entry resolved",
				zap.String("application_id", entry.ApplicationID),
				zap.Error(err),
			)
			continue
		}

		// A time-limited link to the fact blob so the operator can eyeball
		// the replayed projection without lake credentials.
		if len(keys) > 0 {
			if url, uerr := lakeWriter.PresignedDownloadURL(ctx, keys[0], 15*time.Minute); uerr == nil {
				l.Info("Replayed projection",
					zap.String("application_id", entry.ApplicationID),
					zap.String("fact_blob_url", url),
				)
			}
		}

		replayed++
	}

	l.Info("Reconciliation replay complete",
		zap.Int("replayed", replayed),
		zap.Int("failed", failed),
	)
}
