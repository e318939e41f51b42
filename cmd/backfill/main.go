package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/neacisu/geniuserp-ledger/internal/core/services"
	"github.com/neacisu/geniuserp-ledger/internal/repositories/database/pgsql"
	"github.com/neacisu/geniuserp-ledger/pkg/config"
	"github.com/neacisu/geniuserp-ledger/pkg/database"
)

// One-shot tool that assigns journal numbers to historical entries imported
// without one. Each entry is numbered in its own transaction, so a failed run
// can simply be re-run and picks up where it stopped.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	repos := pgsql.NewRepositoryProvider(dbPool)
	svc := services.NewServiceContainer(*repos)

	logger.Info("Starting journal number backfill")
	count, err := svc.Numbering.BackfillJournalNumbers(ctx)
	if err != nil {
		logger.Error("Backfill stopped with error",
			slog.Int("numbered", count),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	logger.Info("Backfill completed", slog.Int("numbered", count))
}
