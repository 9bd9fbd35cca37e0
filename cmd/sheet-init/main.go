package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	gsheet "quickledger/internal/ledger/google"
	applog "quickledger/internal/log"
)

// sheet-init writes the canonical header row to an empty sheet so the
// server and worker agree on column order. It refuses to touch a sheet
// that already holds data.
func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.Config{
		Level:     slog.LevelInfo,
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}

	if err := client.EnsureHeader(ctx); err != nil {
		logger.Error("Failed to ensure sheet header", "error", err)
		os.Exit(1)
	}

	logger.Info("Sheet header is in place")
}
