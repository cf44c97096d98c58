package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"ReviewAnalyzer/internal/app"
	"ReviewAnalyzer/internal/config"
	"ReviewAnalyzer/internal/logging"
)

func main() {
	importTo := flag.String("import-sqlite", "", "copy the configured seed into a SQLite database at this path and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	application := app.New(cfg, logger)

	if *importTo != "" {
		if _, err := application.ImportSQLite(ctx, *importTo); err != nil {
			logger.Error("seed import failed", "error", err)
			stop()
			os.Exit(1)
		}
		return
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("application stopped", "error", err)
		stop()
		os.Exit(1)
	}
}
