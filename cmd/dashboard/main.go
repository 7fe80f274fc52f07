// Command dashboard serves the MCI planning dashboard over the cleaned
// earthquake dataset: the embedded frontend, the JSON aggregate API, and the
// operational probes.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpapi "github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/api/http"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/config"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/dataset"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/observability"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	loader := dataset.NewLoader(cfg.CleanPath, logger, metrics, nil)
	if err := loader.Check(); err != nil {
		// Not fatal: the server comes up and reports unready until the
		// cleaner produces the artifact.
		logger.Warn("cleaned dataset not ready", "error", err)
	}

	srv := httpapi.New(cfg, loader, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Listen(); err != nil {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
