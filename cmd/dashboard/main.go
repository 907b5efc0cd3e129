// Command dashboard loads the match and weather CSVs, joins them on
// (date, city), and serves the merged table through the dashboard HTTP API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pitchside/matchweather/internal/adapter/httpapi"
	"github.com/pitchside/matchweather/internal/config"
	"github.com/pitchside/matchweather/internal/dataset"
	"github.com/pitchside/matchweather/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	store := dataset.New(cfg.MatchFile, cfg.WeatherFile, logger, metrics)

	// Load eagerly: a schema error should refuse to start the service, not
	// surface on the first request.
	if _, err := store.Snapshot(); err != nil {
		logger.Error("initial dataset load failed", "error", err)
		os.Exit(1)
	}

	srv := httpapi.NewServer(cfg.HTTPAddr, store, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.WatchFiles {
		go func() {
			if err := store.Watch(ctx); err != nil {
				logger.Error("file watcher error", "error", err)
			}
		}()
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
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
