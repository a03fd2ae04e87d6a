// Command serve runs the dashboard query API. It bulk-loads the persisted
// dataset into memory once at startup and serves filter options and
// filter-and-aggregate queries over it; the cache is refreshed only via an
// explicit /api/reload after the cleaning pipeline has been re-run.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/ufo-sightings-etl/internal/adapter/http"
	"github.com/couchcryptid/ufo-sightings-etl/internal/adapter/sqlite"
	"github.com/couchcryptid/ufo-sightings-etl/internal/config"
	"github.com/couchcryptid/ufo-sightings-etl/internal/observability"
	"github.com/couchcryptid/ufo-sightings-etl/internal/query"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	store := sqlite.NewStore(cfg.DBPath, logger)
	cache := query.NewDatasetCache(store)
	service := query.NewService(cache, cfg.TopK, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := service.Reload(ctx); err != nil {
		logger.Error("failed to load dataset, run the cleaning pipeline first",
			"db", cfg.DBPath, "error", err)
		os.Exit(1)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, service, cache, logger)

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
