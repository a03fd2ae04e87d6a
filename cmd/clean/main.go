// Command clean runs the batch cleaning pipeline: it reads the raw sightings
// CSV, normalizes it into the canonical schema, writes the cleaned CSV
// export, and atomically replaces the SQLite store.
//
// Row-level failures (bad timestamps, bad coordinates, duplicates) are
// dropped and counted. A missing input file, an incompatible schema, or a
// store write failure aborts the run with a non-zero exit and leaves any
// previous dataset intact.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/couchcryptid/ufo-sightings-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/ufo-sightings-etl/internal/adapter/sqlite"
	"github.com/couchcryptid/ufo-sightings-etl/internal/config"
	"github.com/couchcryptid/ufo-sightings-etl/internal/domain"
	"github.com/couchcryptid/ufo-sightings-etl/internal/observability"
	"github.com/couchcryptid/ufo-sightings-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	aliases, err := config.LoadAliases(cfg.AliasFile)
	if err != nil {
		logger.Error("failed to load alias file", "error", err)
		os.Exit(1)
	}

	reader := csvfile.NewReader(cfg.CSVPath, aliases, logger)
	writer := csvfile.NewWriter(cfg.CleanedCSVPath, logger)
	store := sqlite.NewStore(cfg.DBPath, logger)

	p := pipeline.New(reader, store, writer, logger, metrics)

	report, err := p.Run(context.Background())
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Error("input file not found", "path", cfg.CSVPath)
		os.Exit(1)
	case errors.Is(err, domain.ErrSchema):
		logger.Error("input file has an incompatible schema", "path", cfg.CSVPath, "error", err)
		os.Exit(1)
	case err != nil:
		logger.Error("cleaning run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("cleaning run complete",
		"rows_in", report.RowsIn,
		"rows_out", report.RowsOut,
		"dropped_bad_timestamp", report.Dropped[domain.DropBadTimestamp],
		"dropped_bad_coordinates", report.Dropped[domain.DropBadCoordinates],
		"dropped_duplicate", report.Dropped[domain.DropDuplicate],
		"db", cfg.DBPath,
		"export", cfg.CleanedCSVPath,
	)
}
