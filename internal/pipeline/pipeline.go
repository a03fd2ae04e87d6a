// Package pipeline orchestrates the batch cleaning run: extract raw rows
// from the source, normalize them into canonical sightings, and load the
// result into the store and the cleaned-CSV export.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/ufo-sightings-etl/internal/domain"
	"github.com/couchcryptid/ufo-sightings-etl/internal/observability"
)

// Extractor reads every raw row from the source dataset.
type Extractor interface {
	ExtractAll(ctx context.Context) ([]domain.RawRow, error)
}

// Loader atomically replaces the persisted dataset.
type Loader interface {
	ReplaceAll(ctx context.Context, records []domain.Sighting) error
}

// Exporter writes the cleaned dataset for external inspection.
type Exporter interface {
	Export(ctx context.Context, records []domain.Sighting) error
}

// Pipeline wires the extract-normalize-load stages together. Row-level
// failures are dropped and counted inside the normalizer; any stage error
// here is fatal for the run and nothing further is written.
type Pipeline struct {
	extractor Extractor
	loader    Loader
	exporter  Exporter
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline. exporter may be nil to skip the CSV export.
func New(e Extractor, l Loader, x Exporter, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		extractor: e,
		loader:    l,
		exporter:  x,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run executes one full cleaning run and returns the normalization report.
func (p *Pipeline) Run(ctx context.Context) (domain.CleanReport, error) {
	start := time.Now()

	rows, err := p.extractor.ExtractAll(ctx)
	if err != nil {
		return domain.CleanReport{}, fmt.Errorf("extract: %w", err)
	}

	records, report := domain.Normalize(rows)

	p.metrics.RowsRead.Add(float64(report.RowsIn))
	for reason, count := range report.Dropped {
		p.metrics.RowsDropped.WithLabelValues(string(reason)).Add(float64(count))
	}

	p.logger.Info("normalization complete",
		"rows_in", report.RowsIn,
		"rows_out", report.RowsOut,
		"dropped", report.TotalDropped(),
	)

	if p.exporter != nil {
		if err := p.exporter.Export(ctx, records); err != nil {
			return report, fmt.Errorf("export: %w", err)
		}
	}

	if err := p.loader.ReplaceAll(ctx, records); err != nil {
		return report, fmt.Errorf("load: %w", err)
	}
	p.metrics.RowsStored.Add(float64(len(records)))
	p.metrics.CleanDuration.Observe(time.Since(start).Seconds())

	return report, nil
}
