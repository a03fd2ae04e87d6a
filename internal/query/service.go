package query

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/ufo-sightings-etl/internal/domain"
	"github.com/couchcryptid/ufo-sightings-etl/internal/observability"
)

// Result is everything the dashboard needs to redraw after a filter change:
// the filtered records for the map plus the derived summary tables. An empty
// result (Total == 0) is a valid state, not an error.
type Result struct {
	Total        int               `json:"total"`
	Records      []domain.Sighting `json:"records"`
	TopCountries []CategoryCount   `json:"top_countries"`
	TopShapes    []CategoryCount   `json:"top_shapes"`
	YearlyCounts []YearCount       `json:"yearly_counts"`
}

// Service is the dashboard-facing query interface: filter options derived
// from the loaded dataset, and filter-and-aggregate queries over it.
type Service struct {
	cache   *DatasetCache
	topK    int
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewService creates a query service over the given cache. topK bounds the
// country and shape leaderboards.
func NewService(cache *DatasetCache, topK int, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		cache:   cache,
		topK:    topK,
		logger:  logger,
		metrics: metrics,
	}
}

// Options returns the filterable dimensions of the currently loaded dataset.
func (s *Service) Options(_ context.Context) FilterOptions {
	return s.cache.Options()
}

// Query runs one full filter-and-aggregate pass over the cached dataset.
func (s *Service) Query(_ context.Context, c Criteria) Result {
	start := time.Now()

	filtered := Apply(s.cache.Snapshot(), c)
	result := Result{
		Total:        len(filtered),
		Records:      filtered,
		TopCountries: TopByCountry(filtered, s.topK),
		TopShapes:    TopByShape(filtered, s.topK),
		YearlyCounts: CountsByYear(filtered),
	}

	s.metrics.QueriesTotal.Inc()
	s.metrics.QueryDuration.Observe(time.Since(start).Seconds())
	s.logger.Debug("query executed",
		"total", result.Total,
		"dataset_size", s.cache.Size(),
		"duration", time.Since(start),
	)
	return result
}

// Reload re-scans the store into the cache, the explicit invalidation
// trigger after a pipeline re-run.
func (s *Service) Reload(ctx context.Context) error {
	if err := s.cache.Reload(ctx); err != nil {
		return err
	}
	s.metrics.DatasetRows.Set(float64(s.cache.Size()))
	s.logger.Info("dataset reloaded", "rows", s.cache.Size())
	return nil
}
