package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/couchcryptid/ufo-sightings-etl/internal/domain"
)

// Scanner performs the one bulk read of the persisted dataset.
type Scanner interface {
	ScanAll(ctx context.Context) ([]domain.Sighting, error)
}

// DatasetCache holds the session's in-memory copy of the persisted dataset.
// It is loaded once at startup and invalidated only by an explicit Reload
// after the cleaning pipeline has been re-run; queries never trigger a read
// from storage.
type DatasetCache struct {
	scanner Scanner

	mu       sync.RWMutex
	records  []domain.Sighting
	options  FilterOptions
	loadedAt time.Time
}

// NewDatasetCache creates an empty cache over the given scanner. The cache
// is not ready until the first successful Reload.
func NewDatasetCache(scanner Scanner) *DatasetCache {
	return &DatasetCache{scanner: scanner}
}

// Reload replaces the cached dataset with a fresh bulk scan of the store.
// On failure the previously cached dataset remains intact.
func (c *DatasetCache) Reload(ctx context.Context) error {
	records, err := c.scanner.ScanAll(ctx)
	if err != nil {
		return fmt.Errorf("reload dataset: %w", err)
	}
	options := DeriveOptions(records)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = records
	c.options = options
	c.loadedAt = domain.Now()
	return nil
}

// Snapshot returns the cached records. Callers must treat the slice as
// read-only; the filter engine never mutates its input.
func (c *DatasetCache) Snapshot() []domain.Sighting {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.records
}

// Options returns the filter options derived at load time.
func (c *DatasetCache) Options() FilterOptions {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.options
}

// LoadedAt returns when the cache was last successfully reloaded, or the
// zero time if it never was.
func (c *DatasetCache) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

// Size returns the number of cached records.
func (c *DatasetCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// CheckReadiness returns nil once the dataset has been loaded, or an error
// describing why the service is not yet ready.
func (c *DatasetCache) CheckReadiness(_ context.Context) error {
	if c.LoadedAt().IsZero() {
		return errors.New("dataset has not been loaded yet")
	}
	return nil
}
