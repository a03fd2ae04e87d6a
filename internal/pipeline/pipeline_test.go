package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/ufo-sightings-etl/internal/domain"
	"github.com/couchcryptid/ufo-sightings-etl/internal/observability"
	"github.com/couchcryptid/ufo-sightings-etl/internal/pipeline"
)

// --- mocks ---

type mockExtractor struct {
	rows []domain.RawRow
	err  error
}

func (m *mockExtractor) ExtractAll(_ context.Context) ([]domain.RawRow, error) {
	return m.rows, m.err
}

type mockLoader struct {
	loaded []domain.Sighting
	err    error
	calls  int
}

func (m *mockLoader) ReplaceAll(_ context.Context, records []domain.Sighting) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.loaded = records
	return nil
}

type mockExporter struct {
	exported []domain.Sighting
	err      error
}

func (m *mockExporter) Export(_ context.Context, records []domain.Sighting) error {
	if m.err != nil {
		return m.err
	}
	m.exported = records
	return nil
}

func rawRow(datetime string) domain.RawRow {
	return domain.RawRow{
		domain.FieldDatetime:    datetime,
		domain.FieldCity:        "seattle",
		domain.FieldCountry:     "us",
		domain.FieldShape:       "light",
		domain.FieldLatitude:    "47.6",
		domain.FieldLongitude:   "-122.3",
		domain.FieldDescription: "a light",
	}
}

func TestPipeline_Run_HappyPath(t *testing.T) {
	ext := &mockExtractor{rows: []domain.RawRow{
		rawRow("6/1/2010 22:15"),
		rawRow("7/4/1976 21:00"),
		{domain.FieldDatetime: "bogus", domain.FieldLatitude: "1", domain.FieldLongitude: "1"},
	}}
	ldr := &mockLoader{}
	exp := &mockExporter{}

	p := pipeline.New(ext, ldr, exp, slog.Default(), observability.NewMetricsForTesting())

	report, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.RowsIn)
	assert.Equal(t, 2, report.RowsOut)
	assert.Equal(t, 1, report.Dropped[domain.DropBadTimestamp])
	require.Len(t, ldr.loaded, 2)
	assert.Empty(t, cmp.Diff(ldr.loaded, exp.exported), "store and export see the same records")
}

func TestPipeline_Run_ExtractErrorIsFatal(t *testing.T) {
	ext := &mockExtractor{err: errors.New("no such file")}
	ldr := &mockLoader{}

	p := pipeline.New(ext, ldr, nil, slog.Default(), observability.NewMetricsForTesting())

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extract")
	assert.Zero(t, ldr.calls, "nothing is written after a fatal extract error")
}

func TestPipeline_Run_ExportErrorSkipsLoad(t *testing.T) {
	ext := &mockExtractor{rows: []domain.RawRow{rawRow("6/1/2010 22:15")}}
	ldr := &mockLoader{}
	exp := &mockExporter{err: errors.New("disk full")}

	p := pipeline.New(ext, ldr, exp, slog.Default(), observability.NewMetricsForTesting())

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export")
	assert.Zero(t, ldr.calls)
}

func TestPipeline_Run_LoadErrorPropagates(t *testing.T) {
	ext := &mockExtractor{rows: []domain.RawRow{rawRow("6/1/2010 22:15")}}
	ldr := &mockLoader{err: errors.New("permission denied")}

	p := pipeline.New(ext, ldr, nil, slog.Default(), observability.NewMetricsForTesting())

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load")
}

func TestPipeline_Run_NilExporter(t *testing.T) {
	ext := &mockExtractor{rows: []domain.RawRow{rawRow("6/1/2010 22:15")}}
	ldr := &mockLoader{}

	p := pipeline.New(ext, ldr, nil, slog.Default(), observability.NewMetricsForTesting())

	report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.RowsOut)
	assert.Len(t, ldr.loaded, 1)
}
