package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/couchcryptid/ufo-sightings-etl/internal/domain"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	dateLayout      = "2006-01-02"
)

// exportHeader mirrors the canonical schema, one column per Sighting field.
var exportHeader = []string{
	"datetime", "date", "city", "state", "country", "shape",
	"duration_seconds", "description", "latitude", "longitude", "date_posted",
}

// Writer exports the cleaned dataset as a flat CSV file.
type Writer struct {
	path   string
	logger *slog.Logger
}

// NewWriter creates a Writer targeting the given path.
func NewWriter(path string, logger *slog.Logger) *Writer {
	return &Writer{path: path, logger: logger}
}

// Export writes one row per record to a temporary file and renames it over
// the target, so a failed export never leaves a partially written file
// behind.
func (w *Writer) Export(_ context.Context, records []domain.Sighting) error {
	tmp := w.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}

	cw := csv.NewWriter(f)
	writeErr := cw.Write(exportHeader)
	for _, s := range records {
		if writeErr != nil {
			break
		}
		writeErr = cw.Write(exportRow(s))
	}
	cw.Flush()
	if writeErr == nil {
		writeErr = cw.Error()
	}
	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmp)
		return fmt.Errorf("write export: %w", writeErr)
	}

	if err := os.Rename(tmp, w.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace export: %w", err)
	}

	w.logger.Info("cleaned csv exported", "path", w.path, "rows", len(records))
	return nil
}

func exportRow(s domain.Sighting) []string {
	datePosted := ""
	if s.DatePosted != nil {
		datePosted = s.DatePosted.Format(dateLayout)
	}
	return []string{
		s.Timestamp.Format(timestampLayout),
		s.Date.Format(dateLayout),
		s.City,
		s.State,
		s.Country,
		s.Shape,
		strconv.FormatFloat(s.DurationSeconds, 'f', -1, 64),
		s.Description,
		strconv.FormatFloat(s.Latitude, 'f', -1, 64),
		strconv.FormatFloat(s.Longitude, 'f', -1, 64),
		datePosted,
	}
}
