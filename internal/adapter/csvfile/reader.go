// Package csvfile adapts local CSV files to the pipeline: a source reader
// that canonicalizes headers and streams raw rows, and an exporter that
// writes the cleaned dataset back out for external inspection.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/ufo-sightings-etl/internal/domain"
)

// Reader extracts raw rows from a sightings CSV file.
type Reader struct {
	path    string
	aliases map[string]string
	logger  *slog.Logger
}

// NewReader creates a Reader for the given file. extraAliases extends the
// built-in header alias table and may be nil.
func NewReader(path string, extraAliases map[string]string, logger *slog.Logger) *Reader {
	aliases := domain.DefaultAliases()
	for raw, canonical := range extraAliases {
		aliases[domain.CanonicalizeHeader(raw, map[string]string{})] = canonical
	}
	return &Reader{path: path, aliases: aliases, logger: logger}
}

// ExtractAll reads the whole file into raw rows keyed by canonical field
// name. It fails with domain.ErrSchema when the header lacks the required
// columns, and with an fs.ErrNotExist-wrapping error when the file is
// missing. Individual unparseable CSV lines are skipped with a warning;
// row-level validation belongs to the normalizer, not the reader.
func (r *Reader) ExtractAll(ctx context.Context) ([]domain.RawRow, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable header: %v", domain.ErrSchema, err)
	}
	canonical, err := domain.ValidateHeader(header, r.aliases)
	if err != nil {
		return nil, err
	}

	var rows []domain.RawRow
	skipped := 0
	for {
		if len(rows)%4096 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			return nil, fmt.Errorf("read input: %w", err)
		}

		row := make(domain.RawRow, len(canonical))
		for i, field := range canonical {
			if i < len(record) {
				row[field] = record[i]
			}
		}
		rows = append(rows, row)
	}

	if skipped > 0 {
		r.logger.Warn("skipped unparseable csv lines", "count", skipped)
	}
	r.logger.Info("extracted raw rows", "path", r.path, "rows", len(rows))
	return rows, nil
}
