package domain

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// timestampLayouts are attempted in order. The first is the NUFORC report
// format ("10/10/1949 20:30"); the second is the canonical format written by
// the cleaned-CSV exporter, so re-ingesting cleaned output parses losslessly.
var timestampLayouts = []string{
	"1/2/2006 15:04",
	"2006-01-02 15:04:05",
}

// dateLayouts cover the secondary posted-date field.
var dateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
}

// entityDecoder decodes the handful of HTML entities the NUFORC export uses
// to escape punctuation inside comment text. The source data frequently
// omits the trailing semicolon, so both spellings are handled.
var entityDecoder = strings.NewReplacer(
	"&#44;", ",",
	"&#44", ",",
	"&quot;", `"`,
	"&#33;", "!",
	"&#33", "!",
)

// Normalize converts raw rows into canonical sightings. Rows that fail
// timestamp or coordinate validation are dropped and counted; duplicates on
// (timestamp, latitude, longitude, description) are dropped keeping the
// first occurrence. Output preserves input order.
func Normalize(rows []RawRow) ([]Sighting, CleanReport) {
	report := CleanReport{
		RowsIn:  len(rows),
		Dropped: make(map[DropReason]int),
	}

	out := make([]Sighting, 0, len(rows))
	seen := make(map[DedupKey]bool, len(rows))

	for _, row := range rows {
		s, reason := NormalizeRow(row)
		if reason != "" {
			report.Dropped[reason]++
			continue
		}
		key := s.Key()
		if seen[key] {
			report.Dropped[DropDuplicate]++
			continue
		}
		seen[key] = true
		out = append(out, s)
	}

	report.RowsOut = len(out)
	return out, report
}

// NormalizeRow validates and transforms a single raw row. It returns the
// canonical sighting and an empty DropReason, or the zero Sighting and the
// reason the row was rejected. Deduplication is handled by Normalize since
// it needs cross-row state.
func NormalizeRow(row RawRow) (Sighting, DropReason) {
	ts, ok := parseTimestamp(row[FieldDatetime])
	if !ok {
		return Sighting{}, DropBadTimestamp
	}

	lat, ok := parseCoordinate(row[FieldLatitude], 90)
	if !ok {
		return Sighting{}, DropBadCoordinates
	}
	lon, ok := parseCoordinate(row[FieldLongitude], 180)
	if !ok {
		return Sighting{}, DropBadCoordinates
	}

	return Sighting{
		Timestamp:       ts,
		Date:            ts.Truncate(24 * time.Hour),
		City:            strings.ToLower(strings.TrimSpace(row[FieldCity])),
		State:           strings.ToLower(strings.TrimSpace(row[FieldState])),
		Country:         strings.ToLower(strings.TrimSpace(row[FieldCountry])),
		Shape:           normalizeShape(row[FieldShape]),
		DurationSeconds: parseDuration(row[FieldDurationSeconds]),
		Description:     SanitizeDescription(row[FieldDescription]),
		Latitude:        lat,
		Longitude:       lon,
		DatePosted:      parseDatePosted(row[FieldDatePosted]),
	}, ""
}

// parseTimestamp attempts each accepted layout in order. The timestamp is
// the primary ordering key, so an unparseable value invalidates the row.
func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// parseCoordinate parses a latitude or longitude and checks it against the
// symmetric valid range [-limit, limit].
func parseCoordinate(value string, limit float64) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, false
	}
	if v < -limit || v > limit {
		return 0, false
	}
	return v, true
}

// normalizeShape lower-cases and trims the reported shape, substituting
// "unknown" when the field is empty or missing.
func normalizeShape(value string) string {
	shape := strings.ToLower(strings.TrimSpace(value))
	if shape == "" {
		return "unknown"
	}
	return shape
}

// SanitizeDescription cleans free-text comment fields: HTML entities are
// decoded first so escaped punctuation survives, then every character that
// is not a letter, digit, whitespace, or one of ".,!?" is removed.
func SanitizeDescription(value string) string {
	value = entityDecoder.Replace(strings.TrimSpace(value))
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		switch r {
		case '.', ',', '!', '?':
			return r
		}
		return -1
	}, value)
}

// parseDuration parses the duration field in seconds, defaulting to 0 when
// the value is missing or unparseable. Negative values are clamped to 0;
// the source data should not produce them, but the invariant is non-negative.
// Note that this conflates "zero duration" with "unknown duration", which
// matches the upstream dataset's own convention.
func parseDuration(value string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// parseDatePosted parses the optional secondary posted date. Absence or an
// unparseable value yields nil, never an error.
func parseDatePosted(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, value); err == nil {
			return &d
		}
	}
	return nil
}
