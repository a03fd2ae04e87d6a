package domain

import "time"

// RawRow is one record from the source CSV, keyed by canonical field name.
// Values are untouched free text; any field may be missing or malformed.
type RawRow map[string]string

// Sighting is the canonical representation of a reported sighting event.
// Every persisted Sighting has a valid Timestamp and in-range coordinates.
type Sighting struct {
	Timestamp       time.Time  `json:"timestamp"`
	Date            time.Time  `json:"date"` // Timestamp truncated to day
	City            string     `json:"city,omitempty"`
	State           string     `json:"state,omitempty"`
	Country         string     `json:"country,omitempty"`
	Shape           string     `json:"shape"`
	DurationSeconds float64    `json:"duration_seconds"`
	Description     string     `json:"description,omitempty"`
	Latitude        float64    `json:"latitude"`
	Longitude       float64    `json:"longitude"`
	DatePosted      *time.Time `json:"date_posted,omitempty"`
}

// Year returns the calendar year of the sighting, used for range filtering
// and yearly aggregation.
func (s Sighting) Year() int {
	return s.Date.Year()
}

// DedupKey identifies a sighting for duplicate removal. Two rows that agree
// on all four fields describe the same report, regardless of any other field.
type DedupKey struct {
	TimestampUnix int64
	Latitude      float64
	Longitude     float64
	Description   string
}

// Key returns the sighting's deduplication key.
func (s Sighting) Key() DedupKey {
	return DedupKey{
		TimestampUnix: s.Timestamp.Unix(),
		Latitude:      s.Latitude,
		Longitude:     s.Longitude,
		Description:   s.Description,
	}
}

// DropReason classifies why a raw row was rejected during normalization.
type DropReason string

const (
	DropBadTimestamp   DropReason = "bad_timestamp"
	DropBadCoordinates DropReason = "bad_coordinates"
	DropDuplicate      DropReason = "duplicate"
)

// CleanReport summarizes one normalization run for operator visibility.
// It is a reporting side effect only; correctness is carried by the
// returned records.
type CleanReport struct {
	RowsIn  int
	RowsOut int
	Dropped map[DropReason]int
}

// TotalDropped returns the number of rejected rows across all reasons.
func (r CleanReport) TotalDropped() int {
	n := 0
	for _, c := range r.Dropped {
		n += c
	}
	return n
}
