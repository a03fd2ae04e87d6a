// Package query implements the dashboard-facing side of the service: the
// filter engine, the aggregation functions, filter-option derivation, and
// the in-memory dataset cache they all read from.
package query

import (
	"strings"

	"github.com/couchcryptid/ufo-sightings-etl/internal/domain"
)

// YearRange is an inclusive [Min, Max] span of calendar years.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Criteria expresses zero or more independent filter predicates, composed
// with logical AND. Every field is optional; the zero Criteria matches all
// records. Set membership and the keyword match are case-insensitive.
type Criteria struct {
	YearRange *YearRange `json:"year_range,omitempty"`
	Countries []string   `json:"countries,omitempty"`
	States    []string   `json:"states,omitempty"`
	Shapes    []string   `json:"shapes,omitempty"`
	Keyword   string     `json:"keyword,omitempty"`
}

// Apply filters records by the given criteria. It is a pure function of its
// inputs: deterministic, no hidden state, and order-preserving. A criterion
// naming a value no record has yields an empty result, never an error.
func Apply(records []domain.Sighting, c Criteria) []domain.Sighting {
	countries := lowerSet(c.Countries)
	states := lowerSet(c.States)
	shapes := lowerSet(c.Shapes)
	keyword := strings.ToLower(strings.TrimSpace(c.Keyword))

	out := make([]domain.Sighting, 0, len(records))
	for _, s := range records {
		if c.YearRange != nil {
			year := s.Year()
			if year < c.YearRange.Min || year > c.YearRange.Max {
				continue
			}
		}
		if countries != nil && !countries[strings.ToLower(s.Country)] {
			continue
		}
		if states != nil && !states[strings.ToLower(s.State)] {
			continue
		}
		if shapes != nil && !shapes[strings.ToLower(s.Shape)] {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(s.Description), keyword) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// lowerSet builds a case-folded membership set. An empty or absent list
// means "no filtering on this dimension", represented as a nil map.
func lowerSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = true
	}
	return set
}
