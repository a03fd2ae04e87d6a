package query

import (
	"sort"

	"github.com/couchcryptid/ufo-sightings-etl/internal/domain"
)

// FilterOptions describes the filterable dimensions of the loaded dataset,
// used by the presentation layer to populate its controls.
type FilterOptions struct {
	Years     YearRange `json:"years"`
	Countries []string  `json:"countries"`
	States    []string  `json:"states"`
	Shapes    []string  `json:"shapes"`
}

// DeriveOptions computes the filter options for a dataset: the min/max year
// span plus sorted distinct countries, states, and shapes. Blank values are
// omitted from the category lists. An empty dataset yields the zero span
// and empty lists.
func DeriveOptions(records []domain.Sighting) FilterOptions {
	opts := FilterOptions{
		Countries: []string{},
		States:    []string{},
		Shapes:    []string{},
	}
	if len(records) == 0 {
		return opts
	}

	countries := make(map[string]bool)
	states := make(map[string]bool)
	shapes := make(map[string]bool)

	opts.Years.Min = records[0].Year()
	opts.Years.Max = records[0].Year()
	for _, s := range records {
		if y := s.Year(); y < opts.Years.Min {
			opts.Years.Min = y
		} else if y > opts.Years.Max {
			opts.Years.Max = y
		}
		if s.Country != "" {
			countries[s.Country] = true
		}
		if s.State != "" {
			states[s.State] = true
		}
		if s.Shape != "" {
			shapes[s.Shape] = true
		}
	}

	opts.Countries = sortedKeys(countries)
	opts.States = sortedKeys(states)
	opts.Shapes = sortedKeys(shapes)
	return opts
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
