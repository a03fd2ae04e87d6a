package query

import (
	"sort"

	"github.com/couchcryptid/ufo-sightings-etl/internal/domain"
)

// CategoryCount is one row of a grouped count, e.g. ("us", 4812).
type CategoryCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// YearCount is the number of filtered sightings in one calendar year.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// TopByCountry returns the k most frequent countries in the given records,
// sorted by descending count with ties broken by first encounter order.
// Records with no country are excluded.
func TopByCountry(records []domain.Sighting, k int) []CategoryCount {
	return topByCategory(records, k, func(s domain.Sighting) string { return s.Country })
}

// TopByShape returns the k most frequent shapes, with the same semantics as
// TopByCountry.
func TopByShape(records []domain.Sighting, k int) []CategoryCount {
	return topByCategory(records, k, func(s domain.Sighting) string { return s.Shape })
}

func topByCategory(records []domain.Sighting, k int, key func(domain.Sighting) string) []CategoryCount {
	if k <= 0 {
		return []CategoryCount{}
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0
	for _, s := range records {
		v := key(s)
		if v == "" {
			continue
		}
		if _, ok := counts[v]; !ok {
			firstSeen[v] = order
			order++
		}
		counts[v]++
	}

	out := make([]CategoryCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, CategoryCount{Value: v, Count: c})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return firstSeen[out[i].Value] < firstSeen[out[j].Value]
	})

	if len(out) > k {
		out = out[:k]
	}
	return out
}

// CountsByYear returns per-year sighting counts in ascending year order.
// Only years present in the input appear; gaps are not zero-filled.
func CountsByYear(records []domain.Sighting) []YearCount {
	counts := make(map[int]int)
	for _, s := range records {
		counts[s.Year()]++
	}

	out := make([]YearCount, 0, len(counts))
	for y, c := range counts {
		out = append(out, YearCount{Year: y, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
