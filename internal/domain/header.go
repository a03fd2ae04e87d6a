package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Canonical field names used throughout the pipeline. Raw CSV headers are
// folded onto these before any row-level processing happens.
const (
	FieldDatetime        = "datetime"
	FieldCity            = "city"
	FieldState           = "state"
	FieldCountry         = "country"
	FieldShape           = "shape"
	FieldDurationSeconds = "duration_seconds"
	FieldDescription     = "description"
	FieldLatitude        = "latitude"
	FieldLongitude       = "longitude"
	FieldDatePosted      = "date_posted"
)

// ErrSchema is returned when the raw input has no recognizable timestamp or
// coordinate columns at all. That indicates an incompatible file, not a few
// bad rows, so processing aborts without writing anything.
var ErrSchema = errors.New("incompatible input schema")

// requiredFields must all be present (post-canonicalization) for the input
// to be processable. Everything else is optional.
var requiredFields = []string{FieldDatetime, FieldLatitude, FieldLongitude}

// DefaultAliases maps already-canonicalized header names that differ from the
// canonical schema onto their canonical field. "duration (seconds)" and
// "date posted" fold onto the canonical names through CanonicalizeHeader
// alone and need no entry here.
func DefaultAliases() map[string]string {
	return map[string]string{
		"comments":   FieldDescription,
		"duration_s": FieldDurationSeconds,
		"lat":        FieldLatitude,
		"lon":        FieldLongitude,
		"long":       FieldLongitude,
	}
}

// CanonicalizeHeader normalizes a single raw column name: trim, lower-case,
// spaces to underscores, parentheses stripped, then alias mapping. A nil
// aliases map applies DefaultAliases.
func CanonicalizeHeader(name string, aliases map[string]string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "(", "")
	name = strings.ReplaceAll(name, ")", "")
	if aliases == nil {
		aliases = DefaultAliases()
	}
	if canonical, ok := aliases[name]; ok {
		return canonical
	}
	return name
}

// ValidateHeader canonicalizes every column name and verifies the required
// fields are present. It returns the canonicalized header, or an error
// wrapping ErrSchema naming the missing fields.
func ValidateHeader(header []string, aliases map[string]string) ([]string, error) {
	canonical := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, name := range header {
		canonical[i] = CanonicalizeHeader(name, aliases)
		seen[canonical[i]] = true
	}

	var missing []string
	for _, f := range requiredFields {
		if !seen[f] {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns %s", ErrSchema, strings.Join(missing, ", "))
	}
	return canonical, nil
}
