// Package domain models reported UFO sighting data and its normalization
// into a canonical schema.
//
// # Data Source
//
// Sightings originate from the National UFO Reporting Center (NUFORC)
// dataset, distributed as a single wide CSV with free-text fields for date,
// location, shape, duration, and witness comments. The data spans several
// decades of reports and is heterogeneous in almost every column.
//
// # Source Data Conventions
//
// Header names:
//
//	Case, spacing, and parenthesized units vary between exports, e.g.
//	"duration (seconds)" and "Duration_Seconds" both mean the duration
//	column. Headers are trimmed, lower-cased, underscored, stripped of
//	parentheses, and folded through an alias table before any row is read.
//	See [CanonicalizeHeader].
//
// Timestamp format:
//
//	"M/D/YYYY HH:MM" in local report time, e.g. "10/10/1949 20:30".
//	Some rows carry "24:00" for midnight, which is not a valid clock time
//	and causes the row to be dropped; the timestamp is the primary
//	ordering key, so a row without one is unusable.
//
// Comment text:
//
//	Punctuation inside comments is escaped with HTML entities, frequently
//	without the trailing semicolon: "&#44" for a comma, "&quot;" for a
//	double quote, "&#33" for an exclamation mark. Entities are decoded
//	before markup stripping so escaped punctuation survives sanitization.
//	See [SanitizeDescription].
//
// Duration:
//
//	Seconds as a decimal. Unparseable or missing values become 0, matching
//	the dataset's own convention of conflating "unknown" with zero.
//
// Coordinates:
//
//	Decimal degrees. Rows with missing, unparseable, or out-of-range
//	values (latitude outside [-90, 90], longitude outside [-180, 180])
//	are dropped; a sighting without a plottable location has no value to
//	the map or the aggregates.
//
// # Deduplication
//
// The dataset contains repeated reports of the same event. Two rows that
// agree on (timestamp, latitude, longitude, description) are considered the
// same report; the first occurrence in input order wins. See [DedupKey].
package domain
