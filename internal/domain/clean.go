package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Darwin Core column names read from occurrence files.
const (
	ColumnFamily       = "family"
	ColumnSpecies      = "species"
	ColumnEventDate    = "eventDate"
	ColumnLocality     = "locality"
	ColumnLongitude    = "decimalLongitude"
	ColumnLatitude     = "decimalLatitude"
	ColumnOccurrenceID = "occurrenceID"
	ColumnGBIFID       = "gbifID"
)

// RequiredColumns must all be present in an occurrence file header. At least
// one of IdentifierColumns must be present as well.
var (
	RequiredColumns   = []string{ColumnSpecies, ColumnEventDate, ColumnLongitude, ColumnLatitude, ColumnFamily, ColumnLocality}
	IdentifierColumns = []string{ColumnGBIFID, ColumnOccurrenceID}
)

// DatePolicy selects how unparseable eventDate values are handled.
type DatePolicy string

const (
	// DatePolicySkip keeps the record with a zero date and reports the issue.
	DatePolicySkip DatePolicy = "skip"
	// DatePolicyStrict fails the whole load on the first unparseable date.
	DatePolicyStrict DatePolicy = "strict"
)

// ParseDatePolicy validates a policy name.
func ParseDatePolicy(s string) (DatePolicy, error) {
	switch DatePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case DatePolicySkip:
		return DatePolicySkip, nil
	case DatePolicyStrict:
		return DatePolicyStrict, nil
	default:
		return "", fmt.Errorf("unknown date policy %q", s)
	}
}

// eventDateLayouts are tried in order. Values without a zone are UTC.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"2006-01",
	"2006",
}

// ParseEventDate parses a Darwin Core eventDate. An empty value yields the
// zero time and no error. ISO 8601 intervals ("2019-03-01/2019-03-05") resolve
// to their start.
func ParseEventDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	if t, ok := parseDateLayouts(value); ok {
		return t, nil
	}
	if start, _, found := strings.Cut(value, "/"); found {
		if t, ok := parseDateLayouts(strings.TrimSpace(start)); ok {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}

func parseDateLayouts(value string) (time.Time, bool) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseFloatOrNaN parses a coordinate, returning NaN when it is empty or invalid.
func parseFloatOrNaN(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// CleanResult is the output of Clean.
type CleanResult struct {
	Occurrences []Occurrence
	Dropped     int
	DateIssues  []DateIssue
}

// Clean converts raw rows into occurrences. Rows without a species are
// dropped and counted. Unparseable dates are handled per policy; missing or
// invalid coordinates become NaN and never fail the load.
func Clean(raws []RawRecord, policy DatePolicy) (CleanResult, error) {
	res := CleanResult{Occurrences: make([]Occurrence, 0, len(raws))}

	for _, raw := range raws {
		species := strings.TrimSpace(raw.Get(ColumnSpecies))
		if species == "" {
			res.Dropped++
			continue
		}

		rawDate := strings.TrimSpace(raw.Get(ColumnEventDate))
		eventDate, err := ParseEventDate(rawDate)
		if err != nil {
			if policy == DatePolicyStrict {
				return CleanResult{}, fmt.Errorf("row %d: %w", raw.Row, err)
			}
			res.DateIssues = append(res.DateIssues, DateIssue{Row: raw.Row, Value: rawDate})
		}

		res.Occurrences = append(res.Occurrences, Occurrence{
			Family:       strings.TrimSpace(raw.Get(ColumnFamily)),
			Species:      species,
			EventDate:    eventDate,
			RawEventDate: rawDate,
			Locality:     strings.TrimSpace(raw.Get(ColumnLocality)),
			OccurrenceID: strings.TrimSpace(raw.Get(ColumnOccurrenceID)),
			GBIFID:       strings.TrimSpace(raw.Get(ColumnGBIFID)),
			Lat:          parseFloatOrNaN(raw.Get(ColumnLatitude)),
			Lon:          parseFloatOrNaN(raw.Get(ColumnLongitude)),
			Row:          raw.Row,
		})
	}
	return res, nil
}

// DistinctSpecies returns the sorted set of species names.
func DistinctSpecies(occ []Occurrence) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, o := range occ {
		if _, ok := seen[o.Species]; ok {
			continue
		}
		seen[o.Species] = struct{}{}
		out = append(out, o.Species)
	}
	sort.Strings(out)
	return out
}

// FilterBySpecies returns the records whose species equals name exactly,
// case included. Clean trims surrounding whitespace from species values, so
// " Panthera onca " in the file matches "Panthera onca"; name itself is not
// trimmed. The input slice is not modified.
func FilterBySpecies(occ []Occurrence, name string) []Occurrence {
	out := make([]Occurrence, 0)
	for _, o := range occ {
		if o.Species == name {
			out = append(out, o)
		}
	}
	return out
}
