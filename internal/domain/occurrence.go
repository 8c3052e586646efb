package domain

import (
	"math"
	"time"
)

// RawRecord is one data row of a Darwin Core occurrence file, keyed by column
// name. Values are untrimmed strings exactly as read.
type RawRecord struct {
	Row    int
	Fields map[string]string
}

// Get returns the value of a column, or "" when the column is absent.
func (r RawRecord) Get(column string) string {
	return r.Fields[column]
}

// Occurrence is a cleaned species-occurrence record. The point geometry is
// implicit: (Lon, Lat) in WGS84.
type Occurrence struct {
	Family       string    `json:"family"`
	Species      string    `json:"species"`
	EventDate    time.Time `json:"event_date"`
	RawEventDate string    `json:"raw_event_date,omitempty"`
	Locality     string    `json:"locality"`
	OccurrenceID string    `json:"occurrence_id,omitempty"`
	GBIFID       string    `json:"gbif_id,omitempty"`
	Lat          float64   `json:"-"`
	Lon          float64   `json:"-"`
	Row          int       `json:"row"`
}

// HasCoordinates reports whether the record carries a usable WGS84 position.
func (o Occurrence) HasCoordinates() bool {
	if math.IsNaN(o.Lat) || math.IsNaN(o.Lon) {
		return false
	}
	return o.Lat >= -90 && o.Lat <= 90 && o.Lon >= -180 && o.Lon <= 180
}

// HasDate reports whether the event date was parsed.
func (o Occurrence) HasDate() bool {
	return !o.EventDate.IsZero()
}

// Identifier returns the gbifID, falling back to the occurrenceID.
func (o Occurrence) Identifier() string {
	if o.GBIFID != "" {
		return o.GBIFID
	}
	return o.OccurrenceID
}

// DateIssue records an eventDate value that could not be parsed.
type DateIssue struct {
	Row   int    `json:"row"`
	Value string `json:"value"`
}

// Dataset is an uploaded occurrence file after loading and cleaning. It is
// immutable once built; every dashboard computation reads from it.
type Dataset struct {
	ID          string       `json:"id"`
	FileName    string       `json:"file_name"`
	LoadedAt    time.Time    `json:"loaded_at"`
	Occurrences []Occurrence `json:"-"`
	Species     []string     `json:"species"`
	Dropped     int          `json:"dropped"`
	DateIssues  []DateIssue  `json:"date_issues"`
}

// HasSpecies reports whether name is one of the dataset's distinct species.
func (d *Dataset) HasSpecies(name string) bool {
	for _, s := range d.Species {
		if s == name {
			return true
		}
	}
	return false
}

// DefaultSpecies is the species selected when the caller names none: the
// first entry of the sorted species list.
func (d *Dataset) DefaultSpecies() (string, bool) {
	if len(d.Species) == 0 {
		return "", false
	}
	return d.Species[0], true
}
