package domain

import "time"

// Snapshot is the compact summary of a dashboard published downstream.
type Snapshot struct {
	DatasetID   string       `json:"dataset_id"`
	Species     string       `json:"species"`
	GeneratedAt time.Time    `json:"generated_at"`
	Records     int          `json:"records"`
	TopAreas    []AreaCount  `json:"top_areas"`
	ByYear      Series       `json:"by_year"`
	ByMonth     Series       `json:"by_month"`
	Matches     MatchSummary `json:"matches"`
}

// NewSnapshot summarizes d.
func NewSnapshot(d Dashboard) Snapshot {
	return Snapshot{
		DatasetID:   d.DatasetID,
		Species:     d.Species,
		GeneratedAt: d.GeneratedAt,
		Records:     len(d.Table),
		TopAreas:    d.TopAreas,
		ByYear:      d.ByYear,
		ByMonth:     d.ByMonth,
		Matches:     d.Matches,
	}
}
