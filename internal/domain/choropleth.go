package domain

import (
	"fmt"
	"math"
)

// Choropleth styling used by the per-area count map.
const (
	DefaultChoroplethBins = 8
	ChoroplethFillOpacity = 0.5
	ChoroplethLineOpacity = 1.0
)

// redsPalettes are the ColorBrewer "Reds" sequential schemes keyed by class count.
var redsPalettes = map[int][]string{
	3: {"#fee0d2", "#fc9272", "#de2d26"},
	4: {"#fee5d9", "#fcae91", "#fb6a4a", "#cb181d"},
	5: {"#fee5d9", "#fcae91", "#fb6a4a", "#de2d26", "#a50f15"},
	6: {"#fee5d9", "#fcbba1", "#fc9272", "#fb6a4a", "#de2d26", "#a50f15"},
	7: {"#fee5d9", "#fcbba1", "#fc9272", "#fb6a4a", "#ef3b2c", "#cb181d", "#99000d"},
	8: {"#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a", "#ef3b2c", "#cb181d", "#99000d"},
	9: {"#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a", "#ef3b2c", "#cb181d", "#a50f15", "#67000d"},
}

// ValidChoroplethBins reports whether a Reds palette exists for n classes.
func ValidChoroplethBins(n int) bool {
	_, ok := redsPalettes[n]
	return ok
}

// ChoroplethScale maps per-area counts onto equal-interval classes.
type ChoroplethScale struct {
	Edges       []float64 `json:"edges"`
	Colors      []string  `json:"colors"`
	FillOpacity float64   `json:"fill_opacity"`
	LineOpacity float64   `json:"line_opacity"`
	Legend      string    `json:"legend"`
}

// NewChoroplethScale splits the [min, max] range of counts into bins equal
// intervals. A constant range is widened by one so every class has width.
func NewChoroplethScale(counts []AreaCount, bins int) (ChoroplethScale, error) {
	colors, ok := redsPalettes[bins]
	if !ok {
		return ChoroplethScale{}, fmt.Errorf("no Reds palette for %d bins", bins)
	}

	lo, hi := 0.0, 0.0
	for i, c := range counts {
		v := float64(c.Count)
		if i == 0 || v < lo {
			lo = v
		}
		if i == 0 || v > hi {
			hi = v
		}
	}
	if hi <= lo {
		hi = lo + 1
	}

	edges := make([]float64, bins+1)
	step := (hi - lo) / float64(bins)
	for i := range edges {
		edges[i] = lo + step*float64(i)
	}
	edges[bins] = hi

	return ChoroplethScale{
		Edges:       edges,
		Colors:      append([]string(nil), colors...),
		FillOpacity: ChoroplethFillOpacity,
		LineOpacity: ChoroplethLineOpacity,
		Legend:      LabelChoroplethLegend,
	}, nil
}

// Class returns the bin index of count. Bins are half-open except the last,
// which includes the maximum. Values outside the range clamp to the ends.
func (s ChoroplethScale) Class(count int) int {
	n := len(s.Colors)
	if n == 0 {
		return 0
	}
	v := float64(count)
	for i := 0; i < n-1; i++ {
		if v < s.Edges[i+1] {
			return i
		}
	}
	return n - 1
}

// Color returns the fill color for count.
func (s ChoroplethScale) Color(count int) string {
	if len(s.Colors) == 0 {
		return ""
	}
	return s.Colors[s.Class(count)]
}

// roundEdge trims float noise from computed edges for display.
func roundEdge(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// LegendLabels renders "lo - hi" ranges for each class.
func (s ChoroplethScale) LegendLabels() []string {
	labels := make([]string, 0, len(s.Colors))
	for i := range s.Colors {
		labels = append(labels, fmt.Sprintf("%g - %g", roundEdge(s.Edges[i]), roundEdge(s.Edges[i+1])))
	}
	return labels
}
