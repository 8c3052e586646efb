package domain

import "sort"

// AreaCount is the number of occurrences contained in one protected area.
type AreaCount struct {
	Code  string `json:"codigo"`
	Name  string `json:"nombre_asp"`
	Count int    `json:"cantidad_registros_presencia"`
}

// AreaShare is an area's percentage of a ranked total, used by the pie view.
type AreaShare struct {
	Code    string  `json:"codigo"`
	Name    string  `json:"nombre_asp"`
	Count   int     `json:"cantidad_registros_presencia"`
	Percent float64 `json:"porcentaje"`
}

// MatchSummary describes how records fell across the polygon set.
type MatchSummary struct {
	Records         int `json:"records"`
	WithCoordinates int `json:"with_coordinates"`
	InsideAny       int `json:"inside_any"`
	InsideMultiple  int `json:"inside_multiple"`
}

// CountByArea joins occurrences to the protected areas that contain them and
// counts matches per area. Every area is present in the result, zero counts
// included, ordered by code. A record inside several overlapping areas is
// counted once in each. Features that share a code are one area after
// ProtectedAreas.Merge, so a record inside two of them counts once for that
// code. Records without an identifier or without valid coordinates are not
// counted.
func CountByArea(areas ProtectedAreas, occ []Occurrence) ([]AreaCount, MatchSummary) {
	counts := make([]AreaCount, len(areas))
	for i, a := range areas {
		counts[i] = AreaCount{Code: a.Code, Name: a.Name}
	}

	summary := MatchSummary{Records: len(occ)}
	for _, o := range occ {
		if !o.HasCoordinates() {
			continue
		}
		summary.WithCoordinates++

		hits := 0
		for i, a := range areas {
			if !a.Contains(o.Lon, o.Lat) {
				continue
			}
			hits++
			if o.Identifier() != "" {
				counts[i].Count++
			}
		}
		if hits > 0 {
			summary.InsideAny++
		}
		if hits > 1 {
			summary.InsideMultiple++
		}
	}

	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Code < counts[j].Code })
	return counts, summary
}

// TopAreas returns up to n areas with a positive count, sorted by count
// descending and then by code ascending.
func TopAreas(counts []AreaCount, n int) []AreaCount {
	top := make([]AreaCount, 0, len(counts))
	for _, c := range counts {
		if c.Count > 0 {
			top = append(top, c)
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Code < top[j].Code
	})
	if n >= 0 && len(top) > n {
		top = top[:n]
	}
	return top
}

// AreaShares converts ranked counts into percentages of their total.
func AreaShares(top []AreaCount) []AreaShare {
	total := 0
	for _, c := range top {
		total += c.Count
	}
	shares := make([]AreaShare, len(top))
	for i, c := range top {
		shares[i] = AreaShare{Code: c.Code, Name: c.Name, Count: c.Count}
		if total > 0 {
			shares[i].Percent = float64(c.Count) * 100 / float64(total)
		}
	}
	return shares
}

// TotalCount sums the counts of a mapping.
func TotalCount(counts []AreaCount) int {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return total
}
