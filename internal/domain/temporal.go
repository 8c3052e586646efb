package domain

import "sort"

// Bucket is one point of a time series.
type Bucket struct {
	Key   int `json:"key"`
	Count int `json:"count"`
}

// Series is an ordered set of buckets.
type Series []Bucket

// Total sums the bucket counts.
func (s Series) Total() int {
	total := 0
	for _, b := range s {
		total += b.Count
	}
	return total
}

// CountByYear counts dated records per calendar year, ordered by year.
func CountByYear(occ []Occurrence) Series {
	return countBy(occ, func(o Occurrence) int { return o.EventDate.Year() })
}

// CountByMonth counts dated records per calendar month (1..12), pooling all
// years. Months without records are omitted.
func CountByMonth(occ []Occurrence) Series {
	return countBy(occ, func(o Occurrence) int { return int(o.EventDate.Month()) })
}

func countBy(occ []Occurrence, key func(Occurrence) int) Series {
	counts := make(map[int]int)
	for _, o := range occ {
		if !o.HasDate() {
			continue
		}
		counts[key(o)]++
	}
	s := make(Series, 0, len(counts))
	for k, n := range counts {
		s = append(s, Bucket{Key: k, Count: n})
	}
	sort.Slice(s, func(i, j int) bool { return s[i].Key < s[j].Key })
	return s
}
