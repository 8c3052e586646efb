package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(row int, fields map[string]string) RawRecord {
	return RawRecord{Row: row, Fields: fields}
}

func TestParseEventDate(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{"rfc3339", "2019-03-05T10:20:30Z", time.Date(2019, 3, 5, 10, 20, 30, 0, time.UTC)},
		{"rfc3339 offset", "2019-03-05T10:20:30-06:00", time.Date(2019, 3, 5, 16, 20, 30, 0, time.UTC)},
		{"local timestamp", "2019-03-05T10:20:30", time.Date(2019, 3, 5, 10, 20, 30, 0, time.UTC)},
		{"minutes", "2019-03-05T10:20", time.Date(2019, 3, 5, 10, 20, 0, 0, time.UTC)},
		{"space separated", "2019-03-05 10:20:30", time.Date(2019, 3, 5, 10, 20, 30, 0, time.UTC)},
		{"date", "2019-03-05", time.Date(2019, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"slashes", "2019/03/05", time.Date(2019, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"year month", "2019-03", time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"year", "2019", time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"interval uses start", "2019-03-01/2019-03-05", time.Date(2019, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"padded", "  2019-03-05 ", time.Date(2019, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"empty", "", time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseEventDate(tt.value)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		for _, v := range []string{"yesterday", "2019-13-45", "05/03/2019x"} {
			_, err := ParseEventDate(v)
			assert.ErrorIs(t, err, ErrInvalidDate, v)
		}
	})
}

func TestParseDatePolicy(t *testing.T) {
	p, err := ParseDatePolicy("STRICT")
	require.NoError(t, err)
	assert.Equal(t, DatePolicyStrict, p)

	p, err = ParseDatePolicy("skip")
	require.NoError(t, err)
	assert.Equal(t, DatePolicySkip, p)

	_, err = ParseDatePolicy("lenient")
	require.Error(t, err)
}

func TestClean(t *testing.T) {
	raws := []RawRecord{
		raw(2, map[string]string{
			"family": "Felidae", "species": "Panthera onca", "eventDate": "2019-03-05",
			"locality": "Corcovado", "decimalLongitude": "-83.5", "decimalLatitude": "8.5",
			"occurrenceID": "urn:x:1", "gbifID": "101",
		}),
		raw(3, map[string]string{"species": "", "eventDate": "2019-03-05"}),
		raw(4, map[string]string{"species": "   ", "eventDate": "2019-03-05"}),
		raw(5, map[string]string{
			"species": "Panthera onca", "eventDate": "not a date",
			"decimalLongitude": "", "decimalLatitude": "abc",
		}),
	}

	t.Run("skip policy", func(t *testing.T) {
		res, err := Clean(raws, DatePolicySkip)
		require.NoError(t, err)

		assert.Equal(t, 2, res.Dropped)
		require.Len(t, res.Occurrences, 2)

		first := res.Occurrences[0]
		assert.Equal(t, "Felidae", first.Family)
		assert.Equal(t, "Corcovado", first.Locality)
		assert.Equal(t, -83.5, first.Lon)
		assert.Equal(t, 8.5, first.Lat)
		assert.Equal(t, "101", first.Identifier())
		assert.Equal(t, 2, first.Row)
		assert.True(t, first.HasCoordinates())
		assert.True(t, first.HasDate())

		second := res.Occurrences[1]
		assert.True(t, math.IsNaN(second.Lon))
		assert.True(t, math.IsNaN(second.Lat))
		assert.False(t, second.HasCoordinates())
		assert.False(t, second.HasDate())
		assert.Equal(t, "not a date", second.RawEventDate)

		assert.Equal(t, []DateIssue{{Row: 5, Value: "not a date"}}, res.DateIssues)
	})

	t.Run("strict policy", func(t *testing.T) {
		_, err := Clean(raws, DatePolicyStrict)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidDate))
		assert.Contains(t, err.Error(), "row 5")
	})

	t.Run("empty date is not an issue", func(t *testing.T) {
		res, err := Clean([]RawRecord{raw(2, map[string]string{"species": "Panthera onca"})}, DatePolicyStrict)
		require.NoError(t, err)
		assert.Empty(t, res.DateIssues)
		assert.False(t, res.Occurrences[0].HasDate())
	})
}

func TestFilterBySpecies_MatchesTrimmedNames(t *testing.T) {
	res, err := Clean([]RawRecord{
		raw(2, map[string]string{"species": " Panthera onca\t", "gbifID": "1"}),
		raw(3, map[string]string{"species": "Panthera onca", "gbifID": "2"}),
	}, DatePolicySkip)
	require.NoError(t, err)

	assert.Equal(t, []string{"Panthera onca"}, DistinctSpecies(res.Occurrences))
	assert.Len(t, FilterBySpecies(res.Occurrences, "Panthera onca"), 2)
	assert.Empty(t, FilterBySpecies(res.Occurrences, " Panthera onca"))
}

func TestOccurrence_HasCoordinatesRange(t *testing.T) {
	assert.False(t, Occurrence{Lat: 91, Lon: 0}.HasCoordinates())
	assert.False(t, Occurrence{Lat: 0, Lon: -181}.HasCoordinates())
	assert.True(t, Occurrence{Lat: 0, Lon: 0}.HasCoordinates())
}

func TestOccurrence_IdentifierFallback(t *testing.T) {
	assert.Equal(t, "g", Occurrence{GBIFID: "g", OccurrenceID: "o"}.Identifier())
	assert.Equal(t, "o", Occurrence{OccurrenceID: "o"}.Identifier())
	assert.Empty(t, Occurrence{}.Identifier())
}

func TestDistinctSpecies(t *testing.T) {
	occ := []Occurrence{
		{Species: "Tapirus bairdii"},
		{Species: "Panthera onca"},
		{Species: "Tapirus bairdii"},
		{Species: "Ateles geoffroyi"},
	}

	assert.Equal(t, []string{"Ateles geoffroyi", "Panthera onca", "Tapirus bairdii"}, DistinctSpecies(occ))
	assert.Empty(t, DistinctSpecies(nil))
}

func TestFilterBySpecies(t *testing.T) {
	occ := []Occurrence{
		{Species: "Panthera onca", Row: 2},
		{Species: "panthera onca", Row: 3},
		{Species: "Tapirus bairdii", Row: 4},
		{Species: "Panthera onca", Row: 5},
	}

	got := FilterBySpecies(occ, "Panthera onca")

	require.Len(t, got, 2)
	for _, o := range got {
		assert.Equal(t, "Panthera onca", o.Species)
	}
	assert.Equal(t, 2, got[0].Row)
	assert.Equal(t, 5, got[1].Row)
	assert.Len(t, occ, 4)
	assert.Empty(t, FilterBySpecies(occ, speciesUnknown))
}
