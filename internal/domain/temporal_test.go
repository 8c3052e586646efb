package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func dated(y int, m time.Month) Occurrence {
	return Occurrence{Species: speciesOnca, EventDate: time.Date(y, m, 10, 0, 0, 0, 0, time.UTC)}
}

func TestCountByYearAndMonth(t *testing.T) {
	occ := []Occurrence{
		dated(2018, time.March),
		dated(2019, time.March),
		dated(2019, time.July),
		dated(2017, time.December),
		{Species: speciesOnca},
	}

	byYear := CountByYear(occ)
	byMonth := CountByMonth(occ)

	assert.Equal(t, Series{{Key: 2017, Count: 1}, {Key: 2018, Count: 1}, {Key: 2019, Count: 2}}, byYear)
	assert.Equal(t, Series{{Key: 3, Count: 2}, {Key: 7, Count: 1}, {Key: 12, Count: 1}}, byMonth)
	assert.Equal(t, byYear.Total(), byMonth.Total())
	assert.Equal(t, 4, byYear.Total())
}

func TestCountByMonth_OnlyPopulatedMonths(t *testing.T) {
	byMonth := CountByMonth([]Occurrence{dated(2020, time.February)})

	assert.Len(t, byMonth, 1)
	assert.Equal(t, 2, byMonth[0].Key)
}

func TestCountBy_Empty(t *testing.T) {
	assert.Empty(t, CountByYear(nil))
	assert.Empty(t, CountByMonth([]Occurrence{{Species: speciesOnca}}))
}
