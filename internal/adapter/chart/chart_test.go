package chart

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDashboard() domain.Dashboard {
	return domain.Dashboard{
		ByYear:  domain.Series{{Key: 2018, Count: 20}, {Key: 2019, Count: 40}},
		ByMonth: domain.Series{{Key: 3, Count: 25}, {Key: 7, Count: 35}},
		TopAreas: []domain.AreaCount{
			{Code: "PN01", Name: "Parque Nacional Corcovado", Count: 40},
			{Code: "PN02", Name: "Parque Nacional Tortuguero", Count: 20},
		},
		AreaShares: []domain.AreaShare{
			{Code: "PN01", Name: "Parque Nacional Corcovado", Count: 40, Percent: 66.7},
			{Code: "PN02", Name: "Parque Nacional Tortuguero", Count: 20, Percent: 33.3},
		},
	}
}

func TestRender(t *testing.T) {
	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, name, sampleDashboard()))

			img, err := png.Decode(&buf)
			require.NoError(t, err)
			assert.Positive(t, img.Bounds().Dx())
		})
	}
}

func TestRender_EmptySeries(t *testing.T) {
	for _, name := range Names {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, name, domain.Dashboard{}), name)
		assert.NotZero(t, buf.Len())
	}
}

func TestRender_UnknownChart(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, "pie", sampleDashboard())
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestAreaLabel(t *testing.T) {
	assert.Equal(t, "PN01", areaLabel(domain.AreaCount{Code: "PN01"}))
	long := areaLabel(domain.AreaCount{Name: "Refugio Nacional de Vida Silvestre Caño Negro"})
	assert.Len(t, []rune(long), 28)
}

func TestPieSlices(t *testing.T) {
	shares := domain.AreaShares([]domain.AreaCount{
		{Code: "PN01", Name: "Parque Nacional Corcovado", Count: 30},
		{Code: "PN02", Name: "Parque Nacional Tortuguero", Count: 10},
		{Code: "PN03", Name: "Parque Nacional Santa Rosa", Count: 0},
	})

	slices := pieSlices(shares)
	require.Len(t, slices, 2)

	assert.InDelta(t, 1.5*math.Pi, slices[0].sweep, 1e-9)
	assert.InDelta(t, 0.5*math.Pi, slices[1].sweep, 1e-9)
	// Clockwise from twelve o'clock: the first wedge ends at 90 degrees.
	assert.InDelta(t, math.Pi/2, slices[0].start+slices[0].sweep, 1e-9)
	assert.InDelta(t, slices[0].start, slices[1].start+slices[1].sweep, 1e-9)
	assert.Equal(t, "Parque Nacional Corcovado (75.0 %)", slices[0].label)
	assert.NotEqual(t, slices[0].color, slices[1].color)
}

func TestPieSlices_NoRecords(t *testing.T) {
	assert.Empty(t, pieSlices(nil))
	assert.Empty(t, pieSlices([]domain.AreaShare{{Code: "PN01"}}))
}
