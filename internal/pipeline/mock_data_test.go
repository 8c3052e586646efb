package pipeline_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
	"github.com/stretchr/testify/require"
)

const (
	speciesOnca   = "Panthera onca"
	speciesTapir  = "Tapirus bairdii"
	mockTSVHeader = "gbifID\tfamily\tspecies\teventDate\tlocality\tdecimalLongitude\tdecimalLatitude\toccurrenceID\n"
)

// mockAreas mirrors three Costa Rican parks as simple squares.
func mockAreas(t *testing.T) domain.ProtectedAreas {
	t.Helper()
	square := func(code, name string, x0, y0, x1, y1 float64) domain.ProtectedArea {
		a, err := domain.NewProtectedArea(code, name, [][]domain.Ring{{
			{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}},
		}})
		require.NoError(t, err)
		return a
	}
	return domain.ProtectedAreas{
		square("PN01", "Parque Nacional Corcovado", -84, 8, -83, 9),
		square("PN02", "Parque Nacional Tortuguero", -84, 10, -83, 11),
		square("PN03", "Parque Nacional Santa Rosa", -86, 10.5, -85, 11),
	}
}

// mockTSV builds an occurrence file with 40 jaguar records in PN01, 20 in
// PN02, one jaguar record without a latitude, two tapir records, and one row
// without a species.
func mockTSV() string {
	var b strings.Builder
	b.WriteString(mockTSVHeader)
	id := 1000
	row := func(species, date, lon, lat string) {
		id++
		fmt.Fprintf(&b, "%d\tFelidae\t%s\t%s\tCosta Rica\t%s\t%s\turn:cr:%d\n", id, species, date, lon, lat, id)
	}
	for i := 0; i < 40; i++ {
		row(speciesOnca, fmt.Sprintf("20%02d-%02d-15", 10+i%5, 1+i%12), "-83.5", "8.5")
	}
	for i := 0; i < 20; i++ {
		row(speciesOnca, fmt.Sprintf("2018-%02d-01", 1+i%12), "-83.5", "10.5")
	}
	row(speciesOnca, "2019-06-01", "-83.5", "")
	row(speciesTapir, "2017", "-83.5", "8.5")
	row(speciesTapir, "sin fecha", "-85.5", "10.75")
	row("", "2017", "-83.5", "8.5")
	return b.String()
}
