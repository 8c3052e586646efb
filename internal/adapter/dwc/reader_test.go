package dwc

import (
	"os"
	"strings"
	"testing"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullHeader = "gbifID\tfamily\tspecies\teventDate\tlocality\tdecimalLongitude\tdecimalLatitude\toccurrenceID\n"

func TestRead_Fixture(t *testing.T) {
	f, err := os.Open("testdata/occurrences.tsv")
	require.NoError(t, err)
	defer f.Close()

	records, err := NewReader().Read(f)
	require.NoError(t, err)

	require.Len(t, records, 6)
	first := records[0]
	assert.Equal(t, 2, first.Row)
	assert.Equal(t, "Panthera onca", first.Get(domain.ColumnSpecies))
	assert.Equal(t, "101", first.Get(domain.ColumnGBIFID))
	assert.Equal(t, "-83.5", first.Get(domain.ColumnLongitude))
	assert.Equal(t, "CR", first.Get("countryCode"))

	assert.Equal(t, 7, records[5].Row)
	assert.Equal(t, "Chirripó", records[5].Get(domain.ColumnLocality))
	assert.Empty(t, records[2].Get(domain.ColumnLatitude))
}

func TestRead_BOMAndShortRows(t *testing.T) {
	input := "\ufeff" + fullHeader + "1\tFelidae\tPanthera onca\n"

	records, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "1", records[0].Get(domain.ColumnGBIFID))
	assert.Empty(t, records[0].Get(domain.ColumnOccurrenceID))
}

func TestRead_Empty(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	require.ErrorIs(t, err, domain.ErrEmptyFile)

	_, err = Read(strings.NewReader(fullHeader))
	require.ErrorIs(t, err, domain.ErrEmptyFile)
}

func TestRead_MissingColumns(t *testing.T) {
	input := "gbifID\tspecies\teventDate\n1\tPanthera onca\t2019\n"

	_, err := Read(strings.NewReader(input))

	require.ErrorIs(t, err, domain.ErrMissingColumn)
	assert.Contains(t, err.Error(), "decimalLongitude")
	assert.Contains(t, err.Error(), "family")
	assert.NotContains(t, err.Error(), "gbifID|occurrenceID")
}

func TestMissingColumns_Identifier(t *testing.T) {
	header := []string{"species", "eventDate", "decimalLongitude", "decimalLatitude", "family", "locality"}

	assert.Equal(t, []string{"gbifID|occurrenceID"}, MissingColumns(header))
	assert.Empty(t, MissingColumns(append(header, "occurrenceID")))
}

func TestReadHeader(t *testing.T) {
	header, err := ReadHeader(strings.NewReader(fullHeader + "1\t2\n"))
	require.NoError(t, err)
	assert.Equal(t, "gbifID", header[0])
	assert.Len(t, header, 8)

	_, err = ReadHeader(strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrEmptyFile)
}
