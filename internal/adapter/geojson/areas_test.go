package geojson

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadProtectedAreas(t *testing.T) {
	areas, err := LoadProtectedAreas("testdata/asp.geojson", discardLogger())
	require.NoError(t, err)

	require.Len(t, areas, 3, "point feature skipped")
	assert.Equal(t, "PN01", areas[0].Code)
	assert.Equal(t, "Parque Nacional Corcovado", areas[0].Name)
	assert.Equal(t, "RB03", areas[2].Code)
	assert.Len(t, areas[2].Polygons, 2)

	assert.True(t, areas[0].Contains(-83.5, 8.5))
	assert.True(t, areas[2].Contains(-83.15, 9.85))
	assert.False(t, areas[1].Contains(-83.5, 8.5))
}

func TestLoadProtectedAreas_MissingFile(t *testing.T) {
	_, err := LoadProtectedAreas("testdata/nope.geojson", discardLogger())
	require.Error(t, err)
}

func TestDecode(t *testing.T) {
	t.Run("numeric codigo", func(t *testing.T) {
		data := []byte(`{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"codigo":12,"nombre_asp":"X"},
			"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}}]}`)
		areas, err := Decode(data, discardLogger())
		require.NoError(t, err)
		assert.Equal(t, "12", areas[0].Code)
	})

	t.Run("missing codigo", func(t *testing.T) {
		data := []byte(`{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"nombre_asp":"X"},
			"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,1],[0,0]]]}}]}`)
		_, err := Decode(data, discardLogger())
		require.ErrorIs(t, err, domain.ErrInvalidGeometry)
	})

	t.Run("no polygons", func(t *testing.T) {
		data := []byte(`{"type":"FeatureCollection","features":[]}`)
		_, err := Decode(data, discardLogger())
		require.ErrorIs(t, err, domain.ErrInvalidGeometry)
	})

	t.Run("not geojson", func(t *testing.T) {
		_, err := Decode([]byte(`not json`), discardLogger())
		require.Error(t, err)
	})
}

func TestOutline(t *testing.T) {
	areas, err := LoadProtectedAreas("testdata/asp.geojson", discardLogger())
	require.NoError(t, err)

	data, err := Outline(areas).MarshalJSON()
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)
	assert.True(t, fc.Features[0].Geometry.IsPolygon())
	assert.True(t, fc.Features[2].Geometry.IsMultiPolygon())
	assert.Equal(t, "PN02", fc.Features[1].Properties["codigo"])
}

func TestChoropleth(t *testing.T) {
	areas, err := LoadProtectedAreas("testdata/asp.geojson", discardLogger())
	require.NoError(t, err)
	counts := []domain.AreaCount{{Code: "PN01", Count: 40}, {Code: "PN02", Count: 20}, {Code: "RB03", Count: 0}}
	scale, err := domain.NewChoroplethScale(counts, 8)
	require.NoError(t, err)

	data, err := Choropleth(areas, counts, scale).MarshalJSON()
	require.NoError(t, err)

	var fc struct {
		Features []struct {
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(data, &fc))
	require.Len(t, fc.Features, 3)

	pn01 := fc.Features[0].Properties
	assert.Equal(t, "PN01", pn01["codigo"])
	assert.InDelta(t, 40, pn01["cantidad_registros_presencia"], 0)
	assert.Equal(t, "#99000d", pn01["fill"])
	assert.InDelta(t, 0.5, pn01["fill-opacity"], 0)
	assert.Equal(t, "#fff5f0", fc.Features[2].Properties["fill"])
}
