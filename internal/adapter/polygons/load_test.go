package polygons

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	areas, err := Load("../geojson/testdata/asp.geojson", logger)
	require.NoError(t, err)
	assert.Len(t, areas, 3)

	_, err = Load("areas.kml", logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".kml")

	_, err = Load("missing.shp", logger)
	require.Error(t, err)
}
