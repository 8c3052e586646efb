package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProtectedArea_ClosesOpenRing(t *testing.T) {
	a, err := NewProtectedArea("PN01", "Corcovado", [][]Ring{{
		{{0, 0}, {4, 0}, {4, 4}, {0, 4}},
	}})
	require.NoError(t, err)

	rings := a.Rings()
	require.Len(t, rings, 1)
	require.Len(t, rings[0], 1)
	assert.Len(t, rings[0][0], 5)
	assert.Equal(t, rings[0][0][0], rings[0][0][4])
	assert.True(t, a.Contains(2, 2))
}

func TestNewProtectedArea_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		polygons [][]Ring
	}{
		{"empty code", "", [][]Ring{{{{0, 0}, {1, 0}, {1, 1}, {0, 0}}}}},
		{"no polygons", "PN01", nil},
		{"no rings", "PN01", [][]Ring{{}}},
		{"too few positions", "PN01", [][]Ring{{{{0, 0}, {1, 0}, {0, 0}}}}},
		{"short position", "PN01", [][]Ring{{{{0}, {1, 0}, {1, 1}, {0, 0}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProtectedArea(tt.code, "x", tt.polygons)
			assert.ErrorIs(t, err, ErrInvalidGeometry)
		})
	}
}

func TestProtectedArea_ContainsOutsideBounds(t *testing.T) {
	a := square(t, "PN01", 0, 0, 1, 1)

	assert.False(t, a.Contains(5, 5))
	assert.False(t, ProtectedArea{Code: "empty"}.Contains(0, 0))
}

func TestProtectedAreas_Merge(t *testing.T) {
	var as ProtectedAreas
	as = as.Merge(square(t, "PN01", 0, 0, 1, 1))
	as = as.Merge(square(t, "PN02", 5, 5, 6, 6))
	as = as.Merge(square(t, "PN01", 10, 10, 11, 11))

	require.Len(t, as, 2)
	assert.Len(t, as[0].Polygons, 2)
	assert.True(t, as[0].Contains(10.5, 10.5))
	assert.True(t, as[0].Contains(0.5, 0.5))
	assert.False(t, as[1].Contains(10.5, 10.5))
}

func TestProtectedAreas_SortAndNames(t *testing.T) {
	as := ProtectedAreas{square(t, "ZZ", 0, 0, 1, 1), square(t, "AA", 0, 0, 1, 1)}
	as.SortByCode()

	assert.Equal(t, "AA", as[0].Code)
	assert.Equal(t, map[string]string{"AA": "Parque AA", "ZZ": "Parque ZZ"}, as.Names())
}
