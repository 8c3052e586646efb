// Package shapefile loads protected-area polygons from an ESRI shapefile.
package shapefile

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
	"github.com/jonas-p/go-shp"
)

// LoadProtectedAreas reads polygon shapes and their codigo/nombre_asp
// attributes from the .shp at path (the .dbf must sit beside it).
func LoadProtectedAreas(path string, logger *slog.Logger) (domain.ProtectedAreas, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shapefile: %w", err)
	}
	defer r.Close()

	codeIdx, nameIdx := -1, -1
	for i, f := range r.Fields() {
		switch strings.ToLower(trimAttr(f.String())) {
		case domain.AttrCode:
			codeIdx = i
		case domain.AttrName:
			nameIdx = i
		}
	}
	if codeIdx < 0 {
		return nil, fmt.Errorf("shapefile %s has no %s field: %w", path, domain.AttrCode, domain.ErrInvalidGeometry)
	}

	var areas domain.ProtectedAreas
	for r.Next() {
		idx, shape := r.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			logger.Warn("skipping non-polygon shape", "index", idx)
			continue
		}

		code := trimAttr(r.ReadAttribute(idx, codeIdx))
		name := ""
		if nameIdx >= 0 {
			name = trimAttr(r.ReadAttribute(idx, nameIdx))
		}

		area, err := domain.NewProtectedArea(code, name, groupParts(poly))
		if err != nil {
			return nil, fmt.Errorf("shape %d: %w", idx, err)
		}
		areas = areas.Merge(area)
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("read shapefile: %w", err)
	}

	if len(areas) == 0 {
		return nil, fmt.Errorf("no polygon shapes: %w", domain.ErrInvalidGeometry)
	}
	areas.SortByCode()
	return areas, nil
}

// groupParts splits a shapefile polygon into shells and holes. Shells are
// clockwise and start a new polygon; counter-clockwise parts are holes of the
// preceding shell.
func groupParts(poly *shp.Polygon) [][]domain.Ring {
	var polygons [][]domain.Ring
	for _, ring := range splitParts(poly) {
		if signedArea(ring) <= 0 || len(polygons) == 0 {
			polygons = append(polygons, []domain.Ring{ring})
			continue
		}
		last := len(polygons) - 1
		polygons[last] = append(polygons[last], ring)
	}
	return polygons
}

func splitParts(poly *shp.Polygon) []domain.Ring {
	numParts := len(poly.Parts)
	rings := make([]domain.Ring, 0, numParts)
	for partIdx := 0; partIdx < numParts; partIdx++ {
		start := poly.Parts[partIdx]
		end := int32(len(poly.Points))
		if partIdx+1 < numParts {
			end = poly.Parts[partIdx+1]
		}
		ring := make(domain.Ring, 0, end-start)
		for i := start; i < end; i++ {
			pt := poly.Points[i]
			ring = append(ring, []float64{pt.X, pt.Y})
		}
		rings = append(rings, ring)
	}
	return rings
}

// signedArea is the shoelace area; negative for clockwise rings.
func signedArea(ring domain.Ring) float64 {
	var sum float64
	for i := 0; i+1 < len(ring); i++ {
		sum += ring[i][0]*ring[i+1][1] - ring[i+1][0]*ring[i][1]
	}
	return sum / 2
}

// trimAttr strips DBF padding.
func trimAttr(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "\x00")
}
