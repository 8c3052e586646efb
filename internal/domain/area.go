package domain

import (
	"fmt"
	"math"
	"sort"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
	"github.com/twpayne/go-geom/xy/location"
)

// Attribute names carrying the area code and display name in polygon sources.
const (
	AttrCode = "codigo"
	AttrName = "nombre_asp"
)

// Ring is a closed sequence of [lon, lat] positions.
type Ring [][]float64

// ProtectedArea is one ASP polygon record. A single area may consist of
// several disjoint polygons, each with optional holes. Values are immutable
// after construction and safe to share across goroutines.
type ProtectedArea struct {
	Code     string
	Name     string
	Polygons []*geom.Polygon
	bounds   *geom.Bounds
}

// NewProtectedArea builds an area from polygons expressed as rings, where the
// first ring of each polygon is the shell and the rest are holes. Rings that
// are not explicitly closed are closed.
func NewProtectedArea(code, name string, polygons [][]Ring) (ProtectedArea, error) {
	if code == "" {
		return ProtectedArea{}, fmt.Errorf("protected area %q: empty codigo: %w", name, ErrInvalidGeometry)
	}
	if len(polygons) == 0 {
		return ProtectedArea{}, fmt.Errorf("protected area %s: no polygons: %w", code, ErrInvalidGeometry)
	}

	area := ProtectedArea{Code: code, Name: name}
	for i, rings := range polygons {
		p, err := buildPolygon(rings)
		if err != nil {
			return ProtectedArea{}, fmt.Errorf("protected area %s polygon %d: %w", code, i, err)
		}
		area.Polygons = append(area.Polygons, p)
		if area.bounds == nil {
			area.bounds = p.Bounds().Clone()
		} else {
			area.bounds.Extend(p)
		}
	}
	return area, nil
}

func buildPolygon(rings []Ring) (*geom.Polygon, error) {
	if len(rings) == 0 {
		return nil, fmt.Errorf("no rings: %w", ErrInvalidGeometry)
	}
	coords := make([][]geom.Coord, len(rings))
	for i, ring := range rings {
		rc, err := ringCoords(ring)
		if err != nil {
			return nil, fmt.Errorf("ring %d: %w", i, err)
		}
		coords[i] = rc
	}
	p, err := geom.NewPolygon(geom.XY).SetCoords(coords)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGeometry, err)
	}
	return p, nil
}

func ringCoords(ring Ring) ([]geom.Coord, error) {
	out := make([]geom.Coord, 0, len(ring)+1)
	for _, pos := range ring {
		if len(pos) < 2 || math.IsNaN(pos[0]) || math.IsNaN(pos[1]) {
			return nil, fmt.Errorf("bad position %v: %w", pos, ErrInvalidGeometry)
		}
		out = append(out, geom.Coord{pos[0], pos[1]})
	}
	if len(out) > 0 && !out[0].Equal(geom.XY, out[len(out)-1]) {
		out = append(out, out[0])
	}
	if len(out) < 4 {
		return nil, fmt.Errorf("ring has %d positions, need 4: %w", len(out), ErrInvalidGeometry)
	}
	return out, nil
}

// Contains reports whether the point (lon, lat) lies strictly inside the
// area. Points on an edge, inside a hole, or with NaN coordinates are not
// contained.
func (a ProtectedArea) Contains(lon, lat float64) bool {
	if math.IsNaN(lon) || math.IsNaN(lat) || a.bounds == nil {
		return false
	}
	c := geom.Coord{lon, lat}
	if !a.bounds.OverlapsPoint(geom.XY, c) {
		return false
	}
	for _, p := range a.Polygons {
		if polygonContains(p, c) {
			return true
		}
	}
	return false
}

func polygonContains(p *geom.Polygon, c geom.Coord) bool {
	if !p.Bounds().OverlapsPoint(geom.XY, c) {
		return false
	}
	if xy.LocatePointInRing(geom.XY, c, p.LinearRing(0).FlatCoords()) != location.Interior {
		return false
	}
	for i := 1; i < p.NumLinearRings(); i++ {
		if xy.LocatePointInRing(geom.XY, c, p.LinearRing(i).FlatCoords()) != location.Exterior {
			return false
		}
	}
	return true
}

// Rings returns the area geometry back as rings, one []Ring per polygon, for
// serialization.
func (a ProtectedArea) Rings() [][]Ring {
	out := make([][]Ring, 0, len(a.Polygons))
	for _, p := range a.Polygons {
		rings := make([]Ring, p.NumLinearRings())
		for i := range rings {
			coords := p.LinearRing(i).Coords()
			ring := make(Ring, len(coords))
			for j, c := range coords {
				ring[j] = []float64{c.X(), c.Y()}
			}
			rings[i] = ring
		}
		out = append(out, rings)
	}
	return out
}

// ProtectedAreas is the static polygon set loaded at startup.
type ProtectedAreas []ProtectedArea

// Merge appends a to the set. Features sharing a code are folded into a
// single area so a record is counted at most once per code.
func (as ProtectedAreas) Merge(a ProtectedArea) ProtectedAreas {
	for i := range as {
		if as[i].Code != a.Code {
			continue
		}
		merged := as[i]
		merged.Polygons = append(append([]*geom.Polygon(nil), merged.Polygons...), a.Polygons...)
		merged.bounds = merged.bounds.Clone()
		for _, p := range a.Polygons {
			merged.bounds.Extend(p)
		}
		if merged.Name == "" {
			merged.Name = a.Name
		}
		as[i] = merged
		return as
	}
	return append(as, a)
}

// SortByCode orders the set by code so every derived output is deterministic.
func (as ProtectedAreas) SortByCode() {
	sort.SliceStable(as, func(i, j int) bool { return as[i].Code < as[j].Code })
}

// Names maps each code to its nombre_asp.
func (as ProtectedAreas) Names() map[string]string {
	names := make(map[string]string, len(as))
	for _, a := range as {
		names[a.Code] = a.Name
	}
	return names
}
