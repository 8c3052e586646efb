// Package geojson loads protected-area polygons from GeoJSON and renders the
// outline and choropleth layers back as FeatureCollections.
package geojson

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
	geojson "github.com/paulmach/go.geojson"
)

// LoadProtectedAreas reads a GeoJSON FeatureCollection from path.
func LoadProtectedAreas(path string, logger *slog.Logger) (domain.ProtectedAreas, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read protected areas: %w", err)
	}
	areas, err := Decode(data, logger)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return areas, nil
}

// Decode builds the area set from GeoJSON bytes. Polygon and MultiPolygon
// features are kept; other geometry types are skipped with a warning. Every
// kept feature must carry a codigo property.
func Decode(data []byte, logger *slog.Logger) (domain.ProtectedAreas, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal feature collection: %w", err)
	}

	var areas domain.ProtectedAreas
	for i, f := range fc.Features {
		if f.Geometry == nil {
			logger.Warn("skipping feature without geometry", "index", i)
			continue
		}

		var polygons [][]domain.Ring
		switch {
		case f.Geometry.IsPolygon():
			polygons = [][]domain.Ring{toRings(f.Geometry.Polygon)}
		case f.Geometry.IsMultiPolygon():
			for _, p := range f.Geometry.MultiPolygon {
				polygons = append(polygons, toRings(p))
			}
		default:
			logger.Warn("skipping non-polygon feature", "index", i, "type", f.Geometry.Type)
			continue
		}

		code := propertyString(f, domain.AttrCode)
		if code == "" {
			return nil, fmt.Errorf("feature %d: missing %s: %w", i, domain.AttrCode, domain.ErrInvalidGeometry)
		}

		area, err := domain.NewProtectedArea(code, propertyString(f, domain.AttrName), polygons)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		areas = areas.Merge(area)
	}

	if len(areas) == 0 {
		return nil, fmt.Errorf("no polygon features: %w", domain.ErrInvalidGeometry)
	}
	areas.SortByCode()
	return areas, nil
}

// propertyString reads a property as text. Numeric codes are common in
// exported layers and are formatted without a trailing ".0".
func propertyString(f *geojson.Feature, key string) string {
	switch v := f.Properties[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func toRings(polygon [][][]float64) []domain.Ring {
	rings := make([]domain.Ring, len(polygon))
	for i, r := range polygon {
		rings[i] = domain.Ring(r)
	}
	return rings
}

func fromRings(rings []domain.Ring) [][][]float64 {
	out := make([][][]float64, len(rings))
	for i, r := range rings {
		out[i] = [][]float64(r)
	}
	return out
}

func areaFeature(a domain.ProtectedArea) *geojson.Feature {
	polys := a.Rings()
	var f *geojson.Feature
	if len(polys) == 1 {
		f = geojson.NewPolygonFeature(fromRings(polys[0]))
	} else {
		multi := make([][][][]float64, len(polys))
		for i, p := range polys {
			multi[i] = fromRings(p)
		}
		f = geojson.NewMultiPolygonFeature(multi...)
	}
	f.SetProperty(domain.AttrCode, a.Code)
	f.SetProperty(domain.AttrName, a.Name)
	return f
}

// Outline returns the ASP layer: every area with its code and name.
func Outline(areas domain.ProtectedAreas) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, a := range areas {
		fc.AddFeature(areaFeature(a))
	}
	return fc
}

// Choropleth returns the per-area count layer. Each feature carries its count
// and the fill styling chosen by scale.
func Choropleth(areas domain.ProtectedAreas, counts []domain.AreaCount, scale domain.ChoroplethScale) *geojson.FeatureCollection {
	byCode := make(map[string]int, len(counts))
	for _, c := range counts {
		byCode[c.Code] = c.Count
	}

	fc := geojson.NewFeatureCollection()
	for _, a := range areas {
		n := byCode[a.Code]
		f := areaFeature(a)
		f.SetProperty("cantidad_registros_presencia", n)
		f.SetProperty("class", scale.Class(n))
		f.SetProperty("fill", scale.Color(n))
		f.SetProperty("fill-opacity", scale.FillOpacity)
		f.SetProperty("stroke-opacity", scale.LineOpacity)
		fc.AddFeature(f)
	}
	return fc
}
