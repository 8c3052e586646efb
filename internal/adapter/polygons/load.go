// Package polygons selects the protected-area loader for a file path.
package polygons

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/adapter/geojson"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/adapter/shapefile"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
)

// Load reads the protected-area set from a .geojson/.json or .shp file.
func Load(path string, logger *slog.Logger) (domain.ProtectedAreas, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".geojson", ".json":
		return geojson.LoadProtectedAreas(path, logger)
	case ".shp":
		return shapefile.LoadProtectedAreas(path, logger)
	default:
		return nil, fmt.Errorf("unsupported protected area format %q", ext)
	}
}
