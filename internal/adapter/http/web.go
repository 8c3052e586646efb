package http

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
)

//go:embed web/templates/*.html web/static/*
var webFS embed.FS

var indexTemplate = template.Must(template.ParseFS(webFS, "web/templates/index.html"))

// pageData feeds the dashboard template.
type pageData struct {
	Labels         map[string]string
	TableHeaders   []string
	Map            domain.MapSettings
	TopAreas       int
	ChoroplethBins int
	FillOpacity    float64
	LineOpacity    float64
	Tiles          map[string]baseLayer
}

// baseLayer is a Leaflet tile layer as handed to app.js.
type baseLayer struct {
	Name        string
	URL         string
	Attribution string
}

var mapTiles = map[string]baseLayer{
	"heat":   {Name: "CartoDB dark_matter", URL: domain.TilesDarkMatter, Attribution: domain.AttributionCarto},
	"count":  {Name: "CartoDB positron", URL: domain.TilesPositron, Attribution: domain.AttributionCarto},
	"points": {Name: "OpenStreetMap", URL: domain.TilesOSM, Attribution: domain.AttributionOSM},
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	opts := s.svc.Options()
	data := pageData{
		Labels:       pageLabels,
		TableHeaders: domain.TableHeaders,
		Map: domain.MapSettings{
			CenterLat: domain.MapCenterLat,
			CenterLon: domain.MapCenterLon,
			Zoom:      domain.MapZoom,
		},
		TopAreas:       opts.TopAreas,
		ChoroplethBins: opts.ChoroplethBins,
		FillOpacity:    domain.ChoroplethFillOpacity,
		LineOpacity:    domain.ChoroplethLineOpacity,
		Tiles:          mapTiles,
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		s.logger.ErrorContext(r.Context(), "render index failed", "error", err)
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes()) //nolint:errcheck // client may have gone away
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(webFS, "web/static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

var pageLabels = map[string]string{
	"records":        domain.TitleRecords,
	"byYear":         domain.TitleByYear,
	"byMonth":        domain.TitleByMonth,
	"byArea":         domain.TitleByArea,
	"shareByArea":    domain.TitleShareByArea,
	"heatMap":        domain.TitleHeatMap,
	"countMap":       domain.TitleCountMap,
	"occurrences":    domain.TitleOccurrences,
	"areaCountTable": domain.TitleAreaCountTbl,
	"heatLayer":      domain.LabelHeatLayer,
	"areasLayer":     domain.LabelAreasLayer,
	"clusterLayer":   domain.LabelClusterLayer,
	"countLayer":     domain.LabelCountLayer,
	"legend":         domain.LabelChoroplethLegend,
	"species":        domain.LabelSpecies,
	"area":           domain.LabelArea,
	"areaCode":       domain.LabelAreaCode,
	"recordsColumn":  domain.LabelRecords,
	"percent":        domain.LabelPercent,
}
