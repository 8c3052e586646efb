package domain

// Fixed Spanish label set shown by every presentation surface.
const (
	LabelFamily       = "Familia"
	LabelSpecies      = "Especie"
	LabelDate         = "Fecha"
	LabelLocality     = "Localidad"
	LabelDataOrigin   = "Origen del dato"
	LabelYear         = "Año"
	LabelMonth        = "Mes"
	LabelArea         = "ASP"
	LabelAreaCode     = "Código"
	LabelRecords      = "Registros de presencia"
	LabelPercent      = "Porcentaje"
	LabelHeatLayer    = "Mapa de calor"
	LabelAreasLayer   = "ASP"
	LabelClusterLayer = "Registros agrupados"
	LabelCountLayer   = "Cantidad de registros en ASP"

	LabelChoroplethLegend = "Cantidad de registros de presencia"

	TitleRecords      = "Registros de presencia"
	TitleByYear       = "Historial de registros por año"
	TitleByMonth      = "Estacionalidad de registros por mes"
	TitleByArea       = "Cantidad de registros por ASP"
	TitleShareByArea  = "Porcentaje de registros por ASP"
	TitleHeatMap      = "Mapa de calor y de registros agrupados"
	TitleCountMap     = "Mapa de cantidad de registros en ASP"
	TitleOccurrences  = "Mapa de registros de presencia"
	TitleAreaCountTbl = "Cantidad de registros de presencia en ASP"
)

// TableHeaders are the occurrence table column headers in display order.
var TableHeaders = []string{LabelFamily, LabelSpecies, LabelDate, LabelLocality, LabelDataOrigin}

// Map defaults for the Costa Rica ASP set.
const (
	MapCenterLat = 9.6
	MapCenterLon = -84.2
	MapZoom      = 8
)

// Base tile layers. The heat and cluster map sits on a dark basemap so the
// heat gradient stands out; the choropleth uses a light one under its fills.
const (
	TilesDarkMatter = "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png"
	TilesPositron   = "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png"
	TilesOSM        = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"

	AttributionCarto = "&copy; OpenStreetMap contributors &copy; CARTO"
	AttributionOSM   = "&copy; OpenStreetMap contributors"
)
