package domain

import (
	"fmt"
	"time"
)

// TableRow is one line of the occurrence table. JSON keys are the localized
// column headers.
type TableRow struct {
	Family     string `json:"Familia"`
	Species    string `json:"Especie"`
	Date       string `json:"Fecha"`
	Locality   string `json:"Localidad"`
	DataOrigin string `json:"Origen del dato"`
}

// Values returns the row in TableHeaders order.
func (r TableRow) Values() []string {
	return []string{r.Family, r.Species, r.Date, r.Locality, r.DataOrigin}
}

// MapPoint is a record plotted on the heat, cluster, and point maps.
type MapPoint struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Popup string  `json:"popup"`
}

// MapSettings positions the interactive maps.
type MapSettings struct {
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
	Zoom      int     `json:"zoom"`
}

// Dashboard holds every derived output for one dataset and species. It is
// built fresh for each request.
type Dashboard struct {
	DatasetID   string          `json:"dataset_id"`
	Species     string          `json:"species"`
	GeneratedAt time.Time       `json:"generated_at"`
	Table       []TableRow      `json:"table"`
	AreaCounts  []AreaCount     `json:"area_counts"`
	TopAreas    []AreaCount     `json:"top_areas"`
	AreaShares  []AreaShare     `json:"area_shares"`
	ByYear      Series          `json:"by_year"`
	ByMonth     Series          `json:"by_month"`
	Undated     int             `json:"undated"`
	Matches     MatchSummary    `json:"matches"`
	Points      []MapPoint      `json:"points"`
	Choropleth  ChoroplethScale `json:"choropleth"`
	Map         MapSettings     `json:"map"`

	Occurrences []Occurrence `json:"-"`
}

// DashboardOptions tunes the derived views.
type DashboardOptions struct {
	TopAreas       int
	ChoroplethBins int
}

// MaxTopAreas caps the ranking length.
const MaxTopAreas = 100

// ValidTopAreas reports whether n is a usable ranking length.
func ValidTopAreas(n int) bool { return n >= 1 && n <= MaxTopAreas }

// DefaultDashboardOptions returns the standard 15-area ranking and 8-class map.
func DefaultDashboardOptions() DashboardOptions {
	return DashboardOptions{TopAreas: 15, ChoroplethBins: DefaultChoroplethBins}
}

// BuildDashboard filters the dataset to species and derives all views. The
// species must be a member of the dataset.
func BuildDashboard(ds *Dataset, areas ProtectedAreas, species string, opts DashboardOptions) (Dashboard, error) {
	if !ds.HasSpecies(species) {
		return Dashboard{}, fmt.Errorf("%w: %q", ErrUnknownSpecies, species)
	}

	filtered := FilterBySpecies(ds.Occurrences, species)
	counts, matches := CountByArea(areas, filtered)
	top := TopAreas(counts, opts.TopAreas)

	scale, err := NewChoroplethScale(counts, opts.ChoroplethBins)
	if err != nil {
		return Dashboard{}, err
	}

	byYear := CountByYear(filtered)
	return Dashboard{
		DatasetID:   ds.ID,
		Species:     species,
		GeneratedAt: clock.Now(),
		Table:       BuildTable(filtered),
		AreaCounts:  counts,
		TopAreas:    top,
		AreaShares:  AreaShares(top),
		ByYear:      byYear,
		ByMonth:     CountByMonth(filtered),
		Undated:     len(filtered) - byYear.Total(),
		Matches:     matches,
		Points:      MapPoints(filtered),
		Choropleth:  scale,
		Map:         MapSettings{CenterLat: MapCenterLat, CenterLon: MapCenterLon, Zoom: MapZoom},
		Occurrences: filtered,
	}, nil
}

// BuildTable projects occurrences onto the five displayed columns. Undated
// records show their raw eventDate text.
func BuildTable(occ []Occurrence) []TableRow {
	rows := make([]TableRow, len(occ))
	for i, o := range occ {
		date := o.RawEventDate
		if o.HasDate() {
			date = formatEventDate(o.EventDate)
		}
		rows[i] = TableRow{
			Family:     o.Family,
			Species:    o.Species,
			Date:       date,
			Locality:   o.Locality,
			DataOrigin: o.OccurrenceID,
		}
	}
	return rows
}

func formatEventDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

// MapPoints returns the records with valid coordinates, labelled by species.
func MapPoints(occ []Occurrence) []MapPoint {
	points := make([]MapPoint, 0, len(occ))
	for _, o := range occ {
		if !o.HasCoordinates() {
			continue
		}
		points = append(points, MapPoint{Lat: o.Lat, Lon: o.Lon, Popup: o.Species})
	}
	return points
}
