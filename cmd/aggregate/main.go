// Command aggregate runs the dashboard computation offline for one occurrence
// file and one species. It prints the summary tables and, with -out-dir,
// writes the PNG charts, the choropleth GeoJSON, and the Excel workbook.
//
// Usage:
//
//	go run ./cmd/aggregate \
//	  -occurrences data/onca.tsv \
//	  -areas data/asp.geojson \
//	  -species "Panthera onca" \
//	  -out-dir out/
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/adapter/chart"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/adapter/dwc"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/adapter/geojson"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/adapter/polygons"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/adapter/xlsx"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	occPath := flag.String("occurrences", "", "tab-delimited Darwin Core occurrence file")
	areasPath := flag.String("areas", "", "protected-area polygons (.geojson or .shp)")
	species := flag.String("species", "", "species to aggregate (default: first in sorted order)")
	outDir := flag.String("out-dir", "", "directory for charts, choropleth and workbook (optional)")
	policy := flag.String("date-policy", string(domain.DatePolicySkip), "unparseable eventDate handling: skip or strict")
	top := flag.Int("top", domain.DefaultDashboardOptions().TopAreas, "number of areas in the ranking (1-100)")
	bins := flag.Int("bins", domain.DefaultChoroplethBins, "choropleth classes (3-9)")
	flag.Parse()

	if *occPath == "" || *areasPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -occurrences, -areas")
	}
	datePolicy, err := validateFlags(*policy, *top, *bins)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	areas, err := polygons.Load(*areasPath, logger)
	if err != nil {
		return fmt.Errorf("loading areas: %w", err)
	}

	f, err := os.Open(*occPath)
	if err != nil {
		return fmt.Errorf("open occurrences: %w", err)
	}
	defer f.Close()

	ds, err := pipeline.NewCleaner(dwc.NewReader(), datePolicy, logger).Load(context.Background(), filepath.Base(*occPath), f)
	if err != nil {
		return err
	}

	sel := *species
	if sel == "" {
		def, ok := ds.DefaultSpecies()
		if !ok {
			return fmt.Errorf("%s has no species: %w", *occPath, domain.ErrUnknownSpecies)
		}
		sel = def
	}

	d, err := domain.BuildDashboard(ds, areas, sel, domain.DashboardOptions{TopAreas: *top, ChoroplethBins: *bins})
	if err != nil {
		return err
	}

	printSummary(ds, d)

	if *outDir == "" {
		return nil
	}
	return writeOutputs(*outDir, areas, d)
}

// validateFlags applies the same bounds the server enforces on DATE_POLICY,
// TOP_AREAS, and CHOROPLETH_BINS.
func validateFlags(policy string, top, bins int) (domain.DatePolicy, error) {
	datePolicy, err := domain.ParseDatePolicy(policy)
	if err != nil {
		return "", err
	}
	if !domain.ValidTopAreas(top) {
		return "", fmt.Errorf("-top must be between 1 and %d, got %d", domain.MaxTopAreas, top)
	}
	if !domain.ValidChoroplethBins(bins) {
		return "", fmt.Errorf("-bins must be between 3 and 9, got %d", bins)
	}
	return datePolicy, nil
}

func printSummary(ds *domain.Dataset, d domain.Dashboard) {
	fmt.Printf("=== %s: %s ===\n", ds.FileName, d.Species)
	fmt.Printf("Loaded: %d records, %d dropped, %d species, %d unparsed dates\n",
		len(ds.Occurrences), ds.Dropped, len(ds.Species), len(ds.DateIssues))
	fmt.Printf("Selected: %d records, %d with coordinates, %d inside an ASP, %d inside more than one\n",
		d.Matches.Records, d.Matches.WithCoordinates, d.Matches.InsideAny, d.Matches.InsideMultiple)
	if d.Undated > 0 {
		fmt.Printf("Undated: %d\n", d.Undated)
	}

	fmt.Printf("\n%s (top %d)\n", domain.TitleByArea, len(d.TopAreas))
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", domain.LabelAreaCode, domain.LabelArea, domain.LabelRecords, domain.LabelPercent)
	for _, s := range d.AreaShares {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.1f %%\n", s.Code, s.Name, s.Count, s.Percent)
	}
	tw.Flush()

	printSeries(domain.TitleByYear, domain.LabelYear, d.ByYear)
	printSeries(domain.TitleByMonth, domain.LabelMonth, d.ByMonth)

	fmt.Printf("\n%s\n", domain.LabelChoroplethLegend)
	for i, label := range d.Choropleth.LegendLabels() {
		fmt.Printf("  %s  %s\n", d.Choropleth.Colors[i], label)
	}
}

func printSeries(title, keyLabel string, s domain.Series) {
	fmt.Printf("\n%s\n", title)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", keyLabel, domain.LabelRecords)
	for _, b := range s {
		fmt.Fprintf(tw, "%d\t%d\n", b.Key, b.Count)
	}
	tw.Flush()
}

func writeOutputs(dir string, areas domain.ProtectedAreas, d domain.Dashboard) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, name := range chart.Names {
		path := filepath.Join(dir, name+".png")
		if err := writeFile(path, func(f *os.File) error { return chart.Render(f, name, d) }); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		log.Printf("wrote chart: %s", path)
	}

	choropleth := filepath.Join(dir, "choropleth.geojson")
	if err := writeJSON(choropleth, geojson.Choropleth(areas, d.AreaCounts, d.Choropleth)); err != nil {
		return fmt.Errorf("writing choropleth: %w", err)
	}
	log.Printf("wrote choropleth: %s", choropleth)

	workbook := filepath.Join(dir, "registros.xlsx")
	if err := writeFile(workbook, func(f *os.File) error { return xlsx.Write(f, d) }); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	log.Printf("wrote workbook: %s", workbook)
	return nil
}

func writeFile(path string, fill func(*os.File) error) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if err := fill(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
