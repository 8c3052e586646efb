// Command validate checks a Darwin Core occurrence file against the rules the
// dashboard loader and cleaner apply: required columns, parseable rows,
// species, event dates, coordinates, and record identifiers. With -areas it
// also reports how many records fall inside the protected-area polygons.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -occurrences data/onca.tsv \
//	  -areas data/asp.geojson
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/adapter/dwc"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/adapter/polygons"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
)

// phase tracks pass/fail for a validation phase. Notes are informational and
// never fail the phase.
type phase struct {
	name   string
	errors []string
	notes  []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) notef(format string, args ...any) {
	p.notes = append(p.notes, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	occPath := flag.String("occurrences", "", "tab-delimited Darwin Core occurrence file")
	areasPath := flag.String("areas", "", "protected-area polygons (.geojson or .shp), optional")
	flag.Parse()

	if *occPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(os.Stdout, *occPath, *areasPath); code != 0 {
		os.Exit(code)
	}
}

func run(out io.Writer, occPath, areasPath string) int {
	fmt.Fprintln(out, "=== Occurrence File Validation ===")
	fmt.Fprintln(out)

	data, err := os.ReadFile(occPath)
	if err != nil {
		fmt.Fprintf(out, "FATAL: read occurrences: %v\n", err)
		return 1
	}

	columns, header := validateColumns(data)
	phases := []*phase{columns}

	var raws []domain.RawRecord
	if header != nil {
		var parsing *phase
		raws, parsing = validateRows(data)
		phases = append(phases, parsing)
	}
	if len(raws) > 0 {
		phases = append(phases,
			validateSpecies(raws),
			validateDates(raws),
			validateCoordinates(raws),
			validateIdentifiers(raws),
		)
		if areasPath != "" {
			phases = append(phases, validateContainment(raws, areasPath))
		}
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Rows: %d\n", len(raws))

	for _, p := range phases {
		if len(p.notes) == 0 && p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for _, n := range p.notes {
			fmt.Fprintf(out, "  %s\n", n)
		}
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

// ── Phases ──

func validateColumns(data []byte) (*phase, []string) {
	p := &phase{name: "Phase 1: Required columns"}
	header, err := dwc.ReadHeader(bytes.NewReader(data))
	if err != nil {
		p.errorf("read header: %v", err)
		return p, nil
	}
	for _, c := range dwc.MissingColumns(header) {
		p.errorf("missing column %s", c)
	}
	if !p.passed() {
		return p, nil
	}
	p.notef("%d columns", len(header))
	return p, header
}

func validateRows(data []byte) ([]domain.RawRecord, *phase) {
	p := &phase{name: "Phase 2: Row parsing"}
	raws, err := dwc.Read(bytes.NewReader(data))
	if err != nil {
		p.errorf("%v", err)
		return nil, p
	}
	return raws, p
}

func validateSpecies(raws []domain.RawRecord) *phase {
	p := &phase{name: "Phase 3: Species"}
	res, err := domain.Clean(raws, domain.DatePolicySkip)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	species := domain.DistinctSpecies(res.Occurrences)
	if len(species) == 0 {
		p.errorf("no row carries a species name")
		return p
	}
	if res.Dropped > 0 {
		p.notef("%d rows without species will be dropped", res.Dropped)
	}
	for _, s := range species {
		p.notef("%s: %d records", s, len(domain.FilterBySpecies(res.Occurrences, s)))
	}
	return p
}

func validateDates(raws []domain.RawRecord) *phase {
	p := &phase{name: "Phase 4: Event dates"}
	empty := 0
	for _, r := range raws {
		v := strings.TrimSpace(r.Get(domain.ColumnEventDate))
		if v == "" {
			empty++
			continue
		}
		if _, err := domain.ParseEventDate(v); err != nil {
			p.errorf("row %d: unparseable eventDate %q", r.Row, v)
		}
	}
	if empty > 0 {
		p.notef("%d rows without eventDate are excluded from the time series", empty)
	}
	return p
}

func validateCoordinates(raws []domain.RawRecord) *phase {
	p := &phase{name: "Phase 5: Coordinates"}
	missing := 0
	for _, r := range raws {
		latRaw := strings.TrimSpace(r.Get(domain.ColumnLatitude))
		lonRaw := strings.TrimSpace(r.Get(domain.ColumnLongitude))
		if latRaw == "" || lonRaw == "" {
			missing++
			continue
		}
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lon, lonErr := strconv.ParseFloat(lonRaw, 64)
		switch {
		case latErr != nil || lonErr != nil:
			p.errorf("row %d: unparseable coordinates (%q, %q)", r.Row, lonRaw, latRaw)
		case math.Abs(lat) > 90 || math.Abs(lon) > 180:
			p.errorf("row %d: coordinates out of range (%g, %g)", r.Row, lon, lat)
		}
	}
	if missing > 0 {
		p.notef("%d rows without coordinates are excluded from the maps and area counts", missing)
	}
	return p
}

func validateIdentifiers(raws []domain.RawRecord) *phase {
	p := &phase{name: "Phase 6: Record identifiers"}
	seen := make(map[string]int, len(raws))
	for _, r := range raws {
		id := strings.TrimSpace(r.Get(domain.ColumnGBIFID))
		if id == "" {
			id = strings.TrimSpace(r.Get(domain.ColumnOccurrenceID))
		}
		if id == "" {
			p.errorf("row %d: no %s", r.Row, strings.Join(domain.IdentifierColumns, " or "))
			continue
		}
		if first, dup := seen[id]; dup {
			p.errorf("row %d: identifier %s already used on row %d", r.Row, id, first)
			continue
		}
		seen[id] = r.Row
	}
	return p
}

func validateContainment(raws []domain.RawRecord, areasPath string) *phase {
	p := &phase{name: "Phase 7: Protected-area containment"}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	areas, err := polygons.Load(areasPath, logger)
	if err != nil {
		p.errorf("load areas: %v", err)
		return p
	}

	res, err := domain.Clean(raws, domain.DatePolicySkip)
	if err != nil {
		p.errorf("%v", err)
		return p
	}
	_, m := domain.CountByArea(areas, res.Occurrences)
	p.notef("%d areas loaded", len(areas))
	p.notef("%d of %d located records inside an area, %d inside more than one",
		m.InsideAny, m.WithCoordinates, m.InsideMultiple)
	return p
}
