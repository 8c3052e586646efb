// Package xlsx exports a dashboard's tables as an Excel workbook.
package xlsx

import (
	"fmt"
	"io"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the exported workbook.
const (
	SheetRecords = "Registros de presencia"
	SheetAreas   = "Registros por ASP"
	SheetYears   = "Registros por año"
	SheetMonths  = "Registros por mes"
)

// ContentType is the MIME type of the exported workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Write renders the occurrence table, the per-area counts and both time
// series of d into a workbook and writes it to w.
func Write(w io.Writer, d domain.Dashboard) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetRecords); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRecords(f, d.Table); err != nil {
		return err
	}
	if err := writeAreas(f, d.AreaCounts); err != nil {
		return err
	}
	if err := writeSeries(f, SheetYears, domain.LabelYear, d.ByYear); err != nil {
		return err
	}
	if err := writeSeries(f, SheetMonths, domain.LabelMonth, d.ByMonth); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRecords(f *excelize.File, rows []domain.TableRow) error {
	head := make([]any, len(domain.TableHeaders))
	for i, h := range domain.TableHeaders {
		head[i] = h
	}
	if err := f.SetSheetRow(SheetRecords, "A1", &head); err != nil {
		return fmt.Errorf("write records header: %w", err)
	}
	for i, r := range rows {
		vals := r.Values()
		row := make([]any, len(vals))
		for j, v := range vals {
			row[j] = v
		}
		if err := f.SetSheetRow(SheetRecords, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}
	return nil
}

func writeAreas(f *excelize.File, counts []domain.AreaCount) error {
	if _, err := f.NewSheet(SheetAreas); err != nil {
		return fmt.Errorf("create %s: %w", SheetAreas, err)
	}
	head := []any{domain.LabelAreaCode, domain.LabelArea, domain.LabelRecords}
	if err := f.SetSheetRow(SheetAreas, "A1", &head); err != nil {
		return fmt.Errorf("write areas header: %w", err)
	}
	for i, c := range counts {
		row := []any{c.Code, c.Name, c.Count}
		if err := f.SetSheetRow(SheetAreas, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("write area %s: %w", c.Code, err)
		}
	}
	return nil
}

func writeSeries(f *excelize.File, sheet, keyLabel string, s domain.Series) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create %s: %w", sheet, err)
	}
	head := []any{keyLabel, domain.LabelRecords}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	for i, b := range s {
		row := []any{b.Key, b.Count}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return fmt.Errorf("write %s row: %w", sheet, err)
		}
	}
	return nil
}
