// Package dwc reads tab-delimited Darwin Core occurrence files such as GBIF
// simple downloads.
package dwc

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
)

const utf8BOM = "\ufeff"

// Reader parses occurrence files. It implements pipeline.RecordReader.
type Reader struct{}

// NewReader returns a Darwin Core reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses every data row of r. The header must name all required
// columns; unknown columns are kept in the raw fields and ignored downstream.
func (*Reader) Read(r io.Reader) ([]domain.RawRecord, error) {
	return Read(r)
}

// Read is the functional form of [Reader.Read].
func Read(r io.Reader) ([]domain.RawRecord, error) {
	cr := newCSVReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrEmptyFile
	}
	if err != nil {
		return nil, malformed(err)
	}
	header = normalizeHeader(header)

	if missing := MissingColumns(header); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingColumn, strings.Join(missing, ", "))
	}

	var records []domain.RawRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed(err)
		}
		line, _ := cr.FieldPos(0)
		records = append(records, domain.RawRecord{Row: line, Fields: zipRow(header, row)})
	}

	if len(records) == 0 {
		return nil, domain.ErrEmptyFile
	}
	return records, nil
}

// ReadHeader returns the normalized column names of r without reading data rows.
func ReadHeader(r io.Reader) ([]string, error) {
	header, err := newCSVReader(r).Read()
	if errors.Is(err, io.EOF) {
		return nil, domain.ErrEmptyFile
	}
	if err != nil {
		return nil, malformed(err)
	}
	return normalizeHeader(header), nil
}

// MissingColumns lists the required columns absent from header. When neither
// identifier column is present the pair is reported as one entry.
func MissingColumns(header []string) []string {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []string
	for _, c := range domain.RequiredColumns {
		if !present[c] {
			missing = append(missing, c)
		}
	}

	hasID := false
	for _, c := range domain.IdentifierColumns {
		hasID = hasID || present[c]
	}
	if !hasID {
		missing = append(missing, strings.Join(domain.IdentifierColumns, "|"))
	}
	return missing
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

// zipRow maps header names to row values. Short rows leave trailing columns
// empty; extra values are discarded.
func zipRow(header, row []string) map[string]string {
	fields := make(map[string]string, len(header))
	for i, h := range header {
		if i < len(row) {
			fields[h] = row[i]
		} else {
			fields[h] = ""
		}
	}
	return fields
}

func malformed(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return fmt.Errorf("%w: line %d: %w", domain.ErrMalformedFile, pe.Line, pe.Err)
	}
	return fmt.Errorf("%w: %w", domain.ErrMalformedFile, err)
}
