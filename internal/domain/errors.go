package domain

import "errors"

var (
	// ErrEmptyFile is returned when an occurrence file has no header or no data rows.
	ErrEmptyFile = errors.New("occurrence file is empty")
	// ErrMissingColumn is returned when a required Darwin Core column is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrMalformedFile is returned when the file cannot be parsed as tab-delimited text.
	ErrMalformedFile = errors.New("malformed occurrence file")
	// ErrInvalidDate is returned in strict date mode for an unparseable eventDate.
	ErrInvalidDate = errors.New("invalid event date")
	// ErrUnknownSpecies is returned when the selected species is not in the dataset.
	ErrUnknownSpecies = errors.New("unknown species")
	// ErrInvalidGeometry is returned for polygon rings that cannot form an area.
	ErrInvalidGeometry = errors.New("invalid geometry")
)
