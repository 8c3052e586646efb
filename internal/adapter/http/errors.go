package http

import (
	"errors"
	"net/http"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
)

// Error codes carried in the JSON error envelope.
const (
	CodeNoFile         = "no_file"
	CodeTooLarge       = "too_large"
	CodeEmptyFile      = "empty"
	CodeMissingColumn  = "missing_column"
	CodeMalformed      = "malformed"
	CodeInvalidDate    = "invalid_date"
	CodeUnknownSpecies = "unknown_species"
	CodeNotFound       = "not_found"
	CodeInternal       = "internal"
)

var errDatasetNotFound = errors.New("dataset not found")

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusFor maps an error onto its HTTP status and envelope code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errDatasetNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrEmptyFile):
		return http.StatusBadRequest, CodeEmptyFile
	case errors.Is(err, domain.ErrMissingColumn):
		return http.StatusBadRequest, CodeMissingColumn
	case errors.Is(err, domain.ErrMalformedFile):
		return http.StatusBadRequest, CodeMalformed
	case errors.Is(err, domain.ErrInvalidDate):
		return http.StatusBadRequest, CodeInvalidDate
	case errors.Is(err, domain.ErrUnknownSpecies):
		return http.StatusBadRequest, CodeUnknownSpecies
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

func writeErrorCode(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}
