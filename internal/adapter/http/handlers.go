package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/adapter/chart"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/adapter/geojson"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/adapter/xlsx"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const formFileField = "file"

type uploadResponse struct {
	ID         string             `json:"id"`
	FileName   string             `json:"file_name"`
	LoadedAt   time.Time          `json:"loaded_at"`
	Records    int                `json:"records"`
	Dropped    int                `json:"dropped"`
	Species    []string           `json:"species"`
	DateIssues []domain.DateIssue `json:"date_issues"`
}

type speciesResponse struct {
	DatasetID string   `json:"dataset_id"`
	Species   []string `json:"species"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.ContentLength > s.maxUpload {
		s.rejectTooLarge(w)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	file, header, err := r.FormFile(formFileField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.rejectTooLarge(w)
			return
		}
		s.metrics.UploadErrors.WithLabelValues(CodeNoFile).Inc()
		writeErrorCode(w, http.StatusBadRequest, CodeNoFile, "an occurrence file is required in the \"file\" field")
		return
	}
	defer file.Close()

	ds, err := s.svc.Ingest(ctx, header.Filename, file)
	if err != nil {
		writeError(w, err)
		return
	}

	if evicted := s.store.Put(ds); evicted != "" {
		s.logger.InfoContext(ctx, "dataset evicted", "dataset_id", evicted)
	}
	s.metrics.DatasetsActive.Set(float64(s.store.Len()))

	writeJSON(w, http.StatusCreated, uploadResponse{
		ID:         ds.ID,
		FileName:   ds.FileName,
		LoadedAt:   ds.LoadedAt,
		Records:    len(ds.Occurrences),
		Dropped:    ds.Dropped,
		Species:    ds.Species,
		DateIssues: ds.DateIssues,
	})
}

func (s *Server) rejectTooLarge(w http.ResponseWriter) {
	s.metrics.UploadErrors.WithLabelValues(CodeTooLarge).Inc()
	writeErrorCode(w, http.StatusRequestEntityTooLarge, CodeTooLarge,
		fmt.Sprintf("occurrence file exceeds %d bytes", s.maxUpload))
}

func (s *Server) handleSpecies(w http.ResponseWriter, r *http.Request) {
	ds, err := s.dataset(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, speciesResponse{DatasetID: ds.ID, Species: ds.Species})
}

// handleDashboard is the only handler that publishes a snapshot. The page
// fetches charts and the choropleth for the same selection right after it.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, ok := s.compute(w, r)
	if !ok {
		return
	}
	s.svc.Publish(r.Context(), d)
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "chart")
	if !slices.Contains(chart.Names, name) {
		writeErrorCode(w, http.StatusNotFound, CodeNotFound, fmt.Sprintf("unknown chart %q", name))
		return
	}
	d, ok := s.compute(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, name, d); err != nil {
		s.logger.ErrorContext(r.Context(), "chart render failed", "chart", name, "error", err)
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes()) //nolint:errcheck // client may have gone away
}

func (s *Server) handleChoropleth(w http.ResponseWriter, r *http.Request) {
	d, ok := s.compute(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, geojson.Choropleth(s.svc.Areas(), d.AreaCounts, d.Choropleth))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	d, ok := s.compute(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := xlsx.Write(&buf, d); err != nil {
		s.logger.ErrorContext(r.Context(), "export failed", "dataset_id", d.DatasetID, "error", err)
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", xlsx.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFileName(d.Species)))
	w.Write(buf.Bytes()) //nolint:errcheck // client may have gone away
}

func (s *Server) handleAreas(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, geojson.Outline(s.svc.Areas()))
}

// dataset resolves the {id} path parameter against the session store.
func (s *Server) dataset(r *http.Request) (*domain.Dataset, error) {
	id := chi.URLParam(r, "id")
	ds, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, errDatasetNotFound)
	}
	return ds, nil
}

// compute builds the dashboard for the request's dataset and species query
// parameter, writing the error response itself on failure.
func (s *Server) compute(w http.ResponseWriter, r *http.Request) (domain.Dashboard, bool) {
	ds, err := s.dataset(r)
	if err != nil {
		writeError(w, err)
		return domain.Dashboard{}, false
	}
	d, err := s.svc.Compute(r.Context(), ds, r.URL.Query().Get("species"))
	if err != nil {
		if status, _ := statusFor(err); status == http.StatusInternalServerError {
			s.logger.ErrorContext(r.Context(), "dashboard computation failed",
				"request_id", middleware.GetReqID(r.Context()),
				"dataset_id", ds.ID,
				"error", err,
			)
		}
		writeError(w, err)
		return domain.Dashboard{}, false
	}
	return d, true
}

func exportFileName(species string) string {
	name := []rune(species)
	for i, c := range name {
		if c == ' ' || c == '/' || c == '"' {
			name[i] = '_'
		}
	}
	if len(name) == 0 {
		return "registros.xlsx"
	}
	return "registros_" + string(name) + ".xlsx"
}
