package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/observability"
)

// Loader turns an uploaded occurrence file into a cleaned dataset.
type Loader interface {
	Load(ctx context.Context, name string, r io.Reader) (*domain.Dataset, error)
}

// SnapshotPublisher ships computed dashboard summaries downstream.
type SnapshotPublisher interface {
	Publish(ctx context.Context, snap domain.Snapshot) error
}

// Pipeline runs load -> clean -> aggregate for each interaction. Every call is
// synchronous and reads only immutable inputs, so one Pipeline serves
// concurrent requests.
type Pipeline struct {
	areas     domain.ProtectedAreas
	loader    Loader
	publisher SnapshotPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	opts      domain.DashboardOptions
	ready     atomic.Bool
}

// New creates a Pipeline over a loaded polygon set. Pass a nil publisher to
// disable snapshot publishing.
func New(areas domain.ProtectedAreas, l Loader, pub SnapshotPublisher, logger *slog.Logger, metrics *observability.Metrics, opts domain.DashboardOptions) *Pipeline {
	p := &Pipeline{
		areas:     areas,
		loader:    l,
		publisher: pub,
		logger:    logger,
		metrics:   metrics,
		opts:      opts,
	}
	metrics.ProtectedAreasLoaded.Set(float64(len(areas)))
	p.ready.Store(len(areas) > 0)
	return p
}

// CheckReadiness returns nil once the protected-area set is loaded.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no protected areas loaded")
	}
	return nil
}

// Areas returns the shared, read-only polygon set.
func (p *Pipeline) Areas() domain.ProtectedAreas {
	return p.areas
}

// Options returns the dashboard tuning in effect.
func (p *Pipeline) Options() domain.DashboardOptions {
	return p.opts
}

// Ingest loads and cleans an uploaded file.
func (p *Pipeline) Ingest(ctx context.Context, name string, r io.Reader) (*domain.Dataset, error) {
	ds, err := p.loader.Load(ctx, name, r)
	if err != nil {
		p.metrics.UploadErrors.WithLabelValues(UploadErrorReason(err)).Inc()
		p.logger.WarnContext(ctx, "upload rejected", "file", name, "error", err)
		return nil, err
	}

	p.metrics.Uploads.Inc()
	p.metrics.RecordsLoaded.Observe(float64(len(ds.Occurrences)))
	p.metrics.DateIssues.Add(float64(len(ds.DateIssues)))
	p.logger.InfoContext(ctx, "dataset loaded",
		"dataset_id", ds.ID,
		"file", name,
		"records", len(ds.Occurrences),
		"dropped", ds.Dropped,
		"species", len(ds.Species),
		"date_issues", len(ds.DateIssues),
	)
	return ds, nil
}

// Compute builds the dashboard for one species of ds. An empty species
// selects the dataset default, the first name in sorted order. Compute has no
// side effects beyond metrics; call Publish once per selection to ship the
// snapshot.
func (p *Pipeline) Compute(ctx context.Context, ds *domain.Dataset, species string) (domain.Dashboard, error) {
	start := time.Now()

	if species == "" {
		def, ok := ds.DefaultSpecies()
		if !ok {
			p.metrics.ComputationErrors.Inc()
			return domain.Dashboard{}, fmt.Errorf("dataset %s has no species: %w", ds.ID, domain.ErrUnknownSpecies)
		}
		species = def
	}
	if err := ctx.Err(); err != nil {
		return domain.Dashboard{}, err
	}

	d, err := domain.BuildDashboard(ds, p.areas, species, p.opts)
	if err != nil {
		p.metrics.ComputationErrors.Inc()
		return domain.Dashboard{}, err
	}

	p.metrics.Computations.Inc()
	p.metrics.ComputationDuration.Observe(time.Since(start).Seconds())
	p.logger.DebugContext(ctx, "dashboard computed",
		"dataset_id", ds.ID,
		"species", species,
		"records", len(d.Table),
		"inside_any", d.Matches.InsideAny,
		"duration", time.Since(start),
	)

	return d, nil
}

// Publish sends the snapshot of d inline. Failures are logged and counted but
// never surface to the caller.
func (p *Pipeline) Publish(ctx context.Context, d domain.Dashboard) {
	if p.publisher == nil {
		return
	}
	if err := p.publisher.Publish(ctx, domain.NewSnapshot(d)); err != nil {
		p.metrics.SnapshotPublish.WithLabelValues("error").Inc()
		p.logger.WarnContext(ctx, "snapshot publish failed",
			"error", err,
			"dataset_id", d.DatasetID,
			"species", d.Species,
		)
		return
	}
	p.metrics.SnapshotPublish.WithLabelValues("success").Inc()
}

// UploadErrorReason maps a load error onto the upload_errors_total reason label.
func UploadErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyFile):
		return "empty"
	case errors.Is(err, domain.ErrMissingColumn):
		return "missing_column"
	case errors.Is(err, domain.ErrMalformedFile):
		return "malformed"
	case errors.Is(err, domain.ErrInvalidDate):
		return "invalid_date"
	default:
		return "other"
	}
}
