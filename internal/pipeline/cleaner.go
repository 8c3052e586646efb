package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
	"github.com/google/uuid"
)

// RecordReader parses an occurrence file into raw rows.
type RecordReader interface {
	Read(r io.Reader) ([]domain.RawRecord, error)
}

// DatasetCleaner implements Loader by reading raw rows and applying the
// domain cleaning rules under a date policy.
type DatasetCleaner struct {
	reader RecordReader
	policy domain.DatePolicy
	logger *slog.Logger
}

// NewCleaner creates a DatasetCleaner.
func NewCleaner(reader RecordReader, policy domain.DatePolicy, logger *slog.Logger) *DatasetCleaner {
	return &DatasetCleaner{
		reader: reader,
		policy: policy,
		logger: logger,
	}
}

func (c *DatasetCleaner) Load(ctx context.Context, name string, r io.Reader) (*domain.Dataset, error) {
	raws, err := c.reader.Read(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := domain.Clean(raws, c.policy)
	if err != nil {
		return nil, fmt.Errorf("clean %s: %w", name, err)
	}
	if len(res.DateIssues) > 0 {
		c.logger.Warn("unparseable event dates kept without a date",
			"file", name,
			"count", len(res.DateIssues),
			"first_row", res.DateIssues[0].Row,
		)
	}

	return &domain.Dataset{
		ID:          uuid.NewString(),
		FileName:    name,
		LoadedAt:    domain.Now(),
		Occurrences: res.Occurrences,
		Species:     domain.DistinctSpecies(res.Occurrences),
		Dropped:     res.Dropped,
		DateIssues:  res.DateIssues,
	}, nil
}
