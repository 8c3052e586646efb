package kafka

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/config"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	snap := domain.Snapshot{
		DatasetID:   "ds-1",
		Species:     "Panthera onca",
		GeneratedAt: now,
		Records:     61,
		TopAreas:    []domain.AreaCount{{Code: "PN01", Name: "Corcovado", Count: 40}},
		ByYear:      domain.Series{{Key: 2019, Count: 61}},
	}

	msg, err := serializeToMessage(snap)
	require.NoError(t, err)

	assert.Equal(t, []byte("ds-1|Panthera onca"), msg.Key)
	assert.Contains(t, string(msg.Value), `"species":"Panthera onca"`)
	assert.Contains(t, string(msg.Value), `"codigo":"PN01"`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "species", msg.Headers[0].Key)
	assert.Equal(t, []byte("Panthera onca"), msg.Headers[0].Value)
	assert.Equal(t, "generated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestNewWriter(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"localhost:9092"}, KafkaSnapshotTopic: "snapshots"}

	w := NewWriter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = w.Close() })

	assert.Equal(t, "snapshots", w.writer.Topic)
	assert.Equal(t, "localhost:9092", w.writer.Addr.String())
	// Snapshots are written one at a time from a request goroutine; the
	// default one-second batch timeout would stall the dashboard response.
	assert.Equal(t, 1, w.writer.BatchSize)
	assert.Equal(t, 10*time.Millisecond, w.writer.BatchTimeout)
}
