package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/adapter/dwc"
	httpadapter "github.com/couchcryptid/asp-occurrence-dashboard/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/asp-occurrence-dashboard/internal/adapter/kafka"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/adapter/polygons"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/config"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/observability"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/pipeline"
	"github.com/couchcryptid/asp-occurrence-dashboard/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// The polygon set is a hard dependency; there is nothing to serve without it.
	areas, err := polygons.Load(cfg.ASPPath, logger)
	if err != nil {
		logger.Error("failed to load protected areas", "path", cfg.ASPPath, "error", err)
		os.Exit(1)
	}
	logger.Info("protected areas loaded", "path", cfg.ASPPath, "count", len(areas))

	// Snapshot publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var (
		publisher pipeline.SnapshotPublisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("snapshot publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSnapshotTopic)
	} else {
		logger.Info("snapshot publishing disabled")
	}

	cleaner := pipeline.NewCleaner(dwc.NewReader(), cfg.DatePolicy, logger)
	opts := domain.DashboardOptions{TopAreas: cfg.TopAreas, ChoroplethBins: cfg.ChoroplethBins}
	p := pipeline.New(areas, cleaner, publisher, logger, metrics, opts)

	store := session.NewStore(cfg.SessionCapacity)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, store, metrics, cfg.MaxUploadBytes, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
