package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/asp-occurrence-dashboard/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Protected-area polygon source (.geojson or .shp).
	ASPPath string

	MaxUploadBytes  int64
	SessionCapacity int
	DatePolicy      domain.DatePolicy
	TopAreas        int
	ChoroplethBins  int

	// Optional snapshot publishing.
	KafkaBrokers       []string
	KafkaSnapshotTopic string
	KafkaEnabled       bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := time.ParseDuration(EnvOrDefault("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil || shutdownTimeout <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}

	maxUpload, err := strconv.ParseInt(EnvOrDefault("MAX_UPLOAD_BYTES", "33554432"), 10, 64)
	if err != nil || maxUpload <= 0 {
		return nil, errors.New("invalid MAX_UPLOAD_BYTES")
	}

	sessionCapacity, err := strconv.Atoi(EnvOrDefault("SESSION_CAPACITY", "16"))
	if err != nil || sessionCapacity <= 0 {
		return nil, errors.New("invalid SESSION_CAPACITY")
	}

	datePolicy, err := domain.ParseDatePolicy(EnvOrDefault("DATE_POLICY", string(domain.DatePolicySkip)))
	if err != nil {
		return nil, errors.New("invalid DATE_POLICY: must be skip or strict")
	}

	topAreas, err := strconv.Atoi(EnvOrDefault("TOP_AREAS", "15"))
	if err != nil || !domain.ValidTopAreas(topAreas) {
		return nil, errors.New("invalid TOP_AREAS: must be between 1 and 100")
	}

	bins, err := strconv.Atoi(EnvOrDefault("CHOROPLETH_BINS", strconv.Itoa(domain.DefaultChoroplethBins)))
	if err != nil || !domain.ValidChoroplethBins(bins) {
		return nil, errors.New("invalid CHOROPLETH_BINS: must be between 3 and 9")
	}

	brokers := ParseBrokers(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:           EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		ASPPath:            EnvOrDefault("ASP_PATH", "asp.geojson"),
		MaxUploadBytes:     maxUpload,
		SessionCapacity:    sessionCapacity,
		DatePolicy:         datePolicy,
		TopAreas:           topAreas,
		ChoroplethBins:     bins,
		KafkaBrokers:       brokers,
		KafkaSnapshotTopic: EnvOrDefault("KAFKA_SNAPSHOT_TOPIC", "asp-dashboard-snapshots"),
		KafkaEnabled:       kafkaEnabled,
	}

	if strings.TrimSpace(cfg.ASPPath) == "" {
		return nil, errors.New("ASP_PATH is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaSnapshotTopic == "" {
		return nil, errors.New("KAFKA_SNAPSHOT_TOPIC is required")
	}

	return cfg, nil
}

// EnvOrDefault returns the value of key, or fallback when it is unset or empty.
func EnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ParseBrokers splits a comma-separated broker list, dropping blanks.
func ParseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
