package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/pfas-riskscope/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Startup data sources.
	BaselinePath string
	LimitsPath   string

	// Engine policy.
	EffluentPolicy domain.EffluentPolicy

	// Mapbox reverse-geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int

	// Optional Kafka result stream for downstream report consumers.
	KafkaBrokers       []string
	KafkaResultsTopic  string
	KafkaPublishEnable bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	mapboxTimeout, err := parseDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	kafkaPublish := os.Getenv("KAFKA_PUBLISH_ENABLED") == "true"

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		BaselinePath: envOrDefault("BASELINE_PATH", "data/processed/ucmr5_state_medians.csv"),
		LimitsPath:   envOrDefault("LIMITS_PATH", "config/regulatory_limits.yaml"),

		EffluentPolicy: domain.EffluentPolicy(envOrDefault("EFFLUENT_POLICY", string(domain.PolicyConservative))),

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseIntOrDefault("MAPBOX_CACHE_SIZE", 1000),

		KafkaBrokers:       parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaResultsTopic:  envOrDefault("KAFKA_RESULTS_TOPIC", "pfas-risk-results"),
		KafkaPublishEnable: kafkaPublish,
	}

	if cfg.BaselinePath == "" {
		return nil, errors.New("BASELINE_PATH is required")
	}
	if cfg.LimitsPath == "" {
		return nil, errors.New("LIMITS_PATH is required")
	}
	switch cfg.EffluentPolicy {
	case domain.PolicyConservative, domain.PolicyOptimistic:
	default:
		return nil, fmt.Errorf("invalid EFFLUENT_POLICY %q", cfg.EffluentPolicy)
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}
	if cfg.KafkaPublishEnable && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_PUBLISH_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaPublishEnable && cfg.KafkaResultsTopic == "" {
		return nil, errors.New("KAFKA_PUBLISH_ENABLED is true but KAFKA_RESULTS_TOPIC is not set")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseIntOrDefault(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func parseBrokers(s string) []string {
	var out []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
