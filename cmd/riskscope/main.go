package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/pfas-riskscope/internal/adapter/httpapi"
	kafkaadapter "github.com/couchcryptid/pfas-riskscope/internal/adapter/kafka"
	"github.com/couchcryptid/pfas-riskscope/internal/adapter/mapbox"
	"github.com/couchcryptid/pfas-riskscope/internal/config"
	"github.com/couchcryptid/pfas-riskscope/internal/domain"
	"github.com/couchcryptid/pfas-riskscope/internal/ingest"
	"github.com/couchcryptid/pfas-riskscope/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	limits, err := config.LoadLimits(cfg.LimitsPath)
	if err != nil {
		logger.Error("failed to load regulatory limits", "path", cfg.LimitsPath, "error", err)
		os.Exit(1)
	}

	baseline, err := loadBaseline(cfg.BaselinePath)
	if err != nil {
		logger.Error("failed to load background baseline", "path", cfg.BaselinePath, "error", err)
		os.Exit(1)
	}
	logger.Info("background baseline loaded", "path", cfg.BaselinePath, "regions", baseline.Regions())

	simulator := domain.NewSimulator(baseline, limits, domain.Options{
		EffluentPolicy: cfg.EffluentPolicy,
	})

	// Region resolution (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var locator domain.RegionLocator
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		locator = mapbox.NewCachedLocator(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox region resolution enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox region resolution disabled")
	}

	// Result stream (feature-flagged via KAFKA_PUBLISH_ENABLED).
	var publisher httpapi.ResultPublisher
	var publisherCloser *kafkaadapter.Publisher
	if cfg.KafkaPublishEnable {
		publisherCloser = kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaResultsTopic, metrics, logger)
		publisher = publisherCloser
		logger.Info("result stream enabled", "topic", cfg.KafkaResultsTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("result stream disabled")
	}

	srv := httpapi.NewServer(cfg.HTTPAddr, simulator, locator, publisher, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisherCloser != nil {
		if err := publisherCloser.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// loadBaseline reads the processed UCMR5 medians and builds the
// immutable background table.
func loadBaseline(path string) (*domain.Baseline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, domain.NewConfigError("background baseline", err)
	}
	defer f.Close()

	medians, err := ingest.LoadMedians(f)
	if err != nil {
		return nil, domain.NewConfigError("background baseline", err)
	}
	return ingest.BuildBaseline(medians), nil
}
