// Command clean reads the raw NOAA significant-earthquake CSV, validates and
// normalizes each row, and writes the cleaned CSV artifact consumed by the
// dashboard. Optional enrichments: Mapbox reverse geocoding for blank
// location names and Kafka publishing of the cleaned records.
//
// Usage:
//
//	clean [-in data/noaa_earthquakes.csv] [-out data/earthquakes_clean.csv]
//
// Flags override the RAW_PATH and CLEAN_PATH environment variables.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	kafkaadapter "github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/adapter/kafka"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/adapter/mapbox"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/cleaner"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/config"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/domain"
	"github.com/LylaVillanueva/MCI-Simulation-Dashboard/internal/observability"
)

func main() {
	_ = godotenv.Load()

	inPath := flag.String("in", "", "raw dataset path (overrides RAW_PATH)")
	outPath := flag.String("out", "", "cleaned dataset path (overrides CLEAN_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *inPath != "" {
		cfg.RawPath = *inPath
	}
	if *outPath != "" {
		cfg.CleanPath = *outPath
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Geocoding is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	// Publishing is feature-flagged via KAFKA_ENABLED.
	var publisher cleaner.Publisher
	if cfg.KafkaEnabled {
		kp := kafkaadapter.NewPublisher(cfg, nil, logger)
		defer func() {
			if err := kp.Close(); err != nil {
				logger.Error("kafka publisher close error", "error", err)
			}
		}()
		publisher = kp
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := cleaner.New(
		cleaner.NewCSVSource(cfg.RawPath),
		cleaner.NewAtomicCSVSink(cfg.CleanPath),
		geocoder,
		publisher,
		logger,
		metrics,
		nil,
	)

	if _, err := c.Run(ctx); err != nil {
		logger.Error("clean run failed", "error", err, "in", cfg.RawPath, "out", cfg.CleanPath)
		os.Exit(1)
	}
}
