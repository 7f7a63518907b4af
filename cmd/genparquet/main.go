// Command genparquet generates a year of synthetic hourly weather readings
// for a set of randomly placed stations and writes them to a single Parquet
// file. Readings can optionally be published to Kafka after the file is
// written.
//
// Usage:
//
//	OUTPUT_FILE=data.parquet SEED=42 go run ./cmd/genparquet
package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/weather-fixture-gen/internal/adapter/httpadapter"
	kafkaadapter "github.com/couchcryptid/weather-fixture-gen/internal/adapter/kafka"
	parquetadapter "github.com/couchcryptid/weather-fixture-gen/internal/adapter/parquet"
	"github.com/couchcryptid/weather-fixture-gen/internal/config"
	"github.com/couchcryptid/weather-fixture-gen/internal/domain"
	"github.com/couchcryptid/weather-fixture-gen/internal/observability"
	"github.com/couchcryptid/weather-fixture-gen/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("generation failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	metrics := observability.NewMetrics()

	seed := cfg.Seed
	if !cfg.SeedSet {
		seed = rand.Uint64()
	}
	logger.Info("generator configured",
		"seed", seed,
		"stations", cfg.NumStations,
		"days", cfg.Days,
		"readings_per_day", cfg.ReadingsPerDay,
		"start_date", cfg.StartDate.Format("2006-01-02"),
		"compression", cfg.Compression,
		"target_size_mb", cfg.TargetSizeMB,
	)

	gen := domain.NewGenerator(domain.Params{
		NumStations:    cfg.NumStations,
		Days:           cfg.Days,
		ReadingsPerDay: cfg.ReadingsPerDay,
		StartDate:      cfg.StartDate,
	}, seed)

	artifact, err := parquetadapter.NewWriter(cfg.OutputFile, cfg.Compression, logger)
	if err != nil {
		return err
	}

	var opts []pipeline.Option
	if len(cfg.KafkaBrokers) > 0 {
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		opts = append(opts, pipeline.WithLoader("kafka", writer))
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	p := pipeline.New(gen, artifact, os.Stdout, logger, metrics, opts...)

	if cfg.HTTPAddr != "" {
		srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)
		stopServer := srv.Serve(cfg.ShutdownTimeout)
		defer stopServer()
	}

	summary, err := p.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Weather data saved to %s\n", summary.Path)

	if cfg.PushgatewayURL != "" {
		if err := observability.Push(ctx, cfg.PushgatewayURL, prometheus.DefaultGatherer); err != nil {
			return err
		}
		logger.Info("metrics pushed", "url", cfg.PushgatewayURL, "job", observability.PushJob)
	}
	return nil
}
