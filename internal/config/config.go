package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Compression codecs accepted by COMPRESSION.
var compressionCodecs = map[string]bool{
	"snappy": true,
	"zstd":   true,
	"gzip":   true,
	"none":   true,
}

// Config holds all generator settings, populated from environment variables.
type Config struct {
	OutputFile     string
	NumStations    int
	Days           int
	ReadingsPerDay int
	StartDate      time.Time
	Compression    string

	// Seed is only meaningful when SeedSet is true; otherwise the caller
	// picks a random seed.
	Seed    uint64
	SeedSet bool

	// TargetSizeMB is a nominal size hint. It is reported but does not scale
	// the dataset shape.
	TargetSizeMB float64

	LogLevel  string
	LogFormat string

	// Optional Kafka publishing, enabled when KafkaBrokers is non-empty.
	KafkaBrokers []string
	KafkaTopic   string
	BatchSize    int

	// Optional health/metrics server, enabled when HTTPAddr is non-empty.
	HTTPAddr        string
	ShutdownTimeout time.Duration

	PushgatewayURL string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	numStations, err := parsePositiveInt("NUM_STATIONS", 100)
	if err != nil {
		return nil, err
	}
	days, err := parsePositiveInt("DAYS", 365)
	if err != nil {
		return nil, err
	}
	readingsPerDay, err := parsePositiveInt("READINGS_PER_DAY", 24)
	if err != nil {
		return nil, err
	}
	if readingsPerDay > 24 {
		return nil, errors.New("READINGS_PER_DAY must be between 1 and 24")
	}

	startDate, err := time.Parse(time.DateOnly, sharedcfg.EnvOrDefault("START_DATE", "2023-01-01"))
	if err != nil {
		return nil, errors.New("invalid START_DATE, expected YYYY-MM-DD")
	}

	targetSize, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("TARGET_SIZE_MB", "20"), 64)
	if err != nil || targetSize <= 0 {
		return nil, errors.New("invalid TARGET_SIZE_MB")
	}

	cfg := &Config{
		OutputFile:     sharedcfg.EnvOrDefault("OUTPUT_FILE", "data.parquet"),
		NumStations:    numStations,
		Days:           days,
		ReadingsPerDay: readingsPerDay,
		StartDate:      startDate,
		Compression:    strings.ToLower(sharedcfg.EnvOrDefault("COMPRESSION", "snappy")),
		TargetSizeMB:   targetSize,

		LogLevel:  sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat: sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),

		KafkaTopic: sharedcfg.EnvOrDefault("KAFKA_TOPIC", "synthetic-weather-readings"),
		BatchSize:  batchSize,

		HTTPAddr:        os.Getenv("HTTP_ADDR"),
		ShutdownTimeout: shutdownTimeout,

		PushgatewayURL: os.Getenv("PUSHGATEWAY_URL"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = sharedcfg.ParseBrokers(brokers)
	}

	if s := os.Getenv("SEED"); s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, errors.New("invalid SEED, expected a non-negative integer")
		}
		cfg.Seed = seed
		cfg.SeedSet = true
	}

	if cfg.OutputFile == "" {
		return nil, errors.New("OUTPUT_FILE is required")
	}
	if !compressionCodecs[cfg.Compression] {
		return nil, errors.New("COMPRESSION must be one of snappy, zstd, gzip, none")
	}
	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid " + key + ", expected a positive integer")
	}
	return n, nil
}
