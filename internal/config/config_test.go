package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data.parquet", cfg.OutputFile)
	assert.Equal(t, 100, cfg.NumStations)
	assert.Equal(t, 365, cfg.Days)
	assert.Equal(t, 24, cfg.ReadingsPerDay)
	assert.Equal(t, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC), cfg.StartDate)
	assert.Equal(t, "snappy", cfg.Compression)
	assert.False(t, cfg.SeedSet)
	assert.InDelta(t, 20.0, cfg.TargetSizeMB, 0)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "synthetic-weather-readings", cfg.KafkaTopic)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Empty(t, cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.PushgatewayURL)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("OUTPUT_FILE", "/tmp/weather.parquet")
	t.Setenv("NUM_STATIONS", "1")
	t.Setenv("DAYS", "30")
	t.Setenv("READINGS_PER_DAY", "12")
	t.Setenv("START_DATE", "2024-06-01")
	t.Setenv("COMPRESSION", "ZSTD")
	t.Setenv("SEED", "1234")
	t.Setenv("TARGET_SIZE_MB", "5.5")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "custom-readings")
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("PUSHGATEWAY_URL", "http://pushgateway:9091")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/weather.parquet", cfg.OutputFile)
	assert.Equal(t, 1, cfg.NumStations)
	assert.Equal(t, 30, cfg.Days)
	assert.Equal(t, 12, cfg.ReadingsPerDay)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), cfg.StartDate)
	assert.Equal(t, "zstd", cfg.Compression)
	assert.True(t, cfg.SeedSet)
	assert.Equal(t, uint64(1234), cfg.Seed)
	assert.InDelta(t, 5.5, cfg.TargetSizeMB, 0)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-readings", cfg.KafkaTopic)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://pushgateway:9091", cfg.PushgatewayURL)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		key, value, wantInErr string
	}{
		{"NUM_STATIONS", "0", "NUM_STATIONS"},
		{"NUM_STATIONS", "many", "NUM_STATIONS"},
		{"DAYS", "-1", "DAYS"},
		{"READINGS_PER_DAY", "25", "READINGS_PER_DAY"},
		{"READINGS_PER_DAY", "0", "READINGS_PER_DAY"},
		{"START_DATE", "01/01/2023", "START_DATE"},
		{"TARGET_SIZE_MB", "0", "TARGET_SIZE_MB"},
		{"COMPRESSION", "lzo", "COMPRESSION"},
		{"SEED", "-5", "SEED"},
		{"SHUTDOWN_TIMEOUT", "not-a-duration", "SHUTDOWN_TIMEOUT"},
		{"BATCH_SIZE", "0", "BATCH_SIZE"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantInErr)
		})
	}
}

func TestLoad_SeedZeroIsExplicit(t *testing.T) {
	t.Setenv("SEED", "0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.SeedSet)
	assert.Zero(t, cfg.Seed)
}
