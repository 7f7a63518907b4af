//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	kafkaadapter "github.com/couchcryptid/weather-fixture-gen/internal/adapter/kafka"
	parquetadapter "github.com/couchcryptid/weather-fixture-gen/internal/adapter/parquet"
	"github.com/couchcryptid/weather-fixture-gen/internal/config"
	"github.com/couchcryptid/weather-fixture-gen/internal/domain"
	"github.com/couchcryptid/weather-fixture-gen/internal/observability"
	"github.com/couchcryptid/weather-fixture-gen/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

const testTopic = "test-weather-readings"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node broker and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("weather-fixture-gen-test"),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err, "start kafka container")

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     3,
		ReplicationFactor: 1,
	}))
}

type publishedMessage struct {
	Reading domain.Reading
	Key     string
	Headers map[string]string
}

func readPublished(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedMessage {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var r domain.Reading
	require.NoError(t, json.Unmarshal(msg.Value, &r), "unmarshal message")

	return publishedMessage{Reading: r, Key: string(msg.Key), Headers: headers}
}

// TestPipelinePublishesToKafka runs the full generator with the Parquet artifact
// and a Kafka secondary sink, then consumes every reading back.
func TestPipelinePublishesToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testTopic)

	cfg := &config.Config{
		KafkaBrokers: []string{broker},
		KafkaTopic:   testTopic,
		BatchSize:    50,
	}

	params := domain.DefaultParams()
	params.NumStations = 2
	params.Days = 2
	gen := domain.NewGenerator(params, 42)

	artifact, err := parquetadapter.NewWriter(filepath.Join(t.TempDir(), "data.parquet"), "snappy", discardLogger())
	require.NoError(t, err)

	writer := kafkaadapter.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(gen, artifact, io.Discard, discardLogger(), metrics, pipeline.WithLoader("kafka", writer))

	summary, err := p.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, params.Rows(), summary.Rows)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	perStation := map[string]int{}
	for range summary.Rows {
		pm := readPublished(ctx, t, consumer)
		perStation[pm.Key]++

		assert.Equal(t, pm.Reading.StationID, pm.Key)
		assert.Equal(t, pm.Reading.StationID, pm.Headers["station_id"])
		_, err := time.Parse(time.RFC3339, pm.Headers["generated_at"])
		assert.NoError(t, err, "generated_at should be valid RFC3339")
		assert.Equal(t, pm.Reading.Datetime.UnixMilli(), pm.Reading.Timestamp)
	}

	require.Len(t, perStation, params.NumStations)
	for id, n := range perStation {
		assert.Equal(t, params.Days*params.ReadingsPerDay, n, "readings for %s", id)
	}

	// The artifact on disk holds the same rows that were published.
	stored, err := parquetadapter.ReadAll(artifact.Path())
	require.NoError(t, err)
	assert.Len(t, stored, summary.Rows)
}
