package parquet

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/weather-fixture-gen/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testReadings(t *testing.T, stations, days int, seed uint64) []domain.Reading {
	t.Helper()
	params := domain.DefaultParams()
	params.NumStations = stations
	params.Days = days

	g := domain.NewGenerator(params, seed)
	readings, err := g.Readings(context.Background(), g.Stations())
	require.NoError(t, err)
	return readings
}

func writeFile(t *testing.T, path, compression string, readings []domain.Reading) {
	t.Helper()
	w, err := NewWriter(path, compression, discardLogger())
	require.NoError(t, err)
	require.NoError(t, w.LoadBatch(context.Background(), readings))
}

func TestWriter_RoundTrip(t *testing.T) {
	readings := testReadings(t, 2, 3, 17)
	path := filepath.Join(t.TempDir(), "data.parquet")

	writeFile(t, path, "snappy", readings)

	got, err := ReadAll(path)
	require.NoError(t, err)
	require.Len(t, got, len(readings))

	for i := range readings {
		want := readings[i]
		assert.True(t, want.Datetime.Equal(got[i].Datetime), "row %d datetime", i)
		got[i].Datetime = want.Datetime
		assert.Equal(t, want, got[i], "row %d", i)
	}
}

func TestInspect_Schema(t *testing.T) {
	readings := testReadings(t, 1, 2, 3)
	path := filepath.Join(t.TempDir(), "data.parquet")
	writeFile(t, path, "snappy", readings)

	info, err := Inspect(path)
	require.NoError(t, err)

	assert.Equal(t, int64(len(readings)), info.Rows)
	assert.Equal(t, 1, info.RowGroups)
	assert.Positive(t, info.Size)

	names := make([]string, len(info.Columns))
	kinds := make(map[string]string, len(info.Columns))
	for i, c := range info.Columns {
		names[i] = c.Name
		kinds[c.Name] = c.Kind
	}
	assert.Equal(t, domain.Columns, names)
	assert.Equal(t, "BYTE_ARRAY", kinds["station_id"])
	assert.Equal(t, "DOUBLE", kinds["temperature"])
	assert.Equal(t, "INT64", kinds["timestamp"])
	assert.Equal(t, "INT64", kinds["datetime"])
	assert.Equal(t, "BYTE_ARRAY", kinds["metadata"])
}

func TestWriter_SameSeedByteIdentical(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.parquet")
	b := filepath.Join(dir, "b.parquet")

	writeFile(t, a, "snappy", testReadings(t, 2, 2, 1234))
	writeFile(t, b, "snappy", testReadings(t, 2, 2, 1234))

	bytesA, err := os.ReadFile(a)
	require.NoError(t, err)
	bytesB, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, bytesA, bytesB)
}

func TestWriter_DifferentSeedsSameShape(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.parquet")
	b := filepath.Join(dir, "b.parquet")

	writeFile(t, a, "snappy", testReadings(t, 2, 2, 1))
	writeFile(t, b, "snappy", testReadings(t, 2, 2, 2))

	infoA, err := Inspect(a)
	require.NoError(t, err)
	infoB, err := Inspect(b)
	require.NoError(t, err)

	assert.Equal(t, infoA.Rows, infoB.Rows)
	assert.Equal(t, infoA.Columns, infoB.Columns)

	bytesA, _ := os.ReadFile(a)
	bytesB, _ := os.ReadFile(b)
	assert.NotEqual(t, bytesA, bytesB)
}

func TestWriter_OverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.parquet")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	readings := testReadings(t, 1, 1, 8)
	writeFile(t, path, "snappy", readings)

	info, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, int64(24), info.Rows)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should be renamed away")
}

func TestWriter_Compressions(t *testing.T) {
	readings := testReadings(t, 1, 1, 5)
	for _, c := range []string{"snappy", "zstd", "gzip", "none"} {
		t.Run(c, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data.parquet")
			writeFile(t, path, c, readings)

			got, err := ReadAll(path)
			require.NoError(t, err)
			assert.Len(t, got, len(readings))
		})
	}
}

func TestNewWriter_UnsupportedCompression(t *testing.T) {
	_, err := NewWriter("data.parquet", "lzo", discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lzo")
}

func TestWriter_MissingDirectoryFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "data.parquet")
	w, err := NewWriter(path, "snappy", discardLogger())
	require.NoError(t, err)

	err = w.LoadBatch(context.Background(), testReadings(t, 1, 1, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create")
}

func TestWriter_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.parquet")
	w, err := NewWriter(path, "snappy", discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, w.LoadBatch(ctx, nil), context.Canceled)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
