package parquet

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/couchcryptid/weather-fixture-gen/internal/domain"
	units "github.com/docker/go-units"
	pq "github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress"
)

// Writer persists readings to a single Parquet file.
// It implements pipeline.ArtifactWriter.
type Writer struct {
	path        string
	compression string
	codec       compress.Codec
	logger      *slog.Logger
}

// NewWriter creates a Writer for path using the named compression codec
// (snappy, zstd, gzip or none).
func NewWriter(path, compression string, logger *slog.Logger) (*Writer, error) {
	codec, err := codecFor(compression)
	if err != nil {
		return nil, err
	}
	return &Writer{
		path:        path,
		compression: compression,
		codec:       codec,
		logger:      logger,
	}, nil
}

// Path returns the artifact location.
func (w *Writer) Path() string {
	return w.path
}

// LoadBatch writes all readings in one pass as a single row group, replacing
// any existing file. The file is written to a .tmp sibling and renamed into
// place so readers never observe a partial artifact.
func (w *Writer) LoadBatch(ctx context.Context, readings []domain.Reading) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp := w.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}

	pw := pq.NewGenericWriter[domain.Reading](f, pq.Compression(w.codec))
	if _, err := pw.Write(readings); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write rows: %w", err)
	}
	if err := pw.Close(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("close parquet writer: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}

	if info, err := os.Stat(w.path); err == nil {
		w.logger.Info("parquet file written",
			"path", w.path,
			"rows", len(readings),
			"compression", w.compression,
			"size", units.HumanSize(float64(info.Size())),
		)
	}
	return nil
}

func codecFor(name string) (compress.Codec, error) {
	switch name {
	case "snappy", "":
		return &pq.Snappy, nil
	case "zstd":
		return &pq.Zstd, nil
	case "gzip":
		return &pq.Gzip, nil
	case "none":
		return &pq.Uncompressed, nil
	default:
		return nil, fmt.Errorf("unsupported compression %q", name)
	}
}
