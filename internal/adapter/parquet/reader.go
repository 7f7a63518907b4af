package parquet

import (
	"fmt"
	"os"

	"github.com/couchcryptid/weather-fixture-gen/internal/domain"
	pq "github.com/parquet-go/parquet-go"
)

// Column describes one leaf column of a Parquet file.
type Column struct {
	Name string
	Kind string // physical type, e.g. DOUBLE, INT64, BYTE_ARRAY
}

// FileInfo summarizes a Parquet file's layout without decoding rows.
type FileInfo struct {
	Rows      int64
	RowGroups int
	Columns   []Column
	Size      int64
}

// Inspect opens path and reports its schema and row counts.
func Inspect(path string) (FileInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileInfo{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return FileInfo{}, fmt.Errorf("stat %s: %w", path, err)
	}

	pf, err := pq.OpenFile(f, stat.Size())
	if err != nil {
		return FileInfo{}, fmt.Errorf("open parquet %s: %w", path, err)
	}

	fields := pf.Schema().Fields()
	cols := make([]Column, 0, len(fields))
	for _, field := range fields {
		cols = append(cols, Column{
			Name: field.Name(),
			Kind: field.Type().Kind().String(),
		})
	}

	return FileInfo{
		Rows:      pf.NumRows(),
		RowGroups: len(pf.RowGroups()),
		Columns:   cols,
		Size:      stat.Size(),
	}, nil
}

// ReadAll decodes every reading in path.
func ReadAll(path string) ([]domain.Reading, error) {
	rows, err := pq.ReadFile[domain.Reading](path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}
