package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/couchcryptid/weather-fixture-gen/internal/domain"
	"github.com/couchcryptid/weather-fixture-gen/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Generator draws the synthetic dataset.
type Generator interface {
	Stations() []domain.Station
	Readings(ctx context.Context, stations []domain.Station) ([]domain.Reading, error)
}

// BatchLoader writes a set of readings to a destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, readings []domain.Reading) error
}

// ArtifactWriter writes the full dataset to a single file.
type ArtifactWriter interface {
	BatchLoader
	Path() string
}

// Summary describes a completed run.
type Summary struct {
	Stations    int
	Rows        int
	MemoryBytes int64
	FileBytes   int64
	Path        string
}

// Run phases reported by Status.
const (
	PhasePending    = "pending"
	PhaseGenerating = "generating"
	PhaseWriting    = "writing"
	PhaseLoading    = "loading"
	PhaseDone       = "done"
	PhaseFailed     = "failed"
)

// Status is a point-in-time view of a run, safe to read while Run executes.
type Status struct {
	Phase     string `json:"phase"`
	Stations  int    `json:"stations"`
	Rows      int    `json:"rows"`
	FileBytes int64  `json:"file_bytes"`
	Path      string `json:"path"`
	Error     string `json:"error,omitempty"`
}

type namedLoader struct {
	name   string
	loader BatchLoader
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLoader adds a secondary sink that receives every reading after the
// artifact has been written.
func WithLoader(name string, l BatchLoader) Option {
	return func(p *Pipeline) {
		p.loaders = append(p.loaders, namedLoader{name: name, loader: l})
	}
}

// WithClock sets the time source used for duration metrics.
func WithClock(c clockwork.Clock) Option {
	return func(p *Pipeline) {
		p.clock = c
	}
}

// Pipeline orchestrates generate, report, write, then fan out to secondary sinks.
type Pipeline struct {
	generator Generator
	artifact  ArtifactWriter
	loaders   []namedLoader
	out       io.Writer
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock
	ready     atomic.Bool

	mu     sync.Mutex
	status Status
}

// New creates a Pipeline. Report lines are printed to out.
func New(g Generator, artifact ArtifactWriter, out io.Writer, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Pipeline {
	p := &Pipeline{
		generator: g,
		artifact:  artifact,
		out:       out,
		logger:    logger,
		metrics:   metrics,
		clock:     clockwork.NewRealClock(),
		status:    Status{Phase: PhasePending, Path: artifact.Path()},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CheckReadiness returns nil once the artifact has been written.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("parquet artifact has not been written yet")
	}
	return nil
}

// Status returns the current run status.
func (p *Pipeline) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Pipeline) update(fn func(*Status)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.status)
}

// Run generates the whole dataset in memory, writes it to the artifact and
// then to each secondary sink in order. Any error aborts the run.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	summary, err := p.run(ctx)
	if err != nil {
		p.update(func(s *Status) {
			s.Phase = PhaseFailed
			s.Error = err.Error()
		})
		return Summary{}, err
	}
	p.update(func(s *Status) { s.Phase = PhaseDone })
	return summary, nil
}

func (p *Pipeline) run(ctx context.Context) (Summary, error) {
	p.logger.Info("generation started")
	p.update(func(s *Status) { s.Phase = PhaseGenerating })
	p.metrics.GeneratorRunning.Set(1)
	defer p.metrics.GeneratorRunning.Set(0)

	start := p.clock.Now()
	stations := p.generator.Stations()
	p.metrics.StationsGenerated.Add(float64(len(stations)))
	p.update(func(s *Status) { s.Stations = len(stations) })

	readings, err := p.generator.Readings(ctx, stations)
	if err != nil {
		return Summary{}, fmt.Errorf("generate readings: %w", err)
	}
	p.metrics.RowsGenerated.Add(float64(len(readings)))
	p.metrics.GenerationDuration.Observe(p.clock.Since(start).Seconds())

	summary := Summary{
		Stations:    len(stations),
		Rows:        len(readings),
		MemoryBytes: domain.EstimateMemory(readings),
		Path:        p.artifact.Path(),
	}
	p.metrics.MemoryEstimate.Set(float64(summary.MemoryBytes))

	fmt.Fprintf(p.out, "Generated %d rows of weather data\n", summary.Rows)
	fmt.Fprintf(p.out, "DataFrame memory usage: %.2f MB\n", megabytes(summary.MemoryBytes))

	p.update(func(s *Status) {
		s.Phase = PhaseWriting
		s.Rows = summary.Rows
	})
	writeStart := p.clock.Now()
	if err := p.artifact.LoadBatch(ctx, readings); err != nil {
		return Summary{}, fmt.Errorf("write %s: %w", summary.Path, err)
	}
	p.metrics.WriteDuration.Observe(p.clock.Since(writeStart).Seconds())

	info, err := os.Stat(summary.Path)
	if err != nil {
		return Summary{}, fmt.Errorf("stat %s: %w", summary.Path, err)
	}
	summary.FileBytes = info.Size()
	p.metrics.OutputFileBytes.Set(float64(summary.FileBytes))
	p.ready.Store(true)

	fmt.Fprintf(p.out, "Generated parquet file size: %.2f MB\n", megabytes(summary.FileBytes))
	p.update(func(s *Status) {
		s.Phase = PhaseLoading
		s.FileBytes = summary.FileBytes
	})

	for _, nl := range p.loaders {
		if err := nl.loader.LoadBatch(ctx, readings); err != nil {
			p.metrics.LoadErrors.WithLabelValues(nl.name).Inc()
			return Summary{}, fmt.Errorf("load %s: %w", nl.name, err)
		}
		p.metrics.ReadingsLoaded.WithLabelValues(nl.name).Add(float64(len(readings)))
		p.logger.Info("readings loaded", "sink", nl.name, "count", len(readings))
	}

	p.logger.Info("generation finished",
		"stations", summary.Stations,
		"rows", summary.Rows,
		"file_bytes", summary.FileBytes,
	)
	return summary, nil
}

func megabytes(n int64) float64 {
	return float64(n) / (1024 * 1024)
}
