package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/nao1215/wikinav/internal/model"
)

// DefaultConcurrency is the number of jobs run at the same time.
const DefaultConcurrency = 4

var (
	// ErrNoJobs is returned when a job file lists no jobs.
	ErrNoJobs = errors.New("no jobs")

	// ErrInvalidJob is returned when a job lacks a start or a target.
	ErrInvalidJob = errors.New("invalid job")
)

// Job is one search of a batch.
type Job struct {
	// Start is the start page URL or title.
	Start string `yaml:"start" json:"start"`

	// Target is the title of the page to reach.
	Target string `yaml:"target" json:"target"`
}

// String implements fmt.Stringer.
func (j Job) String() string {
	return j.Start + " -> " + j.Target
}

// Result is the outcome of one job.
type Result struct {
	// Job is the job that produced this result.
	Job Job

	// Path is the trace of the search. It is empty when Err is set.
	Path model.Path

	// Err is the error that prevented the search from running.
	Err error

	// Elapsed is the wall-clock duration of the job.
	Elapsed time.Duration
}

// RunFunc runs a single job.
type RunFunc func(ctx context.Context, job Job) (model.Path, error)

// Processor runs jobs concurrently.
type Processor struct {
	// run executes one job. It must be safe for concurrent use.
	run RunFunc

	// concurrency is the maximum number of jobs running at once.
	concurrency int

	logger *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets a custom logger for batch processing.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent jobs.
// Non-positive values keep DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// NewProcessor creates a Processor that runs every job with run.
func NewProcessor(run RunFunc, opts ...Option) *Processor {
	p := &Processor{
		run:         run,
		concurrency: DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Process runs all jobs and returns their results in job order.
// Individual job errors are recorded in the results; the returned error
// is only set when ctx is cancelled before every job has started.
func (p *Processor) Process(ctx context.Context, jobs []Job) ([]Result, error) {
	results := make([]Result, len(jobs))
	err := p.ProcessWithCallback(ctx, jobs, func(r Result, i int) {
		results[i] = r
	})
	return results, err
}

// ProcessWithCallback runs all jobs and calls callback with each result
// and the index of its job as soon as it completes. The callback is called
// from worker goroutines; each index is reported at most once.
func (p *Processor) ProcessWithCallback(ctx context.Context, jobs []Job, callback func(Result, int)) error {
	p.logger.Info("starting batch",
		"jobs", len(jobs),
		"concurrency", p.concurrency,
	)
	began := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			p.logger.Debug("running job", "job", job.String(), "index", i+1, "total", len(jobs))

			start := time.Now()
			path, err := p.run(ctx, job)
			result := Result{Job: job, Path: path, Err: err, Elapsed: time.Since(start)}
			if err != nil {
				p.logger.Warn("job failed", "job", job.String(), "error", err)
			}

			callback(result, i)
			return nil
		})
	}

	err := g.Wait()
	p.logger.Info("batch complete",
		"jobs", len(jobs),
		"elapsed", time.Since(began),
	)
	return err
}

// jobFile is the YAML layout of a job file.
type jobFile struct {
	Jobs []Job `yaml:"jobs"`
}

// LoadJobs reads a YAML job file:
//
//	jobs:
//	  - start: https://en.wikipedia.org/wiki/Cat
//	    target: Paris
func LoadJobs(path string) ([]Job, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided job file is intentional
	if err != nil {
		return nil, err
	}

	var f jobFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(f.Jobs) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoJobs)
	}

	for i, job := range f.Jobs {
		if strings.TrimSpace(job.Start) == "" || strings.TrimSpace(job.Target) == "" {
			return nil, fmt.Errorf("%s: job %d: %w: start and target are required", path, i+1, ErrInvalidJob)
		}
	}
	return f.Jobs, nil
}
