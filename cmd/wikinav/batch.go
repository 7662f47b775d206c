package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikinav/internal/batch"
	"github.com/nao1215/wikinav/internal/config"
	"github.com/nao1215/wikinav/internal/model"
	"github.com/nao1215/wikinav/internal/navigator"
	"github.com/nao1215/wikinav/internal/race"
	"github.com/nao1215/wikinav/internal/report"
)

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <job-file>",
		Short: "Run many searches from a YAML job file",
		Long: `Batch runs one title-guided walk (or, with --dfs, one depth-first search)
per job listed in a YAML file, several at a time. Reports are written in
job order.

Job file example:
  jobs:
    - start: https://en.wikipedia.org/wiki/Cat
      target: Paris
    - start: Mount Everest
      target: Pacific Ocean

Examples:
  wikinav batch jobs.yaml --concurrency 2 --json -o results.json`,
		Args: cobra.ExactArgs(1),
		RunE: runBatchCmd,
	}

	addWalkFlags(cmd)
	cmd.Flags().Bool("dfs", false, "Search depth-first with backtracking instead of walking")
	cmd.Flags().IntP("max-depth", "d", config.DefaultMaxDepth,
		"Maximum depth of --dfs searches")
	cmd.Flags().IntP("concurrency", "p", config.DefaultConcurrency,
		"Number of jobs run at the same time")

	return cmd
}

// runBatchCmd executes the batch command.
func runBatchCmd(cmd *cobra.Command, args []string) error {
	jobs, err := batch.LoadJobs(args[0])
	if err != nil {
		return fmt.Errorf("failed to load jobs: %w", err)
	}

	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	// Start and target come from each job; validate with the first.
	cfg.Start, cfg.Target = jobs[0].Start, jobs[0].Target
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	logger := newLogger(cmd, cfg)

	useDFS, err := cmd.Flags().GetBool("dfs")
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	sc, err := newScorer(cfg)
	if err != nil {
		return err
	}
	engine := newEngine(cfg, newSource(cfg, logger), sc, logger)

	mode, strategy := report.ModeWalk, race.TitleBased
	if useDFS {
		mode, strategy = report.ModeDFS, depthFirst
	}
	limits := limitsFor(cmd, cfg, strategy)

	run := func(ctx context.Context, job batch.Job) (model.Path, error) {
		start, err := resolveStart(job.Start, cfg.Language, cfg.WikiURLFormat)
		if err != nil {
			return model.Path{}, err
		}
		if useDFS {
			return engine.Backtrack(ctx, navigator.BacktrackRequest{
				Start:    start.String(),
				Target:   job.Target,
				MaxDepth: cfg.MaxDepth,
			})
		}
		return engine.Run(ctx, navigator.TitleRequest(start.String(), job.Target, limits))
	}

	results, err := batch.NewProcessor(run,
		batch.WithConcurrency(cfg.Concurrency),
		batch.WithLogger(logger),
	).Process(ctx, jobs)
	if err != nil {
		return err
	}

	summaries := make([]*report.Summary, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			logger.Error("job skipped", "job", r.Job.String(), "error", r.Err)
			continue
		}
		start, _ := resolveStart(r.Job.Start, cfg.Language, cfg.WikiURLFormat) //nolint:errcheck // resolved by run
		summaries = append(summaries, report.NewPathSummary(mode, strategy, start.String(), r.Job.Target, r.Path, r.Elapsed))
	}
	return outputReport(cmd, cfg, summaries...)
}
