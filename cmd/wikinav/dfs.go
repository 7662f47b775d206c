package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikinav/internal/config"
	"github.com/nao1215/wikinav/internal/navigator"
	"github.com/nao1215/wikinav/internal/report"
)

// depthFirst names the backtracking search in reports.
const depthFirst = "Depth-First"

// NewDFSCmd creates the dfs command.
func NewDFSCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dfs <start>",
		Short: "Search depth-first with backtracking, best-scored links first",
		Long: `DFS explores links in descending score order and backtracks when a branch
reaches the depth limit or runs out of unvisited links. It finds paths a
greedy walk misses at the cost of fetching many more pages.

Examples:
  # Search at most three links deep
  wikinav dfs https://en.wikipedia.org/wiki/Cat --target Paris --max-depth 3`,
		Args: cobra.ExactArgs(1),
		RunE: runDFSCmd,
	}

	addTargetFlags(cmd)
	cmd.Flags().IntP("max-depth", "d", config.DefaultMaxDepth,
		"Maximum number of links followed from the start page")

	return cmd
}

// runDFSCmd executes the dfs command.
func runDFSCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg)

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	start, err := resolveStart(cfg.Start, cfg.Language, cfg.WikiURLFormat)
	if err != nil {
		return err
	}

	sc, err := newScorer(cfg)
	if err != nil {
		return err
	}
	engine := newEngine(cfg, newSource(cfg, logger), sc, logger)

	logger.Info("starting depth-first search",
		"start", start.String(),
		"target", cfg.Target,
		"maxDepth", cfg.MaxDepth,
	)

	began := time.Now()
	path, err := engine.Backtrack(ctx, navigator.BacktrackRequest{
		Start:    start.String(),
		Target:   cfg.Target,
		MaxDepth: cfg.MaxDepth,
	})
	if err != nil {
		return err
	}

	s := report.NewPathSummary(report.ModeDFS, depthFirst, start.String(), cfg.Target, path, time.Since(began))
	return outputReport(cmd, cfg, s)
}
