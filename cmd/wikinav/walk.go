package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikinav/internal/config"
	"github.com/nao1215/wikinav/internal/navigator"
	"github.com/nao1215/wikinav/internal/race"
	"github.com/nao1215/wikinav/internal/report"
)

// NewWalkCmd creates the walk command.
func NewWalkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "walk <start>",
		Short: "Greedily follow the most related link until the target is found",
		Long: `Walk starts at a page and, at every step, follows the outgoing link whose
text scores highest against the target. It stops when the target page is
reached, when a chosen link scores at or above the threshold, when a page is
revisited, or when the step budget runs out.

With --context, links are scored against a short summary of the target
article instead of its title.

Examples:
  # Walk from a URL to a title
  wikinav walk https://en.wikipedia.org/wiki/Cat --target Paris

  # Start from a bare title and score against the target summary
  wikinav walk "Mount Everest" --target "Pacific Ocean" --context

  # Never stop early, walk at most 20 pages
  wikinav walk Cat --target Paris --threshold 1.1 --max-steps 20`,
		Args: cobra.ExactArgs(1),
		RunE: runWalkCmd,
	}

	addTargetFlags(cmd)
	addWalkFlags(cmd)
	cmd.Flags().Bool("context", false,
		"Score links against a summary of the target instead of its title")
	cmd.Flags().IntP("word-limit", "w", config.DefaultWordLimit,
		"Number of summary words kept with --context")

	return cmd
}

// runWalkCmd executes the walk command.
func runWalkCmd(cmd *cobra.Command, args []string) error {
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
	source := newSource(cfg, logger)
	engine := newEngine(cfg, source, sc, logger)

	strategy := race.TitleBased
	req := navigator.TitleRequest(start.String(), cfg.Target, limitsFor(cmd, cfg, strategy))

	var contextText, contextLang string
	if cfg.UseContext {
		sum, err := fetchSummary(ctx, cfg, source, logger)
		if err != nil {
			return err
		}
		strategy = race.ContextBased
		contextText, contextLang = sum.Text, sum.Lang
		req = navigator.ContextRequest(start.String(), cfg.Target, sum.Text, limitsFor(cmd, cfg, strategy))
	}

	logger.Info("starting walk",
		"start", start.String(),
		"target", cfg.Target,
		"strategy", strategy,
		"maxSteps", req.MaxSteps,
		"threshold", req.Threshold,
	)

	began := time.Now()
	path, err := engine.Run(ctx, req)
	if err != nil {
		return err
	}

	s := report.NewPathSummary(report.ModeWalk, strategy, start.String(), cfg.Target, path, time.Since(began))
	if cfg.UseContext {
		s.WithContext(contextText, contextLang)
	}
	return outputReport(cmd, cfg, s)
}
