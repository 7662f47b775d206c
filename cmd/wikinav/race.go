package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikinav/internal/config"
	"github.com/nao1215/wikinav/internal/navigator"
	"github.com/nao1215/wikinav/internal/race"
	"github.com/nao1215/wikinav/internal/report"
	"github.com/nao1215/wikinav/internal/scorer"
)

// NewRaceCmd creates the race command.
func NewRaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "race <start>",
		Short: "Race a title-guided walk against a summary-guided walk",
		Long: `Race fetches a short summary of the target article, then runs two greedy
walks at the same time from the same start page: one scoring links against
the target title, the other against the summary. The first walk to finish
wins and the other is stopped.

The start page is moved to the language edition the summary came from, so
both walks explore the same edition.

Per-strategy limits can be set in the configuration file under
"strategies" using the names Title-Based and Context-Based.

Examples:
  wikinav race https://en.wikipedia.org/wiki/Cat --target Paris
  wikinav race Cat --target Paris --word-limit 40 --markdown -o race.md`,
		Args: cobra.ExactArgs(1),
		RunE: runRaceCmd,
	}

	addTargetFlags(cmd)
	addWalkFlags(cmd)
	cmd.Flags().IntP("word-limit", "w", config.DefaultWordLimit,
		"Number of words kept from the target summary")

	return cmd
}

// runRaceCmd executes the race command.
func runRaceCmd(cmd *cobra.Command, args []string) error {
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

	sum, err := fetchSummary(ctx, cfg, newSource(cfg, logger), logger)
	if err != nil {
		return err
	}
	start = start.InLanguage(sum.Lang)

	titleEngine, contextEngine := newRaceEngines(cfg, sc, logger)

	byTitle, byContext := race.TitleVsContext(
		start.String(), cfg.Target, sum.Text,
		titleEngine, contextEngine,
		limitsFor(cmd, cfg, race.TitleBased), limitsFor(cmd, cfg, race.ContextBased),
	)

	logger.Info("starting race",
		"start", start.String(),
		"target", cfg.Target,
		"context", sum.Text,
		"contextLang", sum.Lang,
	)

	out, err := race.New(race.WithLogger(logger)).Race(ctx, byTitle, byContext)
	if err != nil {
		return err
	}

	s := report.NewRaceSummary(start.String(), cfg.Target, out).WithContext(sum.Text, sum.Lang)
	return outputReport(cmd, cfg, s)
}

// newRaceEngines creates one engine per participant. Each engine owns its
// page source, so neither participant waits on the other's request delay.
func newRaceEngines(cfg *config.Config, sc scorer.Scorer, logger *slog.Logger) (byTitle, byContext *navigator.Engine) {
	byTitle = newEngine(cfg, newSource(cfg, logger), sc, logger)
	byContext = newEngine(cfg, newSource(cfg, logger), sc, logger)
	return byTitle, byContext
}
