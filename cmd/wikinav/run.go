package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikinav/internal/config"
	"github.com/nao1215/wikinav/internal/crawler"
	"github.com/nao1215/wikinav/internal/filter"
	"github.com/nao1215/wikinav/internal/log"
	"github.com/nao1215/wikinav/internal/model"
	"github.com/nao1215/wikinav/internal/navigator"
	"github.com/nao1215/wikinav/internal/report"
	"github.com/nao1215/wikinav/internal/scorer"
	"github.com/nao1215/wikinav/internal/summary"
)

// addTargetFlags registers the flags shared by the search commands.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("target", "t", "", "Title of the page to reach (required)")
	_ = cmd.MarkFlagRequired("target") //nolint:errcheck // flag is defined above
}

// addWalkFlags registers the greedy walk limits.
func addWalkFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("max-steps", "n", config.DefaultMaxSteps,
		"Maximum number of pages a walk may visit")
	cmd.Flags().Float64P("threshold", "T", config.DefaultThreshold,
		"Score at which the chosen link ends a walk (above 1 disables early stop)")
}

// buildConfig creates a validated Config from defaults, the configuration
// file and the flags the user set, in that order.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// loadConfig is buildConfig without validation.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit --config must exist; otherwise a missing file is fine.
	if path := config.FindConfigFile(cfg.ConfigFilePath); path != "" {
		f, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		cfg.ApplyFile(f)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if len(args) > 0 {
		cfg.Start = args[0]
	}
	if flags.Lookup("target") != nil {
		if cfg.Target, err = flags.GetString("target"); err != nil {
			return nil, err
		}
	}
	cfg.APIKey = os.Getenv(config.APIKeyEnv)

	// Flags only win over the file when given explicitly.
	overrides := []struct {
		name  string
		apply func() error
	}{
		{"verbose", func() (err error) { cfg.Verbose, err = flags.GetBool("verbose"); return }},
		{"json-logs", func() (err error) { cfg.JSONLogs, err = flags.GetBool("json-logs"); return }},
		{"scorer", func() (err error) { cfg.Scorer, err = flags.GetString("scorer"); return }},
		{"embedding-endpoint", func() (err error) { cfg.EmbeddingEndpoint, err = flags.GetString("embedding-endpoint"); return }},
		{"lang", func() (err error) { cfg.Language, err = flags.GetString("lang"); return }},
		{"timeout", func() (err error) { cfg.Timeout, err = flags.GetDuration("timeout"); return }},
		{"delay", func() (err error) { cfg.RequestDelay, err = flags.GetDuration("delay"); return }},
		{"json", func() (err error) { cfg.JSONReport, err = flags.GetBool("json"); return }},
		{"markdown", func() (err error) { cfg.MarkdownReport, err = flags.GetBool("markdown"); return }},
		{"output", func() (err error) { cfg.ReportFile, err = flags.GetString("output"); return }},
		{"tee", func() (err error) { cfg.Tee, err = flags.GetBool("tee"); return }},
		{"context", func() (err error) { cfg.UseContext, err = flags.GetBool("context"); return }},
		{"max-steps", func() (err error) { cfg.MaxSteps, err = flags.GetInt("max-steps"); return }},
		{"threshold", func() (err error) { cfg.Threshold, err = flags.GetFloat64("threshold"); return }},
		{"max-depth", func() (err error) { cfg.MaxDepth, err = flags.GetInt("max-depth"); return }},
		{"word-limit", func() (err error) { cfg.WordLimit, err = flags.GetInt("word-limit"); return }},
		{"concurrency", func() (err error) { cfg.Concurrency, err = flags.GetInt("concurrency"); return }},
	}
	for _, o := range overrides {
		if flags.Lookup(o.name) == nil || !flags.Changed(o.name) {
			continue
		}
		if err := o.apply(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// limitsFor returns the walk limits of the named strategy. Explicit
// --max-steps and --threshold flags beat per-strategy file settings.
func limitsFor(cmd *cobra.Command, cfg *config.Config, strategy string) navigator.Limits {
	limits := cfg.Limits(strategy)
	if cmd.Flags().Changed("max-steps") {
		limits.MaxSteps = cfg.MaxSteps
	}
	if cmd.Flags().Changed("threshold") {
		limits.Threshold = cfg.Threshold
	}
	return limits
}

// newLogger creates the structured logger for a command.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.JSONLogs)
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// resolveStart turns a start argument into a page reference. Anything
// that is not an absolute URL is taken as a title in the given language.
func resolveStart(start, lang, urlFormat string) (model.PageRef, error) {
	start = strings.TrimSpace(start)
	if strings.Contains(start, "://") {
		return model.ParsePageRef(start)
	}
	title := url.PathEscape(strings.ReplaceAll(start, " ", "_"))
	return model.ParsePageRef(fmt.Sprintf(urlFormat, lang, title))
}

// newSource creates the Wikipedia page source.
func newSource(cfg *config.Config, logger *slog.Logger) *crawler.Source {
	return crawler.NewSource(
		crawler.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithDelay(cfg.RequestDelay),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
		crawler.WithMaxRetries(uint(max(cfg.MaxRetries, 1))),
		crawler.WithLogger(logger),
	)
}

// newScorer creates the scorer shared by every engine of a command.
func newScorer(cfg *config.Config) (scorer.Scorer, error) {
	sc, err := scorer.New(cfg.ScorerSettings())
	if err != nil {
		return nil, fmt.Errorf("failed to create scorer: %w", err)
	}
	return sc, nil
}

// newEngine creates a navigation engine around source and the shared scorer.
func newEngine(cfg *config.Config, source navigator.PageSource, sc scorer.Scorer, logger *slog.Logger) *navigator.Engine {
	return navigator.New(source, sc,
		navigator.WithLogger(logger),
		navigator.WithFilter(filter.New(cfg.IgnoreTerms...)),
	)
}

// fetchSummary looks up the target summary used as a context query.
func fetchSummary(ctx context.Context, cfg *config.Config, source summary.PageFetcher, logger *slog.Logger) (summary.Summary, error) {
	fetcher := summary.NewFetcher(source,
		summary.WithLanguages(cfg.SummaryLanguages...),
		summary.WithURLFormat(cfg.WikiURLFormat),
		summary.WithLogger(logger),
	)
	sum, err := fetcher.Fetch(ctx, cfg.Target, cfg.WordLimit)
	if err != nil {
		return summary.Summary{}, fmt.Errorf("failed to fetch target summary: %w", err)
	}
	if !sum.Found {
		logger.Warn("no summary found, using the title as context", "target", cfg.Target)
	}
	return sum, nil
}

// outputReport writes the summaries in the requested format, one after
// another, to the report file or stdout.
func outputReport(cmd *cobra.Command, cfg *config.Config, summaries ...*report.Summary) error {
	var output io.Writer = cmd.OutOrStdout()
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint(), report.WithVersion(getVersion()))
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	}
	if cfg.Tee && cfg.ReportFile != "" {
		writer = report.NewMultiWriter(writer,
			report.NewSimpleWriter(cmd.OutOrStdout(), report.WithVerbose(cfg.Verbose)))
	}

	for _, s := range summaries {
		if _, err := writer.Write(s); err != nil {
			return err
		}
	}
	return nil
}
