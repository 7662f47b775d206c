// Package main provides the entry point for the wikinav CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikinav/internal/config"
)

// NewRootCmd creates the root command for wikinav.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wikinav",
		Short: "Navigate Wikipedia from one page to another by following links",
		Long: `wikinav finds a chain of hyperlinks between two Wikipedia pages.

At every page it scores the outgoing links against the target and follows
the best one. Scores come from an offline lexical scorer by default, or
from an embedding model (--scorer openai|http).

Start pages may be given as a URL or as a bare title, which is looked up
in the configured language edition.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	pf := cmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.Bool("json-logs", false, "Write logs as JSON lines")
	pf.StringP("config", "c", "",
		"Configuration file path (default: .wikinav in current, XDG config or home directory)")
	pf.String("scorer", config.DefaultScorer, "Link scorer: lexical, openai or http")
	pf.String("embedding-endpoint", "", "Base URL of the http scorer or an OpenAI-compatible API")
	pf.StringP("lang", "l", config.DefaultLanguage, "Wikipedia language edition for bare start titles")
	pf.Duration("timeout", config.DefaultTimeout, "Timeout for each HTTP request")
	pf.Duration("delay", config.DefaultRequestDelay, "Minimum delay between two requests")
	pf.BoolP("json", "j", false, "Output JSON report (mutually exclusive with --markdown)")
	pf.BoolP("markdown", "m", false, "Output Markdown report (mutually exclusive with --json)")
	pf.StringP("output", "o", "", "Write report to specified file path (creates directories if needed)")
	pf.Bool("tee", false, "Also print the plain-text report to stdout when writing to --output")

	// Add subcommands
	cmd.AddCommand(NewWalkCmd())
	cmd.AddCommand(NewDFSCmd())
	cmd.AddCommand(NewRaceCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
