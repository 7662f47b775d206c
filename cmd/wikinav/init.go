package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/wikinav/internal/config"
)

//go:embed templates/wikinav.yaml
var configTemplate embed.FS

// templatePath is the path of the configuration template in configTemplate.
const templatePath = "templates/wikinav.yaml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new wikinav configuration file",
		Long: `Initialize creates a new .wikinav configuration file in the current directory.

The generated file includes:
- Default walk limits and per-strategy overrides for races
- Summary languages and extra ignored link texts
- Scorer selection and HTTP politeness settings

Examples:
  # Create .wikinav in current directory
  wikinav init

  # Create config file at a specific path
  wikinav init -o ~/.config/wikinav/config.yaml

  # Force overwrite existing file
  wikinav init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to tune:")
	fmt.Fprintln(out, "  - Step budgets and thresholds per strategy")
	fmt.Fprintln(out, "  - Languages searched for target summaries")
	fmt.Fprintln(out, "  - The link scorer")

	return nil
}
