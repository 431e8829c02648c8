package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/biofeas/internal/config"
	"github.com/rshade/biofeas/internal/greenops"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration for semantic correctness.

This includes:
- Output format and precision
- Log level and log format
- Portfolio concurrency
- Default proposal inputs (the same checks applied to every analysis)`,
		Example: `  # Validate current configuration
  biofeas config validate

  # Validate and show detailed information
  biofeas config validate --verbose`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}

	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	if path := cfg.ConfigPath(); path != "" {
		cmd.Printf("  Config file: %s\n", path)
	}
	if dir := config.GetResolvedProjectDir(); dir != "" {
		cmd.Printf("  Project directory: %s\n", dir)
	}
	cmd.Printf("  Output format: %s\n", cfg.Output.DefaultFormat)
	cmd.Printf("  Output precision: %d\n", cfg.Output.Precision)
	cmd.Printf("  Logging level: %s\n", config.GetLogLevel())
	if cfg.Logging.File != "" {
		cmd.Printf("  Log file: %s\n", cfg.Logging.File)
	}
	cmd.Printf("  Portfolio concurrency: %d\n", cfg.Portfolio.Concurrency)
	cmd.Printf("  Default herd: %d cattle\n", cfg.Defaults.CattleCount)
	cmd.Printf("  Default construction cost: %s\n",
		greenops.FormatAmount(cfg.Defaults.ConstructionCost, cfg.Display.CurrencySymbol, cfg.Display.Crores))
}
