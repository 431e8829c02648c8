package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/biofeas/internal/config"
	"github.com/rshade/biofeas/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the biofeas CLI. It loads
// configuration, wires up logging and tracing, and registers the analysis
// and config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "biofeas",
		Short:         "Biogas plant feasibility analysis",
		Long:          "biofeas: Evaluate the financial feasibility of dairy-farm biogas plants",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to a config file (skips global and project config discovery)")
	cmd.PersistentFlags().String("project-dir", "", "project directory holding .biofeas/config.yaml")

	cmd.AddCommand(
		NewAnalyzeCmd(), NewScenariosCmd(), NewNPVCmd(), NewIRRCmd(),
		NewPortfolioCmd(), newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Analyze the reference 1000-cattle proposal from config defaults
  biofeas analyze

  # Analyze a proposal file with the scenario table
  biofeas analyze --file anand.yaml --scenarios

  # Override a single input
  biofeas analyze --file anand.yaml --subsidy-percentage 40

  # Explore inputs interactively
  biofeas analyze --file anand.yaml --interactive

  # Evaluate a portfolio of proposals
  biofeas portfolio --file district.yaml --concurrency 4

  # Standalone NPV
  biofeas npv --cash-flow 1000000 --investment 5000000 --rate 8

  # Initialize configuration
  biofeas config init`

// loadConfig builds the effective configuration for this invocation and
// stores it as the global config. An explicit --config file must exist and
// parse; otherwise the global file is overlaid with the project file.
func loadConfig(cmd *cobra.Command) error {
	ctx := cmd.Context()

	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		config.SetResolvedProjectDir("")
		config.SetGlobalConfig(cfg)
		return nil
	}

	flagDir, _ := cmd.Flags().GetString("project-dir")
	startDir, err := os.Getwd()
	if err != nil {
		startDir = "."
	}
	projectDir := config.ResolveProjectDir(ctx, flagDir, startDir)

	config.SetResolvedProjectDir(projectDir)
	config.SetGlobalConfig(config.NewWithProjectDir(ctx, projectDir))
	return nil
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
