package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/biofeas/internal/config"
)

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration after file merging and environment overrides.
func NewConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Prints the configuration biofeas is using: built-in defaults, then the
global file, then the project file, then BIOFEAS_* environment variables.`,
		Example: `  biofeas config show
  biofeas config show --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()

			switch output {
			case "", "yaml":
				data, err := yaml.Marshal(cfg)
				if err != nil {
					return fmt.Errorf("marshalling configuration: %w", err)
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			case config.FormatJSON:
				return renderJSON(cmd.OutOrStdout(), cfg)
			default:
				return fmt.Errorf("%w: %q (must be yaml or json)", config.ErrInvalidOutputFormat, output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format: yaml or json")

	return cmd
}
