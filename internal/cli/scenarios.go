package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/biofeas/internal/config"
	"github.com/rshade/biofeas/internal/engine"
	"github.com/rshade/biofeas/internal/logging"
)

// ScenariosParams holds the parameters for the scenarios command.
type ScenariosParams struct {
	Inputs InputParams
	Output string
}

// NewScenariosCmd creates the "scenarios" command, which prints only the
// conservative, base-case and optimistic scenario table for a proposal.
func NewScenariosCmd() *cobra.Command {
	var params ScenariosParams

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Compare conservative, base-case and optimistic scenarios",
		Long: `Scales the proposal's cattle count, selling price and plant efficiency
(x0.8/0.9/0.9 conservative, x1.2/1.1/1.1 optimistic) and reports NPV, IRR,
payback and revenue for each scenario. NPV and revenue are shown in crores.

Fails if any scaled input set is invalid, for example when the optimistic
plant efficiency would exceed 1.`,
		Example: `  biofeas scenarios --file anand.yaml
  biofeas scenarios --cattle-count 500 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeScenarios(cmd, params)
		},
	}

	addInputFlags(cmd, &params.Inputs)
	addOutputFlag(cmd, &params.Output)

	return cmd
}

func executeScenarios(cmd *cobra.Command, params ScenariosParams) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	format, err := resolveOutputFormat(params.Output)
	if err != nil {
		return err
	}

	name, inputs, err := ResolveInputs(cmd, params.Inputs, cfg.Defaults)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Debug().Ctx(ctx).
		Str("operation", "scenarios").
		Str("proposal", name).
		Msg("generating scenarios")

	scenarios, err := engine.New().Scenarios(ctx, inputs)
	if err != nil {
		return fmt.Errorf("scenario analysis for %s: %w", name, err)
	}

	return renderScenarios(cmd.OutOrStdout(), format, scenarios, newDisplayOptions(cmd, cfg))
}
