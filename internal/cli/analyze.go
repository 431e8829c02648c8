package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/biofeas/internal/config"
	"github.com/rshade/biofeas/internal/engine"
	"github.com/rshade/biofeas/internal/feasibility"
	"github.com/rshade/biofeas/internal/logging"
	"github.com/rshade/biofeas/internal/tui"
)

// ErrNotInteractive is returned when --interactive is used without a terminal.
var ErrNotInteractive = errors.New("interactive mode requires a terminal on stdin and stdout")

// AnalyzeParams holds the parameters for the analyze command.
// Exported for testing.
type AnalyzeParams struct {
	Inputs      InputParams
	Scenarios   bool
	Interactive bool
	Output      string
}

// NewAnalyzeCmd creates the "analyze" command, which runs the full
// feasibility pipeline on one proposal.
//
// Inputs are combined from, lowest to highest precedence: config defaults,
// --file, --set pairs, and individual input flags such as --cattle-count.
func NewAnalyzeCmd() *cobra.Command {
	var params AnalyzeParams

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the feasibility of a biogas plant proposal",
		Long: `Runs the full feasibility analysis for one proposal: biogas production,
revenue, operating costs, subsidy-adjusted investment, NPV, IRR and payback
over a 20-year horizon.

Inputs omitted from the proposal file and flags come from the defaults
section of the configuration.`,
		Example: `  # Reference proposal from config defaults
  biofeas analyze

  # Proposal file with scenario table
  biofeas analyze --file anand.yaml --scenarios

  # Override inputs
  biofeas analyze --file anand.yaml --set subsidy_percentage=40 --discount-rate 10

  # Interactive explorer
  biofeas analyze --file anand.yaml --interactive`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeAnalyze(cmd, params)
		},
	}

	addInputFlags(cmd, &params.Inputs)
	cmd.Flags().BoolVar(&params.Scenarios, "scenarios", false, "Include the conservative, base and optimistic scenarios")
	cmd.Flags().BoolVar(&params.Interactive, "interactive", false, "Launch the interactive input explorer")
	addOutputFlag(cmd, &params.Output)

	return cmd
}

func executeAnalyze(cmd *cobra.Command, params AnalyzeParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()
	cfg := config.GetGlobalConfig()

	format, err := resolveOutputFormat(params.Output)
	if err != nil {
		return err
	}

	name, inputs, err := ResolveInputs(cmd, params.Inputs, cfg.Defaults)
	if err != nil {
		return err
	}

	log.Debug().Ctx(ctx).
		Str("operation", "analyze").
		Str("proposal", name).
		Str("file", params.Inputs.File).
		Bool("interactive", params.Interactive).
		Msg("starting analysis")

	eng := engine.New()
	if params.Interactive {
		return executeInteractiveAnalyze(cmd, eng, name, inputs, format, cfg)
	}

	report, err := eng.Analyze(ctx, &engine.AnalyzeRequest{
		Name:             name,
		Inputs:           inputs,
		IncludeScenarios: params.Scenarios,
	})
	if err != nil {
		return fmt.Errorf("analyzing %s: %w", name, err)
	}

	if err = renderReport(cmd.OutOrStdout(), format, report, newDisplayOptions(cmd, cfg)); err != nil {
		return err
	}

	log.Info().Ctx(ctx).
		Str("operation", "analyze").
		Str("proposal", name).
		Dur("duration_ms", time.Since(start)).
		Msg("analysis complete")
	return nil
}

// executeInteractiveAnalyze runs the explorer TUI. Invalid starting inputs
// do not stop it: the explorer opens without a report so the user can fix
// them. When the explorer exits, the last successful report is printed
// along with the inputs it was computed from.
func executeInteractiveAnalyze(
	cmd *cobra.Command,
	eng *engine.Engine,
	name string,
	inputs feasibility.Inputs,
	format string,
	cfg *config.Config,
) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return ErrNotInteractive
	}

	recalculateFn := func(recalcCtx context.Context, proposalName string, in feasibility.Inputs) (*engine.Report, error) {
		return eng.Analyze(recalcCtx, &engine.AnalyzeRequest{Name: proposalName, Inputs: in, IncludeScenarios: true})
	}

	initial, err := recalculateFn(ctx, name, inputs)
	if err != nil {
		log.Warn().Ctx(ctx).Str("proposal", name).Err(err).Msg("initial analysis failed")
		initial = nil
	}

	opts := newDisplayOptions(cmd, cfg)
	model := tui.NewExplorerModel(ctx, name, inputs, initial, recalculateFn).WithDisplay(opts.symbol, opts.crores)
	program := tea.NewProgram(model, tea.WithContext(ctx))

	finalModel, err := program.Run()
	if err != nil {
		return fmt.Errorf("running interactive TUI: %w", err)
	}

	explorer, ok := finalModel.(*tui.ExplorerModel)
	if !ok {
		return fmt.Errorf("unexpected model type: %T, expected *tui.ExplorerModel", finalModel)
	}

	return writeExplorerResult(cmd, explorer, format, opts)
}

// writeExplorerResult prints the explorer's last successful report and the
// --set pairs that reproduce it. When the report does not match the final
// inputs, a notice on stderr says why.
func writeExplorerResult(cmd *cobra.Command, explorer *tui.ExplorerModel, format string, opts displayOptions) error {
	report := explorer.Report()
	if !explorer.ReportCurrent() {
		reason := "the final inputs were not analyzed"
		if err := explorer.Err(); err != nil {
			reason = fmt.Sprintf("the final inputs were rejected: %v", err)
		}
		if report == nil {
			cmd.PrintErrf("No analysis: %s\n", reason)
			return nil
		}
		cmd.PrintErrf("Showing the last valid analysis; %s\n", reason)
	}

	if err := renderReport(cmd.OutOrStdout(), format, report, opts); err != nil {
		return err
	}
	if overrides := explorer.Overrides(); len(overrides) > 0 && format == config.FormatTable {
		cmd.Println()
		cmd.Println("Inputs of this analysis (reuse with --set):")
		for _, o := range overrides {
			cmd.Printf("  --set %s\n", o)
		}
	}
	return nil
}
