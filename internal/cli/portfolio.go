package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/biofeas/internal/config"
	"github.com/rshade/biofeas/internal/engine"
	"github.com/rshade/biofeas/internal/engine/batch"
	"github.com/rshade/biofeas/internal/logging"
	"github.com/rshade/biofeas/internal/proposal"
)

// PortfolioParams holds the parameters for the portfolio command.
// Exported for testing.
type PortfolioParams struct {
	File        string
	Concurrency int
	Scenarios   bool
	FailOnError bool
	Output      string
}

// ErrPortfolioFailures is returned with --fail-on-error when at least one
// proposal could not be evaluated.
var ErrPortfolioFailures = errors.New("one or more proposals failed")

// NewPortfolioCmd creates the "portfolio" command, which evaluates every
// proposal in a portfolio file concurrently.
func NewPortfolioCmd() *cobra.Command {
	var params PortfolioParams

	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Evaluate a portfolio of proposals",
		Long: `Analyzes every proposal in a portfolio file in parallel and prints one row
per proposal followed by totals for the proposals that could be evaluated.

A proposal with invalid inputs is reported as failed; the others still run.
Inputs a proposal omits come from the defaults section of the configuration.`,
		Example: `  # Evaluate with one worker per CPU
  biofeas portfolio --file district.yaml

  # Limit concurrency and emit NDJSON
  biofeas portfolio --file district.yaml --concurrency 2 --output ndjson`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executePortfolio(cmd, params)
		},
	}

	cmd.Flags().StringVarP(&params.File, "file", "f", "", "Portfolio file (.yaml, .yml or .json)")
	cmd.Flags().IntVar(&params.Concurrency, "concurrency", 0,
		"Parallel analyses (0 = config value, or one per CPU)")
	cmd.Flags().BoolVar(&params.Scenarios, "scenarios", false, "Include scenarios in each report (JSON output)")
	cmd.Flags().BoolVar(&params.FailOnError, "fail-on-error", false, "Exit non-zero if any proposal fails")
	addOutputFlag(cmd, &params.Output)
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func executePortfolio(cmd *cobra.Command, params PortfolioParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	start := time.Now()
	cfg := config.GetGlobalConfig()

	format, err := resolveOutputFormat(params.Output)
	if err != nil {
		return err
	}

	concurrency := params.Concurrency
	if !cmd.Flags().Changed("concurrency") {
		concurrency = config.GetPortfolioConcurrency()
	}
	if concurrency < 0 {
		return fmt.Errorf("%w: %d", batch.ErrInvalidConcurrency, concurrency)
	}

	portfolio, err := proposal.LoadPortfolio(params.File, cfg.Defaults)
	if err != nil {
		return err
	}

	report, err := engine.New().EvaluatePortfolio(ctx, portfolio.Proposals, engine.PortfolioOptions{
		Concurrency:      concurrency,
		IncludeScenarios: params.Scenarios,
		OnProgress: func(p *batch.Progress) {
			snap := p.Snapshot()
			log.Debug().Ctx(ctx).
				Str("operation", "portfolio").
				Int("processed", snap.ProcessedItems).
				Int("failed", snap.FailedItems).
				Int("total", snap.TotalItems).
				Float64("percent", snap.PercentComplete).
				Msg("portfolio progress")
		},
	})
	if err != nil {
		return fmt.Errorf("evaluating portfolio: %w", err)
	}

	if err = renderPortfolio(cmd.OutOrStdout(), format, portfolio.Name, report, newDisplayOptions(cmd, cfg)); err != nil {
		return err
	}

	log.Info().Ctx(ctx).
		Str("operation", "portfolio").
		Int("proposals", report.Summary.Proposals).
		Int("failed", report.Summary.Failed).
		Dur("duration_ms", time.Since(start)).
		Msg("portfolio complete")

	if params.FailOnError && report.Summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrPortfolioFailures, report.Summary.Failed, report.Summary.Proposals)
	}
	return nil
}
