package engine

import (
	"context"
	"fmt"

	"github.com/rshade/biofeas/internal/engine/batch"
	"github.com/rshade/biofeas/internal/logging"
	"github.com/rshade/biofeas/internal/proposal"
)

// EvaluatePortfolio analyzes every proposal concurrently. A proposal that
// fails is recorded on its item and does not stop the others. The error is
// non-nil only when ctx is cancelled before every proposal ran; the partial
// report is still returned.
func (e *Engine) EvaluatePortfolio(
	ctx context.Context,
	proposals []proposal.Proposal,
	opts PortfolioOptions,
) (*PortfolioReport, error) {
	log := logging.FromContext(ctx)

	proc := batch.NewProcessorWithDefaults[proposal.Proposal, *Report]()
	if opts.Concurrency != 0 {
		var err error
		proc, err = batch.NewProcessor[proposal.Proposal, *Report](opts.Concurrency)
		if err != nil {
			return nil, fmt.Errorf("creating portfolio processor: %w", err)
		}
	}
	if opts.OnProgress != nil {
		proc.WithProgressCallback(opts.OnProgress)
	}

	log.Info().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "evaluate_portfolio").
		Int("proposals", len(proposals)).
		Int("concurrency", proc.Concurrency()).
		Msg("evaluating portfolio")

	outcomes, runErr := proc.Process(ctx, proposals,
		func(ctx context.Context, _ int, p proposal.Proposal) (*Report, error) {
			return e.Analyze(ctx, &AnalyzeRequest{
				Name:             p.Name,
				Inputs:           p.Inputs,
				IncludeScenarios: opts.IncludeScenarios,
			})
		})

	items := make([]PortfolioItem, len(outcomes))
	for i, o := range outcomes {
		items[i] = PortfolioItem{Name: proposals[i].Name, Report: o.Value}
		if o.Err != nil {
			items[i].Report = nil
			items[i].Err = o.Err
			items[i].Error = o.Err.Error()
		}
	}

	report := &PortfolioReport{Items: items, Summary: Summarize(items)}

	log.Info().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "evaluate_portfolio").
		Int("evaluated", report.Summary.Evaluated).
		Int("failed", report.Summary.Failed).
		Int("profitable", report.Summary.Profitable).
		Msg("portfolio evaluation complete")

	return report, runErr
}

// Summarize totals the successful items.
func Summarize(items []PortfolioItem) PortfolioSummary {
	s := PortfolioSummary{Proposals: len(items)}
	for _, it := range items {
		if it.Err != nil || it.Report == nil {
			s.Failed++
			continue
		}
		r := it.Report.Results
		s.Evaluated++
		if r.IsProfitable() {
			s.Profitable++
		}
		s.TotalNetInvestment += r.Investment.Net
		s.TotalNPV += r.Metrics.NPV
		s.TotalCarbonTonnes += r.CarbonCreditTonnes
	}
	return s
}
