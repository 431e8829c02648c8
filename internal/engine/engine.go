package engine

import (
	"context"
	"errors"
	"time"

	"github.com/rshade/biofeas/internal/feasibility"
	"github.com/rshade/biofeas/internal/greenops"
	"github.com/rshade/biofeas/internal/logging"
)

// ErrNilRequest is returned when Analyze is called without a request.
var ErrNilRequest = errors.New("analyze request cannot be nil")

// Engine runs feasibility analyses. The zero value is ready to use.
type Engine struct{}

// New returns an Engine.
func New() *Engine {
	return &Engine{}
}

// Analyze runs the full feasibility pipeline on req.Inputs and enriches the
// result with avoided-emission equivalencies and, when requested, the
// scenario table.
//
// Invalid inputs return the *feasibility.ValidationError unchanged. A
// scenario whose perturbed inputs are invalid does not fail the analysis;
// the reason is recorded in Report.ScenarioError instead.
func (e *Engine) Analyze(ctx context.Context, req *AnalyzeRequest) (*Report, error) {
	if req == nil {
		return nil, ErrNilRequest
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	start := time.Now()

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "analyze").
		Str("proposal", req.Name).
		Int("cattle_count", req.Inputs.CattleCount).
		Bool("scenarios", req.IncludeScenarios).
		Msg("starting feasibility analysis")

	results, err := feasibility.CalculateFeasibility(req.Inputs)
	if err != nil {
		var verr *feasibility.ValidationError
		if errors.As(err, &verr) {
			log.Warn().
				Ctx(ctx).
				Str("component", "engine").
				Str("proposal", req.Name).
				Strs("violations", verr.Messages).
				Msg("proposal failed validation")
		} else {
			log.Error().
				Ctx(ctx).
				Str("component", "engine").
				Str("proposal", req.Name).
				Err(err).
				Msg("feasibility analysis failed")
		}
		return nil, err
	}

	report := &Report{
		Name:      req.Name,
		Inputs:    req.Inputs,
		Results:   results,
		Emissions: greenops.CalculateFromTonnes(results.CarbonCreditTonnes),
	}

	if req.IncludeScenarios {
		scenarios, scenarioErr := feasibility.GenerateScenarioAnalysis(req.Inputs)
		if scenarioErr != nil {
			log.Warn().
				Ctx(ctx).
				Str("component", "engine").
				Str("proposal", req.Name).
				Err(scenarioErr).
				Msg("scenario analysis skipped")
			report.ScenarioError = scenarioErr.Error()
		} else {
			report.Scenarios = scenarios
		}
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "analyze").
		Str("proposal", req.Name).
		Float64("npv", results.Metrics.NPV).
		Float64("irr", results.Metrics.IRR).
		Str("profitability", results.Metrics.Profitability).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("feasibility analysis complete")

	return report, nil
}

// Scenarios returns only the scenario table for inputs. Unlike Analyze, an
// invalid scenario is an error.
func (e *Engine) Scenarios(ctx context.Context, inputs feasibility.Inputs) ([]feasibility.ScenarioResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	scenarios, err := feasibility.GenerateScenarioAnalysis(inputs)
	if err != nil {
		log.Warn().
			Ctx(ctx).
			Str("component", "engine").
			Str("operation", "scenarios").
			Err(err).
			Msg("scenario analysis failed")
		return nil, err
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "scenarios").
		Int("count", len(scenarios)).
		Msg("scenario analysis complete")
	return scenarios, nil
}
