package engine_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/biofeas/internal/engine"
	"github.com/rshade/biofeas/internal/feasibility"
	"github.com/rshade/biofeas/internal/logging"
)

func referenceInputs() feasibility.Inputs {
	return feasibility.Inputs{
		CattleCount:        1000,
		AvgDungPerCattle:   30,
		MethanePotential:   0.35,
		PlantEfficiency:    0.75,
		SellingPrice:       45,
		CarbonCreditPrice:  1200,
		ConstructionCost:   50_000_000,
		OperatingCostRatio: 0.15,
		SubsidyPercentage:  60,
		DiscountRate:       8,
	}
}

// captureContext returns a context carrying a JSON logger that writes to buf.
func captureContext(buf *bytes.Buffer) context.Context {
	logger := logging.NewLogger(logging.Config{Level: "debug", Format: logging.FormatJSON}, buf)
	ctx := logging.ContextWithTraceID(context.Background(), "test-trace")
	return logger.WithContext(ctx)
}

func TestAnalyze_Reference(t *testing.T) {
	var buf bytes.Buffer
	ctx := captureContext(&buf)

	report, err := engine.New().Analyze(ctx, &engine.AnalyzeRequest{
		Name:             "Anand",
		Inputs:           referenceInputs(),
		IncludeScenarios: true,
	})
	require.NoError(t, err)

	want, err := feasibility.CalculateFeasibility(referenceInputs())
	require.NoError(t, err)
	assert.Equal(t, want, report.Results)
	assert.Equal(t, "Anand", report.Name)

	require.Len(t, report.Scenarios, 3)
	assert.Equal(t, feasibility.ScenarioBaseCase, report.Scenarios[1].Name)
	assert.Empty(t, report.ScenarioError)

	assert.False(t, report.Emissions.IsEmpty)
	assert.InDelta(t, report.Results.CarbonCreditTonnes*1000, report.Emissions.InputKg, 1e-6)

	logs := buf.String()
	assert.Contains(t, logs, "starting feasibility analysis")
	assert.Contains(t, logs, "feasibility analysis complete")
	assert.Contains(t, logs, `"trace_id":"test-trace"`)
}

func TestAnalyze_WithoutScenarios(t *testing.T) {
	report, err := engine.New().Analyze(context.Background(), &engine.AnalyzeRequest{Inputs: referenceInputs()})
	require.NoError(t, err)
	assert.Nil(t, report.Scenarios)
}

func TestAnalyze_ScenarioFailureIsRecorded(t *testing.T) {
	var buf bytes.Buffer
	in := referenceInputs()
	in.PlantEfficiency = 0.95

	report, err := engine.New().Analyze(captureContext(&buf), &engine.AnalyzeRequest{
		Inputs:           in,
		IncludeScenarios: true,
	})
	require.NoError(t, err)
	assert.Nil(t, report.Scenarios)
	assert.Contains(t, report.ScenarioError, feasibility.ScenarioOptimistic)
	assert.Contains(t, buf.String(), "scenario analysis skipped")
}

func TestAnalyze_InvalidInputs(t *testing.T) {
	var buf bytes.Buffer
	in := referenceInputs()
	in.CattleCount = 0

	report, err := engine.New().Analyze(captureContext(&buf), &engine.AnalyzeRequest{Name: "bad", Inputs: in})
	require.ErrorIs(t, err, feasibility.ErrValidation)
	assert.Nil(t, report)
	assert.Contains(t, buf.String(), "proposal failed validation")
	assert.Contains(t, buf.String(), zerolog.LevelWarnValue)
}

func TestAnalyze_NilAndCancelled(t *testing.T) {
	_, err := engine.New().Analyze(context.Background(), nil)
	require.ErrorIs(t, err, engine.ErrNilRequest)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.New().Analyze(ctx, &engine.AnalyzeRequest{Inputs: referenceInputs()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestScenarios(t *testing.T) {
	var e engine.Engine

	got, err := e.Scenarios(context.Background(), referenceInputs())
	require.NoError(t, err)
	want, err := feasibility.GenerateScenarioAnalysis(referenceInputs())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	in := referenceInputs()
	in.PlantEfficiency = 0.95
	_, err = e.Scenarios(context.Background(), in)
	require.ErrorIs(t, err, feasibility.ErrValidation)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Scenarios(ctx, referenceInputs())
	require.ErrorIs(t, err, context.Canceled)
}
