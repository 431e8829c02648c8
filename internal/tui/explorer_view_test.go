package tui

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/biofeas/internal/engine"
	"github.com/rshade/biofeas/internal/feasibility"
	"github.com/rshade/biofeas/internal/greenops"
)

func TestRenderProfitability(t *testing.T) {
	assert.Contains(t, RenderProfitability(feasibility.Profitable), IconOK)
	assert.Contains(t, RenderProfitability(feasibility.NotProfitable), IconWarning)
}

func TestRenderReportSummary(t *testing.T) {
	assert.Contains(t, RenderReportSummary(nil, "₹", true), "No results yet")

	results, err := feasibility.CalculateFeasibility(referenceInputs())
	require.NoError(t, err)
	report := &engine.Report{
		Results:   results,
		Emissions: greenops.CalculateFromTonnes(results.CarbonCreditTonnes),
	}

	out := RenderReportSummary(report, "₹", true)
	assert.Contains(t, out, "₹")
	assert.Contains(t, out, " Cr")
	assert.Contains(t, out, "tree seedlings")
	assert.Contains(t, out, "2,874,375 m³")

	full := RenderReportSummary(report, "₹", false)
	assert.NotContains(t, full, " Cr")
}

func TestRenderInputTable(t *testing.T) {
	rows := []InputRow{
		{Key: "cattle_count", Label: "Cattle count", OriginalValue: "1000", CurrentValue: "1200"},
		{Key: "selling_price", Label: "Selling price", OriginalValue: "45", CurrentValue: "45"},
	}
	out := RenderInputTable(rows, 1, false)

	assert.Contains(t, out, "Inputs:")
	assert.Contains(t, out, "→ ")
	assert.Contains(t, out, "1200")
	assert.True(t, rows[0].Changed())
	assert.False(t, rows[1].Changed())

	editing := RenderInputTable(rows, 0, true)
	assert.Contains(t, editing, "> ")
}

func TestNewScenarioTable(t *testing.T) {
	scenarios := []feasibility.ScenarioResult{
		{Name: feasibility.ScenarioConservative, NPV: -0.5, IRR: 4.2, Payback: math.Inf(1), Revenue: 1.2},
		{Name: feasibility.ScenarioBaseCase, NPV: 1.5, IRR: 30, Payback: 3.3, Revenue: 1.9},
	}
	tbl := NewScenarioTable(scenarios, scenarioTableHeight)

	require.Len(t, tbl.Rows(), 2)
	assert.Equal(t, "never", tbl.Rows()[0][3])
	assert.Equal(t, "-0.50 Cr", tbl.Rows()[0][1])
	assert.Equal(t, "30.00%", tbl.Rows()[1][2])
}

func TestRenderScenarioSection(t *testing.T) {
	empty := NewScenarioTable(nil, scenarioTableHeight)

	assert.Contains(t, RenderScenarioSection(nil, empty), "not calculated")
	assert.Contains(t, RenderScenarioSection(&engine.Report{}, empty), "not requested")
	assert.Contains(t, RenderScenarioSection(&engine.Report{ScenarioError: "scenario \"Optimistic\": bad"}, empty), "Optimistic")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "₹₹₹₹₹₹₹...", truncate("₹₹₹₹₹₹₹₹₹₹₹₹", 10))
}

func TestRenderExplorerHeader(t *testing.T) {
	assert.Contains(t, RenderExplorerHeader("Anand"), "Proposal: ")
	assert.NotContains(t, RenderExplorerHeader(""), "Proposal: ")
}
