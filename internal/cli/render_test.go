package cli

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/biofeas/internal/engine"
	"github.com/rshade/biofeas/internal/feasibility"
)

func testDisplayOptions() displayOptions {
	return displayOptions{symbol: "₹", crores: true, precision: 2}
}

func TestFormatPortfolioSummary(t *testing.T) {
	got := formatPortfolioSummary(engine.PortfolioSummary{
		Proposals:          4,
		Evaluated:          3,
		Failed:             1,
		Profitable:         2,
		TotalNetInvestment: 60_000_000,
		TotalNPV:           -12_345_678,
		TotalCarbonTonnes:  1234.5,
	}, testDisplayOptions())

	assert.Equal(t, strings.Join([]string{
		"Proposals: 4 (3 evaluated, 1 failed)",
		"Profitable: 2",
		"Total net investment: ₹6.00 Cr",
		"Total NPV: -₹1.23 Cr",
		"Total carbon credits: 1,234.50 tCO2e/year",
	}, "\n"), got)
}

func TestRenderPortfolioTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderPortfolioTable(&buf, "", &engine.PortfolioReport{}, testDisplayOptions()))
	assert.Equal(t, "No proposals evaluated\n", buf.String())
}

func TestRenderPortfolioTable_FailedRow(t *testing.T) {
	items := []engine.PortfolioItem{
		{Name: "broken", Err: errors.New("boom"), Error: "boom"},
	}
	report := &engine.PortfolioReport{Items: items, Summary: engine.Summarize(items)}

	var buf bytes.Buffer
	require.NoError(t, renderPortfolioTable(&buf, "", report, testDisplayOptions()))

	out := buf.String()
	assert.NotContains(t, out, "Portfolio:")
	assert.Contains(t, out, "error: boom")
	assert.Contains(t, out, "Proposals: 1 (0 evaluated, 1 failed)")
}

func TestRenderScenarioTable_NeverPaysBack(t *testing.T) {
	var buf bytes.Buffer
	err := renderScenarioTable(&buf, []feasibility.ScenarioResult{
		{Name: feasibility.ScenarioConservative, NPV: -3.5, IRR: 0, Payback: math.Inf(1), Revenue: 1.25},
	}, testDisplayOptions())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "-₹3.50 Cr")
	assert.Contains(t, out, "0.00%")
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "₹1.25 Cr")
}

func TestDisplayOptions_Money(t *testing.T) {
	opts := testDisplayOptions()
	assert.Equal(t, "₹18.71 Cr", opts.money(187_121_812.5))

	opts.crores = false
	assert.Equal(t, "₹187,121,812.50", opts.money(187_121_812.5))

	opts.precision = 0
	assert.Equal(t, "2,874,375", opts.quantity(2_874_375))
}

func TestRenderNDJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderNDJSON(&buf, []int{1, 2, 3}))
	assert.Equal(t, "1\n2\n3\n", buf.String())
}

func TestInputFlagName(t *testing.T) {
	assert.Equal(t, "plant-efficiency", InputFlagName("plant_efficiency"))
	assert.Equal(t, "avg-dung-per-cattle", InputFlagName("avg_dung_per_cattle"))
}
