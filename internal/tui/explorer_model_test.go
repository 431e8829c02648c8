package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/biofeas/internal/engine"
	"github.com/rshade/biofeas/internal/feasibility"
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

func analyze(ctx context.Context, name string, in feasibility.Inputs) (*engine.Report, error) {
	return engine.New().Analyze(ctx, &engine.AnalyzeRequest{Name: name, Inputs: in, IncludeScenarios: true})
}

func newTestModel(t *testing.T) *ExplorerModel {
	t.Helper()
	ctx := context.Background()
	report, err := analyze(ctx, "Anand", referenceInputs())
	require.NoError(t, err)
	return NewExplorerModel(ctx, "Anand", referenceInputs(), report, analyze)
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// runCmd executes cmd and feeds its message back into the model.
func runCmd(t *testing.T, m *ExplorerModel, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	_, next := m.Update(cmd())
	assert.Nil(t, next)
}

func TestNewExplorerModel(t *testing.T) {
	m := newTestModel(t)

	assert.Equal(t, ExplorerStateEditing, m.state)
	require.Len(t, m.rows, 10)
	assert.Equal(t, "cattle_count", m.rows[0].Key)
	assert.Equal(t, "1000", m.rows[0].CurrentValue)
	assert.Equal(t, "0.35", m.rows[2].OriginalValue)
	require.NotNil(t, m.Report())
	assert.Empty(t, m.Overrides())
	assert.Nil(t, m.Init())
}

func TestExplorerModel_Navigation(t *testing.T) {
	m := newTestModel(t)

	m.Update(key(tea.KeyUp))
	assert.Equal(t, 0, m.focusedRow, "cannot move above the first row")

	m.Update(key(tea.KeyDown))
	m.Update(runes("j"))
	assert.Equal(t, 2, m.focusedRow)

	m.Update(runes("k"))
	assert.Equal(t, 1, m.focusedRow)

	for range 20 {
		m.Update(key(tea.KeyDown))
	}
	assert.Equal(t, 9, m.focusedRow, "cannot move past the last row")
}

func TestExplorerModel_EditRecalculates(t *testing.T) {
	m := newTestModel(t)
	before := m.Report().Results.Metrics.NPV

	m.Update(key(tea.KeyEnter))
	require.True(t, m.editMode)
	assert.Equal(t, "1000", m.editBuffer)

	m.Update(key(tea.KeyBackspace))
	m.Update(key(tea.KeyBackspace))
	m.Update(key(tea.KeyBackspace))
	m.Update(runes("200"))
	assert.Equal(t, "1200", m.editBuffer)

	_, cmd := m.Update(key(tea.KeyEnter))
	assert.False(t, m.editMode)
	assert.True(t, m.loading)
	assert.Equal(t, ExplorerStateCalculating, m.state)
	assert.Contains(t, m.View(), "Recalculating")

	runCmd(t, m, cmd)
	assert.False(t, m.loading)
	assert.Equal(t, 1200, m.Inputs().CattleCount)
	assert.Greater(t, m.Report().Results.Metrics.NPV, before)
	assert.Equal(t, []string{"cattle_count=1200"}, m.Overrides())
	assert.True(t, m.ReportCurrent())
	assert.NoError(t, m.Err())
}

func TestExplorerModel_UnparsableEdit(t *testing.T) {
	m := newTestModel(t)

	m.Update(key(tea.KeyEnter))
	m.Update(runes("x"))
	_, cmd := m.Update(key(tea.KeyEnter))

	assert.Nil(t, cmd)
	require.Error(t, m.err)
	assert.Equal(t, referenceInputs(), m.Inputs())
	assert.Contains(t, m.View(), "not a number")
}

func TestExplorerModel_InvalidInputsKeepLastReport(t *testing.T) {
	m := newTestModel(t)
	previous := m.Report()

	// Plant efficiency is row 3.
	for range 3 {
		m.Update(key(tea.KeyDown))
	}
	m.Update(key(tea.KeyEnter))
	m.editBuffer = "1.5"
	_, cmd := m.Update(key(tea.KeyEnter))
	runCmd(t, m, cmd)

	require.ErrorIs(t, m.Err(), feasibility.ErrValidation)
	assert.Same(t, previous, m.Report())
	assert.Equal(t, ExplorerStateEditing, m.state)
	assert.Contains(t, m.View(), "Plant efficiency must be between 0 and 1")

	// The kept report still describes the starting inputs.
	assert.InDelta(t, 1.5, m.Inputs().PlantEfficiency, 1e-12)
	assert.False(t, m.ReportCurrent())
	assert.Empty(t, m.Overrides())
}

func TestExplorerModel_StaleRecalculationDropped(t *testing.T) {
	m := newTestModel(t)

	m.Update(key(tea.KeyEnter))
	m.editBuffer = "500"
	_, first := m.Update(key(tea.KeyEnter))
	require.NotNil(t, first)

	m.Update(key(tea.KeyEnter))
	m.editBuffer = "1500"
	_, second := m.Update(key(tea.KeyEnter))
	require.NotNil(t, second)

	stale := first()
	latest := second()

	m.Update(stale)
	assert.True(t, m.loading, "an older result does not end the pending recalculation")
	assert.Equal(t, 1000, m.Report().Inputs.CattleCount)

	m.Update(latest)
	assert.False(t, m.loading)
	assert.Equal(t, 1500, m.Report().Inputs.CattleCount)

	m.Update(stale)
	assert.Equal(t, 1500, m.Report().Inputs.CattleCount)
	assert.True(t, m.ReportCurrent())
	assert.Equal(t, []string{"cattle_count=1500"}, m.Overrides())
}

func TestExplorerModel_EscCancelsEdit(t *testing.T) {
	m := newTestModel(t)

	m.Update(key(tea.KeyEnter))
	m.Update(runes("99"))
	m.Update(key(tea.KeyEsc))

	assert.False(t, m.editMode)
	assert.Empty(t, m.editBuffer)
	assert.Equal(t, referenceInputs(), m.Inputs())
}

func TestExplorerModel_Reset(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(runes("r"))
	assert.Nil(t, cmd, "nothing to reset")

	m.Update(key(tea.KeyEnter))
	m.editBuffer = "500"
	_, cmd = m.Update(key(tea.KeyEnter))
	runCmd(t, m, cmd)
	require.Equal(t, 500, m.Inputs().CattleCount)

	_, cmd = m.Update(runes("r"))
	runCmd(t, m, cmd)
	assert.Equal(t, referenceInputs(), m.Inputs())
	assert.Empty(t, m.Overrides())
}

func TestExplorerModel_RecalculateError(t *testing.T) {
	boom := errors.New("engine down")
	m := NewExplorerModel(context.Background(), "x", referenceInputs(), nil,
		func(context.Context, string, feasibility.Inputs) (*engine.Report, error) { return nil, boom })

	m.Update(key(tea.KeyEnter))
	m.editBuffer = "10"
	_, cmd := m.Update(key(tea.KeyEnter))
	runCmd(t, m, cmd)

	assert.ErrorIs(t, m.Err(), boom)
	assert.Nil(t, m.Report())
	assert.False(t, m.ReportCurrent())
	assert.Empty(t, m.Overrides())
	assert.Contains(t, m.View(), "No results yet")
}

func TestExplorerModel_NoCallback(t *testing.T) {
	m := NewExplorerModel(context.Background(), "x", referenceInputs(), nil, nil)
	m.Update(key(tea.KeyEnter))
	m.editBuffer = "10"
	_, cmd := m.Update(key(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, 10, m.Inputs().CattleCount)
}

func TestExplorerModel_Quit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{key(tea.KeyCtrlC), runes("q")} {
		m := newTestModel(t)
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd)
		assert.Equal(t, ExplorerStateQuitting, m.state)
		assert.Empty(t, m.View())
	}
}

func TestExplorerModel_WindowSize(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)
}

func TestExplorerModel_View(t *testing.T) {
	m := newTestModel(t).WithDisplay("$", false)
	view := m.View()

	assert.Contains(t, view, "Biogas Feasibility Explorer")
	assert.Contains(t, view, "Anand")
	assert.Contains(t, view, "Profitable")
	assert.Contains(t, view, "$")
	assert.Contains(t, view, "Cattle count")
	assert.Contains(t, view, "Conservative")
	assert.Contains(t, view, "Optimistic")
	assert.Contains(t, view, "q: Quit")
}
