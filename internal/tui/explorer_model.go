package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/biofeas/internal/engine"
	"github.com/rshade/biofeas/internal/feasibility"
	"github.com/rshade/biofeas/internal/greenops"
	"github.com/rshade/biofeas/internal/proposal"
)

// ExplorerState represents the current state of the explorer.
type ExplorerState int

const (
	// ExplorerStateEditing indicates the user is browsing or editing inputs.
	ExplorerStateEditing ExplorerState = iota
	// ExplorerStateCalculating indicates a recalculation is in flight.
	ExplorerStateCalculating
	// ExplorerStateQuitting indicates the application is exiting.
	ExplorerStateQuitting
)

// InputRow is one editable input.
type InputRow struct {
	Key           string
	Label         string
	OriginalValue string
	CurrentValue  string
}

// Changed reports whether the row differs from the value the session started with.
func (r InputRow) Changed() bool {
	return r.CurrentValue != r.OriginalValue
}

// RecalculateFunc produces a report for edited inputs.
type RecalculateFunc func(ctx context.Context, name string, inputs feasibility.Inputs) (*engine.Report, error)

// explorerRecalculateMsg is sent when a recalculation completes. generation
// identifies the request so results of superseded edits can be dropped.
type explorerRecalculateMsg struct {
	generation int
	report     *engine.Report
	err        error
}

// Default dimensions for the explorer.
const (
	explorerDefaultWidth  = 100
	explorerDefaultHeight = 30
	scenarioTableHeight   = 6
)

// ExplorerModel is the Bubble Tea model for interactive feasibility analysis.
type ExplorerModel struct {
	ctx  context.Context
	name string

	inputs   feasibility.Inputs
	original feasibility.Inputs
	fields   []proposal.Field
	rows     []InputRow

	focusedRow int
	editMode   bool
	editBuffer string

	report    *engine.Report
	scenarios table.Model

	state      ExplorerState
	loading    bool
	err        error
	generation int

	symbol string
	crores bool

	width  int
	height int

	recalculateFn RecalculateFunc
}

// NewExplorerModel creates an explorer for inputs. report is the analysis
// of inputs and may be nil.
func NewExplorerModel(
	ctx context.Context,
	name string,
	inputs feasibility.Inputs,
	report *engine.Report,
	recalculateFn RecalculateFunc,
) *ExplorerModel {
	m := &ExplorerModel{
		ctx:           ctx,
		name:          name,
		inputs:        inputs,
		original:      inputs,
		fields:        proposal.Fields(),
		state:         ExplorerStateEditing,
		symbol:        greenops.DefaultCurrencySymbol,
		crores:        true,
		width:         explorerDefaultWidth,
		height:        explorerDefaultHeight,
		recalculateFn: recalculateFn,
	}
	m.initializeRows()
	m.applyReport(report)
	return m
}

// WithDisplay sets the currency symbol and whether amounts show in crores.
func (m *ExplorerModel) WithDisplay(symbol string, crores bool) *ExplorerModel {
	if symbol != "" {
		m.symbol = symbol
	}
	m.crores = crores
	return m
}

func (m *ExplorerModel) initializeRows() {
	m.rows = make([]InputRow, len(m.fields))
	for i, f := range m.fields {
		v := f.Format(m.original)
		m.rows[i] = InputRow{Key: f.Key, Label: f.Label, OriginalValue: v, CurrentValue: f.Format(m.inputs)}
	}
}

func (m *ExplorerModel) applyReport(report *engine.Report) {
	if report == nil {
		return
	}
	m.report = report
	m.scenarios = NewScenarioTable(report.Scenarios, scenarioTableHeight)
}

// Init initializes the model.
func (m *ExplorerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m *ExplorerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case explorerRecalculateMsg:
		return m.handleRecalculateComplete(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

//nolint:exhaustive // Only handling relevant key types for navigation.
func (m *ExplorerModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editMode {
		return m.handleEditModeKey(msg)
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		m.state = ExplorerStateQuitting
		return m, tea.Quit

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			m.state = ExplorerStateQuitting
			return m, tea.Quit
		case "r":
			return m, m.reset()
		case "k":
			m.moveFocus(-1)
		case "j":
			m.moveFocus(1)
		}
		return m, nil

	case tea.KeyUp:
		m.moveFocus(-1)
		return m, nil

	case tea.KeyDown:
		m.moveFocus(1)
		return m, nil

	case tea.KeyEnter:
		if m.focusedRow < len(m.rows) {
			m.editMode = true
			m.editBuffer = m.rows[m.focusedRow].CurrentValue
		}
		return m, nil
	}

	return m, nil
}

func (m *ExplorerModel) moveFocus(delta int) {
	next := m.focusedRow + delta
	if next >= 0 && next < len(m.rows) {
		m.focusedRow = next
	}
}

//nolint:exhaustive // Only handling relevant key types for text editing.
func (m *ExplorerModel) handleEditModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.editMode = false
		return m, m.commitEdit()

	case tea.KeyEsc:
		m.editMode = false
		m.editBuffer = ""
		return m, nil

	case tea.KeyBackspace:
		runes := []rune(m.editBuffer)
		if len(runes) > 0 {
			m.editBuffer = string(runes[:len(runes)-1])
		}
		return m, nil

	case tea.KeyRunes:
		m.editBuffer += string(msg.Runes)
		return m, nil
	}

	return m, nil
}

// commitEdit parses the edit buffer into the focused field. A value that
// does not parse is reported and leaves the inputs unchanged.
func (m *ExplorerModel) commitEdit() tea.Cmd {
	field := m.fields[m.focusedRow]
	next := m.inputs
	if err := field.Parse(&next, m.editBuffer); err != nil {
		m.err = err
		return nil
	}
	m.inputs = next
	m.rows[m.focusedRow].CurrentValue = field.Format(next)
	m.editBuffer = ""
	return m.triggerRecalculation()
}

// reset restores the starting inputs.
func (m *ExplorerModel) reset() tea.Cmd {
	if m.inputs == m.original {
		return nil
	}
	m.inputs = m.original
	m.initializeRows()
	return m.triggerRecalculation()
}

func (m *ExplorerModel) triggerRecalculation() tea.Cmd {
	if m.recalculateFn == nil {
		return nil
	}
	m.loading = true
	m.state = ExplorerStateCalculating
	m.generation++

	// Captured before the command runs outside the update loop.
	ctx := m.ctx
	name := m.name
	inputs := m.inputs
	generation := m.generation
	recalculateFn := m.recalculateFn

	return func() tea.Msg {
		report, err := recalculateFn(ctx, name, inputs)
		return explorerRecalculateMsg{generation: generation, report: report, err: err}
	}
}

// handleRecalculateComplete keeps the last good report when the edited
// inputs are rejected, so the user can correct the value. Results of
// earlier requests that finish after a newer edit are ignored.
func (m *ExplorerModel) handleRecalculateComplete(msg explorerRecalculateMsg) (tea.Model, tea.Cmd) {
	if msg.generation != m.generation {
		return m, nil
	}
	m.loading = false
	m.state = ExplorerStateEditing

	if msg.err != nil {
		m.err = msg.err
		return m, nil
	}
	m.err = nil
	m.applyReport(msg.report)
	return m, nil
}

// View renders the current view.
func (m *ExplorerModel) View() string {
	if m.state == ExplorerStateQuitting {
		return ""
	}

	rows := m.rows
	if m.editMode && m.focusedRow < len(m.rows) {
		rows = make([]InputRow, len(m.rows))
		copy(rows, m.rows)
		rows[m.focusedRow].CurrentValue = m.editBuffer + "▌"
	}

	out := RenderExplorerHeader(m.name)
	out += "\n\n"
	if m.loading {
		out += RenderLoadingIndicator()
	} else {
		out += RenderReportSummary(m.report, m.symbol, m.crores)
	}
	out += "\n\n"
	out += RenderInputTable(rows, m.focusedRow, m.editMode)
	out += "\n"
	out += RenderScenarioSection(m.report, m.scenarios)
	if m.err != nil {
		out += "\n" + CriticalStyle.Render(fmt.Sprintf("%s %v", IconWarning, m.err))
	}
	out += "\n\n"
	out += RenderExplorerHelp()
	return out
}

// Inputs returns the inputs as currently edited.
func (m *ExplorerModel) Inputs() feasibility.Inputs {
	return m.inputs
}

// Report returns the latest successful report. After a rejected edit it
// describes earlier inputs; see ReportCurrent.
func (m *ExplorerModel) Report() *engine.Report {
	return m.report
}

// ReportCurrent reports whether Report was computed from the inputs as
// currently edited.
func (m *ExplorerModel) ReportCurrent() bool {
	return m.report != nil && m.report.Inputs == m.inputs
}

// Err returns the error from the last edit or recalculation, if any.
func (m *ExplorerModel) Err() error {
	return m.err
}

// Overrides returns, as key=value pairs in field order, the inputs of the
// current report that differ from the starting inputs. Edits that were
// rejected are not included.
func (m *ExplorerModel) Overrides() []string {
	if m.report == nil {
		return nil
	}
	var out []string
	for _, f := range m.fields {
		if v := f.Format(m.report.Inputs); v != f.Format(m.original) {
			out = append(out, f.Key+"="+v)
		}
	}
	return out
}
