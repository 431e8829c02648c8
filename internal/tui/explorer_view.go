package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/rshade/biofeas/internal/engine"
	"github.com/rshade/biofeas/internal/feasibility"
	"github.com/rshade/biofeas/internal/greenops"
)

// Column widths for the input table.
const (
	inputLabelWidth = 30
	inputValueWidth = 16
	separatorWidth  = 66
	minTruncateLen  = 3
)

// RenderExplorerHeader renders the title block.
func RenderExplorerHeader(name string) string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Biogas Feasibility Explorer"))
	if name != "" {
		sb.WriteString("\n\n")
		sb.WriteString(LabelStyle.Render("Proposal: "))
		sb.WriteString(ValueStyle.Render(name))
	}
	return sb.String()
}

// RenderReportSummary renders the headline metrics of report.
func RenderReportSummary(report *engine.Report, symbol string, crores bool) string {
	if report == nil || report.Results == nil {
		return MutedStyle.Italic(true).Render("No results yet")
	}
	r := report.Results
	money := func(v float64) string { return greenops.FormatAmount(v, symbol, crores) }

	lines := []string{
		summaryLine("Profitability", RenderProfitability(r.Metrics.Profitability)),
		summaryLine("NPV (20 yrs)", ValueStyle.Render(money(r.Metrics.NPV))),
		summaryLine("IRR", ValueStyle.Render(greenops.FormatPercent(r.Metrics.IRR))),
		summaryLine("Payback", ValueStyle.Render(greenops.FormatYears(r.Metrics.PaybackPeriod))),
		summaryLine("Annual revenue", ValueStyle.Render(money(r.Revenue.Total))),
		summaryLine("Net cash flow", ValueStyle.Render(money(r.Costs.NetCashFlow))),
		summaryLine("Net investment", ValueStyle.Render(money(r.Investment.Net))),
		summaryLine("Annual biogas", ValueStyle.Render(greenops.FormatFloat(r.Production.AnnualBiogas, 0)+" m³")),
	}
	if !report.Emissions.IsEmpty {
		lines = append(lines, MutedStyle.Render(report.Emissions.DisplayText))
	}
	return BoxStyle.Render(strings.Join(lines, "\n"))
}

func summaryLine(label, value string) string {
	return LabelStyle.Render(fmt.Sprintf("%-16s", label)) + value
}

// RenderProfitability colours the profitability verdict.
func RenderProfitability(verdict string) string {
	if verdict == feasibility.Profitable {
		return OKStyle.Render(IconOK + " " + verdict)
	}
	return WarningStyle.Render(IconWarning + " " + verdict)
}

// RenderInputTable renders the editable inputs with the focused row marked.
func RenderInputTable(rows []InputRow, focusedRow int, editing bool) string {
	var sb strings.Builder

	sb.WriteString(HeaderStyle.Render("Inputs:"))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", separatorWidth))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render(fmt.Sprintf("  %-*s %-*s %s",
		inputLabelWidth, "Input", inputValueWidth, "Original", "Current")))
	sb.WriteString("\n")

	for i, row := range rows {
		sb.WriteString(renderInputRow(row, i == focusedRow, editing && i == focusedRow))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderInputRow(row InputRow, focused, editing bool) string {
	var sb strings.Builder

	switch {
	case editing:
		sb.WriteString("> ")
	case focused:
		sb.WriteString("→ ")
	default:
		sb.WriteString("  ")
	}

	sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s ", inputLabelWidth, truncate(row.Label, inputLabelWidth))))
	sb.WriteString(ValueStyle.Render(fmt.Sprintf("%-*s ", inputValueWidth, truncate(row.OriginalValue, inputValueWidth))))

	current := truncate(row.CurrentValue, inputValueWidth)
	if row.Changed() || editing {
		sb.WriteString(HighlightStyle.Render(current))
	} else {
		sb.WriteString(ValueStyle.Render(current))
	}
	return sb.String()
}

// NewScenarioTable builds a bubbles table of scenario results.
func NewScenarioTable(scenarios []feasibility.ScenarioResult, height int) table.Model {
	columns := []table.Column{
		{Title: "Scenario", Width: 14}, //nolint:mnd // Column width.
		{Title: "NPV", Width: 14},      //nolint:mnd // Column width.
		{Title: "IRR", Width: 12},      //nolint:mnd // Column width.
		{Title: "Payback", Width: 12},  //nolint:mnd // Column width.
		{Title: "Revenue", Width: 14},  //nolint:mnd // Column width.
	}

	rows := make([]table.Row, len(scenarios))
	for i, s := range scenarios {
		rows[i] = table.Row{
			s.Name,
			greenops.FormatCrores(s.NPV),
			greenops.FormatPercent(s.IRR),
			greenops.FormatYears(s.Payback),
			greenops.FormatCrores(s.Revenue),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}

// RenderScenarioSection renders the scenario table, or why it is missing.
func RenderScenarioSection(report *engine.Report, t table.Model) string {
	var sb strings.Builder
	sb.WriteString(HeaderStyle.Render("Scenarios:"))
	sb.WriteString("\n")

	switch {
	case report == nil:
		sb.WriteString(MutedStyle.Render("not calculated"))
	case report.ScenarioError != "":
		sb.WriteString(WarningStyle.Render(report.ScenarioError))
	case len(report.Scenarios) == 0:
		sb.WriteString(MutedStyle.Render("not requested"))
	default:
		sb.WriteString(t.View())
	}
	return sb.String()
}

// RenderExplorerHelp renders the keyboard shortcut help text.
func RenderExplorerHelp() string {
	shortcuts := []string{
		"↑/↓: Navigate",
		"Enter: Edit input",
		"Esc: Cancel edit",
		"r: Reset",
		"q: Quit",
	}
	return MutedStyle.Render(strings.Join(shortcuts, " | "))
}

// RenderLoadingIndicator renders a loading indicator for recalculation.
func RenderLoadingIndicator() string {
	return WarningStyle.Foreground(ColorSpinner).Render("Recalculating...")
}

// truncate shortens s to maxLen runes with an ellipsis.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= minTruncateLen {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-minTruncateLen]) + "..."
}
