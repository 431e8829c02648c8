package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/biofeas/internal/config"
	"github.com/rshade/biofeas/internal/engine"
	"github.com/rshade/biofeas/internal/feasibility"
	"github.com/rshade/biofeas/internal/greenops"
	"github.com/rshade/biofeas/internal/tui"
)

const tabPadding = 2

// notAvailable fills table cells for proposals that failed.
const notAvailable = "-"

// displayOptions controls table rendering.
type displayOptions struct {
	symbol    string
	crores    bool
	precision int
	// styled wraps summaries in a lipgloss box; only for terminals.
	styled bool
}

// newDisplayOptions reads the display section of cfg and the configured
// output precision.
func newDisplayOptions(cmd *cobra.Command, cfg *config.Config) displayOptions {
	symbol := cfg.Display.CurrencySymbol
	if symbol == "" {
		symbol = greenops.DefaultCurrencySymbol
	}
	return displayOptions{
		symbol:    symbol,
		crores:    cfg.Display.Crores,
		precision: config.GetOutputPrecision(),
		styled:    styledOutput(cmd),
	}
}

// styledOutput reports whether the command writes to a terminal.
func styledOutput(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && isTerminal(f)
}

func (o displayOptions) money(amount float64) string {
	return greenops.FormatAmount(amount, o.symbol, o.crores)
}

func (o displayOptions) quantity(v float64) string {
	return greenops.FormatFloat(v, o.precision)
}

// renderJSON writes v as indented JSON.
func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderNDJSON writes each value on its own line.
func renderNDJSON[T any](w io.Writer, values []T) error {
	enc := json.NewEncoder(w)
	for _, v := range values {
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

// renderReport renders a single analysis report.
func renderReport(w io.Writer, format string, report *engine.Report, opts displayOptions) error {
	switch format {
	case config.FormatJSON:
		return renderJSON(w, report)
	case config.FormatNDJSON:
		return renderNDJSON(w, []*engine.Report{report})
	default:
		return renderReportTable(w, report, opts)
	}
}

// renderReportTable renders the full feasibility breakdown.
func renderReportTable(w io.Writer, report *engine.Report, opts displayOptions) error {
	r := report.Results
	title := "Biogas Feasibility: " + report.Name

	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len([]rune(title))))
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(tw, "Production")
	fmt.Fprintf(tw, "  Daily dung:\t%s kg\n", opts.quantity(r.Production.DailyDung))
	fmt.Fprintf(tw, "  Daily biogas:\t%s m³\n", opts.quantity(r.Production.DailyBiogas))
	fmt.Fprintf(tw, "  Annual biogas:\t%s m³\n", opts.quantity(r.Production.AnnualBiogas))
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Annual Revenue")
	fmt.Fprintf(tw, "  Biogas sales:\t%s\n", opts.money(r.Revenue.Biogas))
	fmt.Fprintf(tw, "  Carbon credits:\t%s\n", opts.money(r.Revenue.CarbonCredits))
	fmt.Fprintf(tw, "  Total:\t%s\n", opts.money(r.Revenue.Total))
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Costs and Investment")
	fmt.Fprintf(tw, "  Operating cost:\t%s\n", opts.money(r.Costs.Operating))
	fmt.Fprintf(tw, "  Net cash flow:\t%s\n", opts.money(r.Costs.NetCashFlow))
	fmt.Fprintf(tw, "  Construction cost:\t%s\n", opts.money(r.Investment.Total))
	fmt.Fprintf(tw, "  Subsidy:\t%s\n", opts.money(r.Investment.Subsidy))
	fmt.Fprintf(tw, "  Net investment:\t%s\n", opts.money(r.Investment.Net))
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "Returns (%d years)\n", feasibility.AnalysisYears)
	fmt.Fprintf(tw, "  NPV:\t%s\n", opts.money(r.Metrics.NPV))
	fmt.Fprintf(tw, "  IRR:\t%s\n", greenops.FormatPercent(r.Metrics.IRR))
	fmt.Fprintf(tw, "  Payback:\t%s\n", greenops.FormatYears(r.Metrics.PaybackPeriod))
	fmt.Fprintf(tw, "  Verdict:\t%s\n", r.Metrics.Profitability)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Carbon")
	fmt.Fprintf(tw, "  Credits:\t%s tCO2e/year\n", opts.quantity(r.CarbonCreditTonnes))
	if err := tw.Flush(); err != nil {
		return err
	}
	if !report.Emissions.IsEmpty {
		fmt.Fprintf(w, "  %s\n", report.Emissions.DisplayText)
	}

	switch {
	case len(report.Scenarios) > 0:
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Scenarios")
		return renderScenarioTable(w, report.Scenarios, opts)
	case report.ScenarioError != "":
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Scenarios unavailable: %s\n", report.ScenarioError)
	}
	return nil
}

// renderScenarios renders a scenario table on its own.
func renderScenarios(w io.Writer, format string, scenarios []feasibility.ScenarioResult, opts displayOptions) error {
	switch format {
	case config.FormatJSON:
		return renderJSON(w, scenarios)
	case config.FormatNDJSON:
		return renderNDJSON(w, scenarios)
	default:
		return renderScenarioTable(w, scenarios, opts)
	}
}

// renderScenarioTable writes one row per scenario. Scenario NPV and
// revenue are already in crores.
func renderScenarioTable(w io.Writer, scenarios []feasibility.ScenarioResult, opts displayOptions) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintln(tw, "Scenario\tNPV\tIRR\tPayback\tRevenue")
	fmt.Fprintln(tw, "--------\t---\t---\t-------\t-------")
	for _, s := range scenarios {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			s.Name,
			greenops.FormatCroreAmount(s.NPV, opts.symbol),
			greenops.FormatPercent(s.IRR),
			greenops.FormatYears(s.Payback),
			greenops.FormatCroreAmount(s.Revenue, opts.symbol),
		)
	}
	return tw.Flush()
}

// renderPortfolio renders a portfolio evaluation.
func renderPortfolio(w io.Writer, format, name string, report *engine.PortfolioReport, opts displayOptions) error {
	switch format {
	case config.FormatJSON:
		return renderJSON(w, struct {
			Name string `json:"name,omitempty"`
			*engine.PortfolioReport
		}{Name: name, PortfolioReport: report})
	case config.FormatNDJSON:
		if err := renderNDJSON(w, report.Items); err != nil {
			return err
		}
		return renderNDJSON(w, []any{map[string]engine.PortfolioSummary{"summary": report.Summary}})
	default:
		return renderPortfolioTable(w, name, report, opts)
	}
}

// renderPortfolioTable writes one row per proposal followed by the summary.
func renderPortfolioTable(w io.Writer, name string, report *engine.PortfolioReport, opts displayOptions) error {
	if len(report.Items) == 0 {
		fmt.Fprintln(w, "No proposals evaluated")
		return nil
	}

	if name != "" {
		fmt.Fprintf(w, "Portfolio: %s\n\n", name)
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "Proposal\tNet Investment\tNPV\tIRR\tPayback\tVerdict")
	fmt.Fprintln(tw, "--------\t--------------\t---\t---\t-------\t-------")
	for _, item := range report.Items {
		if item.Report == nil {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\terror: %s\n",
				item.Name, notAvailable, notAvailable, notAvailable, notAvailable, item.Error)
			continue
		}
		r := item.Report.Results
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			item.Name,
			opts.money(r.Investment.Net),
			opts.money(r.Metrics.NPV),
			greenops.FormatPercent(r.Metrics.IRR),
			greenops.FormatYears(r.Metrics.PaybackPeriod),
			r.Metrics.Profitability,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	summary := formatPortfolioSummary(report.Summary, opts)
	if opts.styled {
		summary = tui.BoxStyle.Render(summary)
	}
	fmt.Fprintln(w, summary)
	return nil
}

// formatPortfolioSummary returns the summary lines without a trailing newline.
func formatPortfolioSummary(s engine.PortfolioSummary, opts displayOptions) string {
	lines := []string{
		fmt.Sprintf("Proposals: %d (%d evaluated, %d failed)", s.Proposals, s.Evaluated, s.Failed),
		fmt.Sprintf("Profitable: %d", s.Profitable),
		"Total net investment: " + opts.money(s.TotalNetInvestment),
		"Total NPV: " + opts.money(s.TotalNPV),
		fmt.Sprintf("Total carbon credits: %s tCO2e/year", opts.quantity(s.TotalCarbonTonnes)),
	}
	return strings.Join(lines, "\n")
}
