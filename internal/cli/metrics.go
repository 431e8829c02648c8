package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/biofeas/internal/config"
	"github.com/rshade/biofeas/internal/feasibility"
	"github.com/rshade/biofeas/internal/greenops"
	"github.com/rshade/biofeas/internal/logging"
)

// MetricParams holds the flags of the npv and irr commands.
// Exported for testing.
type MetricParams struct {
	CashFlow   float64
	Investment float64
	Rate       float64
	Years      int
	Output     string
}

// metricResult is the JSON shape of the npv and irr commands.
type metricResult struct {
	CashFlow     float64  `json:"cash_flow"`
	Investment   float64  `json:"investment"`
	DiscountRate *float64 `json:"discount_rate,omitempty"`
	Years        int      `json:"years"`
	NPV          *float64 `json:"npv,omitempty"`
	IRR          *float64 `json:"irr,omitempty"`
}

// NewNPVCmd creates the "npv" command, which discounts a level annual cash
// flow against an up-front investment.
func NewNPVCmd() *cobra.Command {
	var params MetricParams

	cmd := &cobra.Command{
		Use:   "npv",
		Short: "Calculate net present value of a level annual cash flow",
		Long: `Calculates the net present value of a constant annual cash flow received
for a number of years, against an investment made at year zero.

The discount rate is a percentage (8 means 8%) and must be greater than 0.`,
		Example: `  # NPV over the default 20-year horizon
  biofeas npv --cash-flow 1000000 --investment 5000000 --rate 8

  # Ten-year horizon as JSON
  biofeas npv --cash-flow 1000000 --investment 5000000 --rate 12 --years 10 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeNPV(cmd, params)
		},
	}

	addMetricFlags(cmd, &params)
	cmd.Flags().Float64Var(&params.Rate, "rate", 0, "Annual discount rate in percent")
	_ = cmd.MarkFlagRequired("rate")

	return cmd
}

// NewIRRCmd creates the "irr" command, which finds the rate at which a
// level annual cash flow repays an investment.
func NewIRRCmd() *cobra.Command {
	var params MetricParams

	cmd := &cobra.Command{
		Use:   "irr",
		Short: "Calculate internal rate of return of a level annual cash flow",
		Long: `Finds the discount rate at which a constant annual cash flow exactly repays
an up-front investment, using Newton-Raphson iteration seeded at 10%.

The investment must be greater than 0. A non-positive cash flow reports 0%.`,
		Example: `  biofeas irr --cash-flow 1000000 --investment 5000000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeIRR(cmd, params)
		},
	}

	addMetricFlags(cmd, &params)
	return cmd
}

func addMetricFlags(cmd *cobra.Command, params *MetricParams) {
	cmd.Flags().Float64Var(&params.CashFlow, "cash-flow", 0, "Net cash flow received each year")
	cmd.Flags().Float64Var(&params.Investment, "investment", 0, "Investment made at year zero")
	cmd.Flags().IntVar(&params.Years, "years", feasibility.AnalysisYears, "Number of years of cash flow")
	addOutputFlag(cmd, &params.Output)
	_ = cmd.MarkFlagRequired("cash-flow")
	_ = cmd.MarkFlagRequired("investment")
}

func executeNPV(cmd *cobra.Command, params MetricParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	format, err := resolveOutputFormat(params.Output)
	if err != nil {
		return err
	}

	npv, err := feasibility.CalculateNPV(params.CashFlow, params.Investment, params.Rate, params.Years)
	if err != nil {
		return fmt.Errorf("calculating NPV: %w", err)
	}
	log.Debug().Ctx(ctx).
		Str("operation", "npv").
		Float64("npv", npv).
		Msg("NPV calculated")

	result := metricResult{
		CashFlow:     params.CashFlow,
		Investment:   params.Investment,
		DiscountRate: &params.Rate,
		Years:        params.Years,
		NPV:          &npv,
	}
	return renderMetric(cmd.OutOrStdout(), format, "Net Present Value", result, newDisplayOptions(cmd, cfg))
}

func executeIRR(cmd *cobra.Command, params MetricParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)
	cfg := config.GetGlobalConfig()

	format, err := resolveOutputFormat(params.Output)
	if err != nil {
		return err
	}

	irr, err := feasibility.CalculateIRR(params.CashFlow, params.Investment, params.Years)
	if err != nil {
		return fmt.Errorf("calculating IRR: %w", err)
	}
	log.Debug().Ctx(ctx).
		Str("operation", "irr").
		Float64("irr", irr).
		Msg("IRR calculated")

	result := metricResult{
		CashFlow:   params.CashFlow,
		Investment: params.Investment,
		Years:      params.Years,
		IRR:        &irr,
	}
	return renderMetric(cmd.OutOrStdout(), format, "Internal Rate of Return", result, newDisplayOptions(cmd, cfg))
}

func renderMetric(w io.Writer, format, title string, result metricResult, opts displayOptions) error {
	switch format {
	case config.FormatJSON:
		return renderJSON(w, result)
	case config.FormatNDJSON:
		return renderNDJSON(w, []metricResult{result})
	}

	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintf(tw, "Annual cash flow:\t%s\n", greenops.FormatMoney(result.CashFlow, opts.symbol))
	fmt.Fprintf(tw, "Investment:\t%s\n", greenops.FormatMoney(result.Investment, opts.symbol))
	if result.DiscountRate != nil {
		fmt.Fprintf(tw, "Discount rate:\t%s\n", greenops.FormatPercent(*result.DiscountRate))
	}
	fmt.Fprintf(tw, "Years:\t%s\n", strconv.Itoa(result.Years))
	if result.NPV != nil {
		fmt.Fprintf(tw, "NPV:\t%s\n", greenops.FormatMoney(*result.NPV, opts.symbol))
	}
	if result.IRR != nil {
		fmt.Fprintf(tw, "IRR:\t%s\n", greenops.FormatPercent(*result.IRR))
	}
	return tw.Flush()
}
