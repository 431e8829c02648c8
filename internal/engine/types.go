package engine

import (
	"github.com/rshade/biofeas/internal/engine/batch"
	"github.com/rshade/biofeas/internal/feasibility"
	"github.com/rshade/biofeas/internal/greenops"
)

// AnalyzeRequest asks for a feasibility report on one set of inputs.
type AnalyzeRequest struct {
	Name   string
	Inputs feasibility.Inputs

	// IncludeScenarios adds the conservative/base/optimistic table.
	IncludeScenarios bool
}

// Report is the enriched result of one analysis.
type Report struct {
	Name    string               `json:"name"`
	Inputs  feasibility.Inputs   `json:"inputs"`
	Results *feasibility.Results `json:"results"`

	Scenarios []feasibility.ScenarioResult `json:"scenarios,omitempty"`
	// ScenarioError explains why scenarios are missing when they were
	// requested but a perturbed input set was invalid.
	ScenarioError string `json:"scenario_error,omitempty"`

	// Emissions restates the annual carbon-credit tonnage as everyday
	// equivalents.
	Emissions greenops.EquivalencyOutput `json:"emissions"`
}

// PortfolioOptions controls EvaluatePortfolio.
type PortfolioOptions struct {
	// Concurrency caps parallel analyses; 0 means one per CPU.
	Concurrency      int
	IncludeScenarios bool
	OnProgress       batch.ProgressCallback
}

// PortfolioItem is the outcome for one proposal.
type PortfolioItem struct {
	Name   string  `json:"name"`
	Report *Report `json:"report,omitempty"`
	Error  string  `json:"error,omitempty"`

	Err error `json:"-"`
}

// PortfolioSummary aggregates the successful items of a portfolio.
type PortfolioSummary struct {
	Proposals          int     `json:"proposals"`
	Evaluated          int     `json:"evaluated"`
	Failed             int     `json:"failed"`
	Profitable         int     `json:"profitable"`
	TotalNetInvestment float64 `json:"total_net_investment"`
	TotalNPV           float64 `json:"total_npv"`
	TotalCarbonTonnes  float64 `json:"total_carbon_tonnes"`
}

// PortfolioReport is the result of EvaluatePortfolio. Items are in input order.
type PortfolioReport struct {
	Items   []PortfolioItem  `json:"items"`
	Summary PortfolioSummary `json:"summary"`
}
