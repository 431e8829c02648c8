package feasibility

import (
	"encoding/json"
	"math"
)

// Inputs is the caller-supplied parameter record for one calculation.
type Inputs struct {
	// CattleCount is the number of animals supplying dung.
	CattleCount int `yaml:"cattle_count" json:"cattle_count"`
	// AvgDungPerCattle is dung mass per animal per day, in kg.
	AvgDungPerCattle float64 `yaml:"avg_dung_per_cattle" json:"avg_dung_per_cattle"`
	// MethanePotential is the theoretical biogas yield per kg of dung.
	MethanePotential float64 `yaml:"methane_potential" json:"methane_potential"`
	// PlantEfficiency is the captured fraction of theoretical biogas, in (0, 1].
	PlantEfficiency float64 `yaml:"plant_efficiency" json:"plant_efficiency"`
	// SellingPrice is revenue per unit of biogas volume.
	SellingPrice float64 `yaml:"selling_price" json:"selling_price"`
	// CarbonCreditPrice is revenue per tonne of CO2e.
	CarbonCreditPrice float64 `yaml:"carbon_credit_price" json:"carbon_credit_price"`
	// ConstructionCost is the total capital investment.
	ConstructionCost float64 `yaml:"construction_cost" json:"construction_cost"`
	// OperatingCostRatio is the fraction of revenue consumed by operations, in [0, 1].
	OperatingCostRatio float64 `yaml:"operating_cost_ratio" json:"operating_cost_ratio"`
	// SubsidyPercentage is the share of capital covered by subsidy, in [0, 100].
	SubsidyPercentage float64 `yaml:"subsidy_percentage" json:"subsidy_percentage"`
	// DiscountRate is the annual discount rate in percent.
	DiscountRate float64 `yaml:"discount_rate" json:"discount_rate"`
}

// Production holds biogas volumes derived from the herd.
type Production struct {
	DailyDung    float64 `json:"daily_dung"`
	DailyBiogas  float64 `json:"daily_biogas"`
	AnnualBiogas float64 `json:"annual_biogas"`
}

// Revenue holds annual revenue lines. Total is always Biogas + CarbonCredits.
type Revenue struct {
	Biogas        float64 `json:"biogas"`
	CarbonCredits float64 `json:"carbon_credits"`
	Total         float64 `json:"total"`
}

// Costs holds annual operating cost and the resulting net cash flow.
type Costs struct {
	Operating   float64 `json:"operating"`
	NetCashFlow float64 `json:"net_cash_flow"`
}

// Investment splits capital cost into subsidy and the net amount at risk.
type Investment struct {
	Total   float64 `json:"total"`
	Subsidy float64 `json:"subsidy"`
	Net     float64 `json:"net"`
}

// Metrics holds the return metrics over AnalysisYears.
type Metrics struct {
	// PaybackPeriod is in years; +Inf when the plant never pays back.
	PaybackPeriod float64 `json:"payback_period"`
	NPV           float64 `json:"npv"`
	// IRR is in percent. NoCapitalIRR is a sentinel, not a computed rate.
	IRR           float64 `json:"irr"`
	Profitability string  `json:"profitability"`
}

// Results is the full output of CalculateFeasibility.
type Results struct {
	Production Production `json:"production"`
	Revenue    Revenue    `json:"revenue"`
	Costs      Costs      `json:"costs"`
	Investment Investment `json:"investment"`
	Metrics    Metrics    `json:"metrics"`

	// CarbonCreditTonnes is the annual tCO2e behind Revenue.CarbonCredits.
	CarbonCreditTonnes float64 `json:"carbon_credit_tonnes"`
}

// ScenarioResult summarizes one scenario. NPV and Revenue are in crores.
type ScenarioResult struct {
	Name    string  `json:"name"`
	NPV     float64 `json:"npv"`
	IRR     float64 `json:"irr"`
	Payback float64 `json:"payback"`
	Revenue float64 `json:"revenue"`
}

// IsProfitable reports whether the analysis produced a positive NPV.
func (r *Results) IsProfitable() bool {
	return r.Metrics.Profitability == Profitable
}

// MarshalJSON encodes an infinite payback period as null.
func (m Metrics) MarshalJSON() ([]byte, error) {
	type Alias Metrics
	return json.Marshal(&struct {
		Alias

		PaybackPeriod *float64 `json:"payback_period"`
	}{
		Alias:         Alias(m),
		PaybackPeriod: finiteOrNil(m.PaybackPeriod),
	})
}

// MarshalJSON encodes an infinite payback period as null.
func (s ScenarioResult) MarshalJSON() ([]byte, error) {
	type Alias ScenarioResult
	return json.Marshal(&struct {
		Alias

		Payback *float64 `json:"payback"`
	}{
		Alias:   Alias(s),
		Payback: finiteOrNil(s.Payback),
	})
}

func finiteOrNil(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
