package feasibility

import (
	"fmt"
	"math"
)

// Scenario names, in report order.
const (
	ScenarioConservative = "Conservative"
	ScenarioBaseCase     = "Base Case"
	ScenarioOptimistic   = "Optimistic"
)

// ScenarioMultipliers scales the three inputs a scenario perturbs.
type ScenarioMultipliers struct {
	Name            string
	CattleCount     float64
	SellingPrice    float64
	PlantEfficiency float64
}

// Scenarios returns the fixed multiplier table in report order.
func Scenarios() []ScenarioMultipliers {
	return []ScenarioMultipliers{
		{Name: ScenarioConservative, CattleCount: 0.8, SellingPrice: 0.9, PlantEfficiency: 0.9},
		{Name: ScenarioBaseCase, CattleCount: 1.0, SellingPrice: 1.0, PlantEfficiency: 1.0},
		{Name: ScenarioOptimistic, CattleCount: 1.2, SellingPrice: 1.1, PlantEfficiency: 1.1},
	}
}

// Apply returns a copy of base with the scenario multipliers applied. The
// cattle count is rounded to the nearest whole animal.
func (s ScenarioMultipliers) Apply(base Inputs) Inputs {
	in := base
	in.CattleCount = int(math.Round(float64(base.CattleCount) * s.CattleCount))
	in.SellingPrice = base.SellingPrice * s.SellingPrice
	in.PlantEfficiency = base.PlantEfficiency * s.PlantEfficiency
	return in
}

// GenerateScenarioAnalysis runs the full pipeline for each scenario and
// returns Conservative, Base Case and Optimistic, in that order. NPV and
// revenue are expressed in crores.
//
// A scenario whose perturbed inputs fail validation (for example an
// efficiency pushed above 1) fails the whole analysis.
func GenerateScenarioAnalysis(base Inputs) ([]ScenarioResult, error) {
	table := Scenarios()
	out := make([]ScenarioResult, 0, len(table))

	for _, s := range table {
		results, err := CalculateFeasibility(s.Apply(base))
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
		}
		out = append(out, ScenarioResult{
			Name:    s.Name,
			NPV:     results.Metrics.NPV / CroreDivisor,
			IRR:     results.Metrics.IRR,
			Payback: results.Metrics.PaybackPeriod,
			Revenue: results.Revenue.Total / CroreDivisor,
		})
	}

	return out, nil
}
