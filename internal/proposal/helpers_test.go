package proposal_test

import "github.com/rshade/biofeas/internal/feasibility"

// baseInputs is the reference dairy-farm proposal.
func baseInputs() feasibility.Inputs {
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
