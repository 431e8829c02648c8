package feasibility_test

import "github.com/rshade/biofeas/internal/feasibility"

// referenceInputs is the 1000-head dairy cluster used throughout the tests.
func referenceInputs() feasibility.Inputs {
	return feasibility.Inputs{
		CattleCount:        1000,
		AvgDungPerCattle:   30,
		MethanePotential:   0.35,
		PlantEfficiency:    0.75,
		SellingPrice:       45,
		CarbonCreditPrice:  1200,
		ConstructionCost:   50_000_000,
		OperatingCostRatio: 0.35,
		SubsidyPercentage:  60,
		DiscountRate:       12,
	}
}
