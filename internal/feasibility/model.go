package feasibility

// CalculateProduction converts herd size, dung yield, methane potential and
// plant efficiency into daily and annual biogas volumes. No rounding is
// applied.
func CalculateProduction(in Inputs) Production {
	dailyDung := float64(in.CattleCount) * in.AvgDungPerCattle
	theoreticalBiogas := dailyDung * in.MethanePotential
	dailyBiogas := theoreticalBiogas * in.PlantEfficiency

	return Production{
		DailyDung:    dailyDung,
		DailyBiogas:  dailyBiogas,
		AnnualBiogas: dailyBiogas * DaysPerYear,
	}
}

// CarbonCreditTonnes returns the annual tCO2e credited for a daily biogas
// volume: volume -> kg methane -> kg CO2e -> tonnes, over one year.
func CarbonCreditTonnes(dailyBiogas float64) float64 {
	return (dailyBiogas * MethaneKgPerBiogasUnit * MethaneCO2eMultiplier * DaysPerYear) / KgPerTonne
}

// CalculateRevenue prices annual production as energy sales plus carbon
// credits. Total is the exact sum of the two lines.
func CalculateRevenue(p Production, in Inputs) Revenue {
	biogas := p.AnnualBiogas * in.SellingPrice
	carbon := CarbonCreditTonnes(p.DailyBiogas) * in.CarbonCreditPrice

	return Revenue{
		Biogas:        biogas,
		CarbonCredits: carbon,
		Total:         biogas + carbon,
	}
}

// CalculateCostsAndInvestment derives operating cost and net cash flow from
// revenue, and splits the construction cost into subsidy and net investment.
func CalculateCostsAndInvestment(r Revenue, in Inputs) (Costs, Investment) {
	operating := r.Total * in.OperatingCostRatio
	subsidy := in.ConstructionCost * in.SubsidyPercentage / percentBase

	costs := Costs{
		Operating:   operating,
		NetCashFlow: r.Total - operating,
	}
	investment := Investment{
		Total:   in.ConstructionCost,
		Subsidy: subsidy,
		Net:     in.ConstructionCost - subsidy,
	}
	return costs, investment
}
