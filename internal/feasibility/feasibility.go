package feasibility

// CalculateFeasibility validates in and runs the full pipeline: production,
// revenue, costs and investment, then return metrics.
//
// Invalid inputs return a *ValidationError listing every violation and a nil
// result; no partial result is ever returned.
func CalculateFeasibility(in Inputs) (*Results, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	production := CalculateProduction(in)
	revenue := CalculateRevenue(production, in)
	costs, investment := CalculateCostsAndInvestment(revenue, in)

	metrics, err := CalculateMetrics(costs, investment, in.DiscountRate)
	if err != nil {
		return nil, err
	}

	return &Results{
		Production:         production,
		Revenue:            revenue,
		Costs:              costs,
		Investment:         investment,
		Metrics:            metrics,
		CarbonCreditTonnes: CarbonCreditTonnes(production.DailyBiogas),
	}, nil
}
