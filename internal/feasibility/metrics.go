package feasibility

import (
	"fmt"
	"math"
)

// CalculateNPV returns the net present value of a level annual cash flow
// received for years years against an up-front investment, discounting at
// discountRatePercent (percent, e.g. 12 for 12%).
//
// A non-positive discount rate returns ErrArithmeticPrecondition. years <= 0
// is not an error: the NPV is just -investment.
func CalculateNPV(cashFlow, investment, discountRatePercent float64, years int) (float64, error) {
	if !(discountRatePercent > 0) { //nolint:gocritic // rejects NaN too
		return 0, fmt.Errorf("%w: discount rate must be greater than 0, got %v",
			ErrArithmeticPrecondition, discountRatePercent)
	}
	if years <= 0 {
		return -investment, nil
	}

	rate := discountRatePercent / percentBase
	npv := -investment
	for year := 1; year <= years; year++ {
		npv += cashFlow / math.Pow(1+rate, float64(year))
	}
	return npv, nil
}

// CalculateIRR finds the rate at which a level annual cash flow over years
// years exactly repays investment, using Newton-Raphson seeded at 10%. The
// result is a percentage.
//
// A non-positive investment returns ErrArithmeticPrecondition. years <= 0 or
// a non-positive cash flow returns 0: there is no real return to report.
// Each step is clamped to [-99%, 1000%] and iteration stops early when the
// derivative is too flat to divide by.
func CalculateIRR(cashFlow, investment float64, years int) (float64, error) {
	if !(investment > 0) { //nolint:gocritic // rejects NaN too
		return 0, fmt.Errorf("%w: investment must be greater than 0, got %v",
			ErrArithmeticPrecondition, investment)
	}
	if years <= 0 || cashFlow <= 0 {
		return 0, nil
	}

	irr := irrInitialGuess
	for range irrMaxIterations {
		npv, derivative := npvAndDerivative(cashFlow, investment, irr, years)
		if math.Abs(npv) < irrNPVTolerance {
			break
		}
		if math.Abs(derivative) < irrMinDerivative {
			break
		}
		irr = clamp(irr-npv/derivative, irrMinRate, irrMaxRate)
	}

	return irr * irrPercentDisplay, nil
}

// npvAndDerivative evaluates NPV(rate) and dNPV/drate for a level cash flow.
func npvAndDerivative(cashFlow, investment, rate float64, years int) (float64, float64) {
	npv := -investment
	derivative := 0.0
	for year := 1; year <= years; year++ {
		y := float64(year)
		npv += cashFlow / math.Pow(1+rate, y)
		derivative -= y * cashFlow / math.Pow(1+rate, y+1)
	}
	return npv, derivative
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// PaybackPeriod returns the simple payback in years: 0 when nothing is
// invested, +Inf when the plant never recovers its net investment.
func PaybackPeriod(netInvestment, netCashFlow float64) float64 {
	switch {
	case netInvestment == 0:
		return 0
	case netInvestment > 0 && netCashFlow > 0:
		return netInvestment / netCashFlow
	default:
		return math.Inf(1)
	}
}

// CalculateMetrics derives payback, NPV, IRR and the profitability label over
// AnalysisYears.
//
// When the subsidy covers the whole construction cost, NPV is the
// undiscounted cash flow over NoCapitalNPVYears and IRR is the NoCapitalIRR
// sentinel (0 when the cash flow is not positive).
func CalculateMetrics(costs Costs, investment Investment, discountRate float64) (Metrics, error) {
	m := Metrics{
		PaybackPeriod: PaybackPeriod(investment.Net, costs.NetCashFlow),
	}

	if investment.Net > 0 {
		npv, err := CalculateNPV(costs.NetCashFlow, investment.Net, discountRate, AnalysisYears)
		if err != nil {
			return Metrics{}, err
		}
		irr, err := CalculateIRR(costs.NetCashFlow, investment.Net, AnalysisYears)
		if err != nil {
			return Metrics{}, err
		}
		m.NPV = npv
		m.IRR = irr
	} else {
		m.NPV = costs.NetCashFlow * NoCapitalNPVYears
		if costs.NetCashFlow > 0 {
			m.IRR = NoCapitalIRR
		}
	}

	m.Profitability = NotProfitable
	if m.NPV > 0 {
		m.Profitability = Profitable
	}
	return m, nil
}
