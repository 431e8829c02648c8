package greenops

import (
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog/log"
)

// unitFactors maps lower-cased unit names to their kilogram factor.
//
//nolint:gochecknoglobals // Read-only lookup table.
var unitFactors = map[string]float64{
	"g":      GramsToKg,
	"gco2e":  GramsToKg,
	"kg":     KgToKg,
	"kgco2e": KgToKg,
	"t":      TonsToKg,
	"tco2e":  TonsToKg,
	"lb":     PoundsToKg,
	"lbco2e": PoundsToKg,
}

// NormalizeToKg converts value in unit to kilograms CO2e.
func NormalizeToKg(value float64, unit string) (float64, error) {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, ErrCalculationOverflow
	}
	if value < 0 {
		return 0, ErrNegativeValue
	}

	factor, ok := unitFactors[strings.ToLower(unit)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, unit)
	}

	kg := value * factor
	if math.IsInf(kg, 0) {
		return 0, ErrCalculationOverflow
	}
	return kg, nil
}

// equivalencySpec pairs an equivalency with its EPA factor and label.
type equivalencySpec struct {
	kind   EquivalencyType
	factor float64
	label  string
}

//nolint:gochecknoglobals // Read-only table, in display order.
var equivalencySpecs = []equivalencySpec{
	{EquivalencyMilesDriven, EPAMilesDrivenFactor, "miles driven"},
	{EquivalencyTreeSeedlings, EPATreeSeedlingFactor, "tree seedlings grown for 10 years"},
	{EquivalencyHomeDays, EPAHomeDayFactor, "days of home electricity"},
	{EquivalencySmartphonesCharged, EPASmartphoneChargeFactor, "smartphones charged"},
}

// Calculate normalizes input to kg CO2e and computes every equivalency.
//
// Amounts below MinEquivalencyThresholdKg produce an empty output and no
// error. Invalid units, negative values and overflow return an empty output
// with the matching sentinel error.
func Calculate(input CarbonInput) (EquivalencyOutput, error) {
	kg, err := NormalizeToKg(input.Value, input.Unit)
	if err != nil {
		return EquivalencyOutput{IsEmpty: true}, err
	}
	if kg < MinEquivalencyThresholdKg {
		return EquivalencyOutput{InputKg: kg, IsEmpty: true}, nil
	}

	results := make([]EquivalencyResult, 0, len(equivalencySpecs))
	for _, spec := range equivalencySpecs {
		v := kg / spec.factor
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return EquivalencyOutput{IsEmpty: true}, ErrCalculationOverflow
		}
		results = append(results, EquivalencyResult{
			Type:           spec.kind,
			Value:          v,
			FormattedValue: formatEquivalencyValue(v),
			Label:          spec.label,
		})
	}

	miles := results[0].FormattedValue
	trees := results[1].FormattedValue

	return EquivalencyOutput{
		InputKg:     kg,
		Results:     results,
		DisplayText: fmt.Sprintf("Equivalent to driving ~%s miles or growing ~%s tree seedlings for 10 years", miles, trees),
		CompactText: fmt.Sprintf("(≈ %s mi, %s trees)", miles, trees),
	}, nil
}

// CalculateFromTonnes computes equivalencies for an annual tCO2e figure such
// as feasibility.Results.CarbonCreditTonnes. Failures are logged and yield an
// empty output so report rendering never fails on them.
func CalculateFromTonnes(tonnes float64) EquivalencyOutput {
	out, err := Calculate(CarbonInput{Value: tonnes, Unit: "tCO2e"})
	if err != nil {
		log.Warn().Err(err).Float64("tonnes_co2e", tonnes).Msg("equivalency calculation failed")
		return EquivalencyOutput{IsEmpty: true}
	}
	return out
}

// formatEquivalencyValue abbreviates values of a million or more and rounds
// smaller ones to a separated integer.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
