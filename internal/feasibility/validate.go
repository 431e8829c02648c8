package feasibility

// Validation messages, one per constraint.
const (
	msgCattleCount        = "Cattle count must be greater than 0"
	msgAvgDungPerCattle   = "Average dung per cattle must be greater than 0"
	msgMethanePotential   = "Methane potential must be greater than 0"
	msgPlantEfficiency    = "Plant efficiency must be between 0 and 1"
	msgSellingPrice       = "Selling price must be greater than 0"
	msgCarbonCreditPrice  = "Carbon credit price cannot be negative"
	msgConstructionCost   = "Construction cost must be greater than 0"
	msgOperatingCostRatio = "Operating cost ratio must be between 0 and 1"
	msgSubsidyPercentage  = "Subsidy percentage must be between 0 and 100"
	msgDiscountRate       = "Discount rate must be greater than 0"
)

// ValidateInputs checks every field of in and returns one message per
// violated constraint. An empty slice means the inputs are valid.
//
// The comparisons are written so that NaN fails every check.
//
//nolint:gocritic // negated comparisons are deliberate: they reject NaN.
func ValidateInputs(in Inputs) []string {
	var errs []string

	if in.CattleCount <= 0 {
		errs = append(errs, msgCattleCount)
	}
	if !(in.AvgDungPerCattle > 0) {
		errs = append(errs, msgAvgDungPerCattle)
	}
	if !(in.MethanePotential > 0) {
		errs = append(errs, msgMethanePotential)
	}
	if !(in.PlantEfficiency > 0 && in.PlantEfficiency <= 1) {
		errs = append(errs, msgPlantEfficiency)
	}
	if !(in.SellingPrice > 0) {
		errs = append(errs, msgSellingPrice)
	}
	if !(in.CarbonCreditPrice >= 0) {
		errs = append(errs, msgCarbonCreditPrice)
	}
	if !(in.ConstructionCost > 0) {
		errs = append(errs, msgConstructionCost)
	}
	if !(in.OperatingCostRatio >= 0 && in.OperatingCostRatio <= 1) {
		errs = append(errs, msgOperatingCostRatio)
	}
	if !(in.SubsidyPercentage >= 0 && in.SubsidyPercentage <= percentBase) {
		errs = append(errs, msgSubsidyPercentage)
	}
	if !(in.DiscountRate > 0) {
		errs = append(errs, msgDiscountRate)
	}

	return errs
}

// Validate returns a *ValidationError carrying every violation, or nil.
func (in Inputs) Validate() error {
	if msgs := ValidateInputs(in); len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}
