package feasibility

// Production constants.
const (
	// DaysPerYear converts daily biogas volume to annual volume.
	DaysPerYear = 365
)

// Carbon credit conversion chain: biogas volume -> methane mass ->
// CO2-equivalent mass -> tonnes. These emission-factor assumptions must stay
// exactly as written for numeric compatibility.
const (
	// MethaneKgPerBiogasUnit is kg of methane per unit of biogas volume.
	MethaneKgPerBiogasUnit = 0.67

	// MethaneCO2eMultiplier is the CO2-equivalence multiplier for methane.
	MethaneCO2eMultiplier = 25.0

	// KgPerTonne converts kilograms to tonnes.
	KgPerTonne = 1000.0
)

// Financial analysis constants.
const (
	// AnalysisYears is the fixed horizon for NPV and IRR.
	AnalysisYears = 20

	// percentBase converts percentage units to fractions.
	percentBase = 100.0

	// CroreDivisor expresses rupee amounts in crores (1 crore = 10,000,000).
	CroreDivisor = 10_000_000.0
)

// Sentinels used when no net capital is at risk (subsidy covers the whole
// construction cost). They are product-level simplifications, not limits.
const (
	// NoCapitalIRR is reported as the IRR when net investment is zero and
	// net cash flow is positive. Treat it as opaque "effectively infinite".
	NoCapitalIRR = 1000.0

	// NoCapitalNPVYears is the number of undiscounted cash-flow years counted
	// as NPV when net investment is zero.
	NoCapitalNPVYears = AnalysisYears
)

// Newton-Raphson settings for CalculateIRR. Heuristic stability guards; keep
// them unchanged so results stay reproducible.
const (
	irrInitialGuess   = 0.10
	irrMaxIterations  = 100
	irrNPVTolerance   = 0.01
	irrMinDerivative  = 1e-10
	irrMinRate        = -0.99
	irrMaxRate        = 10.0
	irrPercentDisplay = 100.0
)

// Profitability labels.
const (
	Profitable    = "Profitable"
	NotProfitable = "Not Profitable"
)
