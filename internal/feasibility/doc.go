// Package feasibility implements the biogas plant feasibility model.
//
// It converts herd and plant parameters into daily and annual biogas
// production, prices that production as energy sales plus carbon credits,
// subtracts operating cost, applies capital subsidy, and derives payback,
// NPV and IRR over a fixed 20-year horizon. GenerateScenarioAnalysis runs
// the same pipeline under conservative, base and optimistic multipliers.
//
// Every function in this package is a pure function of its arguments: there
// is no I/O, no logging and no package state, so all of them are safe for
// concurrent use.
//
// Units are mixed on purpose. PlantEfficiency and OperatingCostRatio are
// fractions in [0, 1]; SubsidyPercentage and DiscountRate are percentages.
// The formulas depend on that convention (for example the subsidy is
// ConstructionCost * SubsidyPercentage / 100).
package feasibility
