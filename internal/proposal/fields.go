package proposal

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rshade/biofeas/internal/feasibility"
)

// maxWholeValue keeps integer fields clear of int conversion overflow.
const maxWholeValue = 1e15

// Field describes one editable Inputs field.
type Field struct {
	Key     string
	Label   string
	Integer bool

	get func(feasibility.Inputs) float64
	set func(*feasibility.Inputs, float64)
}

// Get returns the field's value in in.
func (f Field) Get(in feasibility.Inputs) float64 {
	return f.get(in)
}

// Set assigns v to the field in in. Integer fields require a whole number.
func (f Field) Set(in *feasibility.Inputs, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrInvalidValue, f.Key)
	}
	if f.Integer && (v != math.Trunc(v) || math.Abs(v) > maxWholeValue) {
		return fmt.Errorf("%w: %s must be a whole number, got %v", ErrInvalidValue, f.Key, v)
	}
	f.set(in, v)
	return nil
}

// Parse parses raw and assigns it to the field in in.
func (f Field) Parse(in *feasibility.Inputs, raw string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidValue, f.Key, raw)
	}
	return f.Set(in, v)
}

// Format renders the field's value in in for editing.
func (f Field) Format(in feasibility.Inputs) string {
	return strconv.FormatFloat(f.get(in), 'f', -1, 64)
}

// Fields returns the input fields in their canonical order.
func Fields() []Field {
	return []Field{
		{
			Key: "cattle_count", Label: "Cattle count", Integer: true,
			get: func(in feasibility.Inputs) float64 { return float64(in.CattleCount) },
			set: func(in *feasibility.Inputs, v float64) { in.CattleCount = int(v) },
		},
		{
			Key: "avg_dung_per_cattle", Label: "Dung per cattle (kg/day)",
			get: func(in feasibility.Inputs) float64 { return in.AvgDungPerCattle },
			set: func(in *feasibility.Inputs, v float64) { in.AvgDungPerCattle = v },
		},
		{
			Key: "methane_potential", Label: "Methane potential (m³/kg)",
			get: func(in feasibility.Inputs) float64 { return in.MethanePotential },
			set: func(in *feasibility.Inputs, v float64) { in.MethanePotential = v },
		},
		{
			Key: "plant_efficiency", Label: "Plant efficiency (0-1)",
			get: func(in feasibility.Inputs) float64 { return in.PlantEfficiency },
			set: func(in *feasibility.Inputs, v float64) { in.PlantEfficiency = v },
		},
		{
			Key: "selling_price", Label: "Selling price (per m³)",
			get: func(in feasibility.Inputs) float64 { return in.SellingPrice },
			set: func(in *feasibility.Inputs, v float64) { in.SellingPrice = v },
		},
		{
			Key: "carbon_credit_price", Label: "Carbon credit price (per t)",
			get: func(in feasibility.Inputs) float64 { return in.CarbonCreditPrice },
			set: func(in *feasibility.Inputs, v float64) { in.CarbonCreditPrice = v },
		},
		{
			Key: "construction_cost", Label: "Construction cost",
			get: func(in feasibility.Inputs) float64 { return in.ConstructionCost },
			set: func(in *feasibility.Inputs, v float64) { in.ConstructionCost = v },
		},
		{
			Key: "operating_cost_ratio", Label: "Operating cost ratio (0-1)",
			get: func(in feasibility.Inputs) float64 { return in.OperatingCostRatio },
			set: func(in *feasibility.Inputs, v float64) { in.OperatingCostRatio = v },
		},
		{
			Key: "subsidy_percentage", Label: "Subsidy (%)",
			get: func(in feasibility.Inputs) float64 { return in.SubsidyPercentage },
			set: func(in *feasibility.Inputs, v float64) { in.SubsidyPercentage = v },
		},
		{
			Key: "discount_rate", Label: "Discount rate (%)",
			get: func(in feasibility.Inputs) float64 { return in.DiscountRate },
			set: func(in *feasibility.Inputs, v float64) { in.DiscountRate = v },
		},
	}
}

// LookupField finds a field by its snake_case key.
func LookupField(key string) (Field, bool) {
	for _, f := range Fields() {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// FieldKeys returns every field key in canonical order.
func FieldKeys() []string {
	fields := Fields()
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	return keys
}
