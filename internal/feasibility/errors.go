package feasibility

import "strings"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors. Compare with errors.Is.
var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = constError("invalid feasibility inputs")

	// ErrArithmeticPrecondition is returned by CalculateNPV and CalculateIRR
	// when called with a non-positive discount rate or investment.
	ErrArithmeticPrecondition = constError("arithmetic precondition violated")
)

// ValidationError reports every violated input constraint at once.
type ValidationError struct {
	// Messages holds one entry per violated constraint, in check order.
	Messages []string
}

// Error joins all validation messages with commas.
func (e *ValidationError) Error() string {
	return string(ErrValidation) + ": " + strings.Join(e.Messages, ", ")
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
