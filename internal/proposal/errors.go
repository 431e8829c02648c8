package proposal

import "errors"

var (
	// ErrUnsupportedFormat is returned for files that are neither YAML nor JSON.
	ErrUnsupportedFormat = errors.New("unsupported proposal file format")
	// ErrIncompatibleSchema is returned when schema_version falls outside SupportedSchema.
	ErrIncompatibleSchema = errors.New("incompatible proposal schema version")
	// ErrUnknownField is returned for input keys that do not name an Inputs field.
	ErrUnknownField = errors.New("unknown input field")
	// ErrInvalidValue is returned for input values that are not finite numbers.
	ErrInvalidValue = errors.New("invalid input value")
	// ErrInvalidOverride is returned for malformed key=value overrides.
	ErrInvalidOverride = errors.New("invalid input override")
	// ErrEmptyPortfolio is returned for portfolio files without proposals.
	ErrEmptyPortfolio = errors.New("portfolio has no proposals")
)
