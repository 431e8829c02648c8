package proposal

import (
	"fmt"
	"strings"

	"github.com/rshade/biofeas/internal/feasibility"
)

const (
	// maxOverrides bounds the number of --set flags per invocation.
	maxOverrides = 100
	// maxOverrideKeyLen bounds a single key.
	maxOverrideKeyLen = 128
	// maxOverrideValueLen bounds a single value.
	maxOverrideValueLen = 64

	keyValueParts = 2
)

// Override is one parsed key=value pair.
type Override struct {
	Key   string
	Value string
}

// ParseInputOverrides parses key=value strings, rejecting unknown keys and
// oversized input. Later pairs for the same key win when applied.
func ParseInputOverrides(props []string) ([]Override, error) {
	if len(props) > maxOverrides {
		return nil, fmt.Errorf("%w: too many overrides: %d (max %d)", ErrInvalidOverride, len(props), maxOverrides)
	}

	overrides := make([]Override, 0, len(props))
	for _, p := range props {
		parts := strings.SplitN(p, "=", keyValueParts)
		if len(parts) != keyValueParts {
			return nil, fmt.Errorf("%w: %q: expected key=value", ErrInvalidOverride, p)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			return nil, fmt.Errorf("%w: key cannot be empty in %q", ErrInvalidOverride, p)
		}
		if len(key) > maxOverrideKeyLen {
			return nil, fmt.Errorf("%w: key too long: %d bytes (max %d)", ErrInvalidOverride, len(key), maxOverrideKeyLen)
		}
		if len(value) > maxOverrideValueLen {
			return nil, fmt.Errorf("%w: value too large for key %q: %d bytes (max %d)",
				ErrInvalidOverride, key, len(value), maxOverrideValueLen)
		}
		if _, ok := LookupField(key); !ok {
			return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownField, key, strings.Join(FieldKeys(), ", "))
		}
		overrides = append(overrides, Override{Key: key, Value: value})
	}
	return overrides, nil
}

// ApplyOverrides returns base with each override applied in order.
func ApplyOverrides(base feasibility.Inputs, overrides []Override) (feasibility.Inputs, error) {
	out := base
	for _, o := range overrides {
		field, ok := LookupField(o.Key)
		if !ok {
			return base, fmt.Errorf("%w: %q", ErrUnknownField, o.Key)
		}
		if err := field.Parse(&out, o.Value); err != nil {
			return base, err
		}
	}
	return out, nil
}
