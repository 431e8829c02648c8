package proposal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/biofeas/internal/feasibility"
)

// SupportedSchema is the semver constraint a file's schema_version must meet.
const SupportedSchema = "^1.0"

// CurrentSchemaVersion is written by tools that generate proposal files.
const CurrentSchemaVersion = "1.0.0"

// Format is a proposal file encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Proposal is one named set of feasibility inputs.
type Proposal struct {
	SchemaVersion string             `yaml:"schema_version,omitempty" json:"schema_version,omitempty"`
	Name          string             `yaml:"name"                     json:"name"`
	Inputs        feasibility.Inputs `yaml:"inputs"                   json:"inputs"`
}

// Portfolio is a list of proposals evaluated together.
type Portfolio struct {
	SchemaVersion string     `yaml:"schema_version,omitempty" json:"schema_version,omitempty"`
	Name          string     `yaml:"name,omitempty"           json:"name,omitempty"`
	Proposals     []Proposal `yaml:"proposals"                json:"proposals"`
}

// rawProposal defers decoding of inputs so absent keys can fall back to a
// base record and unknown keys can be rejected.
type rawProposal struct {
	SchemaVersion string         `yaml:"schema_version" json:"schema_version"`
	Name          string         `yaml:"name"           json:"name"`
	Inputs        map[string]any `yaml:"inputs"         json:"inputs"`
}

type rawPortfolio struct {
	SchemaVersion string        `yaml:"schema_version" json:"schema_version"`
	Name          string        `yaml:"name"           json:"name"`
	Proposals     []rawProposal `yaml:"proposals"      json:"proposals"`
}

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q (use .yaml, .yml or .json)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// CheckSchema reports whether version satisfies SupportedSchema. An empty
// version is accepted.
func CheckSchema(version string) error {
	if version == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrIncompatibleSchema, version, err)
	}
	constraint, err := semver.NewConstraint(SupportedSchema)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (supported: %s)", ErrIncompatibleSchema, version, SupportedSchema)
	}
	return nil
}

// Load reads a single proposal file. Inputs it omits come from base. A
// proposal without a name is named after the file.
func Load(path string, base feasibility.Inputs) (*Proposal, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading proposal %s: %w", path, err)
	}

	p, err := Parse(data, format, base)
	if err != nil {
		return nil, fmt.Errorf("loading proposal %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// Parse decodes a single proposal.
func Parse(data []byte, format Format, base feasibility.Inputs) (*Proposal, error) {
	var raw rawProposal
	if err := decode(data, format, &raw); err != nil {
		return nil, err
	}
	if err := CheckSchema(raw.SchemaVersion); err != nil {
		return nil, err
	}
	return raw.resolve(base)
}

// LoadPortfolio reads a portfolio file. Unnamed proposals are named by
// position ("proposal-1", ...).
func LoadPortfolio(path string, base feasibility.Inputs) (*Portfolio, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading portfolio %s: %w", path, err)
	}

	pf, err := ParsePortfolio(data, format, base)
	if err != nil {
		return nil, fmt.Errorf("loading portfolio %s: %w", path, err)
	}
	return pf, nil
}

// ParsePortfolio decodes a portfolio.
func ParsePortfolio(data []byte, format Format, base feasibility.Inputs) (*Portfolio, error) {
	var raw rawPortfolio
	if err := decode(data, format, &raw); err != nil {
		return nil, err
	}
	if err := CheckSchema(raw.SchemaVersion); err != nil {
		return nil, err
	}
	if len(raw.Proposals) == 0 {
		return nil, ErrEmptyPortfolio
	}

	pf := &Portfolio{
		SchemaVersion: raw.SchemaVersion,
		Name:          raw.Name,
		Proposals:     make([]Proposal, 0, len(raw.Proposals)),
	}
	for i, rp := range raw.Proposals {
		if rp.SchemaVersion == "" {
			rp.SchemaVersion = raw.SchemaVersion
		}
		p, err := rp.resolve(base)
		if err != nil {
			return nil, fmt.Errorf("proposal %d: %w", i+1, err)
		}
		if p.Name == "" {
			p.Name = fmt.Sprintf("proposal-%d", i+1)
		}
		pf.Proposals = append(pf.Proposals, *p)
	}
	return pf, nil
}

func decode(data []byte, format Format, v any) error {
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("parsing YAML: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("parsing JSON: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}

func (rp rawProposal) resolve(base feasibility.Inputs) (*Proposal, error) {
	inputs, err := applyMap(base, rp.Inputs)
	if err != nil {
		return nil, err
	}
	return &Proposal{
		SchemaVersion: rp.SchemaVersion,
		Name:          rp.Name,
		Inputs:        inputs,
	}, nil
}

// applyMap sets each key of values on a copy of base. Keys are applied in
// sorted order so the first reported error is stable.
func applyMap(base feasibility.Inputs, values map[string]any) (feasibility.Inputs, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := base
	for _, key := range keys {
		field, ok := LookupField(key)
		if !ok {
			return base, fmt.Errorf("%w: %q", ErrUnknownField, key)
		}
		v, err := toFloat(values[key])
		if err != nil {
			return base, fmt.Errorf("%w: %s: %w", ErrInvalidValue, key, err)
		}
		if err = field.Set(&out, v); err != nil {
			return base, err
		}
	}
	return out, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	case json.Number:
		return n.Float64()
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}
