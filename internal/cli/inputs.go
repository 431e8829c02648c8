package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/biofeas/internal/config"
	"github.com/rshade/biofeas/internal/feasibility"
	"github.com/rshade/biofeas/internal/proposal"
)

// defaultProposalName labels a report whose inputs came only from flags
// and config defaults.
const defaultProposalName = "proposal"

// InputParams holds the input sources shared by analyze and scenarios.
// Exported for testing.
type InputParams struct {
	File string
	Name string
	Set  []string
}

// addInputFlags registers --file, --name, --set and one flag per input
// field (--cattle-count, --plant-efficiency, ...).
func addInputFlags(cmd *cobra.Command, params *InputParams) {
	cmd.Flags().StringVarP(&params.File, "file", "f", "", "Proposal file (.yaml, .yml or .json)")
	cmd.Flags().StringVar(&params.Name, "name", "", "Proposal name shown in reports")
	cmd.Flags().StringArrayVar(&params.Set, "set", nil, "Input override key=value (repeatable)")

	for _, field := range proposal.Fields() {
		cmd.Flags().String(InputFlagName(field.Key), "", field.Label)
	}
}

// InputFlagName returns the CLI flag for an input key
// ("plant_efficiency" -> "plant-efficiency").
func InputFlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// ResolveInputs combines every input source. Later sources win: config
// defaults, then the proposal file, then --set pairs, then individual
// input flags.
func ResolveInputs(cmd *cobra.Command, params InputParams, defaults feasibility.Inputs) (string, feasibility.Inputs, error) {
	name := defaultProposalName
	inputs := defaults

	if params.File != "" {
		p, err := proposal.Load(params.File, defaults)
		if err != nil {
			return "", feasibility.Inputs{}, err
		}
		name = p.Name
		inputs = p.Inputs
	}

	if len(params.Set) > 0 {
		overrides, err := proposal.ParseInputOverrides(params.Set)
		if err != nil {
			return "", feasibility.Inputs{}, fmt.Errorf("parsing --set: %w", err)
		}
		if inputs, err = proposal.ApplyOverrides(inputs, overrides); err != nil {
			return "", feasibility.Inputs{}, fmt.Errorf("applying --set: %w", err)
		}
	}

	for _, field := range proposal.Fields() {
		flagName := InputFlagName(field.Key)
		if !cmd.Flags().Changed(flagName) {
			continue
		}
		raw, err := cmd.Flags().GetString(flagName)
		if err != nil {
			return "", feasibility.Inputs{}, fmt.Errorf("reading --%s: %w", flagName, err)
		}
		if err = field.Parse(&inputs, raw); err != nil {
			return "", feasibility.Inputs{}, fmt.Errorf("--%s: %w", flagName, err)
		}
	}

	if params.Name != "" {
		name = params.Name
	}
	return name, inputs, nil
}

// resolveOutputFormat returns the --output value, or the configured default
// when the flag was not given.
func resolveOutputFormat(flagValue string) (string, error) {
	format := flagValue
	if format == "" {
		format = config.GetDefaultOutputFormat()
	}
	switch format {
	case config.FormatTable, config.FormatJSON, config.FormatNDJSON:
		return format, nil
	default:
		return "", fmt.Errorf("%w: %q (must be table, json, or ndjson)", config.ErrInvalidOutputFormat, format)
	}
}

// addOutputFlag registers --output with a config-driven default.
func addOutputFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "output", "o", "",
		"Output format: table, json, or ndjson (default from config)")
}
