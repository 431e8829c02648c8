// Package proposal turns user-supplied material into feasibility inputs:
// proposal and portfolio files in YAML or JSON, and key=value overrides
// from the command line or the interactive editor. Fields a source leaves
// out are taken from a caller-supplied base, normally the configured
// defaults.
package proposal
