package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/rshade/biofeas/internal/feasibility"
	"github.com/rshade/biofeas/internal/greenops"
)

// Output formats.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// Environment variables read by the config layer.
const (
	EnvHome         = "BIOFEAS_HOME"
	EnvProjectDir   = "BIOFEAS_PROJECT_DIR"
	EnvLogLevel     = "BIOFEAS_LOG_LEVEL"
	EnvOutputFormat = "BIOFEAS_OUTPUT_FORMAT"
	EnvConcurrency  = "BIOFEAS_CONCURRENCY"
)

const (
	configFileName   = "config.yaml"
	defaultPrecision = 2
	maxPrecision     = 6
	outputTypeFile   = "file"
)

// Validation errors.
var (
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidPrecision    = errors.New("invalid output precision")
	ErrInvalidLogLevel     = errors.New("invalid log level")
	ErrInvalidLogFormat    = errors.New("invalid log format")
	ErrInvalidConcurrency  = errors.New("invalid portfolio concurrency")
	ErrInvalidDefaults     = errors.New("invalid default inputs")
)

// Config is the biofeas configuration file.
type Config struct {
	Output    OutputConfig       `yaml:"output"    json:"output"`
	Logging   LoggingConfig      `yaml:"logging"   json:"logging"`
	Defaults  feasibility.Inputs `yaml:"defaults"  json:"defaults"`
	Portfolio PortfolioConfig    `yaml:"portfolio" json:"portfolio"`
	Display   DisplayConfig      `yaml:"display"   json:"display"`

	configPath string
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	Precision     int    `yaml:"precision"      json:"precision"`
}

// LoggingConfig controls the logger built at startup.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// PortfolioConfig controls batch evaluation. Zero concurrency means one
// worker per CPU.
type PortfolioConfig struct {
	Concurrency int `yaml:"concurrency" json:"concurrency"`
}

// DisplayConfig controls how money is shown in tables.
type DisplayConfig struct {
	CurrencySymbol string `yaml:"currency_symbol" json:"currency_symbol"`
	Crores         bool   `yaml:"crores"          json:"crores"`
}

// DefaultInputs is the reference dairy-farm proposal used to fill fields a
// proposal leaves out.
func DefaultInputs() feasibility.Inputs {
	return feasibility.Inputs{
		CattleCount:        1000,
		AvgDungPerCattle:   30,
		MethanePotential:   0.35,
		PlantEfficiency:    0.75,
		SellingPrice:       45,
		CarbonCreditPrice:  1200,
		ConstructionCost:   50_000_000,
		OperatingCostRatio: 0.15,
		SubsidyPercentage:  60,
		DiscountRate:       8,
	}
}

// Default returns the built-in configuration, before any file or
// environment is applied.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			Precision:     defaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Defaults: DefaultInputs(),
		Display: DisplayConfig{
			CurrencySymbol: greenops.DefaultCurrencySymbol,
			Crores:         true,
		},
	}
}

// New returns the effective global configuration: defaults, then the global
// config file if present, then environment overrides. A malformed file is
// logged and ignored.
func New() *Config {
	cfg := Default()

	path, err := DefaultConfigPath()
	if err == nil {
		cfg.configPath = path
		if _, statErr := os.Stat(path); statErr == nil {
			if loadErr := cfg.loadFile(path); loadErr != nil {
				GetLogger().Warn().
					Err(loadErr).
					Str("path", path).
					Msg("ignoring unreadable config file")
				cfg = Default()
				cfg.configPath = path
			}
		}
	}

	cfg.applyEnv()
	return cfg
}

// Load reads the config file at path on top of the defaults and applies
// environment overrides. Unlike New, a missing or malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.configPath = path
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := os.Getenv(EnvConcurrency); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Portfolio.Concurrency = n
		}
	}
}

// ConfigPath returns the file this config was loaded from or will be saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes where Save writes.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the config as YAML, creating parent directories.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	switch c.Output.DefaultFormat {
	case FormatTable, FormatJSON, FormatNDJSON:
	default:
		return fmt.Errorf("%w: %q (must be table, json, or ndjson)", ErrInvalidOutputFormat, c.Output.DefaultFormat)
	}
	if c.Output.Precision < 0 || c.Output.Precision > maxPrecision {
		return fmt.Errorf("%w: %d (must be 0-%d)", ErrInvalidPrecision, c.Output.Precision, maxPrecision)
	}

	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %q (must be console or json)", ErrInvalidLogFormat, c.Logging.Format)
	}

	if c.Portfolio.Concurrency < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidConcurrency, c.Portfolio.Concurrency)
	}

	if err := c.Defaults.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDefaults, err)
	}
	return nil
}

// DefaultConfigPath returns the global config file location.
func DefaultConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
