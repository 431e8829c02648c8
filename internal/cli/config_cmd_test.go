package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/biofeas/internal/config"
)

func TestConfigInit_Global(t *testing.T) {
	home := isolateCLI(t)
	path := filepath.Join(home, "config.yaml")

	out, err := executeCLI(t, "config", "init", "--global")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultInputs(), cfg.Defaults)

	_, err = executeCLI(t, "config", "init", "--global")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration file already exists, use --force to overwrite")

	_, err = executeCLI(t, "config", "init", "--global", "--force")
	require.NoError(t, err)
}

func TestConfigInit_Project(t *testing.T) {
	isolateCLI(t)
	root := t.TempDir()

	out, err := executeCLI(t, "--project-dir", root, "config", "init")
	require.NoError(t, err)

	projectDir := filepath.Join(root, config.ProjectDirName)
	assert.Contains(t, out, filepath.Join(projectDir, "config.yaml"))
	assert.Contains(t, out, "Created .gitignore")

	assert.FileExists(t, filepath.Join(projectDir, "config.yaml"))
	gitignore, err := os.ReadFile(filepath.Join(projectDir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, config.GitignoreContent(), string(gitignore))
}

func TestConfigShow(t *testing.T) {
	isolateCLI(t)

	out, err := executeCLI(t, "config", "show")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
	assert.Equal(t, config.DefaultInputs(), cfg.Defaults)

	out, err = executeCLI(t, "config", "show", "-o", "json")
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &raw))
	assert.Contains(t, raw, "defaults")

	_, err = executeCLI(t, "config", "show", "-o", "toml")
	require.ErrorIs(t, err, config.ErrInvalidOutputFormat)
}

func TestConfigShow_ProjectOverlayAndEnv(t *testing.T) {
	isolateCLI(t)
	root := t.TempDir()
	projectDir := filepath.Join(root, config.ProjectDirName)
	require.NoError(t, os.MkdirAll(projectDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, "config.yaml"), []byte(`portfolio:
  concurrency: 3
display:
  currency_symbol: "Rs "
  crores: false
`), 0o600))
	t.Setenv(config.EnvLogLevel, "warn")

	out, err := executeCLI(t, "--project-dir", root, "config", "show")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 3, cfg.Portfolio.Concurrency)
	assert.Equal(t, "Rs ", cfg.Display.CurrencySymbol)
	assert.False(t, cfg.Display.Crores)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestConfigValidate(t *testing.T) {
	isolateCLI(t)

	out, err := executeCLI(t, "config", "validate", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "Default herd: 1000 cattle")
	assert.Contains(t, out, "Default construction cost: ₹5.00 Cr")
}

func TestConfigValidate_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantIs  error
	}{
		{"precision", "output:\n  precision: 9\n", config.ErrInvalidPrecision},
		{"log level", "logging:\n  level: loud\n", config.ErrInvalidLogLevel},
		{"concurrency", "portfolio:\n  concurrency: -2\n", config.ErrInvalidConcurrency},
		{"defaults", "defaults:\n  plant_efficiency: 2\n", config.ErrInvalidDefaults},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateCLI(t)
			// Let the file's logging section through.
			t.Setenv(config.EnvLogLevel, "")
			path := writeFile(t, "config.yaml", tt.content)

			_, err := executeCLI(t, "--config", path, "config", "validate")
			require.Error(t, err)
			require.ErrorIs(t, err, tt.wantIs)
			assert.Contains(t, err.Error(), "configuration validation failed")
		})
	}
}

func TestExplicitConfig_Missing(t *testing.T) {
	isolateCLI(t)

	_, err := executeCLI(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "config", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigInit_GlobalCreatesHome(t *testing.T) {
	isolateCLI(t)
	home := filepath.Join(t.TempDir(), "fresh", ".biofeas")
	t.Setenv(config.EnvHome, home)

	_, err := executeCLI(t, "config", "init", "--global")
	require.NoError(t, err)
	assert.DirExists(t, home)
	assert.FileExists(t, filepath.Join(home, "config.yaml"))
}
