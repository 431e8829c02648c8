package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/biofeas/internal/config"
)

func makeProject(t *testing.T, root string) string {
	t.Helper()
	dir := filepath.Join(root, config.ProjectDirName)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	return dir
}

func TestResolveProjectDir_FlagOverridesEnv(t *testing.T) {
	envDir := t.TempDir()
	flagDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, envDir)

	got := config.ResolveProjectDir(context.Background(), flagDir, "/does/not/matter")
	assert.Equal(t, filepath.Join(flagDir, config.ProjectDirName), got)
}

func TestResolveProjectDir_EnvVar(t *testing.T) {
	envDir := t.TempDir()
	t.Setenv(config.EnvProjectDir, envDir)

	got := config.ResolveProjectDir(context.Background(), "", "/does/not/matter")
	assert.Equal(t, filepath.Join(envDir, config.ProjectDirName), got)
	assert.True(t, filepath.IsAbs(got))
}

func TestResolveProjectDir_NoDoubleAppend(t *testing.T) {
	t.Setenv(config.EnvProjectDir, "")
	dir := filepath.Join(t.TempDir(), config.ProjectDirName)

	got := config.ResolveProjectDir(context.Background(), dir, "")
	assert.Equal(t, dir, got)
}

func TestResolveProjectDir_WalkUp(t *testing.T) {
	t.Setenv(config.EnvProjectDir, "")
	root := t.TempDir()
	makeProject(t, root)

	subDir := filepath.Join(root, "farms", "north", "2026")
	require.NoError(t, os.MkdirAll(subDir, 0o750))

	got := config.ResolveProjectDir(context.Background(), "", subDir)
	assert.Equal(t, filepath.Join(root, config.ProjectDirName), got)
}

func TestFindProject_NotFound(t *testing.T) {
	_, err := config.FindProject(t.TempDir())
	// A .biofeas directory in an ancestor of the temp dir would be found;
	// only assert the sentinel when the walk fails.
	if err != nil {
		require.ErrorIs(t, err, config.ErrNoProject)
	}
}

func TestFindProject_IgnoresFileNamedLikeProject(t *testing.T) {
	root := t.TempDir()
	inner := filepath.Join(root, "inner")
	require.NoError(t, os.MkdirAll(inner, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(inner, config.ProjectDirName), []byte("x"), 0o600))
	makeProject(t, root)

	got, err := config.FindProject(inner)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestNewWithProjectDir(t *testing.T) {
	isolateHome(t)
	ctx := context.Background()

	t.Run("empty dir behaves like New", func(t *testing.T) {
		cfg := config.NewWithProjectDir(ctx, "")
		assert.Equal(t, config.New().Output, cfg.Output)
	})

	t.Run("missing overlay", func(t *testing.T) {
		cfg := config.NewWithProjectDir(ctx, t.TempDir())
		assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
	})

	t.Run("overlay merged", func(t *testing.T) {
		dir := makeProject(t, t.TempDir())
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
defaults:
  cattle_count: 40
portfolio:
  concurrency: 6
`), 0o600))

		cfg := config.NewWithProjectDir(ctx, dir)
		assert.Equal(t, 40, cfg.Defaults.CattleCount)
		assert.Equal(t, 6, cfg.Portfolio.Concurrency)
	})

	t.Run("env beats overlay", func(t *testing.T) {
		dir := makeProject(t, t.TempDir())
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("portfolio:\n  concurrency: 6\n"), 0o600))
		t.Setenv(config.EnvConcurrency, "1")

		cfg := config.NewWithProjectDir(ctx, dir)
		assert.Equal(t, 1, cfg.Portfolio.Concurrency)
	})

	t.Run("broken overlay falls back", func(t *testing.T) {
		dir := makeProject(t, t.TempDir())
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("output: [bad"), 0o600))

		cfg := config.NewWithProjectDir(ctx, dir)
		assert.Equal(t, config.FormatTable, cfg.Output.DefaultFormat)
	})
}

func TestResolvedProjectDir(t *testing.T) {
	orig := config.GetResolvedProjectDir()
	t.Cleanup(func() { config.SetResolvedProjectDir(orig) })

	config.SetResolvedProjectDir("/tmp/example/.biofeas")
	assert.Equal(t, "/tmp/example/.biofeas", config.GetResolvedProjectDir())

	config.SetResolvedProjectDir("")
	assert.Empty(t, config.GetResolvedProjectDir())
}
