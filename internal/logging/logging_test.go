package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/biofeas/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, logging.ParseLevel(tt.in))
		})
	}
}

func TestNewLogger_JSONWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{Level: "debug", Format: logging.FormatJSON}, &buf)
	ctx := logging.ContextWithTraceID(context.Background(), "trace-123")

	logger.Info().Ctx(ctx).Str("k", "v").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "trace-123", entry[logging.TraceIDField])
	assert.Equal(t, "v", entry["k"])
}

func TestNewLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{Level: "error", Format: logging.FormatJSON}, &buf)
	logger.Info().Msg("dropped")
	assert.Empty(t, buf.String())
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	base := logging.NewLogger(logging.Config{Format: logging.FormatJSON}, &buf)
	logging.ComponentLogger(base, "engine").Info().Msg("x")
	assert.Contains(t, buf.String(), `"component":"engine"`)
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, logging.TraceIDFromContext(ctx))

	generated := logging.GetOrGenerateTraceID(ctx)
	assert.Len(t, generated, 26)

	ctx = logging.ContextWithTraceID(ctx, generated)
	assert.Equal(t, generated, logging.GetOrGenerateTraceID(ctx))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{Format: logging.FormatJSON}, &buf)
	ctx := logger.WithContext(context.Background())

	logging.FromContext(ctx).Info().Msg("via ctx")
	assert.Contains(t, buf.String(), "via ctx")

	fallback := logging.FromContext(context.Background())
	require.NotNil(t, fallback)
	assert.Equal(t, zerolog.Disabled, fallback.GetLevel())
	assert.False(t, fallback.Debug().Enabled())
}

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "biofeas.log")
	result := logging.NewLoggerWithPath(logging.Config{Output: logging.OutputFile, File: path})
	t.Cleanup(func() { _ = result.Close() })

	require.True(t, result.UsingFile)
	assert.False(t, result.FallbackUsed)
	assert.Equal(t, path, result.FilePath)

	result.Logger.Info().Msg("to file")
	require.NoError(t, result.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"to file"`)
}

func TestNewLoggerWithPath_Fallback(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	result := logging.NewLoggerWithPath(logging.Config{
		Output: logging.OutputFile,
		File:   filepath.Join(blocker, "biofeas.log"),
	})
	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
}

func TestNewLoggerWithPath_Stderr(t *testing.T) {
	result := logging.NewLoggerWithPath(logging.Config{Output: logging.OutputStderr})
	assert.False(t, result.UsingFile)
	assert.False(t, result.FallbackUsed)
	assert.NoError(t, result.Close())
}

func TestPrintMessages(t *testing.T) {
	var buf bytes.Buffer
	logging.PrintLogPathMessage(&buf, "/tmp/x.log")
	logging.PrintFallbackWarning(&buf, "denied")
	assert.Contains(t, buf.String(), "Logging to /tmp/x.log")
	assert.Contains(t, buf.String(), "denied")
}
