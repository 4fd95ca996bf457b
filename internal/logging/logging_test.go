package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "INFO", expected: slog.LevelInfo},
		{input: "warn", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "verbose", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestNewStructured(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructured("warn", &buf)

	logger.Info("dropped")
	logger.Warn("kept", slog.String("path", "/api/v1/products"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "/api/v1/products", entry["path"])
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole("info", "production", &buf)

	console.Debug().Msg("hidden")
	console.Info().Str("method", "GET").Msg("incoming request")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "incoming request")
	assert.Contains(t, out, "method=GET")
}

func TestOutput(t *testing.T) {
	t.Run("stdout when no path", func(t *testing.T) {
		w := Output(FileOptions{})
		_, isFile := w.(*lumberjack.Logger)
		assert.False(t, isFile)
		assert.NoError(t, w.Close())
	})

	t.Run("rotating file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		w := Output(FileOptions{Path: path, MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 3})

		rotating, ok := w.(*lumberjack.Logger)
		require.True(t, ok)
		assert.Equal(t, path, rotating.Filename)

		_, err := w.Write([]byte("line\n"))
		require.NoError(t, err)
		assert.NoError(t, w.Close())
		assert.FileExists(t, path)
	})
}
