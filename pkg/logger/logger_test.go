package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	appConfig "github.com/festy23/fixthisbug/internal/config"
)

func TestNew(t *testing.T) {
	t.Run("creates logger from env", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "info")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("LOG_OUTPUT", "stdout")

		logger, err := New()
		require.NoError(t, err)
		require.NotNil(t, logger)
	})

	t.Run("creates development logger from env", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "console")

		logger, err := New()
		require.NoError(t, err)
		require.NotNil(t, logger)
	})
}

func TestNewWithConfig(t *testing.T) {
	tests := []struct {
		name      string
		cfg       appConfig.LoggerConfig
		wantLevel zapcore.Level
	}{
		{
			name:      "production logger with info level",
			cfg:       appConfig.LoggerConfig{Level: "info", Format: "json", Output: "stdout"},
			wantLevel: zapcore.InfoLevel,
		},
		{
			name:      "development logger with debug level",
			cfg:       appConfig.LoggerConfig{Level: "debug", Format: "console", Output: "stdout"},
			wantLevel: zapcore.DebugLevel,
		},
		{
			name:      "warn level to stderr",
			cfg:       appConfig.LoggerConfig{Level: "warn", Format: "json", Output: "stderr"},
			wantLevel: zapcore.WarnLevel,
		},
		{
			name:      "invalid level falls back to info",
			cfg:       appConfig.LoggerConfig{Level: "verbose", Format: "json", Output: "stdout"},
			wantLevel: zapcore.InfoLevel,
		},
		{
			name:      "empty output defaults to stdout",
			cfg:       appConfig.LoggerConfig{Level: "error", Format: "json"},
			wantLevel: zapcore.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewWithConfig(tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel, logger.Level())
		})
	}
}

func TestNewWithConfig_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	logger, err := NewWithConfig(appConfig.LoggerConfig{
		Level:   "info",
		Format:  "json",
		Output:  path,
		Service: "fixthisbug-test",
	})
	require.NoError(t, err)

	logger.Infow("repository upserted", "owner", "acme", "name", "widgets")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	assert.Equal(t, "repository upserted", entry["msg"])
	assert.Equal(t, "fixthisbug-test", entry["service"])
	assert.Equal(t, "acme", entry["owner"])
	assert.Contains(t, entry, "timestamp")
}
