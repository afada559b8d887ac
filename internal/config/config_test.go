package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// setupAndRestoreEnv clears the given keys, applies new values and returns a restore func.
func setupAndRestoreEnv(t *testing.T, envVars map[string]string) func() {
	t.Helper()
	keys := []string{
		"SERVER_PORT", "LOG_LEVEL", "GIN_MODE", "GITHUB_TOKEN", "GITHUB_API_URL", "FRONTEND_URL",
	}
	originalEnv := make(map[string]string)
	for _, key := range keys {
		originalEnv[key] = os.Getenv(key)
		os.Unsetenv(key)
	}
	for key, value := range envVars {
		os.Setenv(key, value)
	}
	return func() {
		for key := range envVars {
			os.Unsetenv(key)
		}
		for key, value := range originalEnv {
			if value != "" {
				os.Setenv(key, value)
			}
		}
	}
}

func validConfig() Config {
	return Config{
		Server: ServerConfig{
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     120 * time.Second,
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
		},
		GitHub: GitHubConfig{
			APIURL:  "https://api.github.com/",
			Timeout: 30 * time.Second,
		},
		GinMode: "release",
	}
}

func TestLoadFromEnv_DefaultValues(t *testing.T) {
	restore := setupAndRestoreEnv(t, map[string]string{})
	defer restore()

	cfg := LoadFromEnv()
	assert.Equal(t, ":5000", cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Server.FrontendURL)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "https://api.github.com/", cfg.GitHub.APIURL)
	assert.Empty(t, cfg.GitHub.Token)
	assert.Equal(t, "release", cfg.GinMode)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv_CustomValues(t *testing.T) {
	restore := setupAndRestoreEnv(t, map[string]string{
		"SERVER_PORT":  ":9090",
		"LOG_LEVEL":    "debug",
		"GIN_MODE":     "debug",
		"GITHUB_TOKEN": "ghp_example",
	})
	defer restore()

	cfg := LoadFromEnv()
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "debug", cfg.GinMode)
	assert.Equal(t, "ghp_example", cfg.GitHub.Token)
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("invalid server config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.ReadTimeout = 0
		err := cfg.Validate()
		assert.ErrorContains(t, err, "server config validation failed")
	})

	t.Run("invalid logger config", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logger.Level = "verbose"
		err := cfg.Validate()
		assert.ErrorContains(t, err, "logger config validation failed")
	})

	t.Run("invalid github config", func(t *testing.T) {
		cfg := validConfig()
		cfg.GitHub.APIURL = "not a url"
		err := cfg.Validate()
		assert.ErrorContains(t, err, "github config validation failed")
	})

	t.Run("invalid gin mode", func(t *testing.T) {
		cfg := validConfig()
		cfg.GinMode = "invalid"
		err := cfg.Validate()
		assert.ErrorContains(t, err, "invalid GIN_MODE")
	})

	t.Run("valid gin modes", func(t *testing.T) {
		for _, mode := range []string{"debug", "release", "test"} {
			cfg := validConfig()
			cfg.GinMode = mode
			assert.NoError(t, cfg.Validate(), "mode %s should be valid", mode)
		}
	})
}
