package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:3001", c.APIBaseURL)
	assert.Equal(t, "onboarder.db", c.DatabasePath)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 5*time.Second, c.PollInterval)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "welcome", c.StartView)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:3001", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"api_base_url":  "http://json:1",
		"database_path": "json.db",
		"log_level":     "warn",
	})
	t.Setenv("ONBOARDER_DATABASE_PATH", "env.db")
	t.Setenv("ONBOARDER_LOG_LEVEL", "debug")

	os.Args = []string{"testbin", "-c", path, "-l", "error"}
	cfg := LoadConfig()

	assert.Equal(t, "http://json:1", cfg.APIBaseURL, "json over defaults")
	assert.Equal(t, "env.db", cfg.DatabasePath, "env over json")
	assert.Equal(t, "error", cfg.LogLevel, "flags over env")
}

func TestLoadConfig_KeepsSubSecondDurations(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("environment", func(t *testing.T) {
		t.Setenv("ONBOARDER_REQUEST_TIMEOUT", "1500ms")
		t.Setenv("ONBOARDER_POLL_INTERVAL", "750ms")
		os.Args = []string{"testbin"}

		cfg := LoadConfig()

		assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
		assert.Equal(t, 750*time.Millisecond, cfg.PollInterval)
	})

	t.Run("json", func(t *testing.T) {
		path := writeTempJSON(t, "", "", map[string]any{
			"request_timeout": "250ms",
			"poll_interval":   "2500ms",
		})
		os.Args = []string{"testbin", "-c", path}

		cfg := LoadConfig()

		assert.Equal(t, 250*time.Millisecond, cfg.RequestTimeout)
		assert.Equal(t, 2500*time.Millisecond, cfg.PollInterval)
	})

	t.Run("flags still override", func(t *testing.T) {
		t.Setenv("ONBOARDER_POLL_INTERVAL", "750ms")
		os.Args = []string{"testbin", "-i", "3"}

		cfg := LoadConfig()

		assert.Equal(t, 3*time.Second, cfg.PollInterval)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	})
}
