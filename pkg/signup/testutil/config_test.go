package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(mapLookup(nil))
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.BaseURL)
	assert.Equal(t, 16*time.Second, cfg.SelectTimeout)
	assert.Equal(t, "https://swapi.co/api/", cfg.BlockPattern)
	assert.Empty(t, cfg.ScreenshotDir)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	cfg, err := LoadConfig(mapLookup(map[string]string{
		"E2E_DEBUG":          "true",
		"E2E_BASE_URL":       "http://localhost:3000/",
		"E2E_SELECT_TIMEOUT": "5s",
		"E2E_BLOCK_PATTERN":  "/external/",
		"E2E_SCREENSHOT_DIR": "/tmp/shots",
		"E2E_BROWSER_BIN":    "/usr/bin/chromium",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.Equal(t, "http://localhost:3000/", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.SelectTimeout)
	assert.Equal(t, "/external/", cfg.BlockPattern)
	assert.Equal(t, "/tmp/shots", cfg.ScreenshotDir)
	assert.Equal(t, "/usr/bin/chromium", cfg.BrowserBin)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(mapLookup(map[string]string{"E2E_DEBUG": "maybe"}))
	assert.Error(t, err)

	_, err = LoadConfig(mapLookup(map[string]string{"E2E_SELECT_TIMEOUT": "0s"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestConfig_BrowserConfig(t *testing.T) {
	bc := DefaultConfig().BrowserConfig()
	assert.True(t, bc.Headless)
	assert.False(t, bc.Devtools)
	assert.Zero(t, bc.SlowMotion)
	assert.Equal(t, 30*time.Second, bc.Timeout)

	cfg := DefaultConfig()
	cfg.Debug = true
	cfg.BrowserBin = "/opt/chrome"
	bc = cfg.BrowserConfig()
	assert.False(t, bc.Headless)
	assert.True(t, bc.Devtools)
	assert.Equal(t, 35*time.Millisecond, bc.SlowMotion)
	assert.Equal(t, "/opt/chrome", bc.Bin)
}
