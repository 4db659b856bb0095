package testutil

import (
	"fmt"
	"os"
	"time"

	"github.com/mstoykov/envconfig"

	"github.com/thesyncim/signup/pkg/signup"
)

// DefaultBaseURL is where the application runs when started by hand.
const DefaultBaseURL = "http://localhost:3000/"

// DefaultSelectTimeout bounds the form test's selector waits.
const DefaultSelectTimeout = 16 * time.Second

// debugSlowMotion is the delay between browser actions in debug mode.
const debugSlowMotion = 35 * time.Millisecond

// Config is the suite configuration read from the environment.
type Config struct {
	// Debug opens a visible browser with devtools and slows every action.
	Debug bool `envconfig:"E2E_DEBUG"`
	// BaseURL targets an already running application. When empty the suite
	// starts the bundled server on a random port.
	BaseURL       string        `envconfig:"E2E_BASE_URL"`
	SelectTimeout time.Duration `envconfig:"E2E_SELECT_TIMEOUT"`
	BlockPattern  string        `envconfig:"E2E_BLOCK_PATTERN"`
	// ScreenshotDir receives a screenshot of every failed subtest.
	ScreenshotDir string `envconfig:"E2E_SCREENSHOT_DIR"`
	BrowserBin    string `envconfig:"E2E_BROWSER_BIN"`
}

// DefaultConfig returns the configuration used when no variable is set.
func DefaultConfig() Config {
	return Config{
		SelectTimeout: DefaultSelectTimeout,
		BlockPattern:  signup.DefaultBlockPattern,
	}
}

// LoadConfig overlays environment variables read through lookup on the
// defaults. A nil lookup reads the process environment.
func LoadConfig(lookup func(string) (string, bool)) (Config, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	cfg := DefaultConfig()
	if err := envconfig.Process("", &cfg, lookup); err != nil {
		return Config{}, fmt.Errorf("failed to read e2e config: %w", err)
	}
	if cfg.SelectTimeout <= 0 {
		return Config{}, fmt.Errorf("E2E_SELECT_TIMEOUT must be positive, got %v", cfg.SelectTimeout)
	}
	return cfg, nil
}

// BrowserConfig derives the browser launch options.
func (c Config) BrowserConfig() BrowserConfig {
	bc := DefaultBrowserConfig()
	bc.Bin = c.BrowserBin
	if c.Debug {
		bc.Headless = false
		bc.Devtools = true
		bc.SlowMotion = debugSlowMotion
	}
	return bc
}
