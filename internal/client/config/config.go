package config

import "time"

// Config holds runtime settings for the onboarding CLI.
//
// Fields:
//   - APIBaseURL: base URL of the onboarding REST API.
//   - DatabasePath: SQLite file holding the persisted session.
//   - RequestTimeout: upper bound for a single API call.
//   - PollInterval: refresh period of the user directory.
//   - LogLevel: debug, info, warn or error.
//   - StartView: view the REPL opens on (welcome, signin, signup, admin, data, ...).
type Config struct {
	APIBaseURL     string        `env:"API_BASE_URL"`
	DatabasePath   string        `env:"DATABASE_PATH"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	PollInterval   time.Duration `env:"POLL_INTERVAL"`
	LogLevel       string        `env:"LOG_LEVEL"`
	StartView      string        `env:"START_VIEW"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3001"
	c.DatabasePath = "onboarder.db"
	c.RequestTimeout = 10 * time.Second
	c.PollInterval = 5 * time.Second
	c.LogLevel = "info"
	c.StartView = "welcome"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
