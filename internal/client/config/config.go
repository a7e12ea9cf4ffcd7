package config

import "time"

// Config holds runtime settings for the useradmin CLI.
type Config struct {
	// APIBaseURL is the root of the backend REST surface, including the
	// /api prefix.
	APIBaseURL string

	// StatsPollInterval is how often the dashboard stats are refreshed in
	// the background.
	StatsPollInterval time.Duration

	// HTTPTimeout bounds every request; there are no per-operation
	// timeouts beyond it.
	HTTPTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080/api"
	c.StatsPollInterval = 30 * time.Second
	c.HTTPTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the config file, the environment, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
