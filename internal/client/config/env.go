package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	envBaseURL      = "USERADMIN_API_BASE_URL"
	envPollInterval = "USERADMIN_STATS_POLL_INTERVAL"
	envHTTPTimeout  = "USERADMIN_HTTP_TIMEOUT"
)

// parseEnv overlays cfg with environment variables. A .env file in the
// working directory is loaded first when present; real environment values
// win over .env entries (godotenv does not override existing variables).
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(envBaseURL); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv(envPollInterval); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.StatsPollInterval = d
		}
	}
	if v := os.Getenv(envHTTPTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.HTTPTimeout = d
		}
	}
}
