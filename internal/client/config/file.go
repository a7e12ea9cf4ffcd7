package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/useradmin/internal/flagx"
)

// fileConfig is a DTO used exclusively for config-file unmarshalling.
// Durations are strings in time.ParseDuration form ("30s", "2m").
type fileConfig struct {
	APIBaseURL        string `json:"api_base_url" yaml:"api_base_url"`
	StatsPollInterval string `json:"stats_poll_interval" yaml:"stats_poll_interval"`
	HTTPTimeout       string `json:"http_timeout" yaml:"http_timeout"`
}

// parseFile overlays cfg with values from the file named by the -c/-config
// flag. Files ending in .yaml or .yml are parsed as YAML, everything else
// as JSON. Missing flag means no file is loaded. Read or parse errors
// panic, matching the fail-fast startup behavior of the flag stage.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc fileConfig
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	applyFileConfig(cfg, fc)
}

func applyFileConfig(cfg *Config, fc fileConfig) {
	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.StatsPollInterval != "" {
		if d, err := time.ParseDuration(fc.StatsPollInterval); err == nil {
			cfg.StatsPollInterval = d
		}
	}
	if fc.HTTPTimeout != "" {
		if d, err := time.ParseDuration(fc.HTTPTimeout); err == nil {
			cfg.HTTPTimeout = d
		}
	}
}
