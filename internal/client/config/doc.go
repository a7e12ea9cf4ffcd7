// Package config loads runtime configuration for the useradmin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file, JSON or YAML by extension, selected via -c or
//     -config (see parseFile).
//  3. Environment variables, with a .env file loaded first when present
//     (see parseEnv).
//  4. Command-line flags (see parseFlags), which override everything.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-i int      stats poll interval (seconds)
//
// Environment variables
//
//	USERADMIN_API_BASE_URL
//	USERADMIN_STATS_POLL_INTERVAL   duration, e.g. "30s"
//	USERADMIN_HTTP_TIMEOUT          duration, e.g. "30s"
//
// Config file schema (YAML shown; JSON uses the same keys):
//
//	api_base_url: http://localhost:8080/api
//	stats_poll_interval: 30s
//	http_timeout: 30s
package config
