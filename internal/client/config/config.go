package config

import "time"

// Config holds runtime settings for the newscheck CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API, including the /api prefix.
//   - WSEndpoint: websocket endpoint streaming feedback notifications.
//   - DatabasePath: path to the local sqlite database (tokens + record cache).
//   - RequestTimeout: per-request timeout for API calls.
//
// Units: RequestTimeout is a time.Duration (e.g., 10*time.Second).
type Config struct {
	APIBaseURL     string
	WSEndpoint     string
	DatabasePath   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000/api"
	c.WSEndpoint = "ws://localhost:5000/ws/feedback"
	c.DatabasePath = "newscheck.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
