package config

import "time"

// Config holds runtime settings for the postboard CLI.
//
// Fields:
//   - ServerURL: base URL of the API server.
//   - DBPath: SQLite file holding the durable session. Empty selects
//     session.db inside the per-user data directory.
//   - RequestTimeout: upper bound for a single API call.
type Config struct {
	ServerURL      string
	DBPath         string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.DBPath = ""
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
