// Package config handles configuration for the API server: defaults, an
// optional JSON file, environment variables and command-line flags, applied
// in that order.
package config

import "time"

// Config holds runtime settings for the postboard server.
//
// Fields:
//   - Address: bind address of the HTTP API.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty runs on in-memory storage.
//   - SecretKey: HMAC secret for signing tokens (HS256). No default; the
//     server refuses to start without it.
//   - TokenTTL: lifetime of issued tokens.
//   - BcryptCost: work factor for password hashes.
//   - ShutdownTimeout: grace period for in-flight requests on stop.
//   - S3*: object storage for post images. Empty bucket disables images.
type Config struct {
	Address         string
	DatabaseDSN     string
	SecretKey       string
	TokenTTL        time.Duration
	BcryptCost      int
	ShutdownTimeout time.Duration
	S3RootUser      string
	S3RootPassword  string
	S3Bucket        string
	S3Region        string
	S3BaseEndpoint  string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Address = ":5000"
	c.DatabaseDSN = ""
	c.SecretKey = ""
	c.TokenTTL = 30 * 24 * time.Hour
	c.BcryptCost = 10
	c.ShutdownTimeout = 10 * time.Second
	c.S3Region = "us-east-1"
}

// ImagesEnabled reports whether post images can be stored.
func (c *Config) ImagesEnabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
