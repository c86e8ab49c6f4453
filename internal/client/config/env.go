package config

import "github.com/dmitrijs2005/postboard/internal/flagx"

const (
	EnvServerURL      = "POSTBOARD_SERVER_URL"
	EnvDBPath         = "POSTBOARD_CLIENT_DB"
	EnvRequestTimeout = "POSTBOARD_REQUEST_TIMEOUT"
)

func parseEnv(cfg *Config) {
	flagx.EnvString(&cfg.ServerURL, EnvServerURL)
	flagx.EnvString(&cfg.DBPath, EnvDBPath)
	if err := flagx.EnvDuration(&cfg.RequestTimeout, EnvRequestTimeout); err != nil {
		panic(err)
	}
}
