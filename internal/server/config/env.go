package config

import "github.com/dmitrijs2005/postboard/internal/flagx"

// Environment variable names.
const (
	EnvAddress        = "POSTBOARD_ADDRESS"
	EnvDatabaseDSN    = "POSTBOARD_DATABASE_DSN"
	EnvSecretKey      = "POSTBOARD_JWT_SECRET"
	EnvTokenTTL       = "POSTBOARD_TOKEN_TTL"
	EnvBcryptCost     = "POSTBOARD_BCRYPT_COST"
	EnvS3RootUser     = "POSTBOARD_S3_USER"
	EnvS3RootPassword = "POSTBOARD_S3_PASSWORD"
	EnvS3Bucket       = "POSTBOARD_S3_BUCKET"
	EnvS3Region       = "POSTBOARD_S3_REGION"
	EnvS3BaseEndpoint = "POSTBOARD_S3_ENDPOINT"
)

// parseEnv overlays POSTBOARD_* variables. Malformed numbers or durations
// panic, like a broken config file.
func parseEnv(config *Config) {
	flagx.EnvString(&config.Address, EnvAddress)
	flagx.EnvString(&config.DatabaseDSN, EnvDatabaseDSN)
	flagx.EnvString(&config.SecretKey, EnvSecretKey)
	if err := flagx.EnvDuration(&config.TokenTTL, EnvTokenTTL); err != nil {
		panic(err)
	}
	if err := flagx.EnvInt(&config.BcryptCost, EnvBcryptCost); err != nil {
		panic(err)
	}
	flagx.EnvString(&config.S3RootUser, EnvS3RootUser)
	flagx.EnvString(&config.S3RootPassword, EnvS3RootPassword)
	flagx.EnvString(&config.S3Bucket, EnvS3Bucket)
	flagx.EnvString(&config.S3Region, EnvS3Region)
	flagx.EnvString(&config.S3BaseEndpoint, EnvS3BaseEndpoint)
}
