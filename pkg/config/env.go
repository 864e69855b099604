package config

const (
	EnvPrefix = "FISHING"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv       = "FISHING_APP_ENV"
	EnvPort         = "FISHING_APP_PORT"
	EnvLogLevel     = "FISHING_LOG_LEVEL"
	EnvLogWarnStack = "FISHING_LOG_WARN_STACK"

	EnvDBDSN      = "FISHING_DB_DSN"
	EnvDBHost     = "FISHING_DB_HOST"
	EnvDBPort     = "FISHING_DB_PORT"
	EnvDBUser     = "FISHING_DB_USER"
	EnvDBPassword = "FISHING_DB_PASSWORD"
	EnvDBName     = "FISHING_DB_NAME"
	EnvDBSSLMode  = "FISHING_DB_SSLMODE"

	EnvRedisURL = "FISHING_REDIS_URL"

	EnvJWTSecret              = "FISHING_JWT_SECRET"
	EnvJWTIssuer              = "FISHING_JWT_ISSUER"
	EnvJWTExpMins             = "FISHING_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "FISHING_REFRESH_TOKEN_TTL_MINUTES"

	EnvCORSOrigins = "FISHING_CORS_ORIGINS"
	EnvAutoMigrate = "FISHING_AUTO_MIGRATE"

	EnvSeedAdminEmail       = "FISHING_SEED_ADMIN_EMAIL"
	EnvSeedAdminPassword    = "FISHING_SEED_ADMIN_PASSWORD"
	EnvSeedAdminDisplayName = "FISHING_SEED_ADMIN_DISPLAY_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
