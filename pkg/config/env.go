package config

// EnvPrefix namespaces every environment variable this service reads.
const EnvPrefix = "SHOPDESK"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "SHOPDESK_APP_ENV"
	EnvPort     = "SHOPDESK_APP_PORT"
	EnvDBDSN    = "SHOPDESK_DB_DSN"
	EnvDBHost   = "SHOPDESK_DB_HOST"
	EnvDBUser   = "SHOPDESK_DB_USER"
	EnvDBName   = "SHOPDESK_DB_NAME"
	EnvRedisURL = "SHOPDESK_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
