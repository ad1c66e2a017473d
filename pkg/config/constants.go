package config

const (
	EnvPrefix = "ELECTROSTORE"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "ELECTROSTORE_APP_ENV"
	EnvDBDSN  = "ELECTROSTORE_DB_DSN"
	EnvDBHost = "ELECTROSTORE_DB_HOST"
	EnvDBUser = "ELECTROSTORE_DB_USER"
	EnvDBName = "ELECTROSTORE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
