package config

// EnvPrefix is handed to envconfig; every field carries an explicit
// envconfig tag so the prefix only matters for untagged additions.
const EnvPrefix = "SHOPCART"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv        = "SHOPCART_APP_ENV"
	EnvPort          = "SHOPCART_APP_PORT"
	EnvLogLevel      = "SHOPCART_LOG_LEVEL"
	EnvStorageDriver = "SHOPCART_STORAGE_DRIVER"
	EnvDBDSN         = "SHOPCART_DB_DSN"
	EnvRedisURL      = "SHOPCART_REDIS_URL"
	EnvRedisAddr     = "SHOPCART_REDIS_ADDR"
	EnvMongoURI      = "SHOPCART_MONGO_URI"
	EnvSessionSecret = "SHOPCART_SESSION_SECRET"
	EnvSessionSecure = "SHOPCART_SESSION_SECURE"
	EnvCartLocale    = "SHOPCART_CART_LOCALE"
	EnvCatalogPath   = "SHOPCART_CATALOG_PATH"
	EnvOrderAction   = "SHOPCART_ORDER_FORM_ACTION"
)

// Storage drivers accepted by SHOPCART_STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)
