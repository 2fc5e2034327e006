package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	DB      DBConfig
	Redis   RedisConfig
	Mongo   MongoConfig
	Session SessionConfig
	Cart    CartConfig
	Order   OrderConfig
	CORS    CORSConfig
	Janitor JanitorConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPCART_APP_ENV" required:"true"`
	Port         string `envconfig:"SHOPCART_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPCART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig picks the backend holding the persisted cart slots.
type StorageConfig struct {
	Driver      string `envconfig:"SHOPCART_STORAGE_DRIVER" default:"memory"`
	AutoMigrate bool   `envconfig:"SHOPCART_STORAGE_AUTO_MIGRATE" default:"true"`
}

// NormalizedDriver lowercases and trims the configured driver.
func (s StorageConfig) NormalizedDriver() string {
	return strings.ToLower(strings.TrimSpace(s.Driver))
}

// IsSQL reports whether slots live in a gorm-managed database.
func (s StorageConfig) IsSQL() bool {
	d := s.NormalizedDriver()
	return d == DriverPostgres || d == DriverSQLite
}

type DBConfig struct {
	DSN string `envconfig:"SHOPCART_DB_DSN"`

	MaxOpenConns    int           `envconfig:"SHOPCART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHOPCART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPCART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPCART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPCART_REDIS_URL"`
	Address      string        `envconfig:"SHOPCART_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPCART_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPCART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPCART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPCART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPCART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPCART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPCART_REDIS_WRITE_TIMEOUT" default:"5s"`
	// SlotTTL bounds how long an untouched cart survives; zero keeps it forever.
	SlotTTL time.Duration `envconfig:"SHOPCART_REDIS_SLOT_TTL" default:"0"`
}

type MongoConfig struct {
	URI            string        `envconfig:"SHOPCART_MONGO_URI"`
	Database       string        `envconfig:"SHOPCART_MONGO_DATABASE" default:"shopcart"`
	Collection     string        `envconfig:"SHOPCART_MONGO_COLLECTION" default:"cart_slots"`
	ConnectTimeout time.Duration `envconfig:"SHOPCART_MONGO_CONNECT_TIMEOUT" default:"10s"`
}

// SessionConfig drives the signed visitor cookie that scopes a cart slot.
type SessionConfig struct {
	Secret     string        `envconfig:"SHOPCART_SESSION_SECRET" required:"true"`
	Issuer     string        `envconfig:"SHOPCART_SESSION_ISSUER" default:"shopcart"`
	CookieName string        `envconfig:"SHOPCART_SESSION_COOKIE" default:"shopcart_session"`
	TTL        time.Duration `envconfig:"SHOPCART_SESSION_TTL" default:"8760h"`
	Secure     bool          `envconfig:"SHOPCART_SESSION_SECURE" default:"false"`
}

type CartConfig struct {
	SlotName    string `envconfig:"SHOPCART_CART_SLOT_NAME" default:"cart"`
	Locale      string `envconfig:"SHOPCART_CART_LOCALE" default:"mk"`
	TimeZone    string `envconfig:"SHOPCART_CART_TIMEZONE" default:"Europe/Skopje"`
	CatalogPath string `envconfig:"SHOPCART_CATALOG_PATH"`
}

// Location resolves the configured time zone, falling back to UTC.
func (c CartConfig) Location() *time.Location {
	if c.TimeZone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// OrderConfig points at the third-party form handler receiving order details.
type OrderConfig struct {
	FormAction string `envconfig:"SHOPCART_ORDER_FORM_ACTION" default:"https://formsubmit.co/orders@example.com"`
	Subject    string `envconfig:"SHOPCART_ORDER_SUBJECT" default:"Нова нарачка"`
	NextURL    string `envconfig:"SHOPCART_ORDER_NEXT_URL"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SHOPCART_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// JanitorConfig drives the retention worker that purges abandoned carts.
type JanitorConfig struct {
	Interval  time.Duration `envconfig:"SHOPCART_JANITOR_INTERVAL" default:"1h"`
	Retention time.Duration `envconfig:"SHOPCART_JANITOR_RETENTION" default:"720h"`
	LockTTL   time.Duration `envconfig:"SHOPCART_JANITOR_LOCK_TTL" default:"55m"`
}

// minProdSecretLen is the shortest session signing key accepted in prod.
const minProdSecretLen = 32

func (c *Config) validate() error {
	switch c.Storage.NormalizedDriver() {
	case DriverMemory:
	case DriverRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("either %s or %s is required for the redis driver", EnvRedisURL, EnvRedisAddr)
		}
	case DriverPostgres, DriverSQLite:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required for the %s driver", EnvDBDSN, c.Storage.NormalizedDriver())
		}
	case DriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("%s is required for the mongo driver", EnvMongoURI)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvStorageDriver, c.Storage.Driver)
	}
	if c.App.IsProd() {
		if len(c.Session.Secret) < minProdSecretLen {
			return fmt.Errorf("%s must be at least %d bytes in %s", EnvSessionSecret, minProdSecretLen, AppEnvProd)
		}
		if !c.Session.Secure {
			return fmt.Errorf("%s must be true in %s", EnvSessionSecure, AppEnvProd)
		}
	}
	if c.Janitor.Retention < 0 {
		return fmt.Errorf("janitor retention must not be negative")
	}
	if strings.TrimSpace(c.Cart.SlotName) == "" {
		return fmt.Errorf("cart slot name must not be empty")
	}
	return nil
}
