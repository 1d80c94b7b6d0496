package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "MANDILINK"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "MANDILINK_DB_DSN"
	EnvDBHost = "MANDILINK_DB_HOST"
	EnvDBUser = "MANDILINK_DB_USER"
	EnvDBName = "MANDILINK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Orders       OrdersConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MANDILINK_APP_ENV" required:"true"`
	Port         string `envconfig:"MANDILINK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MANDILINK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MANDILINK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MANDILINK_DB_DSN"`
	Driver string `envconfig:"MANDILINK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MANDILINK_DB_HOST"`
	LegacyPort     int    `envconfig:"MANDILINK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MANDILINK_DB_USER"`
	LegacyPassword string `envconfig:"MANDILINK_DB_PASSWORD"`
	LegacyName     string `envconfig:"MANDILINK_DB_NAME"`
	LegacySSLMode  string `envconfig:"MANDILINK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MANDILINK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MANDILINK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MANDILINK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MANDILINK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MANDILINK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MANDILINK_REDIS_ADDR"`
	Password     string        `envconfig:"MANDILINK_REDIS_PASSWORD"`
	DB           int           `envconfig:"MANDILINK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MANDILINK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MANDILINK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MANDILINK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MANDILINK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MANDILINK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"MANDILINK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MANDILINK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"MANDILINK_JWT_EXPIRATION_MINUTES" required:"true"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"MANDILINK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"MANDILINK_AUTO_MIGRATE" default:"false"`
}

type OrdersConfig struct {
	// NumberRetries bounds orderNumber regeneration when the unique index
	// reports a collision.
	NumberRetries int `envconfig:"MANDILINK_ORDER_NUMBER_RETRIES" default:"5"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
