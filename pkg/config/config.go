package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "tecnoadmin"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Inventory InventoryConfig
	Features  FeatureFlagsConfig
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
	Env          string `envconfig:"TECNOADMIN_APP_ENV" default:"dev"`
	Port         string `envconfig:"TECNOADMIN_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"TECNOADMIN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TECNOADMIN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TECNOADMIN_DB_DSN"`
	Driver string `envconfig:"TECNOADMIN_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"TECNOADMIN_DB_HOST"`
	Port     int    `envconfig:"TECNOADMIN_DB_PORT" default:"5432"`
	User     string `envconfig:"TECNOADMIN_DB_USER"`
	Password string `envconfig:"TECNOADMIN_DB_PASSWORD"`
	Name     string `envconfig:"TECNOADMIN_DB_NAME"`
	SSLMode  string `envconfig:"TECNOADMIN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TECNOADMIN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TECNOADMIN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TECNOADMIN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TECNOADMIN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TECNOADMIN_REDIS_URL"`
	Address      string        `envconfig:"TECNOADMIN_REDIS_ADDR"`
	Password     string        `envconfig:"TECNOADMIN_REDIS_PASSWORD"`
	DB           int           `envconfig:"TECNOADMIN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TECNOADMIN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TECNOADMIN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TECNOADMIN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TECNOADMIN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TECNOADMIN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured. The statistics
// cache is optional; without redis the query service computes directly.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"TECNOADMIN_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"TECNOADMIN_JWT_ISSUER" default:"tecnoadmin"`
	ExpirationMinutes int    `envconfig:"TECNOADMIN_JWT_EXPIRATION_MINUTES" default:"60"`
}

type InventoryConfig struct {
	HistoryDefaultLimit int           `envconfig:"TECNOADMIN_INVENTORY_HISTORY_DEFAULT_LIMIT" default:"50"`
	HistoryMaxLimit     int           `envconfig:"TECNOADMIN_INVENTORY_HISTORY_MAX_LIMIT" default:"200"`
	StatsCacheTTL       time.Duration `envconfig:"TECNOADMIN_INVENTORY_STATS_CACHE_TTL" default:"30s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TECNOADMIN_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if strings.EqualFold(db.Driver, "sqlite") {
		return fmt.Errorf("TECNOADMIN_DB_DSN is required for the sqlite driver")
	}

	missing := []string{}
	required := []struct {
		env   string
		value string
	}{
		{"TECNOADMIN_DB_HOST", db.Host},
		{"TECNOADMIN_DB_USER", db.User},
		{"TECNOADMIN_DB_NAME", db.Name},
	}
	for _, req := range required {
		if req.value == "" {
			missing = append(missing, req.env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either TECNOADMIN_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
