package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ASSETBOOK_APP_ENV" default:"dev"`
	Port         string `envconfig:"ASSETBOOK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"ASSETBOOK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ASSETBOOK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"ASSETBOOK_DB_DSN"`

	Host     string `envconfig:"ASSETBOOK_DB_HOST"`
	Port     int    `envconfig:"ASSETBOOK_DB_PORT" default:"5432"`
	User     string `envconfig:"ASSETBOOK_DB_USER"`
	Password string `envconfig:"ASSETBOOK_DB_PASSWORD"`
	Name     string `envconfig:"ASSETBOOK_DB_NAME"`
	SSLMode  string `envconfig:"ASSETBOOK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ASSETBOOK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ASSETBOOK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ASSETBOOK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ASSETBOOK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN derives a connection string from the discrete DB_* variables when
// ASSETBOOK_DB_DSN is not provided. The sqlite flag gets a local file default
// so dev setups need no configuration at all.
func (d *DBConfig) ensureDSN(useSQLite bool) error {
	if d.DSN != "" {
		return nil
	}
	if useSQLite {
		d.DSN = "assetbook.db"
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database config incomplete: set ASSETBOOK_DB_DSN or ASSETBOOK_DB_{HOST,USER,NAME}")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"ASSETBOOK_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"ASSETBOOK_AUTO_MIGRATE" default:"false"`
}
