package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/ternak-atlas/pkg/store/sqldb"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const envPrefix = "TERNAK"

type Config struct {
	LogLevel string       `mapstructure:"log_level"`
	Server   ServerConfig `mapstructure:"server"`
	Store    StoreConfig  `mapstructure:"store"`
	Export   ExportConfig `mapstructure:"export"`
	Stats    StatsConfig  `mapstructure:"stats"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

type StatsConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

type ExportConfig struct {
	Bucket string `mapstructure:"bucket"`
	Region string `mapstructure:"region"`
}

// Load reads the config file at path, if any, and applies TERNAK_*
// environment overrides (e.g. TERNAK_SERVER_PORT, TERNAK_STORE_DSN).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("store.driver", string(sqldb.DialectDuckDB))
	v.SetDefault("store.dsn", "ternak-atlas.db")
	v.SetDefault("export.bucket", "")
	v.SetDefault("export.region", "")
	v.SetDefault("stats.refresh_interval", "1m")
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch sqldb.Dialect(c.Store.Driver) {
	case sqldb.DialectDuckDB, sqldb.DialectSQLite, sqldb.DialectPostgres:
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}

func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

func (c *Config) StoreSettings() sqldb.Settings {
	return sqldb.Settings{
		Driver: sqldb.Dialect(c.Store.Driver),
		DSN:    c.Store.DSN,
	}
}

// Level returns the configured log level; validate guarantees it parses.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
