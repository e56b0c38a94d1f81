package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full service configuration. Values come from, in order of
// precedence: MODEVA_* environment variables (a .env file is loaded first),
// an optional YAML file, and the defaults below.
type Config struct {
	Env       string          `mapstructure:"env"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	History   HistoryConfig   `mapstructure:"history"`
	Jobs      JobsConfig      `mapstructure:"jobs"`
}

type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	URL          string        `mapstructure:"url"`
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	User         string        `mapstructure:"user"`
	Password     string        `mapstructure:"password"`
	Name         string        `mapstructure:"name"`
	MaxOpenConns int           `mapstructure:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns"`
	ConnLifetime time.Duration `mapstructure:"conn_lifetime"`
}

// DSN returns the connection URL, building a local one when none is set.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type RateLimitConfig struct {
	// Backend is "redis" or "memory".
	Backend string        `mapstructure:"backend"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

type CacheConfig struct {
	CategoryTTL    time.Duration `mapstructure:"category_ttl"`
	ProductTTL     time.Duration `mapstructure:"product_ttl"`
	ProductEntries int           `mapstructure:"product_entries"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type HistoryConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type JobsConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	ExpireOrdersSpec   string        `mapstructure:"expire_orders_spec"`
	PendingOrderMaxAge time.Duration `mapstructure:"pending_order_max_age"`
	WarmCacheSpec      string        `mapstructure:"warm_cache_spec"`
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8081)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:3001"})
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "modeva_storefront")
	v.SetDefault("database.max_open_conns", 5)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_lifetime", 5*time.Minute)

	v.SetDefault("redis.url", "redis://localhost:6379")

	v.SetDefault("rate_limit.backend", "redis")
	v.SetDefault("rate_limit.limit", 100)
	v.SetDefault("rate_limit.window", time.Minute)

	v.SetDefault("cache.category_ttl", 5*time.Minute)
	v.SetDefault("cache.product_ttl", time.Minute)
	v.SetDefault("cache.product_entries", 512)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("history.ttl", 30*24*time.Hour)

	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.expire_orders_spec", "@every 15m")
	v.SetDefault("jobs.pending_order_max_age", 24*time.Hour)
	v.SetDefault("jobs.warm_cache_spec", "@every 5m")
}

// Load reads configuration. path may be empty, in which case ./modeva.yaml is
// used when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("MODEVA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("modeva")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.RateLimit.Backend {
	case "redis", "memory":
	default:
		return fmt.Errorf("unknown rate limit backend %q", c.RateLimit.Backend)
	}
	if c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0 {
		return errors.New("rate limit and window must be positive")
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	if c.Cache.ProductEntries <= 0 {
		return errors.New("cache.product_entries must be positive")
	}
	return nil
}
