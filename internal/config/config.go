// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Cache backend selection.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Cache codec selection.
const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

// Database driver selection.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config holds every runtime knob of the service.
type Config struct {
	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":8080"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`

	CacheBackend string `env:"CACHE_BACKEND" envDefault:"memory"`
	CacheCodec   string `env:"CACHE_CODEC" envDefault:"json"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	DBDriver string `env:"DB_DRIVER" envDefault:"sqlite3"`
	DBDSN    string `env:"DB_DSN" envDefault:"file:books.db?cache=shared"`

	Seed bool `env:"SEED" envDefault:"true"`
}

// Load parses the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated fields.
func (c Config) Validate() error {
	switch c.CacheBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("config: unknown cache backend %q", c.CacheBackend)
	}

	switch c.CacheCodec {
	case CodecJSON, CodecMsgpack:
	default:
		return fmt.Errorf("config: unknown cache codec %q", c.CacheCodec)
	}

	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("config: unknown database driver %q", c.DBDriver)
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// String renders the configuration for startup logging with the redis
// password masked.
func (c Config) String() string {
	password := ""
	if c.RedisPassword != "" {
		password = "****"
	}
	return fmt.Sprintf(
		"http=%s timeout=%s cache=%s codec=%s redis=%s/%d password=%q db=%s seed=%t",
		c.HTTPAddr, c.RequestTimeout, c.CacheBackend, c.CacheCodec,
		c.RedisAddr, c.RedisDB, password, c.DBDriver, c.Seed,
	)
}
