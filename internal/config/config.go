// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

type Config struct {
	Port             string        `env:"PORT" envDefault:"8080"`
	StoreDriver      string        `env:"STORE_DRIVER" envDefault:"memory"`
	DefaultLang      string        `env:"DEFAULT_LANG" envDefault:"en"`
	TimeZone         string        `env:"TZ_NAME" envDefault:"Local"`
	RolloverInterval time.Duration `env:"ROLLOVER_INTERVAL" envDefault:"15m"`
	CacheTTL         time.Duration `env:"CACHE_TTL" envDefault:"30m"`
	RateLimit        int           `env:"RATE_LIMIT" envDefault:"100"`
	SQLitePath       string        `env:"SQLITE_PATH" envDefault:"data/heatmap.db"`

	DB    DBConfig    `envPrefix:"DB_"`
	Redis RedisConfig `envPrefix:"REDIS_"`
	JWT   JWTConfig   `envPrefix:"JWT_"`
}

type DBConfig struct {
	// Driver is the database/sql driver name: "pgx" or "postgres" (lib/pq).
	Driver   string `env:"DRIVER" envDefault:"pgx"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"5432"`
	Name     string `env:"NAME"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

type RedisConfig struct {
	// Enabled turns on the store cache and rate limiter.
	Enabled  bool   `env:"ENABLED" envDefault:"false"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// Options builds client options for c. Timeouts and pool sizes are fixed for the API server.
func (c RedisConfig) Options() *redis.Options {
	return &redis.Options{
		Addr:         c.Addr(),
		Password:     c.Password,
		DB:           c.DB,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	}
}

type JWTConfig struct {
	Secret   string        `env:"SECRET"`
	Issuer   string        `env:"ISSUER" envDefault:"kanso-heatmap"`
	Duration time.Duration `env:"DURATION" envDefault:"24h"`
}

// Load reads envFiles (missing files are ignored) and then parses the environment.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StorePostgres, StoreSQLite:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q (must be memory, postgres or sqlite)", c.StoreDriver)
	}

	switch c.DB.Driver {
	case "pgx", "postgres":
	default:
		return fmt.Errorf("invalid DB_DRIVER %q (must be pgx or postgres)", c.DB.Driver)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.RateLimit < 1 {
		return fmt.Errorf("RATE_LIMIT must be positive")
	}
	return nil
}

// Location resolves TimeZone, treating "Local" as the process time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TZ_NAME %q: %w", c.TimeZone, err)
	}
	return loc, nil
}
