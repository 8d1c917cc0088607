// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"

	platformstrings "github.com/illustspace/gsr/pkg/platform/strings"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// DevJWTSigningKey is used when GSR_JWT_SIGNING_KEY is unset. Never rely on
// it outside local development.
const DevJWTSigningKey = "dev-secret-key-change-in-production"

// Config is the full service configuration.
type Config struct {
	Server    Server
	Log       Log
	Store     Store
	Postgres  Postgres
	Redis     RedisConfig
	Auth      Auth
	Admin     Admin
	Tracing   Tracing
	Audit     Audit
	RateLimit RateLimit
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"GSR_ADDR" envDefault:":8080"`
	RequestTimeout  time.Duration `env:"GSR_REQUEST_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"GSR_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Log struct {
	Level  string `env:"GSR_LOG_LEVEL" envDefault:"info"`
	Format string `env:"GSR_LOG_FORMAT" envDefault:"json"`
}

// Store selects the registry backend.
type Store struct {
	Backend   string        `env:"GSR_STORE_BACKEND" envDefault:"memory"`
	TxTimeout time.Duration `env:"GSR_STORE_TX_TIMEOUT" envDefault:"5s"`
}

type Postgres struct {
	DSN            string `env:"GSR_POSTGRES_DSN"`
	MaxOpenConns   int    `env:"GSR_POSTGRES_MAX_OPEN_CONNS" envDefault:"10"`
	MigrateOnStart bool   `env:"GSR_POSTGRES_MIGRATE" envDefault:"true"`
}

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	URL          string        `env:"GSR_REDIS_URL"`
	KeyPrefix    string        `env:"GSR_REDIS_KEY_PREFIX" envDefault:"registry"`
	PoolSize     int           `env:"GSR_REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"GSR_REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"GSR_REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"GSR_REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"GSR_REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// Auth configures bearer token validation for callers.
type Auth struct {
	JWTSigningKey string        `env:"GSR_JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	Issuer        string        `env:"GSR_JWT_ISSUER" envDefault:"gsr"`
	Audience      string        `env:"GSR_JWT_AUDIENCE" envDefault:"gsr-api"`
	TokenTTL      time.Duration `env:"GSR_JWT_TTL" envDefault:"1h"`
}

type Admin struct {
	// Administrator is installed on first start when no administrator exists.
	Administrator string `env:"GSR_ADMINISTRATOR"`
	MintPolicy    string `env:"GSR_MINT_POLICY" envDefault:"open"`
}

type Tracing struct {
	Enabled     bool    `env:"GSR_TRACING_ENABLED" envDefault:"false"`
	Exporter    string  `env:"GSR_TRACING_EXPORTER" envDefault:"stdout"`
	SampleRate  float64 `env:"GSR_TRACING_SAMPLE_RATE" envDefault:"1"`
	ServiceName string  `env:"GSR_SERVICE_NAME" envDefault:"gsr"`
}

// Audit configures where audit events go. With no brokers events are kept in
// the configured store only.
type Audit struct {
	KafkaBrokers []string `env:"GSR_KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"GSR_KAFKA_TOPIC" envDefault:"gsr.audit"`
	ClientID     string   `env:"GSR_KAFKA_CLIENT_ID" envDefault:"gsr"`
	AsyncBuffer  int      `env:"GSR_AUDIT_BUFFER" envDefault:"1024"`
}

// RateLimit bounds how often one caller may mint. A zero limit disables it.
type RateLimit struct {
	Disabled   bool          `env:"GSR_RATE_LIMIT_DISABLED" envDefault:"false"`
	MintLimit  int           `env:"GSR_MINT_RATE_LIMIT" envDefault:"30"`
	MintWindow time.Duration `env:"GSR_MINT_RATE_WINDOW" envDefault:"1m"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Audit.KafkaBrokers = platformstrings.Compact(cfg.Audit.KafkaBrokers)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if !slices.Contains([]string{BackendMemory, BackendPostgres, BackendRedis}, c.Store.Backend) {
		errs = append(errs, fmt.Errorf("GSR_STORE_BACKEND: unknown backend %q", c.Store.Backend))
	}
	if c.Store.Backend == BackendPostgres && c.Postgres.DSN == "" {
		errs = append(errs, errors.New("GSR_POSTGRES_DSN is required for the postgres backend"))
	}
	if c.Store.Backend == BackendRedis && c.Redis.URL == "" {
		errs = append(errs, errors.New("GSR_REDIS_URL is required for the redis backend"))
	}
	if c.Auth.JWTSigningKey == "" {
		errs = append(errs, errors.New("GSR_JWT_SIGNING_KEY must not be empty"))
	}
	if c.Store.TxTimeout <= 0 {
		errs = append(errs, errors.New("GSR_STORE_TX_TIMEOUT must be positive"))
	}
	if c.Audit.AsyncBuffer < 0 {
		errs = append(errs, errors.New("GSR_AUDIT_BUFFER must not be negative"))
	}
	if c.RateLimit.MintLimit > 0 && c.RateLimit.MintWindow <= 0 {
		errs = append(errs, errors.New("GSR_MINT_RATE_WINDOW must be positive"))
	}
	return errors.Join(errs...)
}

// UsesDevSigningKey reports whether tokens are signed with the built-in key.
func (c Config) UsesDevSigningKey() bool {
	return c.Auth.JWTSigningKey == DevJWTSigningKey
}
