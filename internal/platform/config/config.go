// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	id "soulbound/pkg/domain"
)

const devSigningKey = "dev-secret-key-change-in-production"

// Config is the full process configuration. Nested structs are parsed by
// env.Parse without prefixes.
type Config struct {
	Server   Server
	Auth     Auth
	Registry Registry
	Audit    Audit
	Redis    RedisConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"SOULBOUND_ADDR" envDefault:":8080"`
	Environment     string        `env:"SOULBOUND_ENV" envDefault:"development"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// AdminToken guards the /ops routes. AdminTokenHash, a bcrypt hash,
	// takes precedence. With neither set the routes reject every request.
	AdminToken     string `env:"ADMIN_API_TOKEN"`
	AdminTokenHash string `env:"ADMIN_API_TOKEN_HASH"`
	OTelEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

type Auth struct {
	JWTSigningKey string        `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	JWTIssuer     string        `env:"JWT_ISSUER" envDefault:"soulbound"`
	JWTAudience   string        `env:"JWT_AUDIENCE" envDefault:"soulbound-api"`
	TokenTTL      time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`
}

type Registry struct {
	Owner       string `env:"REGISTRY_OWNER,required"`
	Name        string `env:"REGISTRY_NAME" envDefault:"Soulbound Attendance Badge"`
	Symbol      string `env:"REGISTRY_SYMBOL" envDefault:"SBADGE"`
	BaseURI     string `env:"REGISTRY_BASE_URI" envDefault:"https://badges.local/meta"`
	BatchPolicy string `env:"REGISTRY_BATCH_POLICY" envDefault:"skip"`
}

// Audit selects where audit events go. Every sink is optional; the
// in-memory store is always on.
type Audit struct {
	AsyncBuffer      int           `env:"AUDIT_ASYNC_BUFFER" envDefault:"1024"`
	BreakerThreshold int           `env:"AUDIT_BREAKER_THRESHOLD" envDefault:"5"`
	PostgresDSN      string        `env:"AUDIT_POSTGRES_DSN"`
	RedisStream      string        `env:"AUDIT_REDIS_STREAM" envDefault:"soulbound:audit"`
	RedisMaxLen      int64         `env:"AUDIT_REDIS_MAXLEN" envDefault:"100000"`
	KafkaBrokers     []string      `env:"AUDIT_KAFKA_BROKERS" envSeparator:","`
	KafkaTopic       string        `env:"AUDIT_KAFKA_TOPIC" envDefault:"soulbound.audit"`
	RelayInterval    time.Duration `env:"AUDIT_RELAY_INTERVAL" envDefault:"1s"`
}

type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if _, err := c.Registry.OwnerAddress(); err != nil {
		errs = append(errs, fmt.Errorf("REGISTRY_OWNER: %w", err))
	}
	switch c.Registry.BatchPolicy {
	case "skip", "halt":
	default:
		errs = append(errs, fmt.Errorf("REGISTRY_BATCH_POLICY: unknown policy %q", c.Registry.BatchPolicy))
	}
	if c.Server.IsProduction() && c.Auth.JWTSigningKey == devSigningKey {
		errs = append(errs, errors.New("JWT_SIGNING_KEY must be set in production"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_TTL must be positive"))
	}
	if c.Audit.AsyncBuffer < 0 {
		errs = append(errs, errors.New("AUDIT_ASYNC_BUFFER cannot be negative"))
	}
	return errors.Join(errs...)
}

func (s Server) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production")
}

// OwnerAddress parses the configured initial registry owner.
func (r Registry) OwnerAddress() (id.Address, error) {
	addr, err := id.ParseAddress(r.Owner)
	if err != nil {
		return id.ZeroAddress, err
	}
	if addr == id.ZeroAddress {
		return id.ZeroAddress, errors.New("owner cannot be the zero address")
	}
	return addr, nil
}
