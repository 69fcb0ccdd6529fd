// Package config loads the service configuration from the environment once
// at startup. The result is validated and passed down explicitly.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const devSecret = "lawauth-development-secret"

type Config struct {
	Port            string        `env:"PORT,             default=4000"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
	CORSOrigins     []string      `env:"CORS_ORIGINS,     default=http://localhost:3000"`

	// StoreDriver selects where the identity provider keeps accounts and
	// sessions: memory, or mongo (accounts) plus redis (sessions).
	StoreDriver string `env:"STORE_DRIVER, default=memory"`
	// DirectoryDriver selects the user directory: memory, mongo or postgres.
	DirectoryDriver string `env:"DIRECTORY_DRIVER, default=memory"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Postgres  PostgresConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=law_manager"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type PostgresConfig struct {
	URL string `env:"DATABASE_URL"`
}

type AuthConfig struct {
	BaseURL           string        `env:"AUTH_BASE_URL,            default=http://localhost:4000"`
	BasePath          string        `env:"AUTH_BASE_PATH,           default=/auth"`
	ProviderMode      string        `env:"AUTH_PROVIDER_MODE,       default=embedded"`
	ProviderTimeout   time.Duration `env:"AUTH_PROVIDER_TIMEOUT,    default=5s"`
	Secret            string        `env:"AUTH_SECRET"`
	SessionTTL        time.Duration `env:"AUTH_SESSION_TTL,         default=168h"`
	CookiePrefix      string        `env:"AUTH_COOKIE_PREFIX,       default=lawauth"`
	AutoSignIn        bool          `env:"AUTH_AUTO_SIGN_IN,        default=false"`
	LoginStrategy     string        `env:"AUTH_LOGIN_STRATEGY,      default=lookup_first"`
	MinPasswordLength int           `env:"AUTH_MIN_PASSWORD_LENGTH, default=8"`
	MaxPasswordLength int           `env:"AUTH_MAX_PASSWORD_LENGTH, default=128"`
}

type RateLimitConfig struct {
	PerMinute int `env:"RATE_LIMIT_PER_MINUTE, default=60"`
	Burst     int `env:"RATE_LIMIT_BURST,      default=10"`
}

// Load reads configuration from environment variables using go-envconfig
// and validates it.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith is Load with an explicit variable source.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated values and cross-field rules. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error
	oneOf := func(name, value string, allowed ...string) {
		for _, a := range allowed {
			if value == a {
				return
			}
		}
		errs = append(errs, fmt.Errorf("%s must be one of %s, got %q", name, strings.Join(allowed, "|"), value))
	}

	oneOf("ENV", c.Env, "development", "test", "staging", "production")
	oneOf("STORE_DRIVER", c.StoreDriver, "memory", "mongo")
	oneOf("DIRECTORY_DRIVER", c.DirectoryDriver, "memory", "mongo", "postgres")
	oneOf("AUTH_PROVIDER_MODE", c.Auth.ProviderMode, "embedded", "remote")
	oneOf("AUTH_LOGIN_STRATEGY", c.Auth.LoginStrategy, "lookup_first", "native_first")

	if c.Auth.ProviderMode == "embedded" && c.Auth.Secret == "" && !c.IsDevelopment() {
		errs = append(errs, errors.New("AUTH_SECRET is required outside development"))
	}
	if c.Auth.BaseURL == "" {
		errs = append(errs, errors.New("AUTH_BASE_URL is required"))
	}
	if c.DirectoryDriver == "memory" && c.StoreDriver != "memory" {
		errs = append(errs, errors.New("DIRECTORY_DRIVER=memory requires STORE_DRIVER=memory"))
	}
	if c.DirectoryDriver == "postgres" && c.Postgres.URL == "" {
		errs = append(errs, errors.New("DIRECTORY_DRIVER=postgres requires DATABASE_URL"))
	}
	if c.Auth.MinPasswordLength < 1 || c.Auth.MinPasswordLength > c.Auth.MaxPasswordLength {
		errs = append(errs, fmt.Errorf("password length bounds invalid: min %d, max %d", c.Auth.MinPasswordLength, c.Auth.MaxPasswordLength))
	}
	if c.RateLimit.PerMinute <= 0 || c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_PER_MINUTE and RATE_LIMIT_BURST must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// UsesMongo reports whether any component needs a MongoDB connection.
func (c *Config) UsesMongo() bool {
	return c.StoreDriver == "mongo" || c.DirectoryDriver == "mongo"
}

// SigningSecret is the session signing key. Development falls back to a
// fixed key when AUTH_SECRET is unset.
func (a AuthConfig) SigningSecret() []byte {
	if a.Secret == "" {
		return []byte(devSecret)
	}
	return []byte(a.Secret)
}
