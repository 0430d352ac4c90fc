package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// FallbackSecret is the well-known development-only signing key used when
// JWT_SECRET is unset. Anyone who knows it can forge sessions; startup
// refuses it outside development.
const FallbackSecret = "fallback_secret_key_for_development_only"

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	RateLimit RateLimitConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type RateLimitConfig struct {
	Max    int           `env:"RATE_LIMIT_MAX,    default=5"`
	Window time.Duration `env:"RATE_LIMIT_WINDOW, default=15m"`
}

// MongoConfig selects the credential/audit store. An empty URI means the
// seeded in-memory store.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=secure_login"`
}

// RedisConfig selects the rate-limit backend. An empty Addr means the
// in-process limiter.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }
func (c *Config) IsProduction() bool  { return c.Env == "production" }

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
