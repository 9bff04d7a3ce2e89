package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// CookieSecure marks both auth cookies Secure. Off by default because
	// TLS terminates upstream in every deployed environment.
	CookieSecure bool `env:"COOKIE_SECURE, default=false"`

	// SessionTTL is the sliding session lifetime; each resolve refreshes it.
	SessionTTL time.Duration `env:"SESSION_TTL, default=720h"`

	TemplatesGlob string `env:"TEMPLATES_GLOB, default=web/templates/*.html"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=timers"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
