package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string        `env:"PORT,           default=8090"`
	Env           string        `env:"ENV,            default=development"`
	LogLevel      string        `env:"LOG_LEVEL,      default=info"`
	SessionCookie string        `env:"SESSION_COOKIE, default=portal_sid"`
	SessionTTL    time.Duration `env:"SESSION_TTL,    default=720h"`

	Backend BackendConfig
	Redis   RedisConfig
	Mongo   MongoConfig
}

type BackendConfig struct {
	BaseURL        string        `env:"BACKEND_URL,     default=http://localhost:8080"`
	Timeout        time.Duration `env:"BACKEND_TIMEOUT, default=10s"`
	SignOutTimeout time.Duration `env:"SIGNOUT_TIMEOUT, default=3s"`
}

type RedisConfig struct {
	Addr   string `env:"REDIS_ADDR,   default=localhost:6379"`
	DB     int    `env:"REDIS_DB,     default=0"`
	Prefix string `env:"REDIS_PREFIX, default=portal"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=student_portal"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
