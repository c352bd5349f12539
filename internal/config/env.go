package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Env holds all runtime configuration, loaded once at startup.
type Env struct {
	AppAddr string `env:"APP_ADDR, default=:8080"`
	GinMode string `env:"GIN_MODE"`

	DBHost string `env:"DB_HOST, default=127.0.0.1:3306"`
	DBUser string `env:"DB_USER, default=root"`
	DBPass string `env:"DB_PASS"`
	DBName string `env:"DB_NAME, default=subite"`

	JWTSecret string        `env:"JWT_SECRET, default=dev-secret-change-me"`
	JWTExpiry time.Duration `env:"JWT_EXPIRY, default=24h"`

	LogLevel  string `env:"LOG_LEVEL, default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS, delimiter=,"`

	Seed bool `env:"SEED, default=false"`
}

// LoadEnv reads configuration from environment variables.
func LoadEnv() Env {
	var env Env
	if err := envconfig.Process(context.Background(), &env); err != nil {
		panic(fmt.Sprintf("config: failed to load environment: %v", err))
	}
	return env
}

// DSN builds the MySQL connection string for the configured database.
func (e Env) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
		e.DBUser, e.DBPass, e.DBHost, e.DBName)
}
