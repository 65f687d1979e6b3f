// Package config loads application configuration from environment
// variables into one explicit struct built once at startup. Components
// receive the values they need from main; nothing reads the environment
// ad hoc after Load returns.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration. Secrets are required: the
// process refuses to start without them rather than falling back to an
// insecure default.
type Config struct {
	Env  string `env:"APP_ENV" envDefault:"dev"`
	Port string `env:"APP_PORT" envDefault:"8080"`

	DBUser string `env:"DB_USER,required"`
	DBPass string `env:"DB_PASS"`
	DBHost string `env:"DB_HOST,required"`
	DBPort string `env:"DB_PORT,required"`
	DBName string `env:"DB_NAME,required"`

	JWTSecret     string `env:"JWT_SECRET,required"`
	SessionSecret string `env:"SESSION_SECRET,required"`

	AccessTTLMin   int `env:"ACCESS_TOKEN_TTL_MIN" envDefault:"60"`
	RefreshTTLDays int `env:"REFRESH_TOKEN_TTL_DAYS" envDefault:"14"`
	SessionTTLMin  int `env:"SESSION_TTL_MIN" envDefault:"1440"`
	BcryptCost     int `env:"BCRYPT_COST" envDefault:"10"`

	RabbitMQURL string `env:"RABBITMQ_URL"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL"`
}

// Load reads a .env file when one exists, then parses the environment.
// Missing required variables are reported as an error so main can fail
// fast before opening any connection.
func Load() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// AccessTTL returns the access token lifetime.
func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTTLMin) * time.Minute
}

// RefreshTTL returns the refresh token lifetime.
func (c Config) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTTLDays) * 24 * time.Hour
}

// SessionTTL returns the server-side session lifetime.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMin) * time.Minute
}
