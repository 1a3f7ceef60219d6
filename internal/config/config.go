// Package config loads service settings from environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting of the booking service.
type Config struct {
	// HTTP
	HTTPAddr        string `envconfig:"HTTP_ADDR" default:":8080"`
	ReadTimeoutSec  int    `envconfig:"READ_TIMEOUT_SEC" default:"15"`
	WriteTimeoutSec int    `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`
	IdleTimeoutSec  int    `envconfig:"IDLE_TIMEOUT_SEC" default:"60"`

	// Postgres
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"postgres"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName     string `envconfig:"DB_NAME" default:"confbooking"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// Auth
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("process env config: %w", err)
	}
	return c, nil
}

// DSN builds a libpq-compatible connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}
