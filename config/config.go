// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings for the server.
type Config struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"studyshare"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"studyshare_pass"`
	DBName     string `envconfig:"DB_NAME" default:"studyshare"`

	UploadDir      string `envconfig:"UPLOAD_DIR" default:"uploads"`
	MaxUploadBytes int    `envconfig:"MAX_UPLOAD_BYTES" default:"16777216"`

	// Account with this email gets the admin role on login.
	AdminEmail string `envconfig:"ADMIN_EMAIL" default:"admin@example.com"`

	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"24h"`
}

// Load reads configuration from the environment. A missing .env file is
// not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}
