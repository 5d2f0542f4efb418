// Package config loads the application configuration from environment
// variables once at startup. Components receive the resulting struct
// explicitly; nothing reads the environment at request time.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"PLMK_DB_PATH" envDefault:"./data/palomnyk.db"`
	ServerHost string `env:"PLMK_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"PLMK_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"PLMK_ENV" envDefault:"development"`
	LogLevel   string `env:"PLMK_LOG_LEVEL" envDefault:"info"`

	// SecretKey authenticates CSRF tokens for the admin API.
	SecretKey string `env:"PLMK_SECRET_KEY,required"`

	// BaseURL overrides the externally visible base URL when running
	// behind a proxy.
	BaseURL string `env:"PLMK_BASE_URL"`

	// External image storage configuration
	StorageUploadURL string `env:"PLMK_STORAGE_URL"`        // Upload endpoint of the image storage service
	StorageAPIKey    string `env:"PLMK_STORAGE_API_KEY"`    // Storage service API key
	StorageAPISecret string `env:"PLMK_STORAGE_API_SECRET"` // Storage service API secret
	StorageFolder    string `env:"PLMK_STORAGE_FOLDER" envDefault:"palomnyk"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// StorageConfigured returns true if the external image storage is configured.
func (c Config) StorageConfigured() bool {
	return c.StorageUploadURL != "" && c.StorageAPIKey != ""
}

// MinSecretKeyLength is the minimum required length for the secret key.
const MinSecretKeyLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SecretKey) < MinSecretKeyLength {
		return nil, fmt.Errorf("PLMK_SECRET_KEY must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSecretKeyLength, len(cfg.SecretKey))
	}

	return cfg, nil
}
