package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultAPIBase = "https://pennywise-api.fly.dev"

// Config holds all client configuration.
type Config struct {
	// Remote service
	APIBase string

	// Optional bearer token override. When set, the keyring is not consulted.
	Token string

	// Logging
	LogFile string

	// Keyring item location
	KeyringService string
	KeyringAccount string

	// Timezone used for calendar bucketing. Empty means the system local zone.
	Timezone string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env if present; absence is not an error.
	_ = godotenv.Load()

	cfg := &Config{
		APIBase:        getEnv("PENNYWISE_API_BASE", defaultAPIBase),
		Token:          getEnv("PENNYWISE_TOKEN", ""),
		LogFile:        getEnv("PENNYWISE_LOG_FILE", ""),
		KeyringService: getEnv("PENNYWISE_KEYCHAIN_SERVICE", "pennywise"),
		KeyringAccount: getEnv("PENNYWISE_KEYCHAIN_ACCOUNT", "api_token"),
		Timezone:       getEnv("PENNYWISE_TZ", ""),
	}

	if strings.TrimSpace(cfg.APIBase) == "" {
		return nil, fmt.Errorf("PENNYWISE_API_BASE cannot be blank")
	}

	return cfg, nil
}

// Location resolves the configured timezone, falling back to the system
// local zone when unset or unparsable.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
