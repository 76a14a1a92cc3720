// Package config loads handler configuration from environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

const defaultRedirectURI = "https://your-domain.com/auth/callback"

// Config holds everything the handlers read from the process environment.
// It is built once at cold start and passed into endpoints.Dependencies.
type Config struct {
	DatabaseURL       string `env:"DATABASE_URL"`
	AgendaAutoMigrate bool   `env:"AGENDA_AUTO_MIGRATE" envDefault:"true"`

	VKAppID       string `env:"VK_APP_ID"`
	VKAppSecret   string `env:"VK_APP_SECRET"`
	VKRedirectURI string `env:"VK_REDIRECT_URI" envDefault:"https://your-domain.com/auth/callback"`
	SessionSecret string `env:"SESSION_SECRET"`

	LocalAddr string `env:"LOCAL_ADDR" envDefault:":8080"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	c.DatabaseURL = strings.TrimSpace(c.DatabaseURL)
	if strings.TrimSpace(c.VKRedirectURI) == "" {
		c.VKRedirectURI = defaultRedirectURI
	}
}

// SigningSecret is the key used for OAuth state and session tokens.
// SESSION_SECRET wins; the VK app secret is the fallback.
func (c Config) SigningSecret() string {
	if c.SessionSecret != "" {
		return c.SessionSecret
	}
	return c.VKAppSecret
}

// VKConfigured reports whether the VK OAuth credentials are present.
func (c Config) VKConfigured() bool {
	return c.VKAppID != "" && c.VKAppSecret != ""
}
