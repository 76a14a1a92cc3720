package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("VK_APP_ID", "")
	t.Setenv("VK_APP_SECRET", "")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.DatabaseURL)
	assert.True(t, cfg.AgendaAutoMigrate)
	assert.Equal(t, defaultRedirectURI, cfg.VKRedirectURI)
	assert.Equal(t, ":8080", cfg.LocalAddr)
	assert.False(t, cfg.VKConfigured())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "  postgres://user:pass@db:5432/app  ")
	t.Setenv("AGENDA_AUTO_MIGRATE", "false")
	t.Setenv("VK_APP_ID", "51234")
	t.Setenv("VK_APP_SECRET", "vk-secret")
	t.Setenv("VK_REDIRECT_URI", "https://slides.example/auth/callback")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://user:pass@db:5432/app", cfg.DatabaseURL)
	assert.False(t, cfg.AgendaAutoMigrate)
	assert.True(t, cfg.VKConfigured())
	assert.Equal(t, "https://slides.example/auth/callback", cfg.VKRedirectURI)
	assert.Equal(t, "vk-secret", cfg.SigningSecret())
}

func TestLoadRejectsBadBool(t *testing.T) {
	t.Setenv("AGENDA_AUTO_MIGRATE", "sometimes")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestSigningSecretPrefersSessionSecret(t *testing.T) {
	cfg := Config{VKAppSecret: "vk", SessionSecret: "session"}
	assert.Equal(t, "session", cfg.SigningSecret())
}
