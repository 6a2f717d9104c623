package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsInDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SCHEMA_MODE", "")
	t.Setenv("FRONTEND_ORIGIN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.Address())
	assert.Equal(t, SchemaPersistent, cfg.SchemaMode)
	assert.False(t, cfg.DropSchemaOnShutdown())
	assert.Equal(t, 10*time.Second, cfg.ShutdownPeriod)
	assert.Equal(t, DefaultOrigins, cfg.AllowedOrigins())
}

func TestLoadRequiresDatabaseOutsideDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadEphemeralSchemaAndFrontendOrigin(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL", "postgres://localhost/wallets")
	t.Setenv("SCHEMA_MODE", "Ephemeral")
	t.Setenv("FRONTEND_ORIGIN", "https://wallets.example.com")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.DropSchemaOnShutdown())
	assert.Equal(t, 3*time.Second, cfg.ShutdownPeriod)
	origins := cfg.AllowedOrigins()
	assert.Len(t, origins, len(DefaultOrigins)+1)
	assert.Equal(t, "https://wallets.example.com", origins[len(origins)-1])
}

func TestLoadRejectsUnknownSchemaMode(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SCHEMA_MODE", "forever")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsNegativeRateLimit(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SCHEMA_MODE", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "-1")

	_, err := Load()
	require.Error(t, err)
}
