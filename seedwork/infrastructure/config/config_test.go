package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		old, existed := os.LookupEnv(k)
		os.Unsetenv(k)
		t.Cleanup(func() {
			if existed {
				os.Setenv(k, old)
			}
		})
	}
}

func TestLoad_FailsWithoutSessionSecret(t *testing.T) {
	clearEnv(t, "SESSION_SECRET")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	clearEnv(t, "SESSION_SECRET", "DATABASE_PATH", "PORT", "APP_ENV", "MOCK_MODE", "APP_URL")
	os.Setenv("SESSION_SECRET", "shh")
	t.Cleanup(func() { os.Unsetenv("SESSION_SECRET") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "scribe.db", cfg.Database.Path)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.False(t, cfg.MockMode)
	assert.Equal(t, "http://localhost:8080", cfg.AppURL)
}

func TestLoad_ReadsOverridesFromEnv(t *testing.T) {
	clearEnv(t, "SESSION_SECRET", "DATABASE_PATH", "PORT", "MOCK_MODE")
	os.Setenv("SESSION_SECRET", "shh")
	os.Setenv("DATABASE_PATH", "/tmp/custom.db")
	os.Setenv("PORT", "9090")
	os.Setenv("MOCK_MODE", "true")
	t.Cleanup(func() {
		os.Unsetenv("SESSION_SECRET")
		os.Unsetenv("DATABASE_PATH")
		os.Unsetenv("PORT")
		os.Unsetenv("MOCK_MODE")
	})

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.db", cfg.Database.Path)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.MockMode)
}

func TestConfig_IsAdmin(t *testing.T) {
	cfg := &Config{AdminEmail: "admin@example.com"}

	assert.True(t, cfg.IsAdmin("Admin@Example.com"))
	assert.True(t, cfg.IsAdmin("  admin@example.com  "))
	assert.False(t, cfg.IsAdmin("someone@example.com"))
}

func TestConfig_IsAdminFalseWhenUnconfigured(t *testing.T) {
	cfg := &Config{AdminEmail: ""}
	assert.False(t, cfg.IsAdmin("anyone@example.com"))
}
