package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/itinerary-planner/backend/internal/config"
)

// clearEnv blanks every variable Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DATABASE_URL", "STORAGE_DIR", "STORAGE_KEY", "GOOGLE_MAPS_API_KEY",
		"LOG_LEVEL", "CORS_ORIGINS", "MAX_BODY_BYTES",
	} {
		t.Setenv(k, "")
	}
}

// TestLoad_defaults verifies that every variable is optional.
func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Empty(t, cfg.DatabaseURL)
	require.Equal(t, ".itinerary", cfg.StorageDir)
	require.Equal(t, "itineraries", cfg.StorageKey)
	require.Empty(t, cfg.GoogleMapsAPIKey)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/mydb")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("STORAGE_DIR", "/var/lib/itinerary")
	t.Setenv("STORAGE_KEY", "trips")
	t.Setenv("GOOGLE_MAPS_API_KEY", "abc123")
	t.Setenv("MAX_BODY_BYTES", "4096")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "postgres://user:pass@db:5432/mydb", cfg.DatabaseURL)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, "/var/lib/itinerary", cfg.StorageDir)
	require.Equal(t, "trips", cfg.StorageKey)
	require.Equal(t, "abc123", cfg.GoogleMapsAPIKey)
	require.Equal(t, int64(4096), cfg.MaxBodyBytes)
}

func TestLoad_invalidMaxBodyBytes(t *testing.T) {
	for _, v := range []string{"lots", "0", "-5"} {
		t.Run(v, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("MAX_BODY_BYTES", v)

			_, err := config.Load()

			require.Error(t, err)
			require.ErrorContains(t, err, "MAX_BODY_BYTES")
		})
	}
}

func TestLoad_invalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := config.Load()

	require.ErrorContains(t, err, "LOG_LEVEL")
}
