package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadWithoutAdminCredentials(t *testing.T) {
	t.Setenv("SURVEY_ADMIN_USERNAME", "")
	t.Setenv("SURVEY_ADMIN_PASSWORD", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, errors.Is(cfg.RequireAdminCredentials(), ErrMissingAdminCredentials))
}

func TestRequireAdminCredentials(t *testing.T) {
	require.True(t, errors.Is(Config{AdminUsername: "admin"}.RequireAdminCredentials(), ErrMissingAdminCredentials))
	require.True(t, errors.Is(Config{AdminPassword: "secret"}.RequireAdminCredentials(), ErrMissingAdminCredentials))
	require.NoError(t, Config{AdminUsername: "admin", AdminPassword: "secret"}.RequireAdminCredentials())
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SURVEY_ADMIN_USERNAME", "admin")
	t.Setenv("SURVEY_ADMIN_PASSWORD", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	require.Equal(t, "survey_data.db", cfg.DatabaseURL)
	require.Equal(t, 30*time.Second, cfg.StatsCacheTTL)
	require.Equal(t, 30, cfg.SubmitRateLimit)
	require.Equal(t, "survey.responses.submitted", cfg.NATSSubject)
	require.Equal(t, "*", cfg.AllowOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SURVEY_ADMIN_USERNAME", "admin")
	t.Setenv("SURVEY_ADMIN_PASSWORD", "secret")
	t.Setenv("SURVEY_DATABASE_DRIVER", "Postgres")
	t.Setenv("SURVEY_DATABASE_URL", "postgres://localhost/survey")
	t.Setenv("SURVEY_STATS_CACHE_TTL", "2m")
	t.Setenv("SURVEY_APP_PORT", "9000")
	t.Setenv("SURVEY_HTTP_ALLOW_ORIGINS", "https://clinic.example")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	require.Equal(t, "postgres://localhost/survey", cfg.DatabaseURL)
	require.Equal(t, 2*time.Minute, cfg.StatsCacheTTL)
	require.Equal(t, ":9000", cfg.HTTPAddress())
	require.Equal(t, "https://clinic.example", cfg.AllowOrigins)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("SURVEY_ADMIN_USERNAME", "admin")
	t.Setenv("SURVEY_ADMIN_PASSWORD", "secret")
	t.Setenv("SURVEY_DATABASE_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsInvalidTTL(t *testing.T) {
	t.Setenv("SURVEY_ADMIN_USERNAME", "admin")
	t.Setenv("SURVEY_ADMIN_PASSWORD", "secret")
	t.Setenv("SURVEY_STATS_CACHE_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
}
