package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "sqlite::memory:")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "")
	t.Setenv("JWT_TTL_MINUTES", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("INVENTORY_STRICT_STOCK", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "5000", cfg.Port)
	require.Equal(t, ":5000", cfg.HTTPAddress())
	require.Equal(t, 60*time.Minute, cfg.JWTTTL)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
	require.False(t, cfg.StrictStock)
	require.True(t, cfg.AutoMigrate)
	require.True(t, cfg.IsDevelopment())
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("INVENTORY_STRICT_STOCK", "true")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, 15*time.Minute, cfg.JWTTTL)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	require.True(t, cfg.StrictStock)
	require.False(t, cfg.IsDevelopment())
}

func TestLoadInvalidTTLFallsBack(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_TTL_MINUTES", "-3")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 60*time.Minute, cfg.JWTTTL)
}

func TestLoadRequiresSecretAndDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")
	_, err := Load()
	require.EqualError(t, err, "DATABASE_URL is required")

	t.Setenv("DATABASE_URL", "sqlite::memory:")
	t.Setenv("JWT_SECRET", "  ")
	_, err = Load()
	require.EqualError(t, err, "JWT_SECRET is required")
}

func TestNewLoggerLevel(t *testing.T) {
	logger := NewLogger(LoggingConfig{Level: "debug", Format: "json"})
	require.Equal(t, zerolog.DebugLevel, logger.GetLevel())

	logger = NewLogger(LoggingConfig{Level: "nonsense"})
	require.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
