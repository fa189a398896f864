package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("GIN_MODE", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("WS_REQUIRE_AUTH", "")

	cfg := Load()

	require.Equal(t, "mysql", cfg.DBDriver)
	require.Equal(t, 6*time.Hour, cfg.JWTTTL)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.True(t, cfg.WSRequireAuth)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("PUSH_RELAY_ENABLED", "true")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("WS_REQUIRE_AUTH", "false")

	cfg := Load()

	require.Equal(t, "sqlite", cfg.DBDriver)
	require.Equal(t, 90*time.Minute, cfg.JWTTTL)
	require.True(t, cfg.PushRelayEnabled)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	require.Equal(t, "cache:6380", cfg.RedisAddr())
	require.False(t, cfg.WSRequireAuth)
}

func TestValidate(t *testing.T) {
	cfg := Load()

	cfg.DBDriver = "oracle"
	require.Error(t, cfg.Validate())

	cfg.DBDriver = "postgres"
	cfg.GinMode = "release"
	cfg.JWTSecret = "dev-secret-change-me"
	require.Error(t, cfg.Validate())

	cfg.JWTSecret = "a-real-secret"
	require.NoError(t, cfg.Validate())

	cfg.JWTTTL = 0
	require.Error(t, cfg.Validate())
}
