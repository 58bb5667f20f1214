package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadSessionConfigDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test_secret_key")

	cfg := LoadSessionConfig()
	require.Equal(t, "session", cfg.CookieName)
	require.Equal(t, "test_secret_key", cfg.Secret)
	require.Equal(t, 2*time.Minute, cfg.AbsoluteLifetime)
	require.Equal(t, time.Minute, cfg.IdleLifetime)
}

func TestLoadSessionConfigOverrides(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test_secret_key")
	t.Setenv("SESSION_COOKIE_NAME", "cs_session")
	t.Setenv("SESSION_DURATION", "30m")
	t.Setenv("SESSION_ACTIVE_DURATION", "5m")

	cfg := LoadSessionConfig()
	require.Equal(t, "cs_session", cfg.CookieName)
	require.Equal(t, 30*time.Minute, cfg.AbsoluteLifetime)
	require.Equal(t, 5*time.Minute, cfg.IdleLifetime)
}

func TestLoadRateLimitConfigClampsValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	require.Equal(t, 1, cfg.Capacity)
	require.Equal(t, 1, cfg.RefillTokens)
	require.Equal(t, time.Second, cfg.RefillInterval)
	// TTL is raised to cover several refill intervals.
	require.Equal(t, 5*time.Second, cfg.TTL)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("SOME_DUR", "250ms")
	t.Setenv("SOME_BOOL", "yes")
	t.Setenv("SOME_INT", "nope")

	require.Equal(t, 250*time.Millisecond, envDur("SOME_DUR", time.Second))
	require.Equal(t, time.Second, envDur("MISSING_DUR", time.Second))
	require.True(t, envBool("SOME_BOOL", false))
	require.Equal(t, 7, envInt("SOME_INT", 7))
	require.Equal(t, "fallback", envStr("MISSING_STR", "fallback"))
}
