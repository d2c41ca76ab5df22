package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cre8streak/cre8streak/config"
)

func TestMain(m *testing.M) {
	// The configuration is loaded once per process; overrides must be in
	// place before the first Load call.
	os.Setenv("JWT_SECRET", "config-test-secret")
	os.Setenv("ADMIN_USERNAMES", "root, ops-admin")
	os.Setenv("RATE_LIMIT_PER_MINUTE", "120")
	os.Exit(m.Run())
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	cfg := config.Load()

	// Environment overrides.
	require.Equal(t, "config-test-secret", cfg.JWTSecret)
	require.Equal(t, []string{"root", "ops-admin"}, cfg.AdminUsernames)
	require.Equal(t, 120, cfg.RateLimitPerMinute)

	// Untouched values fall back to defaults.
	require.Equal(t, "8080", cfg.AppPort)
	require.Equal(t, 10, cfg.CheckinBaseXP)
	require.Equal(t, 20, cfg.CheckinMilestoneBonus)
	require.Equal(t, 7, cfg.CheckinMilestoneInterval)
	require.Equal(t, 50, cfg.LeaderboardDefaultLimit)
}

func TestGetReturnsCachedConfig(t *testing.T) {
	first := config.Load()
	second := config.Get()
	require.Equal(t, first, second)
}
