package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, 8080, cfg.HTTP.Port)
	require.Equal(t, 10, cfg.Security.BcryptCost)
	require.Equal(t, 24*time.Hour, cfg.Security.SessionTTL)
	require.Equal(t, 15*time.Minute, cfg.Security.RecoveryTokenTTL)
	require.False(t, cfg.Security.RequireRecoveryToken)
	require.False(t, cfg.Security.MatchQuestionsByIdentity)
	require.Equal(t, 10, cfg.Throttle.SignInAttempts)
	require.Equal(t, time.Minute, cfg.Throttle.SignInWindow)
	require.Equal(t, "migrations", cfg.Postgres.MigrationsDir)
}
