package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("REQUIRED_AGE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Empty(t, cfg.PostgresDSN)
	require.Equal(t, DefaultRequiredAge, cfg.RequiredAge)
}

func TestLoadConfig_RequiredAgeOverride(t *testing.T) {
	t.Setenv("REQUIRED_AGE", "21")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, 21, cfg.RequiredAge)
}

func TestLoadConfig_RequiredAgeInvalid(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3"} {
		t.Setenv("REQUIRED_AGE", raw)
		_, err := LoadConfig()
		require.Error(t, err, "REQUIRED_AGE=%s", raw)
	}
}

func TestLoadConfig_Port(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("REQUIRED_AGE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
}
