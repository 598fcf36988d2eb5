package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/ojt-tracker/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"OJT_PORT", "OJT_DB_PATH", "OJT_LOG_LEVEL", "OJT_ALLOWED_ORIGINS", "OJT_PROJECTION_HORIZON"} {
		if v, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { os.Setenv(k, v) })
		} else {
			t.Cleanup(func() { os.Unsetenv(k) })
		}
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "ojt.db", cfg.DBPath)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:8080"}, cfg.AllowedOrigins)
	assert.Equal(t, 500, cfg.ProjectionHorizon)
}

func TestLoad_EnvFileAndOverrides(t *testing.T) {
	// GIVEN: a .env file and a real variable for the same key
	// THEN: the file fills gaps and the real variable wins
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("OJT_PORT=9090\nOJT_DB_PATH=/tmp/file.db\nOJT_ALLOWED_ORIGINS= https://a.test , ,https://b.test\n"), 0o600))
	t.Setenv("OJT_DB_PATH", "/tmp/env.db")
	t.Setenv("OJT_LOG_LEVEL", "debug")

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/env.db", cfg.DBPath)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.AllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Setenv("OJT_LOG_LEVEL", "loud")
	_, err := config.Load(missing)
	assert.Error(t, err)

	t.Setenv("OJT_LOG_LEVEL", "info")
	t.Setenv("OJT_PORT", "70000")
	_, err = config.Load(missing)
	assert.Error(t, err)
}
