package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"GRPC_ADDR", "HTTP_ADDR", "DATA_BACKEND", "DB_CONN_STR", "DB_HOST", "DB_PORT",
	"DB_USER", "DB_PASSWORD", "DB_NAME", "RUN_MIGRATIONS", "SEED_CATEGORIES",
	"REFRESH_SCHEDULE", "BREAKER_ENABLED", "BREAKER_MAX_FAILURES",
	"BREAKER_OPEN_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT", "LOG_DEV",
}

// clearEnv unsets every config key for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, _, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.GRPCAddr)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, BackendPostgres, cfg.DataBackend)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=finance sslmode=disable", cfg.DBConnStr)
	assert.True(t, cfg.RunMigrations)
	assert.True(t, cfg.SeedCategories)
	assert.Empty(t, cfg.RefreshSchedule)
	assert.True(t, cfg.BreakerEnabled)
	assert.Equal(t, uint32(5), cfg.BreakerMaxFailures)
	assert.Equal(t, 30*time.Second, cfg.BreakerOpenTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.LogDev)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATA_BACKEND", "MEMORY")
	t.Setenv("DB_CONN_STR", "postgres://u:p@db/finance")
	t.Setenv("REFRESH_SCHEDULE", "*/5 * * * *")
	t.Setenv("BREAKER_MAX_FAILURES", "3")
	t.Setenv("BREAKER_OPEN_TIMEOUT", "1m")
	t.Setenv("SEED_CATEGORIES", "false")
	t.Setenv("LOG_DEV", "true")
	t.Setenv("LOG_FORMAT", "console")

	cfg, _, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.DataBackend)
	assert.Equal(t, "postgres://u:p@db/finance", cfg.DBConnStr)
	assert.Equal(t, "*/5 * * * *", cfg.RefreshSchedule)
	assert.Equal(t, uint32(3), cfg.BreakerMaxFailures)
	assert.Equal(t, time.Minute, cfg.BreakerOpenTimeout)
	assert.False(t, cfg.SeedCategories)
	assert.True(t, cfg.LogDev)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("GRPC_ADDR=:7000\nDATA_BACKEND=memory\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("GRPC_ADDR")
		os.Unsetenv("DATA_BACKEND")
	})

	cfg, loaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, ":7000", cfg.GRPCAddr)
	assert.Equal(t, BackendMemory, cfg.DataBackend)
}

func TestLoad_MalformedValuesAreReported(t *testing.T) {
	clearEnv(t)
	t.Setenv("BREAKER_MAX_FAILURES", "abc")
	t.Setenv("BREAKER_OPEN_TIMEOUT", "5x")
	t.Setenv("RUN_MIGRATIONS", "maybe")
	t.Setenv("DATA_BACKEND", "sqlite")

	cfg, _, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Nil(t, cfg)

	msg := err.Error()
	assert.Contains(t, msg, "BREAKER_MAX_FAILURES")
	assert.Contains(t, msg, "BREAKER_OPEN_TIMEOUT")
	assert.Contains(t, msg, "RUN_MIGRATIONS")
	assert.Contains(t, msg, "DATA_BACKEND")
}

func TestLoad_MaxFailuresOutOfRange(t *testing.T) {
	clearEnv(t)
	t.Setenv("BREAKER_MAX_FAILURES", "4294967296")

	_, _, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BREAKER_MAX_FAILURES")
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := &Config{
		GRPCAddr:        "",
		HTTPAddr:        ":9090",
		DataBackend:     "sqlite",
		RefreshSchedule: "every minute",
		BreakerEnabled:  true,
		LogFormat:       "xml",
	}

	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "GRPC_ADDR")
	assert.Contains(t, msg, "DATA_BACKEND")
	assert.Contains(t, msg, "REFRESH_SCHEDULE")
	assert.Contains(t, msg, "BREAKER_MAX_FAILURES")
	assert.Contains(t, msg, "BREAKER_OPEN_TIMEOUT")
	assert.Contains(t, msg, "LOG_FORMAT")
}

func TestValidate_BreakerDisabledSkipsBreakerChecks(t *testing.T) {
	cfg := &Config{
		GRPCAddr:    ":8080",
		HTTPAddr:    ":9090",
		DataBackend: BackendMemory,
		LogFormat:   "json",
	}
	assert.NoError(t, cfg.Validate())
}
