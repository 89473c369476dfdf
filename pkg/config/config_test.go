package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ADDR", "STATUS_BACKEND", "CLICKHOUSE_ADDR", "CLICKHOUSE_CONN_STRATEGY",
		"CLICKHOUSE_MAX_OPEN_CONNS", "CLICKHOUSE_MAX_IDLE_CONNS", "CLICKHOUSE_CONN_MAX_LIFETIME",
		"STATUS_SQL_DSN", "STATUS_SQL_INIT", "STATUS_NAMESPACE", "STATUS_QUERY_PARALLELISM", "SERVICE_NAME",
		"OTEL_EXPORTER_OTLP_ENDPOINT", "LOG_LEVEL", "LOG_ENCODING",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3001", cfg.Addr)
	assert.Equal(t, BackendClickHouse, cfg.Backend)
	assert.Equal(t, "clickhouse://localhost:9000?sslmode=disable", cfg.ClickHouse.DSN)
	assert.Equal(t, "round_robin", cfg.ClickHouse.ConnStrategy)
	assert.Equal(t, 20, cfg.ClickHouse.MaxOpenConns)
	assert.Equal(t, 10, cfg.ClickHouse.MaxIdleConns)
	assert.Equal(t, 5*time.Minute, cfg.ClickHouse.ConnMaxLifetime)
	assert.Equal(t, "indexer", cfg.Namespace)
	assert.Equal(t, 32, cfg.QueryParallelism)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.OtelEndpoint)
	assert.Nil(t, cfg.SQLInit)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STATUS_BACKEND", "SQLite")
	t.Setenv("STATUS_SQL_DSN", "file:status.db")
	t.Setenv("STATUS_NAMESPACE", "warehouse")
	t.Setenv("STATUS_QUERY_PARALLELISM", "11")
	t.Setenv("ADDR", "127.0.0.1:8080")
	t.Setenv("STATUS_SQL_INIT", "ATTACH DATABASE 'indexer.db' AS indexer; ;PRAGMA query_only = 1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "file:status.db", cfg.SQLDSN)
	assert.Equal(t, "warehouse", cfg.Namespace)
	assert.Equal(t, 11, cfg.QueryParallelism)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.Equal(t, []string{"ATTACH DATABASE 'indexer.db' AS indexer", "PRAGMA query_only = 1"}, cfg.SQLInit)
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown backend", env: map[string]string{"STATUS_BACKEND": "oracle"}},
		{name: "sql backend without dsn", env: map[string]string{"STATUS_BACKEND": "postgres"}},
		{name: "namespace with dot", env: map[string]string{"STATUS_NAMESPACE": "a.b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadDotEnvFillsUnsetVariables(t *testing.T) {
	clearEnv(t)
	// t.Setenv restores the original value on cleanup; unset it for the duration of the test.
	os.Unsetenv("STATUS_NAMESPACE")
	t.Setenv("SERVICE_NAME", "from-env")

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("STATUS_NAMESPACE=dotenv_ns\nSERVICE_NAME=from-file\n"), 0o600))

	require.NoError(t, loadDotEnv(path))
	t.Cleanup(func() { os.Unsetenv("STATUS_NAMESPACE") })

	assert.Equal(t, "dotenv_ns", os.Getenv("STATUS_NAMESPACE"))
	assert.Equal(t, "from-env", os.Getenv("SERVICE_NAME"))
}

func TestLoadDotEnvMissingFileIsIgnored(t *testing.T) {
	assert.NoError(t, loadDotEnv(filepath.Join(t.TempDir(), ".env")))
}
