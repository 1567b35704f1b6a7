package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tour-manager/internal/database"
)

var envKeys = []string{
	"HTTP_ADDR", "DB_DRIVER", "DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER",
	"DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "SQLITE_PATH", "TELEGRAM_BOT_TOKEN",
	"TELEGRAM_API_ENDPOINT", "NOTIFY_TIMEOUT", "NOTIFY_CONCURRENCY",
	"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT",
}

// clearEnv unsets every variable Load reads and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, database.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "tours.db", cfg.Database.SQLitePath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.Telegram.Token)
	assert.Equal(t, 10*time.Second, cfg.Notify.Timeout)
	assert.Equal(t, 8, cfg.Notify.Concurrency)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_API_ENDPOINT", "https://tapi.bale.ai/bot%s/%s")
	t.Setenv("NOTIFY_TIMEOUT", "3s")
	t.Setenv("NOTIFY_CONCURRENCY", "2")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	assert.Equal(t, database.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.SQLitePath)
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, "https://tapi.bale.ai/bot%s/%s", cfg.Telegram.APIEndpoint)
	assert.Equal(t, 3*time.Second, cfg.Telegram.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Notify.Timeout)
	assert.Equal(t, 2, cfg.Notify.Concurrency)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_DRIVER=sqlite3\nDATABASE_URL=file:test.db\n"), 0o600))
	t.Setenv("DATABASE_URL", "file:override.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, database.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "file:override.db", cfg.Database.DSN)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"DB_DRIVER":          "mysql",
		"NOTIFY_TIMEOUT":     "soon",
		"NOTIFY_CONCURRENCY": "-1",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
