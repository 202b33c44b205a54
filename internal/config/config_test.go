package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "rsvp-planner", cfg.ServiceName)
	assert.Equal(t, "8080", cfg.ListenPort)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "rsvp.db", cfg.Database.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
	assert.Empty(t, cfg.Notify.WebhookURL)
	assert.Equal(t, 5*time.Second, cfg.Notify.Timeout)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("RSVP_LISTEN_PORT", "9090")
	t.Setenv("RSVP_DATABASE_DRIVER", "postgres")
	t.Setenv("RSVP_DATABASE_DSN", "postgres://localhost/rsvp?sslmode=disable")
	t.Setenv("RSVP_NOTIFY_WEBHOOK_URL", "https://hooks.example.com/rsvp")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ListenPort)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/rsvp?sslmode=disable", cfg.Database.DSN)
	assert.Equal(t, "https://hooks.example.com/rsvp", cfg.Notify.WebhookURL)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rsvp.yaml")
	err := os.WriteFile(path, []byte(`
listen_port: "7000"
log:
  level: debug
  pretty: true
notify:
  timeout: 2s
`), 0o600)
	require.NoError(t, err)

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.ListenPort)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
	assert.Equal(t, 2*time.Second, cfg.Notify.Timeout)
}

func TestInvalidConfig(t *testing.T) {
	t.Run("Unknown driver", func(t *testing.T) {
		t.Setenv("RSVP_DATABASE_DRIVER", "mysql")
		_, err := Load(New(), "")
		assert.ErrorContains(t, err, "unsupported database.driver")
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}
