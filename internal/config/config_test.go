package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/focus-space/FS-BookingService/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.internal"
port = 5432
user = "fs"
password = "secret"
dbname = "fs_booking"

[booking]
trial_open_time = "08:00"
session_ttl_minutes = 45
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "08:00", cfg.Booking.TrialOpenTime)
	assert.Equal(t, 45, cfg.Booking.SessionTTLMinutes)

	// Unset values fall back to defaults.
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, domain.DefaultTrialCloseTime, cfg.Booking.TrialCloseTime)
	assert.Equal(t, domain.DefaultTrialSlotMinutes, cfg.Booking.TrialSlotMinutes)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_Validation(t *testing.T) {
	t.Run("missing port", func(t *testing.T) {
		path := writeConfig(t, `
[database]
host = "localhost"
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "http_port")
	})

	t.Run("missing database host", func(t *testing.T) {
		path := writeConfig(t, `
[server]
http_port = 8080
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "database.host")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})
}

func TestDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "localhost", Port: 5432,
		User: "fs", Password: "pw", DBName: "fs_booking", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=fs password=pw dbname=fs_booking sslmode=disable",
		cfg.DSN())
}
