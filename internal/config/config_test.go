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
	for _, k := range []string{
		"DISHA_DB_DRIVER", "DISHA_DB", "DISHA_DB_DSN", "DISHA_HTTP_ADDR",
		"DISHA_CORS_ORIGINS", "DISHA_JWT_SECRET", "DISHA_USER",
		"DISHA_LOG_LEVEL", "DISHA_LOG_FILE", "DISHA_BANK",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 2*time.Hour, cfg.GetSessionTTL())
	assert.Equal(t, 30*time.Second, cfg.GetRequestTimeout())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  driver: postgres
  dsn: postgres://db/disha
http:
  addr: ":9000"
  cors_origins: [https://disha.example]
log:
  level: debug
  format: json
assessment:
  session_ttl: 15m
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://db/disha", cfg.Database.DSN)
	assert.Equal(t, ":9000", cfg.HTTP.Addr)
	assert.Equal(t, []string{"https://disha.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 15*time.Minute, cfg.GetSessionTTL())
	// Unset keys keep their defaults.
	assert.Equal(t, "local", cfg.Assessment.DefaultUser)
	assert.Equal(t, "30s", cfg.HTTP.RequestTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISHA_DB_DRIVER", "postgres")
	t.Setenv("DISHA_DB_DSN", "postgres://env/disha")
	t.Setenv("DISHA_HTTP_ADDR", ":7000")
	t.Setenv("DISHA_CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("DISHA_JWT_SECRET", "s3cret")
	t.Setenv("DISHA_USER", "student-1")
	t.Setenv("DISHA_LOG_LEVEL", "warn")
	t.Setenv("DISHA_BANK", "/etc/disha/bank.yaml")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://env/disha", cfg.Database.DSN)
	assert.Equal(t, ":7000", cfg.HTTP.Addr)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, "student-1", cfg.Assessment.DefaultUser)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/etc/disha/bank.yaml", cfg.Assessment.BankFile)
}

func TestLoad_DSNPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("DISHA_DB", "/tmp/from-db.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-db.db", cfg.Database.DSN)

	t.Setenv("DISHA_DB_DSN", "/tmp/from-dsn.db")
	cfg, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/from-dsn.db", cfg.Database.DSN)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "database: [", "parse config"},
		{"bad driver", "database: {driver: oracle}", "database.driver"},
		{"bad level", "log: {level: loud}", "log.level"},
		{"bad ttl", "assessment: {session_ttl: soon}", "assessment.session_ttl"},
		{"empty user", "assessment: {default_user: ' '}", "default_user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Auth.JWTSecret = "abc"
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "disha", "config.yaml"), DefaultPath())
}

func TestNewLogger(t *testing.T) {
	t.Run("tui without file is nop", func(t *testing.T) {
		logger, err := LogConfig{Level: "info", Format: "console"}.NewLogger(false, true)
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(-1))
	})

	t.Run("verbose forces debug", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "logs", "disha.log")
		logger, err := LogConfig{Level: "error", Format: "json", File: file}.NewLogger(true, true)
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(-1))

		logger.Debug("hello")
		_ = logger.Sync()
		data, err := os.ReadFile(file)
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello")
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := LogConfig{Level: "loud"}.NewLogger(false, false)
		assert.Error(t, err)
	})
}
