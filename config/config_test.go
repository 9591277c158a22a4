package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PORT", "")
	t.Setenv("DB_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "./data", cfg.Storage.DataDir)
	assert.Equal(t, "us-east-1", cfg.Storage.S3.Region)
	assert.Equal(t, "@every 24h", cfg.Reminders.Schedule)
	assert.False(t, cfg.Reminders.Notify)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("STREAMDESK_STORAGE_DRIVER", "postgres")
	t.Setenv("DB_URL", "postgres://localhost/streamdesk")
	t.Setenv("STREAMDESK_REMINDERS_NOTIFY", "true")
	t.Setenv("STREAMDESK_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "postgres://localhost/streamdesk", cfg.Storage.PostgresDSN)
	assert.True(t, cfg.Reminders.Notify)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ExplicitPortWins(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PORT", "9000")
	t.Setenv("STREAMDESK_SERVER_PORT", "7000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Storage:   StorageConfig{Driver: "sqlite"},
			Reminders: ReminderConfig{Schedule: "@daily"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "redis" }, wantErr: "unknown storage driver"},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Storage.Driver = "postgres" }, wantErr: "requires a DSN"},
		{name: "s3 without bucket", mutate: func(c *Config) { c.Storage.Driver = "s3" }, wantErr: "requires a bucket"},
		{name: "empty schedule", mutate: func(c *Config) { c.Reminders.Schedule = "" }, wantErr: "empty schedule"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigureZerolog(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	(&LogConfig{Level: "warn", Format: "json"}).ConfigureZerolog()
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	(&LogConfig{Level: "nonsense"}).ConfigureZerolog()
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
