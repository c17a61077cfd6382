package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisuehlinger/hostbridge/js"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "hostbridge", cfg.Logger.ServiceName)
	assert.Empty(t, cfg.Logger.LogFile)
	assert.Equal(t, 100, cfg.Logger.MaxSize)
	assert.True(t, cfg.Logger.Compress)
	assert.Equal(t, "chrome", cfg.Session.Profile)
	require.NoError(t, cfg.Validate())

	p, err := cfg.Session.BrowserProfile()
	require.NoError(t, err)
	assert.Equal(t, js.Chrome, p)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logger:
  level: debug
  format: json
session:
  profile: firefox-esr
`), 0o600))

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "hostbridge", cfg.Logger.ServiceName, "unset keys keep their defaults")

	p, err := cfg.Session.BrowserProfile()
	require.NoError(t, err)
	assert.Equal(t, js.FirefoxESR, p)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(NewViper(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOSTBRIDGE_SESSION_PROFILE", "ie")
	t.Setenv("HOSTBRIDGE_LOGGER_LEVEL", "warn")

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, "ie", cfg.Session.Profile)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown profile", func(c *Config) { c.Session.Profile = "netscape" }, "session.profile"},
		{"bad level", func(c *Config) { c.Logger.Level = "loud" }, "logger.level"},
		{"bad format", func(c *Config) { c.Logger.Format = "xml" }, "logger.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	cfg := NewDefaultConfig()
	cfg.Session.Profile = "netscape"
	cfg.Logger.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, js.ErrUnknownProfile)
	assert.Contains(t, err.Error(), "logger.format", "all problems are reported together")
}

func TestNewConfigFromViperRejectsInvalid(t *testing.T) {
	v := NewViper()
	v.Set("session.profile", "lynx")
	_, err := NewConfigFromViper(v)
	assert.ErrorIs(t, err, js.ErrUnknownProfile)
}
