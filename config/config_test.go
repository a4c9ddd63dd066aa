package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	// GIVEN: A config file and an env override
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(file, []byte(`
server:
  addr: ":9090"
  shutdown_timeout: 5s
store:
  driver: sqlite
  path: /tmp/x.db
features:
  enable_reset: true
`), 0o600))
	t.Setenv("INSURANCE_SERVER_ADDR", ":7070")
	t.Setenv("INSURANCE_API_LIST_CACHE_MAX_AGE", "2m")

	// WHEN: Loading
	cfg, err := Load(New(), file)

	// THEN: env beats file, file beats defaults
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/x.db", cfg.Store.Path)
	assert.True(t, cfg.Features.EnableReset)
	assert.Equal(t, 2*time.Minute, cfg.API.ListCacheMaxAge)
}

func TestLoad_CommaSeparatedOrigins(t *testing.T) {
	t.Setenv("INSURANCE_CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"empty addr", func(c *Config) { c.Server.Addr = " " }, false},
		{"unknown driver", func(c *Config) { c.Store.Driver = "postgres" }, false},
		{"sqlite without path", func(c *Config) { c.Store.Driver = DriverSQLite; c.Store.Path = "" }, false},
		{"negative cache age", func(c *Config) { c.API.ListCacheMaxAge = -time.Second }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
