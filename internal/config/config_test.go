package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  port: "9090"
  mode: debug
jwt:
  secret: short
  expire_hours: 2
admin:
  password: from-file
store:
  driver: sqlite
  timeout: 2s
session:
  ttl: 30m
export:
  type: local
  local_path: %s
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644))
	return dir
}

func TestLoadConfig(t *testing.T) {
	exports := filepath.Join(t.TempDir(), "exports")
	dir := writeConfig(t, fmt.Sprintf(testYAML, exports))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpireTime)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 2*time.Second, cfg.Store.Timeout)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "memory", cfg.Session.Driver, "defaults fill unset keys")
	assert.Equal(t, 600, cfg.RateLimit.MaxRequests)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.File)
	assert.DirExists(t, exports)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := writeConfig(t, fmt.Sprintf(testYAML, filepath.Join(t.TempDir(), "exports")))
	t.Setenv("ADMIN_PASSWORD", "from-env")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Admin.Password)
	assert.Equal(t, "memory", cfg.Store.Driver)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Mode: "debug"},
			JWT:     JWTConfig{Secret: "short"},
			Admin:   AdminConfig{Password: "pw"},
			Store:   StoreConfig{Driver: "memory"},
			Session: SessionConfig{Driver: "memory"},
		}
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"short secret in release", func(c *Config) { c.Server.Mode = "release" }},
		{"missing admin password", func(c *Config) { c.Admin.Password = "" }},
		{"unknown store driver", func(c *Config) { c.Store.Driver = "mongo" }},
		{"firebase without url", func(c *Config) { c.Store.Driver = "firebase" }},
		{"unknown session driver", func(c *Config) { c.Session.Driver = "disk" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
