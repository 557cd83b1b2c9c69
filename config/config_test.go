package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeTemp(t, "cfg.yaml", `
server:
  address: live.broker:443
  login: 77
  password: secret
  mock: false
journal:
  type: csv
  transactions_file: ./tx.csv
  sessions_file: ./sess.csv
log:
  level: debug
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "live.broker:443", cfg.Server.Address)
	assert.Equal(t, 77, cfg.Server.Login)
	assert.False(t, cfg.Server.Mock)
	assert.Equal(t, "csv", cfg.Journal.Type)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadJSON(t *testing.T) {
	path := writeTemp(t, "cfg.json", `{
  "server": {"address": "demo.broker:443", "login": 66, "mock": true},
  "journal": {"type": "none"},
  "log": {"level": "warn"}
}`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.Server.Mock)
	assert.Equal(t, "none", cfg.Journal.Type)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing address", func(c *Config) { c.Server.Address = "" }},
		{"bad login", func(c *Config) { c.Server.Login = 0 }},
		{"bad journal type", func(c *Config) { c.Journal.Type = "parquet" }},
		{"csv without files", func(c *Config) { c.Journal = JournalConfig{Type: "csv"} }},
		{"sqlite without path", func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
