// Package config holds the operator-facing configuration of the
// adapter CLI: server endpoint and manager credentials, journal
// backend and logging.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the complete CLI configuration.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// ServerConfig identifies the MT4 server and the manager account.
// With Mock set the CLI runs against the in-process simulator instead
// of a native bridge.
type ServerConfig struct {
	Address  string `json:"address" yaml:"address"`
	Login    int    `json:"login" yaml:"login"`
	Password string `json:"password" yaml:"password"`
	Mock     bool   `json:"mock" yaml:"mock"`
}

// JournalConfig selects the journal backend.
type JournalConfig struct {
	Type             string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TransactionsFile string `json:"transactions_file,omitempty" yaml:"transactions_file,omitempty"`
	SessionsFile     string `json:"sessions_file,omitempty" yaml:"sessions_file,omitempty"`
	DBPath           string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LogConfig contains logging parameters.
type LogConfig struct {
	Level   string `json:"level" yaml:"level"` // debug|info|warn|error
	NoColor bool   `json:"no_color,omitempty" yaml:"no_color,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	if c.Server.Login <= 0 {
		return fmt.Errorf("server.login must be positive")
	}
	switch c.Journal.Type {
	case "none":
	case "csv":
		if c.Journal.TransactionsFile == "" || c.Journal.SessionsFile == "" {
			return fmt.Errorf("journal transactions_file and sessions_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error")
	}
	return nil
}

// Default returns a configuration with sensible defaults: the demo
// fixture behind the simulator and an SQLite journal next to the
// binary.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address: "demo.broker:443",
			Login:   66,
			Mock:    true,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./mt4adm.sqlite",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
