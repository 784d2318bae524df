// Package config loads termsim.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked up by Load.
const FileName = "termsim.toml"

// Config represents the terminal configuration
type Config struct {
	Terminal TerminalConfig `toml:"terminal"`
	Accounts AccountsConfig `toml:"accounts"`
	Latency  LatencyConfig  `toml:"latency"`
	Logging  LoggingConfig  `toml:"logging"`
	Metrics  MetricsConfig  `toml:"metrics"`

	// File is the path the configuration was read from, empty for defaults.
	File string `toml:"-"`
}

// TerminalConfig contains front end settings
type TerminalConfig struct {
	Hostname     string `toml:"hostname"`
	HistoryLimit int    `toml:"history_limit"`
	Color        bool   `toml:"color"`
}

// AccountsConfig contains the account store location
type AccountsConfig struct {
	Path string `toml:"path"`
}

// LatencyConfig controls simulated network latency
type LatencyConfig struct {
	Enabled       bool `toml:"enabled"`
	PingDelayMsec int  `toml:"ping_delay_ms"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// MetricsConfig enables the Prometheus listener when Addr is set
type MetricsConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Terminal: TerminalConfig{
			Hostname:     "simhost",
			HistoryLimit: 500,
			Color:        true,
		},
		Accounts: AccountsConfig{Path: "accounts.toml"},
		Latency:  LatencyConfig{PingDelayMsec: 250},
		Logging: LoggingConfig{
			Level:  "error",
			Format: "console",
			Output: "stderr",
		},
	}
}

// SearchPaths lists where Load looks for the configuration file: next to
// the executable, its parent directory, then the working directory.
func SearchPaths() ([]string, error) {
	execDir, err := filepath.Abs(filepath.Dir(os.Args[0]))
	if err != nil {
		return nil, fmt.Errorf("failed to get executable directory: %w", err)
	}
	return []string{
		filepath.Join(execDir, FileName),
		filepath.Join(filepath.Dir(execDir), FileName),
		FileName,
	}, nil
}

// Load reads the configuration from path, or from the first file found in
// SearchPaths when path is empty. A missing file yields the defaults; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	if path == "" {
		paths, err := SearchPaths()
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
		if path == "" {
			return Default(), nil
		}
	}

	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	cfg.File = path
	return cfg, nil
}

// PingDelay returns the per-packet ping delay, zero when latency
// simulation is off.
func (c *Config) PingDelay() time.Duration {
	if !c.Latency.Enabled {
		return 0
	}
	return time.Duration(c.Latency.PingDelayMsec) * time.Millisecond
}

// AccountsPath resolves the account store path relative to the directory
// holding the configuration file.
func (c *Config) AccountsPath() string {
	p := c.Accounts.Path
	if p == "" || filepath.IsAbs(p) || c.File == "" {
		return p
	}
	return filepath.Join(filepath.Dir(c.File), p)
}
