// Package config loads mindreader settings. Later sources override earlier:
// defaults, YAML file, MINDREADER_* environment variables, command flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// #region config
// Config holds all mindreader settings.
type Config struct {
	// DBPath is the SQLite database for sessions and turns.
	DBPath string `yaml:"db_path"`

	// Driver selects the turn driver: pull, coroutine or pennies.
	Driver string `yaml:"driver"`

	// Seed fixes the random stream. 0 picks a fresh seed per session.
	Seed uint64 `yaml:"seed"`

	// ListenAddr is the gRPC address for serve.
	ListenAddr string `yaml:"listen_addr"`

	// MetricsAddr serves /metrics. Empty disables it.
	MetricsAddr string `yaml:"metrics_addr"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBPath:      "mindreader.db",
		Driver:      "pull",
		ListenAddr:  "localhost:50061",
		MetricsAddr: "localhost:9161",
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// #endregion config

// #region load
// Load builds a Config from defaults, the YAML file at path (skipped when path
// is empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.DBPath = envOr("MINDREADER_DB", c.DBPath)
	c.Driver = envOr("MINDREADER_DRIVER", c.Driver)
	c.ListenAddr = envOr("MINDREADER_LISTEN", c.ListenAddr)
	c.MetricsAddr = envOr("MINDREADER_METRICS", c.MetricsAddr)
	c.LogLevel = envOr("MINDREADER_LOG_LEVEL", c.LogLevel)
	c.LogFormat = envOr("MINDREADER_LOG_FORMAT", c.LogFormat)
	if v := os.Getenv("MINDREADER_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MINDREADER_SEED: %w", err)
		}
		c.Seed = seed
	}
	return nil
}

// #endregion load

// #region validate
// Validate rejects settings the commands cannot run with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Driver {
	case "pull", "coroutine", "pennies":
	default:
		errs = append(errs, fmt.Errorf("driver: unknown %q", c.Driver))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format: unknown %q", c.LogFormat))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path: required"))
	}
	return errors.Join(errs...)
}

// #endregion validate

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// #endregion helpers
