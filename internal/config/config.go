package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"svw.info/watersort/internal/difficulty"
	"svw.info/watersort/internal/logging"
)

// Config holds all watersort settings.
type Config struct {
	Server     ServerConfig      `yaml:"server"`
	Logging    LoggingConfig     `yaml:"logging"`
	Storage    StorageConfig     `yaml:"storage"`
	Generator  GeneratorConfig   `yaml:"generator"`
	Hints      HintsConfig       `yaml:"hints"`
	Solver     SolverConfig      `yaml:"solver"`
	Difficulty *difficulty.Table `yaml:"difficulty,omitempty"` // nil keeps the stock table
}

// ServerConfig configures the HTTP adapter.
type ServerConfig struct {
	Addr              string `yaml:"addr"`
	ReadHeaderTimeout string `yaml:"read_header_timeout"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // json, console
}

// StorageConfig selects the level-pack store.
type StorageConfig struct {
	Kind string `yaml:"kind"` // fs, sqlite
	Path string `yaml:"path"`
}

// GeneratorConfig bounds level generation.
type GeneratorConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
	Workers     int `yaml:"workers"` // parallel batch generation
}

// HintsConfig sets the per-session hint allowance; 0 is unlimited.
type HintsConfig struct {
	Limit int `yaml:"limit"`
}

// SolverConfig bounds the full-search solver used by the CLI.
type SolverConfig struct {
	MaxNodes int    `yaml:"max_nodes"`
	Timeout  string `yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: "5s",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
		Storage: StorageConfig{
			Kind: "fs",
			Path: "./data",
		},
		Generator: GeneratorConfig{
			MaxAttempts: 10,
			Workers:     4,
		},
		Hints:  HintsConfig{Limit: 3},
		Solver: SolverConfig{MaxNodes: 200000, Timeout: "10s"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("WATERSORT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("WATERSORT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("WATERSORT_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
}

var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects values the rest of the program cannot run with.
func (c *Config) Validate() error {
	if _, err := c.ReadHeaderTimeout(); err != nil {
		return fmt.Errorf("%w: server.read_header_timeout: %v", ErrInvalidConfig, err)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("%w: logging.level: %v", ErrInvalidConfig, err)
	}
	switch c.Logging.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("%w: logging.encoding %q", ErrInvalidConfig, c.Logging.Encoding)
	}
	switch c.Storage.Kind {
	case "fs", "sqlite":
	default:
		return fmt.Errorf("%w: storage.kind %q", ErrInvalidConfig, c.Storage.Kind)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("%w: storage.path is empty", ErrInvalidConfig)
	}
	if c.Generator.MaxAttempts < 1 || c.Generator.Workers < 1 {
		return fmt.Errorf("%w: generator max_attempts=%d workers=%d", ErrInvalidConfig, c.Generator.MaxAttempts, c.Generator.Workers)
	}
	if c.Hints.Limit < 0 {
		return fmt.Errorf("%w: hints.limit %d", ErrInvalidConfig, c.Hints.Limit)
	}
	if c.Solver.MaxNodes < 0 {
		return fmt.Errorf("%w: solver.max_nodes %d", ErrInvalidConfig, c.Solver.MaxNodes)
	}
	if _, err := c.SolverTimeout(); err != nil {
		return fmt.Errorf("%w: solver.timeout: %v", ErrInvalidConfig, err)
	}
	if c.Difficulty != nil {
		if err := c.Difficulty.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// SolverTimeout parses solver.timeout; empty means no deadline.
func (c *Config) SolverTimeout() (time.Duration, error) {
	if c.Solver.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Solver.Timeout)
}

// ReadHeaderTimeout parses server.read_header_timeout.
func (c *Config) ReadHeaderTimeout() (time.Duration, error) {
	return time.ParseDuration(c.Server.ReadHeaderTimeout)
}

// Policy builds the difficulty policy from the configured table.
func (c *Config) Policy() (*difficulty.Policy, error) {
	if c.Difficulty == nil {
		return difficulty.DefaultPolicy(), nil
	}
	return difficulty.NewPolicy(*c.Difficulty)
}
