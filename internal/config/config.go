// Package config loads the YAML settings shared by the dbspec server and
// CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/koustreak/dbspec/internal/engines"
	"github.com/koustreak/dbspec/internal/logger"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the root of the YAML document.
type Config struct {
	Log     logger.Config `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
	Probe   ProbeConfig   `yaml:"probe"`
	Engines []string      `yaml:"engines"` // empty means every built-in engine
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// ProbeConfig configures test connections.
type ProbeConfig struct {
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Log: *logger.DefaultConfig(),
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Probe: ProbeConfig{
			ConnectTimeout: 10 * time.Second,
		},
	}
}

// Load reads path over DefaultConfig and validates the result. Keys missing
// from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse is Load without the file.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and engine names.
func (c *Config) Validate() error {
	if c.Log.Level != "" && !logger.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: log.level %q", ErrInvalid, c.Log.Level)
	}
	switch c.Log.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("%w: log.format %q", ErrInvalid, c.Log.Format)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalid)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("%w: server.read_timeout must be positive", ErrInvalid)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("%w: server.write_timeout must be positive", ErrInvalid)
	}
	if c.Probe.ConnectTimeout <= 0 {
		return fmt.Errorf("%w: probe.connect_timeout must be positive", ErrInvalid)
	}

	known := engines.Names()
	for _, name := range c.Engines {
		if !slices.Contains(known, strings.ToLower(strings.TrimSpace(name))) {
			return fmt.Errorf("%w: unknown engine %q (known: %s)", ErrInvalid, name, strings.Join(known, ", "))
		}
	}
	return nil
}
