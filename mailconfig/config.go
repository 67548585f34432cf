// Package mailconfig provides environment-variable-first configuration
// loading, with optional YAML file fallback, for tools built on top of the
// mail library. The library packages themselves take no configuration;
// this exists for the cmd/mailgen demo and for any other host program that
// wants one place to set defaults like the outgoing charset or log level.
package mailconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultBoundaryLength mirrors boundary.length; kept here too so a config
// file can document the value without importing the boundary package.
const defaultBoundaryLength = 44

// Config holds the complete configuration for a mail-composing tool.
type Config struct {
	Message MessageConfig `yaml:"message"`
	Logging LoggingConfig `yaml:"logging"`
}

// MessageConfig holds defaults applied when building a Message.
type MessageConfig struct {
	DefaultCharset string `yaml:"default_charset"`
	BoundaryLength int    `yaml:"boundary_length"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SlogLevel parses Level into a log/slog level, defaulting to Info for an
// empty or unrecognized value.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load loads configuration from environment variables with sensible
// defaults. Environment variables always take precedence.
func Load() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnvVars()
	return cfg
}

// LoadFromFile loads configuration from a YAML file as the base layer,
// then overrides with environment variables.
func LoadFromFile(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvVars()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	c.Message.DefaultCharset = "utf-8"
	c.Message.BoundaryLength = defaultBoundaryLength
	c.Logging.Level = "info"
}

func (c *Config) applyEnvVars() {
	if v := os.Getenv("MAIL_DEFAULT_CHARSET"); v != "" {
		c.Message.DefaultCharset = v
	}
	if v := os.Getenv("MAIL_BOUNDARY_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Message.BoundaryLength = n
		}
	}
	if v := os.Getenv("MAIL_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
}
