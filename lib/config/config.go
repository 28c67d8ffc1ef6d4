// Copyright 2026 The SupportHub Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the SupportHub
// client.
//
// Configuration is loaded from a single file specified by:
//   - SUPPORTHUB_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery beyond built-in
// defaults. The config file is the single source of truth; environment
// variables do not override individual values. The only expansion
// performed is ${HOME} and similar path variables for portability.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the client configuration.
type Config struct {
	// Server configures the backend connection.
	Server ServerConfig `yaml:"server"`

	// Paths configures local directory locations.
	Paths PathsConfig `yaml:"paths"`

	// UI configures list and polling behavior.
	UI UIConfig `yaml:"ui"`
}

// ServerConfig configures the backend connection.
type ServerConfig struct {
	// BaseURL is the backend base path including the API prefix.
	// Default: http://localhost:8081/api
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-request HTTP timeout.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`
}

// PathsConfig configures local directory locations.
type PathsConfig struct {
	// State is the directory holding client state, most importantly
	// the durable session token.
	// Default: ~/.local/state/supporthub
	State string `yaml:"state"`
}

// UIConfig configures list and polling behavior.
type UIConfig struct {
	// PageSize is the default page size for list screens.
	// Default: 10
	PageSize int `yaml:"page_size"`

	// NotificationPoll is the unread-count poll cadence.
	// Default: 30s
	NotificationPoll time.Duration `yaml:"notification_poll"`
}

// Default returns the default configuration. These defaults make the
// client usable against a local backend with no config file at all.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Server: ServerConfig{
			BaseURL: "http://localhost:8081/api",
			Timeout: 30 * time.Second,
		},
		Paths: PathsConfig{
			State: filepath.Join(homeDir, ".local", "state", "supporthub"),
		},
		UI: UIConfig{
			PageSize:         10,
			NotificationPoll: 30 * time.Second,
		},
	}
}

// Load loads configuration from the SUPPORTHUB_CONFIG environment
// variable when set, or returns the defaults when it is not. Unlike
// server deployments, a client with no config file is a normal state,
// not an error.
func Load() (*Config, error) {
	configPath := os.Getenv("SUPPORTHUB_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merging it
// over the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in
// paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Paths.State = expandVars(c.Paths.State, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.BaseURL == "" {
		errs = append(errs, fmt.Errorf("server.base_url is required"))
	}
	if c.Server.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("server.timeout must be positive"))
	}
	if c.Paths.State == "" {
		errs = append(errs, fmt.Errorf("paths.state is required"))
	}
	if c.UI.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("ui.page_size must be positive"))
	}
	if c.UI.NotificationPoll <= 0 {
		errs = append(errs, fmt.Errorf("ui.notification_poll must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// EnsurePaths creates the configured state directory if it does not
// exist. Private: the token file lives here.
func (c *Config) EnsurePaths() error {
	if err := os.MkdirAll(c.Paths.State, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", c.Paths.State, err)
	}
	return nil
}
