// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kraklabs/tgbridge/internal/errors"
	"github.com/kraklabs/tgbridge/pkg/driver"
)

const (
	configDirName  = ".tgbridge"
	configFileName = "config.yaml"

	// ConfigVersion is written by init and required on load.
	ConfigVersion = "1"
)

// Environment variables read by LoadConfig.
const (
	envConfig   = "TGBRIDGE_CONFIG"
	envURI      = "TGBRIDGE_URI"
	envUsername = "TGBRIDGE_USERNAME"
	envPassword = "TGBRIDGE_PASSWORD"
	envGraph    = "TGBRIDGE_GRAPH"
	envTimeout  = "TGBRIDGE_TIMEOUT"
)

// Config is the on-disk CLI configuration.
type Config struct {
	Version  string        `yaml:"version"`
	Engine   driver.Config `yaml:"engine"`
	LogLevel string        `yaml:"log_level,omitempty"`
}

// DefaultConfig returns the configuration written by a bare `tgbridge init`.
func DefaultConfig() *Config {
	return &Config{
		Version: ConfigVersion,
		Engine: driver.Config{
			URI:            "list://127.0.0.1:9090",
			Username:       "admin",
			Graph:          "default",
			TimeoutSeconds: 10,
		},
		LogLevel: "warn",
	}
}

// ConfigPath returns the default configuration path under dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, configDirName, configFileName)
}

// resolveConfigPath picks the --config flag, then $TGBRIDGE_CONFIG, then
// ./.tgbridge/config.yaml.
func resolveConfigPath(flagPath string) (string, error) {
	if flagPath != "" {
		return flagPath, nil
	}
	if p := os.Getenv(envConfig); p != "" {
		return p, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return ConfigPath(cwd), nil
}

// LoadConfig reads, overrides and validates the configuration. A missing
// file is tolerated when TGBRIDGE_URI is set. It returns the path it used.
func LoadConfig(flagPath string) (*Config, string, error) {
	path, err := resolveConfigPath(flagPath)
	if err != nil {
		return nil, "", errors.NewConfigError("Cannot locate configuration", err.Error(), "", err)
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg, err = parseConfig(data)
		if err != nil {
			return nil, path, errors.NewConfigError(
				"Cannot parse tgbridge configuration",
				fmt.Sprintf("%s: %v", path, err),
				"Fix the YAML or recreate it with: tgbridge init --force",
				err,
			)
		}
	case os.IsNotExist(err) && os.Getenv(envURI) != "":
		slog.Debug("config.file.missing", "path", path, "using", envURI)
	case os.IsNotExist(err):
		return nil, path, errors.NewConfigError(
			"No tgbridge configuration found",
			fmt.Sprintf("%s does not exist", path),
			"Run 'tgbridge init' or set TGBRIDGE_URI",
			err,
		)
	default:
		return nil, path, errors.NewConfigError("Cannot read tgbridge configuration", err.Error(), "", err)
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, path, errors.NewConfigError("Invalid environment override", err.Error(), "", err)
	}
	if err := cfg.Engine.Validate(); err != nil {
		return nil, path, err
	}
	if _, err := parseLogLevel(cfg.LogLevel); err != nil {
		return nil, path, errors.NewConfigError("Invalid log_level", err.Error(), "Use debug, info, warn or error", err)
	}
	return cfg, path, nil
}

func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	if cfg.Version != ConfigVersion {
		return nil, fmt.Errorf("unsupported config version %q (want %q)", cfg.Version, ConfigVersion)
	}
	return &cfg, nil
}

// applyEnv overrides engine settings from the environment.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(envURI); v != "" {
		c.Engine.URI = v
	}
	if v := getenv(envUsername); v != "" {
		c.Engine.Username = v
	}
	if v := getenv(envPassword); v != "" {
		c.Engine.Password = v
	}
	if v := getenv(envGraph); v != "" {
		c.Engine.Graph = v
	}
	if v := getenv(envTimeout); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs < 0 {
			return fmt.Errorf("%s=%q is not a non-negative number of seconds", envTimeout, v)
		}
		c.Engine.TimeoutSeconds = secs
	}
	return nil
}

// SaveConfig writes cfg to path. The file may hold a password, so it is
// only readable by the owner.
func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o600)
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
