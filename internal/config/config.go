// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package config loads the CLI's optional YAML configuration file,
// using layered discovery (project directory, then platform-specific
// standard location). Nothing in the audit/cleaning contract itself is
// configurable here — the fixed detection and scoring parameters live
// as compiled constants in reconstruct, risk, and stripper, never as
// config fields.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/awslabs/redact-check/internal/paths"

	"gopkg.in/yaml.v3"
)

// Config holds CLI-level defaults. It never influences analysis or
// cleaning semantics; it only controls presentation and I/O
// conveniences.
type Config struct {
	Defaults struct {
		Format  string `yaml:"format"`   // "json", "yaml", "text", or "sarif"
		NoColor bool   `yaml:"no_color"`
		Debug   bool   `yaml:"debug"`
	} `yaml:"defaults"`

	Clean struct {
		OutputSuffix string `yaml:"output_suffix"` // appended before .pdf when --output is not given
	} `yaml:"clean"`

	// Platform carries platform-specific config-directory overrides.
	Platform *PlatformConfig `yaml:"platform,omitempty"`
}

// PlatformConfig holds platform-specific configuration settings.
type PlatformConfig struct {
	Windows *WindowsConfig `yaml:"windows,omitempty"`
	Unix    *UnixConfig    `yaml:"unix,omitempty"`
}

// WindowsConfig holds Windows-specific configuration settings.
type WindowsConfig struct {
	UseAppData bool   `yaml:"use_appdata"`
	ConfigDir  string `yaml:"config_dir"`
}

// UnixConfig holds Unix-specific configuration settings.
type UnixConfig struct {
	UseXDG    bool   `yaml:"use_xdg"`
	ConfigDir string `yaml:"config_dir"`
}

// defaultConfig returns the built-in defaults applied before any file is read.
func defaultConfig() *Config {
	c := &Config{}
	c.Defaults.Format = "json"
	c.Defaults.NoColor = false
	c.Defaults.Debug = false
	c.Clean.OutputSuffix = ".cleaned"
	c.Platform = getDefaultPlatformConfig()
	return c
}

// LoadConfig loads configuration from the specified file path. An empty
// path returns the built-in defaults without touching the filesystem.
func LoadConfig(configPath string) (*Config, error) {
	cfg := defaultConfig()

	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// FindConfigFile looks for a configuration file in standard locations,
// project directory first, then the platform-aware standard location.
func FindConfigFile() string {
	for _, name := range []string{"redact-check.yaml", "redact-check.yml", ".redact-check.yaml"} {
		if fileExists(name) {
			return name
		}
	}
	if standard := paths.GetConfigFile(); fileExists(standard) {
		return standard
	}
	return ""
}

func fileExists(filename string) bool {
	if filename == "" {
		return false
	}
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func getDefaultPlatformConfig() *PlatformConfig {
	pc := &PlatformConfig{}
	if runtime.GOOS == "windows" {
		pc.Windows = &WindowsConfig{UseAppData: true}
	} else {
		pc.Unix = &UnixConfig{UseXDG: true}
	}
	return pc
}

// ValidateConfig validates the configuration's platform-specific paths.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	if cfg.Platform == nil {
		return nil
	}
	if cfg.Platform.Windows != nil && cfg.Platform.Windows.ConfigDir != "" {
		if err := paths.ValidatePath(cfg.Platform.Windows.ConfigDir); err != nil {
			return fmt.Errorf("invalid Windows config directory: %w", err)
		}
	}
	if cfg.Platform.Unix != nil && cfg.Platform.Unix.ConfigDir != "" {
		if err := paths.ValidatePath(cfg.Platform.Unix.ConfigDir); err != nil {
			return fmt.Errorf("invalid Unix config directory: %w", err)
		}
	}
	return nil
}
