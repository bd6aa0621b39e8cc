// Rewind - Watch History Analytics Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/rewind

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"rewind.yaml",
	"rewind.yml",
	"/etc/rewind/config.yaml",
	"/etc/rewind/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the
// config file path.
const ConfigPathEnvVar = "REWIND_CONFIG"

// Load loads configuration using Koanf v2 with layered sources:
//
//  1. Defaults: built-in values from defaultConfig
//  2. Config file: optional YAML file (REWIND_CONFIG or default paths)
//  3. Environment variables: highest priority
//
// The merged result is validated before being returned; an invalid
// configuration is fatal and the pipeline must not run.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the first file found, or empty string if none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps recognized environment variables to config paths.
// Unrecognized variables are ignored so unrelated environment noise
// cannot leak into the configuration.
var envMappings = map[string]string{
	"input_path":             "input.path",
	"session_gap_minutes":    "pipeline.session_gap_minutes",
	"retention_years":        "pipeline.retention_years",
	"binge_threshold_videos": "pipeline.binge_threshold_videos",
	"duration_short_max":     "pipeline.duration_short_max",
	"duration_medium_max":    "pipeline.duration_medium_max",
	"youtube_api_key":        "youtube.api_key",
	"api_batch_size":         "youtube.batch_size",
	"youtube_timeout":        "youtube.timeout",
	"youtube_rate_limit":     "youtube.requests_per_second",
	"topic_clusters":         "classify.topics",
	"output_dir":             "output.dir",
	"top_channels":           "output.top_channels",
	"log_level":              "logging.level",
	"log_format":             "logging.format",
}

// envTransformFunc maps environment variable names to koanf config
// paths, e.g. SESSION_GAP_MINUTES -> pipeline.session_gap_minutes.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
