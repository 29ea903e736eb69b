// SVDRec - SVD Rating Prediction and Movie Recommendation
// Copyright 2026 SVDRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlcollab/svdrec

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

// DefaultConfigPaths lists the config file search paths in priority order.
// The first file found wins.
var DefaultConfigPaths = []string{
	"svdrec.yaml",
	"svdrec.yml",
	"/etc/svdrec/svdrec.yaml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "SVDREC_CONFIG"

// envPrefix is stripped from environment variable names before mapping
// them onto config keys.
const envPrefix = "SVDREC_"

// Load builds the configuration from layered sources:
//
//	defaults -> optional YAML file -> SVDREC_* environment variables
//
// and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// SVDREC_PIPELINE_RANK -> pipeline.rank
	// SVDREC_SPLIT_TEST_FRACTION -> split.test_fraction
	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// envTransform maps an environment variable name to a config key. The
// first underscore after the prefix separates the section from the field;
// remaining underscores are kept (field names contain them).
func envTransform(name string) string {
	name = strings.ToLower(strings.TrimPrefix(name, envPrefix))
	if name == "config" {
		// SVDREC_CONFIG selects the file; it is not a config key.
		return ""
	}
	parts := strings.SplitN(name, "_", 2)
	if len(parts) != 2 {
		return name
	}
	return parts[0] + "." + parts[1]
}

// findConfigFile returns the first existing config file path, or "".
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
