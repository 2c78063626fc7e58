// SPDX-License-Identifier: Apache-2.0

// Package config loads CLI configuration from an optional YAML file with
// environment variable overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownConfigField classifies strict YAML parse failures caused by
// unknown keys. Use errors.Is(err, ErrUnknownConfigField) instead of string
// matching.
var ErrUnknownConfigField = errors.New("unknown config field")

// Config holds the settings shared by the CLI commands.
type Config struct {
	// Bucket is the default S3 bucket for message retrieval.
	Bucket string `yaml:"bucket"`

	// Prefix is the default key prefix within the bucket.
	Prefix string `yaml:"prefix"`

	// Suffix filters listed keys; only keys ending in it are fetched.
	Suffix string `yaml:"suffix"`

	// LogLevel sets the zerolog level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Suffix:   ".mos.xml",
		LogLevel: "info",
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path if non-empty, then MOSROMGR_* environment overrides. Unknown YAML
// keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			if strings.Contains(err.Error(), "not found in type") {
				return Config{}, fmt.Errorf("%w: %v", ErrUnknownConfigField, err)
			}
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv("MOSROMGR_BUCKET"); ok {
		cfg.Bucket = v
	}
	if v, ok := os.LookupEnv("MOSROMGR_PREFIX"); ok {
		cfg.Prefix = v
	}
	if v, ok := os.LookupEnv("MOSROMGR_SUFFIX"); ok {
		cfg.Suffix = v
	}
	if v, ok := os.LookupEnv("MOSROMGR_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
}
