// Package config provides configuration helpers for go-limelight commands.
//
// Commands resolve the camera address in order: flags, environment
// (LIMELIGHT_HOST, LIMELIGHT_PORT), an optional YAML file, then the
// library defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/teslashibe/go-limelight/pkg/limelight"
)

// File is the on-disk shape of a command configuration.
type File struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	PollInterval time.Duration `yaml:"poll_interval"`
	LogLevel     string        `yaml:"log_level"`
}

// Load reads a YAML config file and merges it over the library defaults.
// A missing file is not an error; an unreadable or malformed one is.
func Load(path string) (limelight.Config, string, error) {
	cfg := limelight.DefaultConfig()
	level := "info"

	if path == "" {
		return applyEnv(cfg), level, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg), level, nil
		}
		return cfg, level, fmt.Errorf("read config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return cfg, level, fmt.Errorf("parse config %s: %w", path, err)
	}

	if f.Host != "" {
		cfg.Host = f.Host
	}
	if f.Port != 0 {
		cfg.Port = f.Port
	}
	if f.PollInterval != 0 {
		cfg.PollInterval = f.PollInterval
	}
	if f.LogLevel != "" {
		level = f.LogLevel
	}
	return applyEnv(cfg), level, nil
}

// applyEnv overrides cfg with LIMELIGHT_HOST / LIMELIGHT_PORT if set.
func applyEnv(cfg limelight.Config) limelight.Config {
	if host := os.Getenv("LIMELIGHT_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("LIMELIGHT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	return cfg
}
