package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/teslashibe/go-limelight/pkg/limelight"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("LIMELIGHT_HOST", "")
	t.Setenv("LIMELIGHT_PORT", "")

	cfg, level, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != limelight.DefaultConfig() {
		t.Errorf("Expected library defaults, got %+v", cfg)
	}
	if level != "info" {
		t.Errorf("Expected info log level, got %q", level)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "camera.yaml")
	data := "host: 10.42.0.11\nport: 5800\npoll_interval: 50ms\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, level, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Host != "10.42.0.11" || cfg.Port != 5800 || cfg.PollInterval != 50*time.Millisecond {
		t.Errorf("File values not applied: %+v", cfg)
	}
	if level != "debug" {
		t.Errorf("Expected debug log level, got %q", level)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "camera.yaml")
	if err := os.WriteFile(path, []byte("host: 10.42.0.11\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	t.Setenv("LIMELIGHT_HOST", "limelight.local")
	t.Setenv("LIMELIGHT_PORT", "5801")

	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Host != "limelight.local" || cfg.Port != 5801 {
		t.Errorf("Env overrides not applied: %+v", cfg)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "camera.yaml")
	if err := os.WriteFile(path, []byte("host: [unclosed\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, _, err := Load(path); err == nil {
		t.Error("Expected error for malformed YAML")
	}
}
