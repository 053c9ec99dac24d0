package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"evwatch/internal/platform/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("EVWATCH_BASE_URL", "")
	t.Setenv("EVWATCH_LOG_PATH", "")
	t.Setenv("EVWATCH_REQUEST_TIMEOUT", "")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000" {
		t.Fatalf("base url = %q", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("timeout = %v", cfg.RequestTimeout)
	}
	if cfg.LogPath != "" {
		t.Fatalf("log path = %q, want empty", cfg.LogPath)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "evwatch.yaml")
	payload := "base_url: https://detector.example.com/\nrequest_timeout: 10s\nlog_path: /tmp/evwatch.log\n"
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "https://detector.example.com" {
		t.Fatalf("base url = %q, trailing slash should be trimmed", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("timeout = %v", cfg.RequestTimeout)
	}
	if cfg.LogPath != "/tmp/evwatch.log" {
		t.Fatalf("log path = %q", cfg.LogPath)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "evwatch.yaml")
	if err := os.WriteFile(path, []byte("base_url: http://file-wins:8000\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("EVWATCH_BASE_URL", "http://env-wins:9000")
	t.Setenv("EVWATCH_REQUEST_TIMEOUT", "5s")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseURL != "http://env-wins:9000" {
		t.Fatalf("base url = %q, env should win", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("timeout = %v", cfg.RequestTimeout)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("missing explicit config file should fail")
	}
}

func TestLoadBadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("EVWATCH_REQUEST_TIMEOUT", "soon")
	if _, err := config.Load(""); err == nil {
		t.Fatalf("unparseable timeout should fail")
	}
}

func TestLoadInvalidBaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("EVWATCH_BASE_URL", "not a url")
	if _, err := config.Load(""); err == nil {
		t.Fatalf("invalid base url should fail")
	}
}
