package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultTimeout = 30 * time.Second
)

// Config holds everything evwatch needs to reach the anomaly-detection
// backend. The backend itself is an opaque collaborator; only its address is
// configurable here.
type Config struct {
	BaseURL        string        `yaml:"base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	LogPath        string        `yaml:"log_path"`
}

// Load builds a Config from defaults, an optional YAML file, and EVWATCH_*
// environment overrides, in that order of precedence (env wins).
func Load(path string) (Config, error) {
	cfg := Config{
		BaseURL:        defaultBaseURL,
		RequestTimeout: defaultTimeout,
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config file: %w", err)
		}
	}
	if v := os.Getenv("EVWATCH_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("EVWATCH_LOG_PATH"); v != "" {
		cfg.LogPath = v
	}
	if v := os.Getenv("EVWATCH_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse EVWATCH_REQUEST_TIMEOUT: %w", err)
		}
		cfg.RequestTimeout = d
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return Config{}, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	return cfg, nil
}
