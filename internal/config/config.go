// Package config loads the service configuration from a YAML file, with
// every field optional: an empty config yields a working in-memory service
// without collaborators.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full service configuration.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `yaml:"addr"`

	// CatalogPath points at the product CSV.
	CatalogPath string `yaml:"catalog_path"`

	// LogJSON switches the stderr logger to JSON output.
	LogJSON bool `yaml:"log_json"`

	Redis Redis `yaml:"redis"`
	AI    AI    `yaml:"ai"`
}

// Redis configures the optional session backend. An empty Addr keeps
// sessions in process memory.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`

	// TTL is a duration string like "30m". Empty means sessions never
	// expire.
	TTL string `yaml:"ttl"`

	// Lock enables the distributed session lock, for multi-replica runs.
	Lock bool `yaml:"lock"`
}

// SessionTTL parses TTL; malformed or empty values mean no expiry.
func (r Redis) SessionTTL() time.Duration {
	if d, err := time.ParseDuration(r.TTL); err == nil {
		return d
	}
	return 0
}

// AI configures the optional text-generation and embedding collaborators.
// An empty APIKey disables both; the service then uses its deterministic
// responses and lexical search.
type AI struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	ChatModel      string `yaml:"chat_model"`
	EmbeddingModel string `yaml:"embedding_model"`

	// Timeout is a duration string like "30s". Empty uses the provider
	// default.
	Timeout string `yaml:"timeout"`
}

// RequestTimeout parses Timeout; malformed or empty values mean the
// provider default applies.
func (a AI) RequestTimeout() time.Duration {
	if d, err := time.ParseDuration(a.Timeout); err == nil {
		return d
	}
	return 0
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Addr:        ":8080",
		CatalogPath: "gadgets_dataset.csv",
	}
}

// Load reads a YAML config file, layering it over the defaults. A missing
// path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	return cfg, nil
}
