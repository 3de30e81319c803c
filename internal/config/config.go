package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vetsec/url-security/internal/domain/heuristics"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Heuristics HeuristicsConfig `yaml:"heuristics"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type DatabaseConfig struct {
	// URL is the postgres connection string. Empty means the server runs
	// without persistence.
	URL string `yaml:"url"`
}

// HeuristicsConfig overrides the engine's built-in reference lists.
// A list left empty keeps its default.
type HeuristicsConfig struct {
	PopularDomains []string `yaml:"popular_domains"`
	SuspiciousTLDs []string `yaml:"suspicious_tlds"`
	FraudKeywords  []string `yaml:"fraud_keywords"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	applyEnvOverrides(cfg)
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return &cfg, nil
}

// LoadFromBytes parses configuration without applying environment overrides.
// This is intended for testing where env vars should not interfere.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = "127.0.0.1:8080"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("URLVET_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
}

// Lists converts the heuristics section into engine reference lists, falling
// back to the built-in defaults list by list
func (c *Config) Lists() heuristics.Lists {
	defaults := heuristics.DefaultLists()

	lists := heuristics.Lists{
		PopularDomains: c.Heuristics.PopularDomains,
		SuspiciousTLDs: c.Heuristics.SuspiciousTLDs,
		FraudKeywords:  c.Heuristics.FraudKeywords,
	}
	if len(lists.PopularDomains) == 0 {
		lists.PopularDomains = defaults.PopularDomains
	}
	if len(lists.SuspiciousTLDs) == 0 {
		lists.SuspiciousTLDs = defaults.SuspiciousTLDs
	}
	if len(lists.FraudKeywords) == 0 {
		lists.FraudKeywords = defaults.FraudKeywords
	}

	return lists.Normalized()
}
