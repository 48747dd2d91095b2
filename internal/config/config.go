package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type ProjectConfig struct {
	Project  string      `yaml:"project"`
	Version  int         `yaml:"version"`
	Inputs   []string    `yaml:"inputs"`
	Exclude  []string    `yaml:"exclude"`
	Output   string      `yaml:"output"`
	Batch    BatchConfig `yaml:"batch"`
	Store    StoreConfig `yaml:"store"`
	LogLevel string      `yaml:"log_level"`
}

type BatchConfig struct {
	Workers     int           `yaml:"workers"`
	FileTimeout time.Duration `yaml:"file_timeout"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"`
	DSN     string `yaml:"dsn"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyDefaults(&cfg)
	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *ProjectConfig) {
	if cfg.Output == "" {
		cfg.Output = "extracted"
	}
	if cfg.Batch.Workers == 0 {
		cfg.Batch.Workers = 4
	}
	if cfg.Batch.FileTimeout == 0 {
		cfg.Batch.FileTimeout = 2 * time.Minute
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if len(cfg.Inputs) == 0 {
		return fmt.Errorf("at least one input path is required")
	}
	for i, input := range cfg.Inputs {
		if strings.TrimSpace(input) == "" {
			return fmt.Errorf("input %d is empty", i)
		}
	}
	if cfg.Batch.Workers < 1 {
		return fmt.Errorf("batch workers must be positive")
	}
	if cfg.Batch.FileTimeout < 0 {
		return fmt.Errorf("batch file_timeout must not be negative")
	}
	switch cfg.Store.Backend {
	case "", "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}
	if cfg.Store.Backend != "" && strings.TrimSpace(cfg.Store.DSN) == "" {
		return fmt.Errorf("store dsn is required when a backend is set")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log level: %s", cfg.LogLevel)
	}
	return nil
}
