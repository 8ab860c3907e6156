package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// RootName names the root directory of the simulated tree.
	RootName string   `yaml:"root_name"`
	Exclude  []string `yaml:"exclude"`
	// Workers bounds the manifest preparation pool.
	Workers   int    `yaml:"workers"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func DefaultConfig() *Config {
	return &Config{
		RootName: "Root",
		Exclude: []string{
			".git/",
			".svn/",
			"node_modules/",
			"__pycache__/",
			"*.tmp",
			"*.swp",
			".DS_Store",
			"Thumbs.db",
		},
		Workers:   runtime.NumCPU(),
		LogLevel:  "warn",
		LogFormat: "console",
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Initialize Exclude slice if nil (for empty configs)
	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}

	defaults := DefaultConfig()
	if cfg.RootName == "" {
		cfg.RootName = defaults.RootName
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaults.Workers
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = defaults.LogFormat
	}

	return &cfg, nil
}
