package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultFlushEvery is the project-count cadence between batch loads.
const DefaultFlushEvery = 5

type Config struct {
	Projects    []string          `yaml:"projects"`
	Destination DestinationConfig `yaml:"destination"`
	FlushEvery  int               `yaml:"flush_every"`
}

// DestinationConfig identifies the BigQuery table the run loads into.
type DestinationConfig struct {
	Project string `yaml:"project"`
	Dataset string `yaml:"dataset"`
	Table   string `yaml:"table"`
}

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}

	_, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// .env is optional; explicit environment wins for the destination
	// project so one config file can serve multiple deployments.
	_ = godotenv.Load()
	if p := os.Getenv("BQ_PROJECT_ID"); p != "" {
		cfg.Destination.Project = p
	}

	if cfg.FlushEvery == 0 {
		cfg.FlushEvery = DefaultFlushEvery
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Projects) == 0 {
		return errors.New("at least one project is required")
	}
	for _, p := range c.Projects {
		if strings.TrimSpace(p) == "" {
			return errors.New("projects entries must be non-empty")
		}
	}
	if c.Destination.Project == "" {
		return errors.New("destination.project is required")
	}
	if c.Destination.Dataset == "" {
		return errors.New("destination.dataset is required")
	}
	if c.Destination.Table == "" {
		return errors.New("destination.table is required")
	}
	if c.FlushEvery < 1 {
		return errors.New("flush_every must be positive")
	}
	return nil
}
