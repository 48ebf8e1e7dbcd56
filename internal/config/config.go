package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider string `yaml:"provider"` // "yahoo" or "mock"
		Suffix   string `yaml:"suffix"`   // exchange ticker suffix
	} `yaml:"data_source"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		DailyCron  string `yaml:"daily_cron"`
		FridayCron string `yaml:"friday_cron"`
	} `yaml:"schedule"`
	Analysis struct {
		MinScore     float64 `yaml:"min_score"`
		LookbackDays int     `yaml:"lookback_days"`
		Universe     string  `yaml:"universe"` // "full", "curated", or "basic"
		BatchSize    int     `yaml:"batch_size"`
		Workers      int     `yaml:"workers"`
	} `yaml:"analysis"`
	Backtest struct {
		StartN  int `yaml:"start_n"`
		Periods int `yaml:"periods"`
	} `yaml:"backtest"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("CRON_FRIDAY"); v != "" {
		cfg.Schedule.FridayCron = v
	}
	if v := os.Getenv("MIN_SCORE"); v != "" {
		if score, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Analysis.MinScore = score
		}
	}
	if v := os.Getenv("SYMBOL_UNIVERSE"); v != "" {
		cfg.Analysis.Universe = v
	}

	// Defaults
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.Suffix == "" {
		cfg.DataSource.Suffix = ".NS"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/screener.db"
	}
	if cfg.Schedule.DailyCron == "" {
		// Trading days after NSE close, 16:00 IST
		cfg.Schedule.DailyCron = "0 0 16 * * 1-5"
	}
	if cfg.Schedule.FridayCron == "" {
		cfg.Schedule.FridayCron = "0 30 16 * * 5"
	}
	if cfg.Analysis.MinScore == 0 {
		cfg.Analysis.MinScore = 35
	}
	if cfg.Analysis.LookbackDays == 0 {
		cfg.Analysis.LookbackDays = 500
	}
	if cfg.Analysis.Universe == "" {
		cfg.Analysis.Universe = "full"
	}
	if cfg.Analysis.BatchSize == 0 {
		cfg.Analysis.BatchSize = 100
	}
	if cfg.Analysis.Workers == 0 {
		cfg.Analysis.Workers = 3
	}
	if cfg.Backtest.StartN == 0 {
		cfg.Backtest.StartN = 4
	}
	if cfg.Backtest.Periods == 0 {
		cfg.Backtest.Periods = 4
	}

	return cfg, nil
}

// Validate checks that all required fields are coherent.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	default:
		return fmt.Errorf("data_source.provider must be yahoo or mock, got %q", c.DataSource.Provider)
	}
	switch c.Analysis.Universe {
	case "full", "curated", "basic":
	default:
		return fmt.Errorf("analysis.universe must be full, curated, or basic, got %q", c.Analysis.Universe)
	}
	if c.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required")
	}
	if c.Analysis.LookbackDays < 250 {
		return fmt.Errorf("analysis.lookback_days must cover at least a trading year, got %d", c.Analysis.LookbackDays)
	}
	if c.Analysis.Workers < 1 || c.Analysis.Workers > 5 {
		return fmt.Errorf("analysis.workers must be in [1,5], got %d", c.Analysis.Workers)
	}
	return nil
}
