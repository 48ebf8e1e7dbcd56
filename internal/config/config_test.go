package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataSource.Provider != "yahoo" {
		t.Errorf("provider = %q, want yahoo", cfg.DataSource.Provider)
	}
	if cfg.Analysis.MinScore != 35 || cfg.Analysis.LookbackDays != 500 {
		t.Errorf("analysis defaults wrong: %+v", cfg.Analysis)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
data_source:
  provider: mock
analysis:
  min_score: 50
  universe: curated
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MIN_SCORE", "42.5")
	t.Setenv("SQLITE_PATH", "/tmp/override.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataSource.Provider != "mock" {
		t.Errorf("provider = %q, want mock", cfg.DataSource.Provider)
	}
	if cfg.Analysis.MinScore != 42.5 {
		t.Errorf("env must override file: min_score = %v", cfg.Analysis.MinScore)
	}
	if cfg.Database.SQLitePath != "/tmp/override.db" {
		t.Errorf("sqlite path = %q", cfg.Database.SQLitePath)
	}
	if cfg.Analysis.Universe != "curated" {
		t.Errorf("universe = %q", cfg.Analysis.Universe)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad provider", func(c *Config) { c.DataSource.Provider = "bloomberg" }},
		{"bad universe", func(c *Config) { c.Analysis.Universe = "everything" }},
		{"short lookback", func(c *Config) { c.Analysis.LookbackDays = 30 }},
		{"too many workers", func(c *Config) { c.Analysis.Workers = 50 }},
		{"empty db path", func(c *Config) { c.Database.SQLitePath = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
