package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds tool-wide settings. Values come from an optional YAML
// file plus DATASUM_* environment variables; environment always wins.
type Config struct {
	// PlanPath is the default aggregation plan used by summarize when
	// --plan is not given.
	PlanPath string `yaml:"plan" env:"DATASUM_PLAN" env-default:""`

	// OutputDir is where generate writes datasets by default.
	OutputDir string `yaml:"output_dir" env:"DATASUM_OUTPUT_DIR" env-default:"datasets"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"DATASUM_LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from path when given, otherwise from the
// environment alone. A missing explicit file is an error; no file at
// all is fine.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		return cfg, nil
	}

	// Default location, silently skipped when absent.
	if _, err := os.Stat("datasum.yaml"); err == nil {
		if err := cleanenv.ReadConfig("datasum.yaml", cfg); err != nil {
			return nil, fmt.Errorf("reading datasum.yaml: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return cfg, nil
}
