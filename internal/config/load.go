package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a replicheck.yaml configuration file. Validation is deferred
// until flags and environment overrides have been merged in.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return &cfg, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a fully merged Config for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	if len(cfg.Servers) == 0 {
		errs = append(errs, "at least one server is required")
	}
	seen := make(map[string]bool)
	for i, s := range cfg.Servers {
		if s == "" {
			errs = append(errs, fmt.Sprintf("server[%d]: name is empty", i))
			continue
		}
		if seen[s] {
			errs = append(errs, fmt.Sprintf("server[%d]: duplicate server '%s'", i, s))
		}
		seen[s] = true
	}

	if cfg.Domain == "" && cfg.Suffix == "" {
		errs = append(errs, "'domain' is required (or supply 'suffix' explicitly)")
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		errs = append(errs, fmt.Sprintf("port %d is out of range 1-65535", cfg.Port))
	}

	if cfg.Warning < 0 {
		errs = append(errs, fmt.Sprintf("warning threshold %d must not be negative", cfg.Warning))
	}
	if cfg.Critical < cfg.Warning {
		errs = append(errs, fmt.Sprintf("critical threshold %d must not be below warning threshold %d", cfg.Critical, cfg.Warning))
	}
	if cfg.Critical > ContributingChecks {
		errs = append(errs, fmt.Sprintf("critical threshold %d exceeds the %d contributing checks", cfg.Critical, ContributingChecks))
	}

	if cfg.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("timeout %d must not be negative", cfg.Timeout))
	}

	return errs
}
