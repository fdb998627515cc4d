package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads and merges configuration from global and project paths.
// Order of precedence (highest to lowest): project config, global
// config, defaults. Missing files are not errors; malformed JSON is.
func Load(globalPath, projectPath string) (*SchedsimConfig, error) {
	cfg := DefaultConfig()

	if globalPath != "" {
		if err := mergeConfigFile(cfg, globalPath); err != nil {
			return nil, fmt.Errorf("loading global config: %w", err)
		}
	}

	if projectPath != "" {
		if err := mergeConfigFile(cfg, projectPath); err != nil {
			return nil, fmt.Errorf("loading project config: %w", err)
		}
	}

	return cfg, nil
}

// LoadDefault loads configuration from the conventional paths.
// Global: ~/.schedsim/config.json
// Project: .schedsim/config.json (relative to cwd)
func LoadDefault() (*SchedsimConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}

	globalPath := filepath.Join(homeDir, ".schedsim", "config.json")
	projectPath := filepath.Join(".schedsim", "config.json")

	return Load(globalPath, projectPath)
}

// mergeConfigFile reads a JSON config file and merges it into the base
// config. Missing files are silently skipped; malformed JSON is an
// error. Zero-valued scalars in the file leave the base value alone.
func mergeConfigFile(base *SchedsimConfig, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var loaded SchedsimConfig
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if loaded.Defaults.Workers > 0 {
		base.Defaults.Workers = loaded.Defaults.Workers
	}
	if loaded.Defaults.BaseCost > 0 {
		base.Defaults.BaseCost = loaded.Defaults.BaseCost
	}
	if loaded.DatabasePath != "" {
		base.DatabasePath = loaded.DatabasePath
	}
	if loaded.Concurrency > 0 {
		base.Concurrency = loaded.Concurrency
	}

	for name, scenario := range loaded.Scenarios {
		base.Scenarios[name] = scenario
	}

	return nil
}

// ScenarioParams resolves the effective worker count and base cost for
// a scenario, falling back to the configured defaults where the
// scenario has no override.
func (c *SchedsimConfig) ScenarioParams(sc ScenarioConfig) (workers, baseCost int) {
	workers = c.Defaults.Workers
	if sc.Workers != nil {
		workers = *sc.Workers
	}
	baseCost = c.Defaults.BaseCost
	if sc.BaseCost != nil {
		baseCost = *sc.BaseCost
	}
	return workers, baseCost
}
