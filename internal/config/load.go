package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "DiwanTower")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "DiwanTower")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "diwan-tower")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "diwan-tower")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks values that would make the scene impossible to build.
func (c *Config) Validate() error {
	b := c.Building
	switch {
	case b.Floors < 1:
		return fmt.Errorf("building.floors must be >= 1, got %d", b.Floors)
	case b.FloorHeight <= 0:
		return fmt.Errorf("building.floor_height must be positive, got %g", b.FloorHeight)
	case b.FootprintSize <= 0:
		return fmt.Errorf("building.footprint_size must be positive, got %g", b.FootprintSize)
	case b.CoreSize <= 0:
		return fmt.Errorf("building.core_size must be positive, got %g", b.CoreSize)
	case b.ColumnsPerSide < 2:
		return fmt.Errorf("building.columns_per_side must be >= 2, got %d", b.ColumnsPerSide)
	}
	if len(c.Scroll.Sections) < 2 {
		return fmt.Errorf("scroll.sections needs at least 2 entries, got %d", len(c.Scroll.Sections))
	}
	if c.Scroll.SectionHeight <= 0 {
		return fmt.Errorf("scroll.section_height must be positive, got %g", c.Scroll.SectionHeight)
	}
	return nil
}
