package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Building defaults match the reference tower
	b := cfg.Building
	if b.Floors != 25 || b.FloorHeight != 3.5 || b.FootprintSize != 24 || b.CoreSize != 8 || b.ColumnsPerSide != 5 {
		t.Errorf("unexpected building defaults: %+v", b)
	}

	if len(cfg.Scroll.Sections) != 5 {
		t.Errorf("expected 5 sections, got %d", len(cfg.Scroll.Sections))
	}

	if cfg.Effects.ParticleCountDesktop != 600 || cfg.Effects.ParticleCountMobile != 300 {
		t.Errorf("unexpected particle counts: %+v", cfg.Effects)
	}
	if cfg.Effects.MobileBreakpoint != 768 {
		t.Errorf("expected mobile breakpoint 768, got %d", cfg.Effects.MobileBreakpoint)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

building:
  floors: 40
  columns_per_side: 7

scroll:
  section_height: 1200

effects:
  bloom: false
  bloom_strength: 0.8

logging:
  level: "debug"
  log_file: "diwan.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Building.Floors != 40 {
		t.Errorf("expected 40 floors, got %d", cfg.Building.Floors)
	}
	if cfg.Building.ColumnsPerSide != 7 {
		t.Errorf("expected 7 columns per side, got %d", cfg.Building.ColumnsPerSide)
	}
	// Untouched keys keep their defaults
	if cfg.Building.FloorHeight != 3.5 {
		t.Errorf("expected floor height default 3.5, got %f", cfg.Building.FloorHeight)
	}
	if cfg.Scroll.SectionHeight != 1200 {
		t.Errorf("expected section height 1200, got %f", cfg.Scroll.SectionHeight)
	}
	if cfg.Effects.Bloom {
		t.Error("expected bloom to be disabled")
	}
	if cfg.Logging.LogFile != "diwan.log" {
		t.Errorf("expected log file 'diwan.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
building:
  floors: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero floors", func(c *Config) { c.Building.Floors = 0 }},
		{"negative floor height", func(c *Config) { c.Building.FloorHeight = -1 }},
		{"zero footprint", func(c *Config) { c.Building.FootprintSize = 0 }},
		{"zero core", func(c *Config) { c.Building.CoreSize = 0 }},
		{"one column per side", func(c *Config) { c.Building.ColumnsPerSide = 1 }},
		{"single section", func(c *Config) { c.Scroll.Sections = []string{"hero"} }},
		{"zero section height", func(c *Config) { c.Scroll.SectionHeight = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "mobile flag",
			setup: func() { *flagMobile = true },
			verify: func(cfg *Config) {
				if !cfg.Graphics.ForceMobile {
					t.Error("expected force_mobile with mobile flag")
				}
			},
			teardown: func() { *flagMobile = false },
		},
		{
			name:  "no-bloom flag",
			setup: func() { *flagNoBloom = true },
			verify: func(cfg *Config) {
				if cfg.Effects.Bloom {
					t.Error("expected bloom disabled with no-bloom flag")
				}
			},
			teardown: func() { *flagNoBloom = false },
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 42 },
			verify: func(cfg *Config) {
				if cfg.Building.Seed != 42 {
					t.Errorf("expected seed 42, got %d", cfg.Building.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalidBuilding(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("building:\n  columns_per_side: 1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load to reject columns_per_side = 1")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Building.Floors = 12
	cfg.Effects.Bloom = false
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Building.Floors != 12 || loaded.Effects.Bloom {
		t.Errorf("round trip lost values: %+v %+v", loaded.Building, loaded.Effects)
	}
}

func TestSaveWritesToConfigDir(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("config dir is not relocatable on this platform")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Scroll.WheelStep = 80
	path, err := cfg.Save()
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if want := filepath.Join(ConfigDir(), "config.yaml"); path != want {
		t.Errorf("Save wrote %s, want %s", path, want)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Scroll.WheelStep != 80 {
		t.Errorf("wheel step = %v, want 80", loaded.Scroll.WheelStep)
	}
}

func TestSaveRequested(t *testing.T) {
	if SaveRequested() {
		t.Error("save-config should default to false")
	}
	*flagSaveConfig = true
	defer func() { *flagSaveConfig = false }()
	if !SaveRequested() {
		t.Error("SaveRequested() = false with --save-config")
	}
}
