// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Building BuildingConfig `yaml:"building"`
	Scroll   ScrollConfig   `yaml:"scroll"`
	Effects  EffectsConfig  `yaml:"effects"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	// ForceMobile treats the viewport as constrained regardless of width.
	ForceMobile bool `yaml:"force_mobile"`
}

// BuildingConfig holds the procedural tower parameters.
type BuildingConfig struct {
	Floors         int     `yaml:"floors"`
	FloorHeight    float32 `yaml:"floor_height"`
	FootprintSize  float32 `yaml:"footprint_size"`
	CoreSize       float32 `yaml:"core_size"`
	ColumnsPerSide int     `yaml:"columns_per_side"`
	Seed           uint64  `yaml:"seed"` // 0 = random per mount
}

// ScrollConfig describes the virtual page the camera path is bound to.
type ScrollConfig struct {
	Sections        []string `yaml:"sections"`
	SectionHeight   float64  `yaml:"section_height"` // pixels
	WheelStep       float64  `yaml:"wheel_step"`     // pixels per wheel notch
	SpringFrequency float64  `yaml:"spring_frequency"`
	SpringDamping   float64  `yaml:"spring_damping"`
}

// EffectsConfig holds optional enhancements and device-capability thresholds.
type EffectsConfig struct {
	Bloom                bool    `yaml:"bloom"`
	BloomStrength        float32 `yaml:"bloom_strength"`
	BloomThreshold       float32 `yaml:"bloom_threshold"`
	ParticleCountDesktop int     `yaml:"particle_count_desktop"`
	ParticleCountMobile  int     `yaml:"particle_count_mobile"`
	MobileBreakpoint     int     `yaml:"mobile_breakpoint"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Building: BuildingConfig{
			Floors:         25,
			FloorHeight:    3.5,
			FootprintSize:  24,
			CoreSize:       8,
			ColumnsPerSide: 5,
		},
		Scroll: ScrollConfig{
			Sections:        []string{"hero", "services", "why-us", "process", "contact"},
			SectionHeight:   900,
			WheelStep:       120,
			SpringFrequency: 4.0,
			SpringDamping:   1.0,
		},
		Effects: EffectsConfig{
			Bloom:                true,
			BloomStrength:        0.5,
			BloomThreshold:       0.2,
			ParticleCountDesktop: 600,
			ParticleCountMobile:  300,
			MobileBreakpoint:     768,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
