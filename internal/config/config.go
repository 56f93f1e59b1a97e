// Package config provides YAML-based show configuration loading, style
// presets and launch intensity management for the fireworks display.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-fireworks/internal/core"
)

// FireworksConfig contains all tunables of the particle simulation.
// Every value shapes the display without altering its algorithmic structure.
type FireworksConfig struct {
	Display   DisplayConfig   `yaml:"display"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Launch    LaunchConfig    `yaml:"launch"`
	Particles ParticleConfig  `yaml:"particles"`
	Trails    TrailConfig     `yaml:"trails"`
	Intensity IntensityConfig `yaml:"intensity"`
}

// DisplayConfig defines the logical display bounds the simulation runs in.
type DisplayConfig struct {
	Width      int      `yaml:"width"`
	Height     int      `yaml:"height"`
	Background core.RGB `yaml:"background"`
}

// PhysicsConfig defines the forces acting on rockets and burst particles.
type PhysicsConfig struct {
	FireworkGravity float64 `yaml:"firework_gravity"` // Per-frame pull on the launch particle
	ParticleGravity float64 `yaml:"particle_gravity"` // Per-frame pull on burst particles
	SpreadX         float64 `yaml:"spread_x"`         // Horizontal drag factor for burst particles
	SpreadY         float64 `yaml:"spread_y"`         // Vertical drag factor for burst particles
	WiggleScaleX    float64 `yaml:"wiggle_scale_x"`   // Higher -> less horizontal wiggle
	WiggleScaleY    float64 `yaml:"wiggle_scale_y"`   // Higher -> less vertical wiggle
}

// LaunchConfig defines how rockets leave the ground.
type LaunchConfig struct {
	SpeedMin  int `yaml:"speed_min"`
	SpeedMax  int `yaml:"speed_max"`
	Size      int `yaml:"size"`
	AutoOneIn int `yaml:"auto_one_in"` // 1-in-N chance per frame to launch; 0 disables
}

// ParticleConfig defines burst particles created at the apex.
type ParticleConfig struct {
	Lifespan           int  `yaml:"lifespan"` // Frames before probabilistic decay begins
	SizeMin            int  `yaml:"size_min"`
	SizeMax            int  `yaml:"size_max"`
	CountMin           int  `yaml:"count_min"`
	CountMax           int  `yaml:"count_max"`
	ExplosionRadiusMin int  `yaml:"explosion_radius_min"`
	ExplosionRadiusMax int  `yaml:"explosion_radius_max"`
	SpawnSpeedMin      int  `yaml:"spawn_speed_min"` // Lower bound of the per-axis spawn speed draw
	Colorful           bool `yaml:"colorful"`        // Pick each particle's color from a 3-color palette
}

// TrailConfig defines the fading trails left behind burst particles.
type TrailConfig struct {
	Enabled         bool `yaml:"enabled"`
	Lifespan        int  `yaml:"lifespan"`
	Frequency       int  `yaml:"frequency"`        // Base emission period in frames; higher -> fewer trails
	FrequencyJitter int  `yaml:"frequency_jitter"` // Per-particle +/- jitter on the period
	FadeStep        int  `yaml:"fade_step"`        // Per-frame brightening of each color channel
	ShrinkEvery     int  `yaml:"shrink_every"`     // Frames between size decrements
}

// IntensityConfig defines how the auto-launch rate ramps up over time.
type IntensityConfig struct {
	Enabled      bool    `yaml:"enabled"`
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = base rate, 1.0 = full boost
	RampTicks    int     `yaml:"ramp_ticks"`    // Ticks at which full boost is reached
	Boost        float64 `yaml:"boost"`         // Rate multiplier added at full level
}

// Preset represents a named display style.
type Preset string

const (
	PresetClassic Preset = "classic"
	PresetMono    Preset = "mono"
	PresetCalm    Preset = "calm"
	PresetFinale  Preset = "finale"
)

// Presets lists the known presets in display order.
func Presets() []Preset {
	return []Preset{PresetClassic, PresetMono, PresetCalm, PresetFinale}
}

// ApplyPreset modifies the config based on a style preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *FireworksConfig, preset Preset) error {
	switch preset {
	case "", PresetClassic:
	case PresetMono:
		cfg.Particles.Colorful = false
	case PresetCalm:
		cfg.Launch.AutoOneIn = 150
		cfg.Particles.CountMin = 60
		cfg.Particles.CountMax = 120
	case PresetFinale:
		cfg.Particles.CountMin = 150
		cfg.Particles.CountMax = 260
		cfg.Intensity.Enabled = true
		cfg.Intensity.InitialLevel = 0.2
		cfg.Intensity.RampTicks = 60 * 60 // one minute at 60 fps
		cfg.Intensity.Boost = 4
	default:
		return fmt.Errorf("config: unknown preset %q", preset)
	}
	return nil
}
