package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-fireworks/internal/core"
)

//go:embed defaults/fireworks.yaml
var defaultFireworksYAML []byte

// DefaultFireworksConfig returns the default configuration.
func DefaultFireworksConfig() FireworksConfig {
	return FireworksConfig{
		Display: DisplayConfig{
			Width:      720,
			Height:     720,
			Background: core.RGB{R: 20, G: 20, B: 30},
		},
		Physics: PhysicsConfig{
			FireworkGravity: 0.3,
			ParticleGravity: 0.07,
			SpreadX:         0.8,
			SpreadY:         0.8,
			WiggleScaleX:    20,
			WiggleScaleY:    10,
		},
		Launch: LaunchConfig{
			SpeedMin:  17,
			SpeedMax:  20,
			Size:      5,
			AutoOneIn: 71,
		},
		Particles: ParticleConfig{
			Lifespan:           70,
			SizeMin:            3,
			SizeMax:            5,
			CountMin:           100,
			CountMax:           200,
			ExplosionRadiusMin: 10,
			ExplosionRadiusMax: 25,
			SpawnSpeedMin:      7,
			Colorful:           true,
		},
		Trails: TrailConfig{
			Enabled:         true,
			Lifespan:        35,
			Frequency:       10,
			FrequencyJitter: 3,
			FadeStep:        5,
			ShrinkEvery:     100,
		},
		Intensity: IntensityConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			RampTicks:    3600,
			Boost:        0,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFireworksYAML
}
