package config

import (
	"math"

	"github.com/vovakirdan/tui-fireworks/internal/core"
)

// IntensityManager calculates the automatic launch rate as a show progresses.
type IntensityManager struct {
	cfg          IntensityConfig
	initialLevel float64
}

// NewIntensityManager creates a new intensity manager.
func NewIntensityManager(cfg IntensityConfig) *IntensityManager {
	return &IntensityManager{
		cfg:          cfg,
		initialLevel: core.ClampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// Level returns the current intensity level (0.0 to 1.0) after ticks frames.
func (m *IntensityManager) Level(ticks int) float64 {
	if !m.cfg.Enabled {
		return m.initialLevel
	}

	rampAt := float64(m.cfg.RampTicks)
	if rampAt <= 0 {
		rampAt = 1 // Prevent division by zero
	}
	progress := core.ClampF(float64(ticks)/rampAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return m.initialLevel + progress*(1.0-m.initialLevel)
}

// OneIn returns the effective 1-in-N auto launch odds for this tick.
// A base of 0 (auto launch disabled) is returned unchanged.
func (m *IntensityManager) OneIn(base, ticks int) int {
	if base <= 0 || !m.cfg.Enabled {
		return base
	}
	rate := 1.0 + m.Level(ticks)*m.cfg.Boost
	n := int(math.Round(float64(base) / rate))
	if n < 1 {
		n = 1
	}
	return n
}
