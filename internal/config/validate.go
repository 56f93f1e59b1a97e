package config

import (
	"errors"
	"fmt"
)

// ValidationError describes one rejected configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks the configuration and returns every problem found,
// joined into a single error. A malformed configuration is a programming
// error and must be rejected before the simulation starts.
func (c FireworksConfig) Validate() error {
	var errs []error
	fail := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}
	positive := func(field string, v int) {
		if v <= 0 {
			fail(field, "must be positive, got %d", v)
		}
	}
	span := func(field string, lo, hi int) {
		if lo > hi {
			fail(field, "empty range [%d, %d]", lo, hi)
		}
	}

	// Display
	positive("display.width", c.Display.Width)
	positive("display.height", c.Display.Height)

	// Physics
	if c.Physics.SpreadX <= 0 || c.Physics.SpreadX > 1 {
		fail("physics.spread_x", "must be in (0, 1], got %g", c.Physics.SpreadX)
	}
	if c.Physics.SpreadY <= 0 || c.Physics.SpreadY > 1 {
		fail("physics.spread_y", "must be in (0, 1], got %g", c.Physics.SpreadY)
	}
	if c.Physics.WiggleScaleX <= 0 {
		fail("physics.wiggle_scale_x", "must be positive, got %g", c.Physics.WiggleScaleX)
	}
	if c.Physics.WiggleScaleY <= 0 {
		fail("physics.wiggle_scale_y", "must be positive, got %g", c.Physics.WiggleScaleY)
	}
	if c.Physics.FireworkGravity <= 0 {
		// A rocket that never slows down never reaches its apex.
		fail("physics.firework_gravity", "must be positive, got %g", c.Physics.FireworkGravity)
	}

	// Launch
	positive("launch.speed_min", c.Launch.SpeedMin)
	span("launch.speed", c.Launch.SpeedMin, c.Launch.SpeedMax)
	if c.Launch.Size < 0 {
		fail("launch.size", "must not be negative, got %d", c.Launch.Size)
	}
	if c.Launch.AutoOneIn < 0 {
		fail("launch.auto_one_in", "must not be negative, got %d", c.Launch.AutoOneIn)
	}

	// Particles
	positive("particles.lifespan", c.Particles.Lifespan)
	if c.Particles.SizeMin < 0 {
		fail("particles.size_min", "must not be negative, got %d", c.Particles.SizeMin)
	}
	span("particles.size", c.Particles.SizeMin, c.Particles.SizeMax)
	positive("particles.count_min", c.Particles.CountMin)
	span("particles.count", c.Particles.CountMin, c.Particles.CountMax)
	positive("particles.explosion_radius_min", c.Particles.ExplosionRadiusMin)
	span("particles.explosion_radius", c.Particles.ExplosionRadiusMin, c.Particles.ExplosionRadiusMax)
	if c.Particles.SpawnSpeedMin < 0 {
		fail("particles.spawn_speed_min", "must not be negative, got %d", c.Particles.SpawnSpeedMin)
	}
	if c.Particles.ExplosionRadiusMin+2 < c.Particles.SpawnSpeedMin {
		// Spawn speed is drawn from [spawn_speed_min, radius+2].
		fail("particles.spawn_speed_min", "exceeds explosion_radius_min+2 (%d > %d)",
			c.Particles.SpawnSpeedMin, c.Particles.ExplosionRadiusMin+2)
	}

	// Trails
	positive("trails.lifespan", c.Trails.Lifespan)
	positive("trails.frequency", c.Trails.Frequency)
	if c.Trails.FrequencyJitter < 0 || c.Trails.FrequencyJitter >= c.Trails.Frequency {
		fail("trails.frequency_jitter", "must be in [0, frequency), got %d", c.Trails.FrequencyJitter)
	}
	if c.Trails.FadeStep < 0 {
		fail("trails.fade_step", "must not be negative, got %d", c.Trails.FadeStep)
	}
	positive("trails.shrink_every", c.Trails.ShrinkEvery)

	// Intensity
	if c.Intensity.Enabled {
		positive("intensity.ramp_ticks", c.Intensity.RampTicks)
		if c.Intensity.Boost < 0 {
			fail("intensity.boost", "must not be negative, got %g", c.Intensity.Boost)
		}
		if c.Intensity.InitialLevel < 0 || c.Intensity.InitialLevel > 1 {
			fail("intensity.initial_level", "must be in [0, 1], got %g", c.Intensity.InitialLevel)
		}
	}

	return errors.Join(errs...)
}
