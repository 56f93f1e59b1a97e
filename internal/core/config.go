package core

import "time"

// RuntimeConfig contains configuration passed to shows at initialization.
// Shows use this to adapt to the output size and to seed their RNG.
type RuntimeConfig struct {
	ScreenW  int   // Output width in terminal cells or window pixels
	ScreenH  int   // Output height in terminal cells or window pixels
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means use current time in platform layer
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// ShowState represents the current state of a show.
// Returned by Show.State() to communicate status to the platform.
type ShowState struct {
	Frames    int    // Simulated frames since Reset
	Launched  int    // Fireworks launched since Reset
	Exploded  int    // Fireworks that reached their apex since Reset
	Fireworks int    // Live fireworks
	Particles int    // Live burst particles plus trails
	Peak      int    // Largest particle count since Reset
	Phase     string // Show-specific phase name ("countdown", "celebration", ...)
	Music     bool   // Background music should be playing
	Paused    bool
}

// StepResult is returned by Show.Step() after each simulation tick.
type StepResult struct {
	State ShowState

	// Exploded is the number of fireworks that burst during this tick.
	Exploded int

	// PhaseChanged is true on the tick the show switched phase.
	PhaseChanged bool
}

// Summary describes a finished run of a show on any platform.
type Summary struct {
	ShowID    string
	State     ShowState // Final state
	Duration  time.Duration
	SessionID int64 // History record ID; zero when the run was not recorded
	SaveErr   error
}
