// Package sim is the particle simulation behind the display: rockets rise,
// burst into sparks, leave fading trails and decay until removed.
package sim

import (
	"github.com/vovakirdan/tui-fireworks/internal/config"
	"github.com/vovakirdan/tui-fireworks/internal/core"
)

// Overlay is drawn on top of every frame. Render returns the seconds
// remaining to the overlay's next milestone.
type Overlay interface {
	Render(dst core.Surface) int
}

// FrameStats describes one advanced frame.
type FrameStats struct {
	Exploded  int // Fireworks that burst this frame
	Fireworks int
	Trails    int
	Particles int // Live burst particles plus trails
	Countdown int // Overlay result; -1 without an overlay
}

// Stats accumulates over the life of a show.
type Stats struct {
	Frames        int
	Launched      int
	Exploded      int
	PeakParticles int
}

// Show owns the live fireworks and trails and advances them frame by frame.
// It is not safe for concurrent use.
type Show struct {
	cfg       config.FireworksConfig
	rng       Source
	intensity *config.IntensityManager
	overlay   Overlay

	fireworks []*Firework
	trails    []Particle
	stats     Stats
}

// NewShow creates an empty show. cfg must already be validated.
func NewShow(cfg config.FireworksConfig, rng Source) *Show {
	return &Show{
		cfg:       cfg,
		rng:       rng,
		intensity: config.NewIntensityManager(cfg.Intensity),
		fireworks: make([]*Firework, 0, 16),
		trails:    make([]Particle, 0, 1024),
	}
}

// Config returns the configuration the show runs with.
func (s *Show) Config() config.FireworksConfig {
	return s.cfg
}

// SetOverlay sets the overlay drawn after the fireworks. nil removes it.
func (s *Show) SetOverlay(o Overlay) {
	s.overlay = o
}

// Reset drops every firework and trail and clears the statistics.
func (s *Show) Reset() {
	s.fireworks = s.fireworks[:0]
	s.trails = s.trails[:0]
	s.stats = Stats{}
}

// Launch adds n new fireworks.
func (s *Show) Launch(n int) {
	for range n {
		s.fireworks = append(s.fireworks, NewFirework(&s.cfg, s.rng))
	}
	s.stats.Launched += max(0, n)
}

// AdvanceFrame runs one frame: background, automatic launch, trails,
// fireworks, then the overlay.
func (s *Show) AdvanceFrame(dst core.Surface) FrameStats {
	dst.Fill(s.cfg.Display.Background)

	if oneIn := s.intensity.OneIn(s.cfg.Launch.AutoOneIn, s.stats.Frames); oneIn > 0 && s.rng.Intn(oneIn) == 0 {
		s.Launch(1)
	}

	live := s.trails[:0]
	for i := range s.trails {
		t := &s.trails[i]
		t.Draw(dst)
		if !t.decayTrail(s.cfg.Trails, s.rng) {
			live = append(live, *t)
		}
	}
	s.trails = live

	fs := FrameStats{Countdown: -1}
	fireworks := s.fireworks[:0]
	for _, f := range s.fireworks {
		if f.Update(s, dst) {
			fs.Exploded++
		}
		if !f.Spent() {
			fireworks = append(fireworks, f)
		}
	}
	clear(s.fireworks[len(fireworks):])
	s.fireworks = fireworks

	if s.overlay != nil {
		fs.Countdown = s.overlay.Render(dst)
	}

	s.stats.Frames++
	s.stats.Exploded += fs.Exploded
	fs.Fireworks = len(s.fireworks)
	fs.Trails = len(s.trails)
	fs.Particles = s.LiveParticles()
	s.stats.PeakParticles = max(s.stats.PeakParticles, fs.Particles)
	return fs
}

// Fireworks returns the live fireworks. The slice is owned by the show.
func (s *Show) Fireworks() []*Firework {
	return s.fireworks
}

// Trails returns the live trails. The slice is owned by the show.
func (s *Show) Trails() []Particle {
	return s.trails
}

// LiveParticles counts burst particles and trails.
func (s *Show) LiveParticles() int {
	n := len(s.trails)
	for _, f := range s.fireworks {
		n += len(f.burst)
	}
	return n
}

// Stats returns the accumulated statistics.
func (s *Show) Stats() Stats {
	return s.stats
}
