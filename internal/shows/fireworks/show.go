// Package fireworks implements the fireworks display and the New Year
// countdown that turns into one.
package fireworks

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/tui-fireworks/internal/clock"
	"github.com/vovakirdan/tui-fireworks/internal/config"
	"github.com/vovakirdan/tui-fireworks/internal/core"
	"github.com/vovakirdan/tui-fireworks/internal/registry"
	"github.com/vovakirdan/tui-fireworks/internal/sim"
)

// Show phases reported in core.ShowState.Phase.
const (
	PhaseShow        = "show"
	PhaseCountdown   = "countdown"
	PhaseCelebration = "celebration"
)

// Banner drawn once the New Year arrives.
const (
	BannerText  = "Happy New Year!"
	BannerEvery = 6 // Frames between flashes; each flash picks a new color
)

// Mode selects which show is played.
type Mode uint8

const (
	ModeFree    Mode = iota // Fireworks from the first frame
	ModeNewYear             // Clock countdown, then fireworks
)

// Package-level config shared by every show instance, set from the CLI
// before the registry creates a show.
var (
	mu         sync.RWMutex
	showConfig = config.DefaultFireworksConfig()
)

// SetConfig sets the configuration used by shows on their next Reset.
// cfg must already be validated.
func SetConfig(cfg config.FireworksConfig) {
	mu.Lock()
	defer mu.Unlock()
	showConfig = cfg
}

func currentConfig() config.FireworksConfig {
	mu.RLock()
	defer mu.RUnlock()
	return showConfig
}

func init() {
	registry.Register("fireworks", func() registry.Show {
		return New()
	})
	registry.Register("newyear", func() registry.Show {
		return NewNewYear(time.Now)
	})
}

// Show runs the particle simulation and, in New Year mode, the clock.
type Show struct {
	mode    Mode
	now     func() time.Time
	cfg     config.FireworksConfig
	runtime core.RuntimeConfig

	rng   *rand.Rand
	sim   *sim.Show
	clock *clock.Clock
	frame *core.DisplayList

	phase       string
	paused      bool
	celebration int // Frames since the celebration began
}

// New creates the free fireworks show.
func New() *Show {
	return &Show{mode: ModeFree, now: time.Now, cfg: currentConfig()}
}

// NewNewYear creates the New Year countdown show reading time from now.
func NewNewYear(now func() time.Time) *Show {
	return &Show{mode: ModeNewYear, now: now, cfg: currentConfig()}
}

// ID returns the unique identifier for this show.
func (s *Show) ID() string {
	if s.mode == ModeNewYear {
		return "newyear"
	}
	return "fireworks"
}

// Title returns the display name for this show.
func (s *Show) Title() string {
	if s.mode == ModeNewYear {
		return "New Year Countdown"
	}
	return "Fireworks"
}

// Size returns the logical display size.
func (s *Show) Size() (int, int) {
	return s.cfg.Display.Width, s.cfg.Display.Height
}

// Reset initializes or restarts the show.
func (s *Show) Reset(runtime core.RuntimeConfig) {
	s.runtime = runtime
	s.cfg = currentConfig()
	s.rng = sim.NewSource(runtime.Seed)
	s.sim = sim.NewShow(s.cfg, s.rng)
	s.clock = clock.NewWithTime(s.cfg.Display.Width, s.cfg.Display.Height, s.now)
	if s.frame == nil {
		s.frame = core.NewDisplayList()
	}
	s.frame.Fill(s.cfg.Display.Background)

	s.paused = false
	s.celebration = 0

	if s.mode == ModeNewYear {
		s.phase = PhaseCountdown
		s.clock.Render(s.frame)
		return
	}
	s.phase = PhaseShow
	s.sim.Launch(1)
}

// Step advances the show by one tick.
func (s *Show) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if s.paused {
		return core.StepResult{State: s.State()}
	}

	if s.phase == PhaseCountdown {
		s.frame.Fill(s.cfg.Display.Background)
		if s.clock.Render(s.frame) > 0 {
			return core.StepResult{State: s.State()}
		}
		s.celebrate()
		return core.StepResult{State: s.State(), PhaseChanged: true}
	}

	s.sim.Launch(in.Count(core.ActionLaunch) + 10*in.Count(core.ActionLaunchTen))
	fs := s.sim.AdvanceFrame(s.frame)

	if s.phase == PhaseCelebration {
		s.celebration++
		// The banner only shows on frames that pick a new color, so it flashes.
		if s.celebration%BannerEvery == 0 {
			c := core.RGB{R: uint8(s.rng.Intn(256)), G: uint8(s.rng.Intn(256)), B: uint8(s.rng.Intn(256))}
			s.frame.Text(s.cfg.Display.Width/2, s.cfg.Display.Height/2, BannerText, c)
		}
	}

	return core.StepResult{State: s.State(), Exploded: fs.Exploded}
}

// celebrate starts the fireworks once the countdown has run out.
func (s *Show) celebrate() {
	s.phase = PhaseCelebration
	s.clock.Reset()
	s.sim.SetOverlay(s.clock)
	s.sim.Launch(1)
}

// Render replays the last frame onto dst.
func (s *Show) Render(dst core.Surface) {
	s.frame.Replay(dst)
}

// State returns the current show state.
func (s *Show) State() core.ShowState {
	st := core.ShowState{Phase: s.phase, Paused: s.paused}
	if s.sim == nil {
		return st
	}
	stats := s.sim.Stats()
	st.Frames = stats.Frames
	st.Launched = stats.Launched
	st.Exploded = stats.Exploded
	st.Fireworks = len(s.sim.Fireworks())
	st.Particles = s.sim.LiveParticles()
	st.Peak = stats.PeakParticles
	st.Music = s.phase != PhaseCountdown
	return st
}
