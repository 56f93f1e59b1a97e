package sim

import (
	"github.com/vovakirdan/tui-fireworks/internal/config"
	"github.com/vovakirdan/tui-fireworks/internal/core"
)

// Phase is the state of a firework.
type Phase uint8

const (
	// Ascending means the rocket is still rising under gravity.
	Ascending Phase = iota
	// Exploded means the rocket has burst and only its sparks remain.
	Exploded
)

// String returns the phase name.
func (ph Phase) String() string {
	if ph == Exploded {
		return "exploded"
	}
	return "ascending"
}

// Firework is a rocket that rises until its apex and then bursts.
type Firework struct {
	Color   core.RGB
	Palette [3]core.RGB

	rocket Particle
	phase  Phase
	burst  []Particle
}

// NewFirework creates an ascending firework with a random color and palette.
func NewFirework(cfg *config.FireworksConfig, rng Source) *Firework {
	f := &Firework{Color: randomColor(rng)}
	for i := range f.Palette {
		f.Palette[i] = randomColor(rng)
	}
	f.rocket = newLaunchParticle(cfg, rng, f.Color)
	return f
}

func randomColor(rng Source) core.RGB {
	return core.RGB{
		R: uint8(randInt(rng, 0, 255)),
		G: uint8(randInt(rng, 0, 255)),
		B: uint8(randInt(rng, 0, 255)),
	}
}

// Phase returns the current state.
func (f *Firework) Phase() Phase {
	return f.phase
}

// Update advances the firework by one frame and draws it. Trails are handed
// to the show. It returns true on the frame the firework bursts.
func (f *Firework) Update(s *Show, dst core.Surface) bool {
	if f.phase == Ascending {
		f.rocket.ApplyForce(core.V(0, s.cfg.Physics.FireworkGravity))
		f.rocket.Integrate(&s.cfg, s.rng)
		x, y := f.rocket.Pos.Pixel()
		dst.FillCircle(x, y, f.rocket.Size, f.Color)
		if f.rocket.Vel.Y >= 0 {
			f.explode(&s.cfg, s.rng)
			return true
		}
		return false
	}

	phys := s.cfg.Physics
	for i := range f.burst {
		p := &f.burst[i]
		if p.Removed {
			continue
		}
		p.Age++
		if s.cfg.Trails.Enabled && p.TrailPeriod > 0 && p.Age%p.TrailPeriod == 0 {
			s.trails = append(s.trails, newTrail(p))
		}
		p.ApplyForce(core.V(
			uniform(s.rng, -1, 1)/phys.WiggleScaleX,
			phys.ParticleGravity+uniform(s.rng, -1, 1)/phys.WiggleScaleY,
		))
		p.Integrate(&s.cfg, s.rng)
		p.Draw(dst)
	}
	return false
}

// explode switches to the exploded phase and fills the burst at the apex.
func (f *Firework) explode(cfg *config.FireworksConfig, rng Source) {
	f.phase = Exploded
	n := randInt(rng, cfg.Particles.CountMin, cfg.Particles.CountMax)
	f.burst = make([]Particle, 0, n)
	for range n {
		c := f.Color
		if cfg.Particles.Colorful {
			c = f.Palette[rng.Intn(len(f.Palette))]
		}
		if p, ok := newBurstParticle(cfg, rng, f.rocket.Pos, c); ok {
			f.burst = append(f.burst, p)
		}
	}
}

// Spent reports whether the firework can be dropped. It is false while
// ascending; once exploded it prunes removed particles and is true when
// none are left.
func (f *Firework) Spent() bool {
	if f.phase == Ascending {
		return false
	}
	live := f.burst[:0]
	for _, p := range f.burst {
		if !p.Removed {
			live = append(live, p)
		}
	}
	f.burst = live
	return len(f.burst) == 0
}
