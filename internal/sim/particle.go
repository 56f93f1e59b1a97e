package sim

import (
	"github.com/vovakirdan/tui-fireworks/internal/config"
	"github.com/vovakirdan/tui-fireworks/internal/core"
)

// DecayPolicy selects how a particle ages out.
type DecayPolicy uint8

const (
	// StandardDecay marks launch and burst particles for removal after their lifespan.
	StandardDecay DecayPolicy = iota
	// TrailDecay fades and shrinks a trail and signals removal to the driver.
	TrailDecay
)

// String returns the policy name.
func (d DecayPolicy) String() string {
	switch d {
	case StandardDecay:
		return "standard"
	case TrailDecay:
		return "trail"
	default:
		return "unknown"
	}
}

// Particle is a single moving point: a rocket, a burst spark or a trail.
type Particle struct {
	Pos    core.Vec2
	Origin core.Vec2 // Spawn point, used for the containment check
	Vel    core.Vec2
	acc    core.Vec2

	Launch  bool // The ascending rocket; exempt from drag
	Color   core.RGB
	Size    int
	Age     int
	Removed bool

	ExplosionRadius int
	TrailPeriod     int
	Policy          DecayPolicy
}

// newLaunchParticle places a rocket at a random spot on the bottom edge,
// moving straight up.
func newLaunchParticle(cfg *config.FireworksConfig, rng Source, c core.RGB) Particle {
	x := float64(randInt(rng, 0, cfg.Display.Width))
	y := float64(cfg.Display.Height)
	p := newParticle(cfg, rng, core.V(x, y), c)
	p.Launch = true
	p.Vel = core.V(0, -float64(randInt(rng, cfg.Launch.SpeedMin, cfg.Launch.SpeedMax)))
	p.Size = cfg.Launch.Size
	return p
}

// newBurstParticle spawns a spark at origin and moves it one step.
// ok is false when that first step left the particle outside its own
// explosion radius; such particles are discarded by the caller.
func newBurstParticle(cfg *config.FireworksConfig, rng Source, origin core.Vec2, c core.RGB) (p Particle, ok bool) {
	p = newParticle(cfg, rng, origin, c)
	pc := cfg.Particles
	p.Vel = core.V(
		uniform(rng, -1, 1)*float64(randInt(rng, pc.SpawnSpeedMin, p.ExplosionRadius+2)),
		uniform(rng, -1, 1)*float64(randInt(rng, pc.SpawnSpeedMin, p.ExplosionRadius+2)),
	)
	p.Size = randInt(rng, pc.SizeMin, pc.SizeMax)
	p.Integrate(cfg, rng)
	return p, !p.outsideSpawnRadius()
}

// newTrail leaves a fading copy of p at its current position.
func newTrail(p *Particle) Particle {
	return Particle{
		Pos:    p.Pos,
		Origin: p.Pos,
		Color:  p.Color,
		Size:   max(0, p.Size-1),
		Policy: TrailDecay,
	}
}

func newParticle(cfg *config.FireworksConfig, rng Source, pos core.Vec2, c core.RGB) Particle {
	tc := cfg.Trails
	return Particle{
		Pos:             pos,
		Origin:          pos,
		Color:           c,
		ExplosionRadius: randInt(rng, cfg.Particles.ExplosionRadiusMin, cfg.Particles.ExplosionRadiusMax),
		TrailPeriod:     tc.Frequency + randInt(rng, -tc.FrequencyJitter, tc.FrequencyJitter),
		Policy:          StandardDecay,
	}
}

// ApplyForce accumulates f until the next Integrate.
func (p *Particle) ApplyForce(f core.Vec2) {
	p.acc = p.acc.Add(f)
}

// Integrate advances the particle one frame and runs its decay policy.
func (p *Particle) Integrate(cfg *config.FireworksConfig, rng Source) {
	if !p.Launch {
		p.Vel = p.Vel.Mul(core.V(cfg.Physics.SpreadX, cfg.Physics.SpreadY))
	}
	p.Vel = p.Vel.Add(p.acc)
	p.Pos = p.Pos.Add(p.Vel)
	p.acc = core.Vec2{}

	if p.Policy == StandardDecay {
		p.decayStandard(cfg.Particles.Lifespan, rng)
	}
}

// decayStandard applies the two-tier removal: a 1-in-16 chance per frame
// past the lifespan, and unconditional removal past 1.5x the lifespan.
func (p *Particle) decayStandard(lifespan int, rng Source) {
	if p.Age > lifespan && decayDraw(rng) {
		p.Removed = true
	}
	if !p.Removed && pastHardCutoff(p.Age, lifespan) {
		p.Removed = true
	}
}

// decayTrail ages a trail by one frame and reports whether it should be
// dropped. Trails brighten every frame and shrink every ShrinkEvery frames.
func (p *Particle) decayTrail(tc config.TrailConfig, rng Source) bool {
	p.Age++
	if tc.ShrinkEvery > 0 && p.Age%tc.ShrinkEvery == 0 {
		p.Size--
	}
	p.Size = max(0, p.Size)
	p.Color = p.Color.Brighten(tc.FadeStep)

	if p.Age > tc.Lifespan && decayDraw(rng) {
		return true
	}
	return pastHardCutoff(p.Age, tc.Lifespan)
}

func pastHardCutoff(age, lifespan int) bool {
	return float64(age) > 1.5*float64(lifespan)
}

func (p *Particle) outsideSpawnRadius() bool {
	return p.Pos.Dist(p.Origin) > float64(p.ExplosionRadius)
}

// Draw renders the particle as a filled circle.
func (p *Particle) Draw(dst core.Surface) {
	x, y := p.Pos.Pixel()
	dst.FillCircle(x, y, p.Size, p.Color)
}
