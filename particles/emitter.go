// Package particles implements bounded particle emitters that spawn at a steady rate
// from a shaped region around their entity and fade particles out over their lifetime.
package particles

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/vmath"
	"go.uber.org/zap"
)

// Emitter is a behavior owning a pool of at most MaxParticles live particles.
// Spawns beyond capacity are dropped, never queued.
type Emitter struct {
	ecs.Base
	Config

	particles     []Particle
	emissionTimer float64
	durationTimer float64
	spawned       uint64
	rng           *rand.Rand
	warned        bool
}

// NewEmitter validates cfg and returns an unattached emitter.
func NewEmitter(cfg Config) (*Emitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new emitter: %w", err)
	}
	return &Emitter{
		Config:    cfg,
		particles: make([]Particle, 0, max(cfg.MaxParticles, 0)),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}, nil
}

// AddEmitter creates an emitter from cfg and attaches it to e.
func AddEmitter(e *ecs.Entity, cfg Config) (*Emitter, error) {
	em, err := NewEmitter(cfg)
	if err != nil {
		return nil, err
	}
	return ecs.AddBehavior(e, em), nil
}

// SetSeed makes sampling deterministic.
func (e *Emitter) SetSeed(seed uint64) {
	e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (e *Emitter) Start(*ecs.UpdateFrame) {
	e.emissionTimer = 0
	e.durationTimer = 0
}

func (e *Emitter) Update(frame *ecs.UpdateFrame) {
	e.Step(frame.DeltaTime)
}

// Step advances the emitter by dt seconds: the duration timer, timed emission with
// carry-over, then particle integration and removal of dead particles.
func (e *Emitter) Step(dt float64) {
	t := e.Transform()
	if t == nil {
		return
	}

	if !e.Loop && e.Emitting {
		e.durationTimer += dt
		if e.durationTimer >= e.Duration {
			e.Emitting = false
		}
	}

	if e.Emitting {
		e.emitTimed(t, dt)
	}

	for i := 0; i < len(e.particles); {
		if e.particles[i].Update(dt) {
			i++
			continue
		}
		last := len(e.particles) - 1
		e.particles[i] = e.particles[last]
		e.particles = e.particles[:last]
	}
}

func (e *Emitter) emitTimed(t *ecs.Transform, dt float64) {
	if !validRate(e.EmissionRate) {
		if !e.warned {
			e.warned = true
			e.logger().Warn("emitter has no valid emission rate",
				zap.Float64("rate", e.EmissionRate))
		}
		return
	}

	e.emissionTimer += dt
	interval := 1 / e.EmissionRate
	for e.emissionTimer >= interval && len(e.particles) < e.MaxParticles {
		e.emit(t)
		e.emissionTimer -= interval
	}
	if e.emissionTimer >= interval {
		// Pool is full; intervals that could not spawn are dropped.
		e.emissionTimer = math.Mod(e.emissionTimer, interval)
	}
}

func (e *Emitter) logger() *zap.Logger {
	if s := e.Scene(); s != nil {
		return s.Logger()
	}
	return zap.NewNop()
}

// Burst spawns up to n particles immediately, capped by free capacity, and returns
// how many were spawned.
func (e *Emitter) Burst(n int) int {
	t := e.Transform()
	if t == nil {
		return 0
	}
	spawned := 0
	for ; spawned < n && len(e.particles) < e.MaxParticles; spawned++ {
		e.emit(t)
	}
	return spawned
}

func (e *Emitter) emit(t *ecs.Transform) {
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	c := &e.Config
	e.particles = append(e.particles, Particle{
		Position:      e.spawnPosition(t),
		Velocity:      vmath.RandVec(e.rng, c.VelocityMin, c.VelocityMax),
		Acceleration:  c.Acceleration,
		Color:         c.StartColor,
		Lifetime:      vmath.RandRange(e.rng, c.LifetimeMin, c.LifetimeMax),
		Size:          vmath.RandRange(e.rng, c.SizeMin, c.SizeMax),
		Rotation:      vmath.RandRange(e.rng, 0, 360),
		RotationSpeed: vmath.RandRange(e.rng, c.RotationSpeedMin, c.RotationSpeedMax),
		Active:        true,
		startColor:    c.StartColor,
		endColor:      c.EndColor,
	})
	e.spawned++
}

// Play restarts emission, including a finished non-looping run.
func (e *Emitter) Play() error {
	if !validRate(e.EmissionRate) {
		return fmt.Errorf("play: emission rate %g: %w", e.EmissionRate, ErrInvalidEmissionRate)
	}
	e.Emitting = true
	e.warned = false
	e.emissionTimer = 0
	e.durationTimer = 0
	return nil
}

// Stop halts emission. Live particles keep simulating until they expire.
func (e *Emitter) Stop() {
	e.Emitting = false
}

// SetEmissionRate changes the rate, rejecting rates that are not positive and
// finite while emitting.
func (e *Emitter) SetEmissionRate(rate float64) error {
	if e.Emitting && !validRate(rate) {
		return fmt.Errorf("set emission rate %g: %w", rate, ErrInvalidEmissionRate)
	}
	e.EmissionRate = rate
	return nil
}

// Clear drops every live particle.
func (e *Emitter) Clear() {
	e.particles = e.particles[:0]
}

// Count returns the number of live particles.
func (e *Emitter) Count() int { return len(e.particles) }

// Spawned returns how many particles the emitter has spawned in total.
func (e *Emitter) Spawned() uint64 { return e.spawned }

// Particles returns the live particles. The slice is only valid until the next Step.
func (e *Emitter) Particles() []Particle { return e.particles }

// Render draws each live particle as a filled circle.
func (e *Emitter) Render(frame *ecs.RenderFrame) {
	for i := range e.particles {
		p := &e.particles[i]
		if p.Active {
			frame.Renderer.FillCircle(p.Position, p.Size, p.Color)
		}
	}
}
