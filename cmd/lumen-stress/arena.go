package main

import (
	"math/rand/v2"

	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/engine"
	"github.com/plus3/lumen/particles"
	"github.com/plus3/lumen/physics"
	"github.com/plus3/lumen/vmath"
)

const ballRadius = 6

// walls reflects a body off the arena edges.
type walls struct {
	ecs.Base
	size vmath.Vec2
	body *physics.Rigidbody
}

func (w *walls) Start(*ecs.UpdateFrame) {
	w.body, _ = ecs.GetBehavior[*physics.Rigidbody](w.Entity())
}

func (w *walls) Update(*ecs.UpdateFrame) {
	if w.body == nil {
		return
	}
	t := w.Transform()
	if (t.Position.X < ballRadius && w.body.Velocity.X < 0) || (t.Position.X > w.size.X-ballRadius && w.body.Velocity.X > 0) {
		w.body.Velocity.X = -w.body.Velocity.X
	}
	if (t.Position.Y < ballRadius && w.body.Velocity.Y < 0) || (t.Position.Y > w.size.Y-ballRadius && w.body.Velocity.Y > 0) {
		w.body.Velocity.Y = -w.body.Velocity.Y
	}
}

// populate fills the engine's scene with bouncing balls and particle emitters.
func populate(eng *engine.Engine, rng *rand.Rand, size vmath.Vec2, balls, emitters int) error {
	scene := eng.Scene()
	for i := 0; i < balls; i++ {
		e := scene.CreateEntity("ball")
		e.Tag = "Ball"
		e.Transform().Position = vmath.RandVec(rng, vmath.V(ballRadius, ballRadius), size.Sub(vmath.V(ballRadius, ballRadius)))
		body := physics.AddRigidbody(e)
		body.Drag = 1
		body.Velocity = vmath.RandVec(rng, vmath.V(-120, -120), vmath.V(120, 120))
		eng.World().AddCircleCollider(e, ballRadius)
		ecs.AddBehavior(e, &walls{size: size})
	}

	cfg := particles.DefaultConfig()
	cfg.Shape = particles.Cone
	cfg.EmissionRate = 60
	cfg.MaxParticles = 200
	for i := 0; i < emitters; i++ {
		e := scene.CreateEntity("emitter")
		e.Transform().Position = vmath.RandVec(rng, vmath.Vec2{}, size)
		em, err := particles.AddEmitter(e, cfg)
		if err != nil {
			return err
		}
		em.SetSeed(rng.Uint64())
	}
	return nil
}
