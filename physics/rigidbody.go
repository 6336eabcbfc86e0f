package physics

import (
	"fmt"

	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/vmath"
)

const (
	DefaultMass = 1
	DefaultDrag = 0.99
)

// Rigidbody integrates its entity's position with semi-implicit Euler once per frame.
// Drag scales velocity multiplicatively every step, so 1 means no damping.
// Kinematic bodies are never moved by the integrator or by collision impulses.
type Rigidbody struct {
	ecs.Base
	Velocity     vmath.Vec2
	Acceleration vmath.Vec2
	Mass         float64
	Drag         float64
	Gravity      float64
	UseGravity   bool
	IsKinematic  bool
}

// NewRigidbody returns a body with unit mass and the default drag.
func NewRigidbody() *Rigidbody {
	return &Rigidbody{
		Mass: DefaultMass,
		Drag: DefaultDrag,
	}
}

// AddRigidbody attaches a default Rigidbody to e.
func AddRigidbody(e *ecs.Entity) *Rigidbody {
	return ecs.AddBehavior(e, NewRigidbody())
}

func (r *Rigidbody) Update(frame *ecs.UpdateFrame) {
	r.Step(frame.DeltaTime)
}

// Step advances the body by dt seconds. Acceleration is cleared afterwards, so forces
// must be re-applied every frame.
func (r *Rigidbody) Step(dt float64) {
	if r.IsKinematic {
		return
	}
	t := r.Transform()
	if t == nil {
		return
	}

	if r.UseGravity {
		r.Acceleration.Y += r.Gravity
	}
	r.Velocity = r.Velocity.Add(r.Acceleration.Scale(dt))
	r.Velocity = r.Velocity.Scale(r.Drag)
	t.Position = t.Position.Add(r.Velocity.Scale(dt))
	r.Acceleration = vmath.Vec2{}
}

// AddForce accumulates force/mass into this step's acceleration.
func (r *Rigidbody) AddForce(force vmath.Vec2) {
	if r.IsKinematic || r.Mass <= 0 {
		return
	}
	r.Acceleration = r.Acceleration.Add(force.Scale(1 / r.Mass))
}

// AddImpulse changes velocity by impulse/mass immediately.
func (r *Rigidbody) AddImpulse(impulse vmath.Vec2) {
	if r.IsKinematic || r.Mass <= 0 {
		return
	}
	r.Velocity = r.Velocity.Add(impulse.Scale(1 / r.Mass))
}

func (r *Rigidbody) Speed() float64 {
	return r.Velocity.Len()
}

// SetMass rejects non-positive masses, which would divide by zero in collision response.
func (r *Rigidbody) SetMass(mass float64) error {
	if mass <= 0 {
		return fmt.Errorf("set mass %g: %w", mass, ErrInvalidMass)
	}
	r.Mass = mass
	return nil
}
