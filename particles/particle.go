package particles

import (
	"image/color"

	"github.com/plus3/lumen/vmath"
)

// Particle is a single simulated point owned by an Emitter.
type Particle struct {
	Position      vmath.Vec2
	Velocity      vmath.Vec2
	Acceleration  vmath.Vec2
	Color         color.RGBA
	Lifetime      float64
	Age           float64
	Size          float64
	Rotation      float64
	RotationSpeed float64
	Active        bool

	startColor color.RGBA
	endColor   color.RGBA
}

// Update ages the particle and integrates it with semi-implicit Euler.
// It reports whether the particle is still alive.
func (p *Particle) Update(dt float64) bool {
	if !p.Active {
		return false
	}

	p.Age += dt
	if p.Age >= p.Lifetime {
		p.Active = false
		p.Color.A = 0
		return false
	}

	p.Velocity = p.Velocity.Add(p.Acceleration.Scale(dt))
	p.Position = p.Position.Add(p.Velocity.Scale(dt))
	p.Rotation += p.RotationSpeed * dt

	t := p.Age / p.Lifetime
	p.Color = color.RGBA{
		R: lerp8(p.startColor.R, p.endColor.R, t),
		G: lerp8(p.startColor.G, p.endColor.G, t),
		B: lerp8(p.startColor.B, p.endColor.B, t),
		A: FadeAlpha(t),
	}
	return true
}

// FadeAlpha is the alpha for a particle at normalized age t: 255 at birth, 0 at death.
func FadeAlpha(t float64) uint8 {
	return uint8(vmath.Clamp((1-t)*255, 0, 255))
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(vmath.Clamp(vmath.Lerp(float64(a), float64(b), t), 0, 255))
}
