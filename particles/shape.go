package particles

import (
	"math"

	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/vmath"
)

// spawnPosition samples a spawn point for the emitter's shape around t.
func (e *Emitter) spawnPosition(t *ecs.Transform) vmath.Vec2 {
	pos := t.Position
	switch e.Shape {
	case Circle:
		angle := vmath.RandRange(e.rng, 0, 360)
		return pos.Add(polar(angle, vmath.RandRange(e.rng, 0, e.Radius)))
	case Box:
		half := e.BoxSize.Scale(0.5)
		return pos.Add(vmath.RandVec(e.rng, half.Scale(-1), half))
	case Cone:
		spread := e.ConeAngle / 2
		angle := t.Rotation + vmath.RandRange(e.rng, -spread, spread)
		return pos.Add(polar(angle, vmath.RandRange(e.rng, 0, e.Radius)))
	}
	return pos
}

func polar(degrees, r float64) vmath.Vec2 {
	rad := degrees * vmath.Deg2Rad
	return vmath.Vec2{X: math.Cos(rad) * r, Y: math.Sin(rad) * r}
}
