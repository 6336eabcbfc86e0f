package ecs

import "github.com/plus3/lumen/vmath"

// Transform is the mandatory spatial behavior every entity carries.
// Rotation is in degrees.
type Transform struct {
	Base
	Position vmath.Vec2
	Rotation float64
	Scale    vmath.Vec2
}

func (t *Transform) Translate(offset vmath.Vec2) {
	t.Position = t.Position.Add(offset)
}

func (t *Transform) Rotate(degrees float64) {
	t.Rotation += degrees
}

// ScaleBy multiplies the current scale component-wise.
func (t *Transform) ScaleBy(factor vmath.Vec2) {
	t.Scale = t.Scale.Mul(factor)
}

// Forward is the unit vector along the current rotation.
func (t *Transform) Forward() vmath.Vec2 {
	return vmath.FromAngle(t.Rotation)
}

// Right is Forward rotated a quarter turn clockwise in screen space.
func (t *Transform) Right() vmath.Vec2 {
	return vmath.FromAngle(t.Rotation + 90)
}
