package physics

import (
	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/vmath"
)

// Kind tags a collider's shape.
type Kind uint8

const (
	Box Kind = iota
	Circle
	kindCount
)

func (k Kind) String() string {
	switch k {
	case Box:
		return "box"
	case Circle:
		return "circle"
	}
	return "unknown"
}

const (
	DefaultBoxSize = 32
	DefaultRadius  = 16
)

// Collider is a Box or Circle shape attached to an entity and registered with a World.
// Size is read for boxes and Radius for circles.
type Collider struct {
	ecs.Base
	Kind      Kind
	Offset    vmath.Vec2
	IsTrigger bool
	Size      vmath.Vec2
	Radius    float64

	world  *World
	handle uint32
	// seen is set by the first registration; Start never re-registers a
	// collider that was removed on purpose.
	seen bool
}

// WorldPosition is the owner's position plus Offset. A collider whose entity is gone
// reports the origin.
func (c *Collider) WorldPosition() vmath.Vec2 {
	t := c.Transform()
	if t == nil {
		return vmath.Vec2{}
	}
	return t.Position.Add(c.Offset)
}

// Bounds is the axis-aligned box around the shape, centered on WorldPosition.
func (c *Collider) Bounds() vmath.Rect {
	if c.Kind == Circle {
		return vmath.RectCentered(c.WorldPosition(), vmath.V(c.Radius*2, c.Radius*2))
	}
	return vmath.RectCentered(c.WorldPosition(), c.Size)
}

// World returns the world the collider is registered with, or nil.
func (c *Collider) World() *World { return c.world }

// Registered reports whether the collider is currently part of a world's pair pass.
func (c *Collider) Registered() bool { return c.world != nil }

// Start registers a collider attached with plain ecs.AddBehavior with the scene's
// World service, if there is one.
func (c *Collider) Start(*ecs.UpdateFrame) {
	if c.seen {
		return
	}
	if w, ok := WorldOf(c.Scene()); ok {
		w.Register(c)
	}
}

// OnDestroy deregisters the collider so the world never holds a reclaimed entity's shape.
func (c *Collider) OnDestroy() {
	if c.world != nil {
		c.world.RemoveCollider(c)
	}
}

type overlapFunc func(a, b *Collider) bool

// overlapTable dispatches pair tests by shape kind. Mixed Box/Circle pairs are
// deliberately unsupported and never collide.
var overlapTable = [kindCount][kindCount]overlapFunc{
	Box: {
		Box:    overlapBoxBox,
		Circle: overlapUnsupported,
	},
	Circle: {
		Box:    overlapUnsupported,
		Circle: overlapCircleCircle,
	},
}

func overlapBoxBox(a, b *Collider) bool {
	return a.Bounds().Overlaps(b.Bounds())
}

func overlapCircleCircle(a, b *Collider) bool {
	r := a.Radius + b.Radius
	return a.WorldPosition().Sub(b.WorldPosition()).LenSq() <= r*r
}

func overlapUnsupported(_, _ *Collider) bool {
	return false
}

func overlaps(a, b *Collider) bool {
	if a.Kind >= kindCount || b.Kind >= kindCount {
		return false
	}
	return overlapTable[a.Kind][b.Kind](a, b)
}
