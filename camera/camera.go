// Package camera provides a 2D follow camera behavior.
package camera

import (
	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/vmath"
)

const DefaultSmoothSpeed = 5

// Camera eases its view target toward a followed entity. Offset is the screen point
// the target appears at, usually the screen center.
type Camera struct {
	ecs.Base
	Offset      vmath.Vec2
	Zoom        float64
	SmoothSpeed float64

	target    ecs.EntityId
	following bool
	look      vmath.Vec2
}

func New(offset vmath.Vec2) *Camera {
	return &Camera{
		Offset:      offset,
		Zoom:        1,
		SmoothSpeed: DefaultSmoothSpeed,
	}
}

// AddMain attaches a camera to e and makes it the scene's main camera.
func AddMain(e *ecs.Entity, offset vmath.Vec2) *Camera {
	c := ecs.AddBehavior(e, New(offset))
	ecs.Provide(e.Scene(), c)
	return c
}

// Main returns the scene's main camera, if one was provided.
func Main(scene *ecs.Scene) (*Camera, bool) {
	return ecs.Service[*Camera](scene)
}

// Follow starts easing toward the entity id.
func (c *Camera) Follow(id ecs.EntityId) {
	c.target = id
	c.following = !id.IsZero()
}

func (c *Camera) Unfollow() {
	c.following = false
}

// Target returns the followed entity.
func (c *Camera) Target() (ecs.EntityId, bool) {
	return c.target, c.following
}

// LookAt moves the view target immediately.
func (c *Camera) LookAt(p vmath.Vec2) {
	c.look = p
}

// Update moves the view target toward the followed entity by SmoothSpeed*dt of the
// remaining distance. Targets that are gone or inactive are not followed.
func (c *Camera) Update(frame *ecs.UpdateFrame) {
	if !c.following {
		return
	}
	target, ok := c.Scene().Entity(c.target)
	if !ok || !target.Active {
		return
	}
	t := vmath.Clamp(c.SmoothSpeed*frame.DeltaTime, 0, 1)
	c.look = vmath.LerpVec(c.look, target.Transform().Position, t)
}

// View is the world-to-screen mapping for the current frame.
func (c *Camera) View() host.View {
	return host.View{Target: c.look, Offset: c.Offset, Zoom: c.Zoom}
}

func (c *Camera) WorldToScreen(p vmath.Vec2) vmath.Vec2 {
	return c.View().WorldToScreen(p)
}

func (c *Camera) ScreenToWorld(p vmath.Vec2) vmath.Vec2 {
	return c.View().ScreenToWorld(p)
}
