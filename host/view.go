package host

import "github.com/plus3/lumen/vmath"

// View maps world coordinates to screen coordinates: the world point Target
// lands on the screen point Offset, scaled by Zoom.
type View struct {
	Target vmath.Vec2
	Offset vmath.Vec2
	Zoom   float64
}

// IdentityView leaves coordinates untouched.
var IdentityView = View{Zoom: 1}

func (v View) zoom() float64 {
	if v.Zoom == 0 {
		return 1
	}
	return v.Zoom
}

func (v View) WorldToScreen(p vmath.Vec2) vmath.Vec2 {
	return p.Sub(v.Target).Scale(v.zoom()).Add(v.Offset)
}

func (v View) ScreenToWorld(p vmath.Vec2) vmath.Vec2 {
	return p.Sub(v.Offset).Scale(1 / v.zoom()).Add(v.Target)
}

// Length scales a world-space length into screen space.
func (v View) Length(l float64) float64 {
	return l * v.zoom()
}

// Rect maps a world-space rectangle into screen space.
func (v View) Rect(r vmath.Rect) vmath.Rect {
	p := v.WorldToScreen(vmath.Vec2{X: r.X, Y: r.Y})
	z := v.zoom()
	return vmath.Rect{X: p.X, Y: p.Y, W: r.W * z, H: r.H * z}
}
