// Package sprite provides render-only behaviors that draw textures at their entity's transform.
package sprite

import (
	"image/color"

	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/vmath"
)

// Renderer draws Source from Texture centered on Pivot at the entity's position,
// scaled and rotated with its transform.
type Renderer struct {
	ecs.Base
	Texture host.Texture
	Source  vmath.Rect
	Tint    color.RGBA
	Pivot   vmath.Vec2
	Layer   int
	FlipX   bool
	FlipY   bool
}

// NewRenderer draws the whole texture. A nil texture is allowed and draws nothing.
func NewRenderer(tex host.Texture) *Renderer {
	r := &Renderer{
		Texture: tex,
		Tint:    host.White,
		Pivot:   vmath.V(0.5, 0.5),
	}
	if tex != nil {
		w, h := tex.Size()
		r.Source = vmath.Rect{W: float64(w), H: float64(h)}
	}
	return r
}

// Size is the unscaled size of the drawn region.
func (r *Renderer) Size() vmath.Vec2 {
	return vmath.V(r.Source.W, r.Source.H)
}

func (r *Renderer) Render(frame *ecs.RenderFrame) {
	t := r.Transform()
	if r.Texture == nil || t == nil {
		return
	}
	draw(frame.Renderer, t, r.Texture, r.Source, r.Pivot, r.Tint, r.FlipX, r.FlipY)
}

func draw(out host.Renderer, t *ecs.Transform, tex host.Texture, src vmath.Rect, pivot vmath.Vec2, tint color.RGBA, flipX, flipY bool) {
	w := src.W * t.Scale.X
	h := src.H * t.Scale.Y
	dst := vmath.Rect{X: t.Position.X, Y: t.Position.Y, W: w, H: h}
	origin := vmath.V(w*pivot.X, h*pivot.Y)

	if flipX {
		src.W = -src.W
	}
	if flipY {
		src.H = -src.H
	}
	out.DrawTexture(tex, src, dst, origin, t.Rotation, tint)
}
