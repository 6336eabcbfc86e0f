// Package headless implements the host contracts without a window. The renderer
// records draw calls instead of rasterising them, which makes frames inspectable
// in tests and cheap in the stress tool.
package headless

import (
	"image/color"

	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/vmath"
)

type OpKind uint8

const (
	OpFillRect OpKind = iota
	OpStrokeRect
	OpFillCircle
	OpStrokeCircle
	OpTexture
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpFillRect:
		return "fill-rect"
	case OpStrokeRect:
		return "stroke-rect"
	case OpFillCircle:
		return "fill-circle"
	case OpStrokeCircle:
		return "stroke-circle"
	case OpTexture:
		return "texture"
	case OpText:
		return "text"
	}
	return "unknown"
}

// Op is one recorded draw call. Geometry is in screen space: the active view,
// if any, has already been applied.
type Op struct {
	Kind     OpKind
	Rect     vmath.Rect
	Center   vmath.Vec2
	Radius   float64
	Rotation float64
	Color    color.RGBA
	Texture  host.Texture
	Text     string
}

// Renderer records draw calls. It implements host.Renderer.
type Renderer struct {
	Ops []Op

	view   host.View
	inView bool
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Reset drops recorded ops, keeping capacity for the next frame.
func (r *Renderer) Reset() {
	r.Ops = r.Ops[:0]
}

// Count returns how many recorded ops are of kind.
func (r *Renderer) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

func (r *Renderer) toScreen(rect vmath.Rect) vmath.Rect {
	if !r.inView {
		return rect
	}
	return r.view.Rect(rect)
}

func (r *Renderer) point(p vmath.Vec2) vmath.Vec2 {
	if !r.inView {
		return p
	}
	return r.view.WorldToScreen(p)
}

func (r *Renderer) length(l float64) float64 {
	if !r.inView {
		return l
	}
	return r.view.Length(l)
}

func (r *Renderer) FillRect(rect vmath.Rect, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Rect: r.toScreen(rect), Color: c})
}

func (r *Renderer) StrokeRect(rect vmath.Rect, thickness float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeRect, Rect: r.toScreen(rect), Radius: thickness, Color: c})
}

func (r *Renderer) FillCircle(center vmath.Vec2, radius float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillCircle, Center: r.point(center), Radius: r.length(radius), Color: c})
}

func (r *Renderer) StrokeCircle(center vmath.Vec2, radius float64, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeCircle, Center: r.point(center), Radius: r.length(radius), Color: c})
}

// DrawTexture records nothing for a nil texture.
func (r *Renderer) DrawTexture(tex host.Texture, src, dst vmath.Rect, origin vmath.Vec2, rotation float64, tint color.RGBA) {
	if tex == nil {
		return
	}
	r.Ops = append(r.Ops, Op{
		Kind:     OpTexture,
		Rect:     r.toScreen(dst),
		Center:   origin,
		Rotation: rotation,
		Color:    tint,
		Texture:  tex,
	})
}

// DrawText is screen-space regardless of the active view.
func (r *Renderer) DrawText(text string, pos vmath.Vec2, size int, c color.RGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Center: pos, Radius: float64(size), Color: c, Text: text})
}

func (r *Renderer) BeginView(v host.View) {
	r.view = v
	r.inView = true
}

func (r *Renderer) EndView() {
	r.inView = false
}
