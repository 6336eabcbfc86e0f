// Package ebitenhost runs a game in a window with Ebitengine.
package ebitenhost

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/vmath"
)

// Renderer implements host.Renderer by drawing onto an ebiten image, normally
// the screen passed to ebiten.Game.Draw.
type Renderer struct {
	target *ebiten.Image
	view   host.View
	inView bool
	opts   ebiten.DrawImageOptions
}

func NewRenderer(target *ebiten.Image) *Renderer {
	return &Renderer{target: target}
}

func (r *Renderer) SetTarget(target *ebiten.Image) { r.target = target }
func (r *Renderer) Target() *ebiten.Image          { return r.target }

func (r *Renderer) FillRect(rect vmath.Rect, c color.RGBA) {
	rect = r.toScreen(rect)
	vector.DrawFilledRect(r.target, float32(rect.X), float32(rect.Y), float32(rect.W), float32(rect.H), c, false)
}

func (r *Renderer) StrokeRect(rect vmath.Rect, thickness float64, c color.RGBA) {
	rect = r.toScreen(rect)
	vector.StrokeRect(r.target, float32(rect.X), float32(rect.Y), float32(rect.W), float32(rect.H), float32(thickness), c, false)
}

func (r *Renderer) FillCircle(center vmath.Vec2, radius float64, c color.RGBA) {
	center = r.point(center)
	vector.DrawFilledCircle(r.target, float32(center.X), float32(center.Y), float32(r.length(radius)), c, true)
}

func (r *Renderer) StrokeCircle(center vmath.Vec2, radius float64, c color.RGBA) {
	center = r.point(center)
	vector.StrokeCircle(r.target, float32(center.X), float32(center.Y), float32(r.length(radius)), 2, c, true)
}

// DrawTexture draws the src region of tex. Negative src sizes mirror the
// image; origin is both the anchor placed at dst's X,Y and the rotation pivot.
func (r *Renderer) DrawTexture(tex host.Texture, src, dst vmath.Rect, origin vmath.Vec2, rotation float64, tint color.RGBA) {
	t, ok := tex.(*Texture)
	if !ok || t == nil {
		return
	}
	sw, sh := math.Abs(src.W), math.Abs(src.H)
	if sw == 0 || sh == 0 {
		return
	}
	x0, y0 := int(src.X), int(src.Y)
	sub := t.img.SubImage(image.Rect(x0, y0, x0+int(sw), y0+int(sh))).(*ebiten.Image)

	r.opts.GeoM.Reset()
	r.opts.ColorScale.Reset()
	if src.W < 0 {
		r.opts.GeoM.Scale(-1, 1)
		r.opts.GeoM.Translate(sw, 0)
	}
	if src.H < 0 {
		r.opts.GeoM.Scale(1, -1)
		r.opts.GeoM.Translate(0, sh)
	}
	r.opts.GeoM.Scale(dst.W/sw, dst.H/sh)
	r.opts.GeoM.Translate(-origin.X, -origin.Y)
	r.opts.GeoM.Rotate(rotation * math.Pi / 180)

	pos := vmath.V(dst.X, dst.Y)
	if r.inView {
		zoom := r.view.Length(1)
		r.opts.GeoM.Scale(zoom, zoom)
		pos = r.view.WorldToScreen(pos)
	}
	r.opts.GeoM.Translate(pos.X, pos.Y)
	r.opts.ColorScale.ScaleWithColor(tint)
	r.opts.Filter = ebiten.FilterLinear

	r.target.DrawImage(sub, &r.opts)
}

// DrawText uses ebiten's built-in debug font, which has a fixed size and
// color.
func (r *Renderer) DrawText(text string, pos vmath.Vec2, _ int, _ color.RGBA) {
	ebitenutil.DebugPrintAt(r.target, text, int(pos.X), int(pos.Y))
}

func (r *Renderer) BeginView(v host.View) {
	r.view = v
	r.inView = true
}

func (r *Renderer) EndView() {
	r.inView = false
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
