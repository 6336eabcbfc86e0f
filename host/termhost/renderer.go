// Package termhost runs a game in a terminal with tcell. Drawing is rasterised
// onto character cells, each covering CellSize world pixels.
package termhost

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/host/headless"
	"github.com/plus3/lumen/vmath"
)

// DefaultCellSize is the pixel footprint of one cell; terminal cells are
// roughly twice as tall as they are wide.
var DefaultCellSize = vmath.V(8, 16)

// Renderer implements host.Renderer on a tcell screen.
type Renderer struct {
	screen     tcell.Screen
	cell       vmath.Vec2
	background tcell.Color
	view       host.View
	inView     bool
}

func NewRenderer(screen tcell.Screen, cell vmath.Vec2) *Renderer {
	if cell.X <= 0 || cell.Y <= 0 {
		cell = DefaultCellSize
	}
	return &Renderer{
		screen:     screen,
		cell:       cell,
		background: tcell.ColorBlack,
	}
}

// CellSize returns the pixel size of one cell.
func (r *Renderer) CellSize() vmath.Vec2 { return r.cell }

// Bounds is the screen area in pixels.
func (r *Renderer) Bounds() vmath.Rect {
	w, h := r.screen.Size()
	return vmath.Rect{W: float64(w) * r.cell.X, H: float64(h) * r.cell.Y}
}

func (r *Renderer) SetBackground(c color.RGBA) {
	r.background = toColor(c)
}

// Clear fills the screen with the background color.
func (r *Renderer) Clear() {
	r.screen.Fill(' ', tcell.StyleDefault.Background(r.background))
}

func (r *Renderer) FillRect(rect vmath.Rect, c color.RGBA) {
	if c.A == 0 {
		return
	}
	x0, y0, x1, y1 := r.span(r.toScreen(rect))
	style := tcell.StyleDefault.Background(toColor(c))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			r.set(x, y, ' ', style)
		}
	}
}

func (r *Renderer) StrokeRect(rect vmath.Rect, _ float64, c color.RGBA) {
	if c.A == 0 {
		return
	}
	x0, y0, x1, y1 := r.span(r.toScreen(rect))
	for x := x0; x <= x1; x++ {
		r.glyph(x, y0, '─', c)
		r.glyph(x, y1, '─', c)
	}
	for y := y0; y <= y1; y++ {
		r.glyph(x0, y, '│', c)
		r.glyph(x1, y, '│', c)
	}
	r.glyph(x0, y0, '┌', c)
	r.glyph(x1, y0, '┐', c)
	r.glyph(x0, y1, '└', c)
	r.glyph(x1, y1, '┘', c)
}

// FillCircle paints cells whose centers lie inside the circle. A circle
// smaller than a cell becomes a single dot glyph.
func (r *Renderer) FillCircle(center vmath.Vec2, radius float64, c color.RGBA) {
	if c.A == 0 {
		return
	}
	center, radius = r.point(center), r.length(radius)
	if 2*radius < math.Min(r.cell.X, r.cell.Y) {
		x, y := r.cellOf(center)
		r.glyph(x, y, '•', c)
		return
	}
	style := tcell.StyleDefault.Background(toColor(c))
	r.eachCell(center, radius+r.cell.Y, func(x, y int, d float64) {
		if d <= radius {
			r.set(x, y, ' ', style)
		}
	})
}

// StrokeCircle marks cells within half a cell of the circumference.
func (r *Renderer) StrokeCircle(center vmath.Vec2, radius float64, c color.RGBA) {
	if c.A == 0 {
		return
	}
	center, radius = r.point(center), r.length(radius)
	band := math.Max(r.cell.X, r.cell.Y) / 2
	r.eachCell(center, radius+band, func(x, y int, d float64) {
		if math.Abs(d-radius) <= band {
			r.glyph(x, y, '·', c)
		}
	})
}

// DrawTexture fills the destination cells with the texture's color modulated
// by tint. Cells cannot rotate, so rotation is ignored. Textures not created
// by Resources draw as plain rectangles in the tint color.
func (r *Renderer) DrawTexture(tex host.Texture, src, dst vmath.Rect, origin vmath.Vec2, rotation float64, tint color.RGBA) {
	if tex == nil {
		return
	}
	rect := vmath.Rect{X: dst.X - origin.X, Y: dst.Y - origin.Y, W: math.Abs(dst.W), H: math.Abs(dst.H)}
	c := tint
	if t, ok := tex.(*headless.Texture); ok {
		c = modulate(t.Color, tint)
		if t.Circle {
			r.FillCircle(rect.Center(), math.Min(rect.W, rect.H)/2, c)
			return
		}
	}
	r.FillRect(rect, c)
}

// DrawText writes text in screen space starting at the cell containing pos.
func (r *Renderer) DrawText(text string, pos vmath.Vec2, _ int, c color.RGBA) {
	x, y := r.cellOf(pos)
	for _, ch := range text {
		r.glyph(x, y, ch, c)
		x++
	}
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

func (r *Renderer) cellOf(p vmath.Vec2) (int, int) {
	return int(math.Floor(p.X / r.cell.X)), int(math.Floor(p.Y / r.cell.Y))
}

// span returns the inclusive cell range covered by rect, at least one cell.
func (r *Renderer) span(rect vmath.Rect) (x0, y0, x1, y1 int) {
	x0, y0 = r.cellOf(vmath.V(rect.X, rect.Y))
	x1 = int(math.Ceil((rect.X+rect.W)/r.cell.X)) - 1
	y1 = int(math.Ceil((rect.Y+rect.H)/r.cell.Y)) - 1
	return x0, y0, max(x0, x1), max(y0, y1)
}

// eachCell visits cells within reach of center, passing the distance from
// center to each cell's midpoint.
func (r *Renderer) eachCell(center vmath.Vec2, reach float64, fn func(x, y int, d float64)) {
	x0, y0 := r.cellOf(center.Sub(vmath.V(reach, reach)))
	x1, y1 := r.cellOf(center.Add(vmath.V(reach, reach)))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			mid := vmath.V((float64(x)+0.5)*r.cell.X, (float64(y)+0.5)*r.cell.Y)
			fn(x, y, mid.Distance(center))
		}
	}
}

// glyph draws ch in c over the cell's current background.
func (r *Renderer) glyph(x, y int, ch rune, c color.RGBA) {
	if !r.inside(x, y) {
		return
	}
	_, _, style, _ := r.screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	if bg == tcell.ColorDefault {
		bg = r.background
	}
	r.screen.SetContent(x, y, ch, nil, tcell.StyleDefault.Foreground(toColor(c)).Background(bg))
}

func (r *Renderer) set(x, y int, ch rune, style tcell.Style) {
	if r.inside(x, y) {
		r.screen.SetContent(x, y, ch, nil, style)
	}
}

func (r *Renderer) inside(x, y int) bool {
	w, h := r.screen.Size()
	return x >= 0 && y >= 0 && x < w && y < h
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func modulate(c, tint color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(uint16(c.R) * uint16(tint.R) / 255),
		G: uint8(uint16(c.G) * uint16(tint.G) / 255),
		B: uint8(uint16(c.B) * uint16(tint.B) / 255),
		A: uint8(uint16(c.A) * uint16(tint.A) / 255),
	}
}
