// Package host defines the capabilities the runtime needs from its environment:
// drawing, texture resources, input polling and frame timing. The core packages
// only ever talk to these interfaces; concrete backends live in subpackages.
package host

import (
	"image/color"

	"github.com/plus3/lumen/vmath"
)

// Texture is a drawable image owned by a Resources implementation.
// The core only holds non-owning references to textures.
type Texture interface {
	Size() (width, height int)
}

// Renderer draws primitives for the current frame.
type Renderer interface {
	FillRect(r vmath.Rect, c color.RGBA)
	StrokeRect(r vmath.Rect, thickness float64, c color.RGBA)
	FillCircle(center vmath.Vec2, radius float64, c color.RGBA)
	StrokeCircle(center vmath.Vec2, radius float64, c color.RGBA)

	// DrawTexture draws the src region of tex scaled to dst's size. origin is a
	// point inside the scaled image that is placed at dst's X,Y and used as the
	// rotation pivot; rotation is in degrees. A negative src width or height
	// mirrors the image. A nil texture draws nothing.
	DrawTexture(tex Texture, src, dst vmath.Rect, origin vmath.Vec2, rotation float64, tint color.RGBA)
	DrawText(text string, pos vmath.Vec2, size int, c color.RGBA)

	// BeginView applies a world-to-screen transform to every draw until EndView.
	BeginView(v View)
	EndView()
}

// Resources materializes and caches named textures.
type Resources interface {
	CreateColorTexture(name string, width, height int, c color.RGBA) Texture
	CreateCircleTexture(name string, radius int, c color.RGBA) Texture
	// Texture returns a previously created texture, or nil when none exists.
	Texture(name string) Texture
}

// Input reports keyboard and mouse state for the current frame.
type Input interface {
	KeyDown(k Key) bool
	KeyPressed(k Key) bool
	KeyReleased(k Key) bool
	MouseDown(b MouseButton) bool
	MousePressed(b MouseButton) bool
	MouseReleased(b MouseButton) bool
	MousePosition() vmath.Vec2
}

// Game is what a backend drives once per frame: input is handed over, the
// simulation steps, then the frame is drawn.
type Game interface {
	SetInput(in Input)
	Step(dt float64) error
	Draw(r Renderer, res Resources)
}

// Common colors, matching the palette the demos use.
var (
	White     = color.RGBA{255, 255, 255, 255}
	Black     = color.RGBA{0, 0, 0, 255}
	Blank     = color.RGBA{0, 0, 0, 0}
	Gray      = color.RGBA{130, 130, 130, 255}
	Red       = color.RGBA{230, 41, 55, 255}
	Green     = color.RGBA{0, 228, 48, 255}
	Blue      = color.RGBA{0, 121, 241, 255}
	SkyBlue   = color.RGBA{102, 191, 255, 255}
	Yellow    = color.RGBA{253, 249, 0, 255}
	Orange    = color.RGBA{255, 161, 0, 255}
	DarkBlue  = color.RGBA{0, 82, 172, 255}
	RayWhite  = color.RGBA{245, 245, 245, 255}
	DarkGreen = color.RGBA{0, 117, 44, 255}
)
