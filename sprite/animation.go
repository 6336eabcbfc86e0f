package sprite

import (
	"image/color"

	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/vmath"
)

const DefaultFrameDuration = 0.1

// Frame is one cell of a sprite sheet shown for Duration seconds.
type Frame struct {
	Source   vmath.Rect
	Duration float64
}

// Animation steps through Frames of Sheet. A non-looping animation stops on its last frame.
type Animation struct {
	ecs.Base
	Sheet  host.Texture
	Frames []Frame
	Loop   bool
	Tint   color.RGBA
	Pivot  vmath.Vec2
	FlipX  bool
	FlipY  bool

	playing bool
	current int
	timer   float64
}

func NewAnimation(sheet host.Texture) *Animation {
	return &Animation{
		Sheet:   sheet,
		Loop:    true,
		Tint:    host.White,
		Pivot:   vmath.V(0.5, 0.5),
		playing: true,
	}
}

func (a *Animation) AddFrame(src vmath.Rect, duration float64) {
	a.Frames = append(a.Frames, Frame{Source: src, Duration: duration})
}

// FramesFromGrid appends count frames read row by row from a sheet of
// frameWidth x frameHeight cells.
func (a *Animation) FramesFromGrid(frameWidth, frameHeight, count int, duration float64) {
	if a.Sheet == nil || frameWidth <= 0 || frameHeight <= 0 {
		return
	}
	sheetWidth, _ := a.Sheet.Size()
	columns := max(sheetWidth/frameWidth, 1)
	for i := range count {
		x := (i % columns) * frameWidth
		y := (i / columns) * frameHeight
		a.AddFrame(vmath.Rect{
			X: float64(x),
			Y: float64(y),
			W: float64(frameWidth),
			H: float64(frameHeight),
		}, duration)
	}
}

func (a *Animation) Play()  { a.playing = true }
func (a *Animation) Pause() { a.playing = false }

// Stop pauses and rewinds to the first frame.
func (a *Animation) Stop() {
	a.playing = false
	a.current = 0
	a.timer = 0
}

func (a *Animation) Playing() bool { return a.playing }
func (a *Animation) Current() int  { return a.current }

func (a *Animation) Update(frame *ecs.UpdateFrame) {
	if !a.playing || len(a.Frames) == 0 {
		return
	}
	a.timer += frame.DeltaTime
	if a.timer < a.Frames[a.current].Duration {
		return
	}

	a.timer = 0
	a.current++
	if a.current >= len(a.Frames) {
		if a.Loop {
			a.current = 0
		} else {
			a.current = len(a.Frames) - 1
			a.playing = false
		}
	}
}

func (a *Animation) Render(frame *ecs.RenderFrame) {
	t := a.Transform()
	if a.Sheet == nil || len(a.Frames) == 0 || t == nil {
		return
	}
	draw(frame.Renderer, t, a.Sheet, a.Frames[a.current].Source, a.Pivot, a.Tint, a.FlipX, a.FlipY)
}
