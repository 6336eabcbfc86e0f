package headless

import (
	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/vmath"
)

// Input is a scripted input source. Tests set key and button state, and EndFrame
// rolls the current state into the previous frame's for edge detection.
type Input struct {
	keys      [host.KeyCount]bool
	prevKeys  [host.KeyCount]bool
	mouse     [host.MouseButtonCount]bool
	prevMouse [host.MouseButtonCount]bool
	pos       vmath.Vec2
}

func NewInput() *Input {
	return &Input{}
}

func (in *Input) SetKey(k host.Key, down bool) {
	if validKey(k) {
		in.keys[k] = down
	}
}

func (in *Input) SetMouse(b host.MouseButton, down bool) {
	if validButton(b) {
		in.mouse[b] = down
	}
}

func (in *Input) SetMousePosition(p vmath.Vec2) { in.pos = p }

// EndFrame makes this frame's state the baseline for the next frame's edges.
func (in *Input) EndFrame() {
	in.prevKeys = in.keys
	in.prevMouse = in.mouse
}

func (in *Input) KeyDown(k host.Key) bool {
	return validKey(k) && in.keys[k]
}

func (in *Input) KeyPressed(k host.Key) bool {
	return validKey(k) && in.keys[k] && !in.prevKeys[k]
}

func (in *Input) KeyReleased(k host.Key) bool {
	return validKey(k) && !in.keys[k] && in.prevKeys[k]
}

func (in *Input) MouseDown(b host.MouseButton) bool {
	return validButton(b) && in.mouse[b]
}

func (in *Input) MousePressed(b host.MouseButton) bool {
	return validButton(b) && in.mouse[b] && !in.prevMouse[b]
}

func (in *Input) MouseReleased(b host.MouseButton) bool {
	return validButton(b) && !in.mouse[b] && in.prevMouse[b]
}

func (in *Input) MousePosition() vmath.Vec2 { return in.pos }

func validKey(k host.Key) bool            { return k >= 0 && k < host.KeyCount }
func validButton(b host.MouseButton) bool { return b >= 0 && b < host.MouseButtonCount }
