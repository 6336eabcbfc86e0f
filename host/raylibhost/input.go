package raylibhost

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/vmath"
)

var keys = [host.KeyCount]int32{
	host.KeyUp:     rl.KeyUp,
	host.KeyDown:   rl.KeyDown,
	host.KeyLeft:   rl.KeyLeft,
	host.KeyRight:  rl.KeyRight,
	host.KeyW:      rl.KeyW,
	host.KeyA:      rl.KeyA,
	host.KeyS:      rl.KeyS,
	host.KeyD:      rl.KeyD,
	host.KeySpace:  rl.KeySpace,
	host.KeyEnter:  rl.KeyEnter,
	host.KeyEscape: rl.KeyEscape,
	host.KeyR:      rl.KeyR,
	host.KeyP:      rl.KeyP,
	host.KeyF1:     rl.KeyF1,
}

var buttons = [host.MouseButtonCount]rl.MouseButton{
	host.MouseLeft:   rl.MouseButtonLeft,
	host.MouseRight:  rl.MouseButtonRight,
	host.MouseMiddle: rl.MouseButtonMiddle,
}

// Input implements host.Input with raylib's polled input.
type Input struct{}

func (Input) KeyDown(k host.Key) bool     { return validKey(k) && rl.IsKeyDown(keys[k]) }
func (Input) KeyPressed(k host.Key) bool  { return validKey(k) && rl.IsKeyPressed(keys[k]) }
func (Input) KeyReleased(k host.Key) bool { return validKey(k) && rl.IsKeyReleased(keys[k]) }

func (Input) MouseDown(b host.MouseButton) bool {
	return validButton(b) && rl.IsMouseButtonDown(buttons[b])
}

func (Input) MousePressed(b host.MouseButton) bool {
	return validButton(b) && rl.IsMouseButtonPressed(buttons[b])
}

func (Input) MouseReleased(b host.MouseButton) bool {
	return validButton(b) && rl.IsMouseButtonReleased(buttons[b])
}

func (Input) MousePosition() vmath.Vec2 {
	p := rl.GetMousePosition()
	return vmath.V(float64(p.X), float64(p.Y))
}

func validKey(k host.Key) bool            { return k > host.KeyUnknown && k < host.KeyCount }
func validButton(b host.MouseButton) bool { return b >= 0 && b < host.MouseButtonCount }
