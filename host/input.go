package host

import "github.com/plus3/lumen/vmath"

// Key identifies a keyboard key independently of the backend.
type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyW
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyEnter
	KeyEscape
	KeyR
	KeyP
	KeyF1
	KeyCount
)

// MouseButton identifies a mouse button independently of the backend.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseButtonCount
)

// Movement derives a movement vector from WASD and arrow keys. Opposing keys
// cancel out; the result is not normalized, so diagonals have length sqrt(2).
func Movement(in Input) vmath.Vec2 {
	var v vmath.Vec2
	if in == nil {
		return v
	}
	if in.KeyDown(KeyA) || in.KeyDown(KeyLeft) {
		v.X--
	}
	if in.KeyDown(KeyD) || in.KeyDown(KeyRight) {
		v.X++
	}
	if in.KeyDown(KeyW) || in.KeyDown(KeyUp) {
		v.Y--
	}
	if in.KeyDown(KeyS) || in.KeyDown(KeyDown) {
		v.Y++
	}
	return v
}

// NoInput is an Input with nothing pressed.
type NoInput struct{}

func (NoInput) KeyDown(Key) bool               { return false }
func (NoInput) KeyPressed(Key) bool            { return false }
func (NoInput) KeyReleased(Key) bool           { return false }
func (NoInput) MouseDown(MouseButton) bool     { return false }
func (NoInput) MousePressed(MouseButton) bool  { return false }
func (NoInput) MouseReleased(MouseButton) bool { return false }
func (NoInput) MousePosition() vmath.Vec2      { return vmath.Vec2{} }
