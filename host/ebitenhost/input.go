package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/vmath"
)

var keys = [host.KeyCount]ebiten.Key{
	host.KeyUp:     ebiten.KeyArrowUp,
	host.KeyDown:   ebiten.KeyArrowDown,
	host.KeyLeft:   ebiten.KeyArrowLeft,
	host.KeyRight:  ebiten.KeyArrowRight,
	host.KeyW:      ebiten.KeyW,
	host.KeyA:      ebiten.KeyA,
	host.KeyS:      ebiten.KeyS,
	host.KeyD:      ebiten.KeyD,
	host.KeySpace:  ebiten.KeySpace,
	host.KeyEnter:  ebiten.KeyEnter,
	host.KeyEscape: ebiten.KeyEscape,
	host.KeyR:      ebiten.KeyR,
	host.KeyP:      ebiten.KeyP,
	host.KeyF1:     ebiten.KeyF1,
}

var buttons = [host.MouseButtonCount]ebiten.MouseButton{
	host.MouseLeft:   ebiten.MouseButtonLeft,
	host.MouseRight:  ebiten.MouseButtonRight,
	host.MouseMiddle: ebiten.MouseButtonMiddle,
}

// Input implements host.Input on top of ebiten's polled input state.
type Input struct{}

func (Input) KeyDown(k host.Key) bool {
	return validKey(k) && ebiten.IsKeyPressed(keys[k])
}

func (Input) KeyPressed(k host.Key) bool {
	return validKey(k) && inpututil.IsKeyJustPressed(keys[k])
}

func (Input) KeyReleased(k host.Key) bool {
	return validKey(k) && inpututil.IsKeyJustReleased(keys[k])
}

func (Input) MouseDown(b host.MouseButton) bool {
	return validButton(b) && ebiten.IsMouseButtonPressed(buttons[b])
}

func (Input) MousePressed(b host.MouseButton) bool {
	return validButton(b) && inpututil.IsMouseButtonJustPressed(buttons[b])
}

func (Input) MouseReleased(b host.MouseButton) bool {
	return validButton(b) && inpututil.IsMouseButtonJustReleased(buttons[b])
}

func (Input) MousePosition() vmath.Vec2 {
	x, y := ebiten.CursorPosition()
	return vmath.V(float64(x), float64(y))
}

func validKey(k host.Key) bool            { return k > host.KeyUnknown && k < host.KeyCount }
func validButton(b host.MouseButton) bool { return b >= 0 && b < host.MouseButtonCount }
