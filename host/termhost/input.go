package termhost

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/vmath"
)

// DefaultHold is how long a key counts as held after its last event.
// Terminals report presses and autorepeats but never releases.
const DefaultHold = 150 * time.Millisecond

// Input implements host.Input from tcell events. Handle feeds events as they
// arrive and Advance latches a frame's state; both run on the game goroutine.
type Input struct {
	hold time.Duration
	cell vmath.Vec2

	seen     [host.KeyCount]time.Time
	down     [host.KeyCount]bool
	wasDown  [host.KeyCount]bool
	buttons  [host.MouseButtonCount]bool
	mouse    [host.MouseButtonCount]bool
	wasMouse [host.MouseButtonCount]bool
	pos      vmath.Vec2
}

func NewInput(cell vmath.Vec2, hold time.Duration) *Input {
	if cell.X <= 0 || cell.Y <= 0 {
		cell = DefaultCellSize
	}
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Input{cell: cell, hold: hold}
}

// Handle records a key or mouse event. It reports whether the event was used.
func (in *Input) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k := translateKey(ev)
		if k == host.KeyUnknown {
			return false
		}
		in.seen[k] = ev.When()
		return true
	case *tcell.EventMouse:
		x, y := ev.Position()
		in.pos = vmath.V((float64(x)+0.5)*in.cell.X, (float64(y)+0.5)*in.cell.Y)
		b := ev.Buttons()
		in.buttons[host.MouseLeft] = b&tcell.ButtonPrimary != 0
		in.buttons[host.MouseRight] = b&tcell.ButtonSecondary != 0
		in.buttons[host.MouseMiddle] = b&tcell.ButtonMiddle != 0
		return true
	}
	return false
}

// Advance latches the state for the frame starting at now.
func (in *Input) Advance(now time.Time) {
	in.wasDown = in.down
	for k := range in.seen {
		in.down[k] = !in.seen[k].IsZero() && now.Sub(in.seen[k]) <= in.hold
	}
	in.wasMouse = in.mouse
	in.mouse = in.buttons
}

func (in *Input) KeyDown(k host.Key) bool {
	return validKey(k) && in.down[k]
}

func (in *Input) KeyPressed(k host.Key) bool {
	return validKey(k) && in.down[k] && !in.wasDown[k]
}

func (in *Input) KeyReleased(k host.Key) bool {
	return validKey(k) && !in.down[k] && in.wasDown[k]
}

func (in *Input) MouseDown(b host.MouseButton) bool {
	return validButton(b) && in.mouse[b]
}

func (in *Input) MousePressed(b host.MouseButton) bool {
	return validButton(b) && in.mouse[b] && !in.wasMouse[b]
}

func (in *Input) MouseReleased(b host.MouseButton) bool {
	return validButton(b) && !in.mouse[b] && in.wasMouse[b]
}

func (in *Input) MousePosition() vmath.Vec2 { return in.pos }

func validKey(k host.Key) bool            { return k > host.KeyUnknown && k < host.KeyCount }
func validButton(b host.MouseButton) bool { return b >= 0 && b < host.MouseButtonCount }

var specialKeys = map[tcell.Key]host.Key{
	tcell.KeyUp:     host.KeyUp,
	tcell.KeyDown:   host.KeyDown,
	tcell.KeyLeft:   host.KeyLeft,
	tcell.KeyRight:  host.KeyRight,
	tcell.KeyEnter:  host.KeyEnter,
	tcell.KeyEscape: host.KeyEscape,
	tcell.KeyF1:     host.KeyF1,
}

var runeKeys = map[rune]host.Key{
	'w': host.KeyW,
	'a': host.KeyA,
	's': host.KeyS,
	'd': host.KeyD,
	'r': host.KeyR,
	'p': host.KeyP,
	' ': host.KeySpace,
}

func translateKey(ev *tcell.EventKey) host.Key {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		return runeKeys[r]
	}
	return specialKeys[ev.Key()]
}
