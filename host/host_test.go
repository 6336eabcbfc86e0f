package host_test

import (
	"testing"

	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/vmath"
	"github.com/stretchr/testify/assert"
)

type keys map[host.Key]bool

func (k keys) KeyDown(key host.Key) bool         { return k[key] }
func (keys) KeyPressed(host.Key) bool            { return false }
func (keys) KeyReleased(host.Key) bool           { return false }
func (keys) MouseDown(host.MouseButton) bool     { return false }
func (keys) MousePressed(host.MouseButton) bool  { return false }
func (keys) MouseReleased(host.MouseButton) bool { return false }
func (keys) MousePosition() vmath.Vec2           { return vmath.Vec2{} }

func TestMovement(t *testing.T) {
	tests := []struct {
		name string
		down keys
		want vmath.Vec2
	}{
		{"idle", keys{}, vmath.V(0, 0)},
		{"wasd diagonal", keys{host.KeyW: true, host.KeyD: true}, vmath.V(1, -1)},
		{"arrows", keys{host.KeyLeft: true, host.KeyDown: true}, vmath.V(-1, 1)},
		{"opposing cancel", keys{host.KeyA: true, host.KeyRight: true}, vmath.V(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, host.Movement(tt.down))
		})
	}

	assert.Equal(t, vmath.Vec2{}, host.Movement(nil))
	assert.Equal(t, vmath.Vec2{}, host.Movement(host.NoInput{}))
}

func TestViewRoundTrip(t *testing.T) {
	v := host.View{Target: vmath.V(100, 50), Offset: vmath.V(400, 300), Zoom: 2}

	screen := v.WorldToScreen(vmath.V(110, 50))
	assert.Equal(t, vmath.V(420, 300), screen)
	assert.Equal(t, vmath.V(110, 50), v.ScreenToWorld(screen))
	assert.Equal(t, vmath.V(5, 5), host.View{}.WorldToScreen(vmath.V(5, 5)))
}

func TestFrameClock(t *testing.T) {
	c := host.NewFrameClock()
	c.Tick(0.5)
	c.Tick(0.25)
	c.Tick(-1)

	assert.Equal(t, 0.0, c.DeltaTime())
	assert.Equal(t, 0.75, c.Elapsed())
	assert.Equal(t, 3, c.Frames())

	c.Reset()
	assert.Equal(t, 0, c.Frames())
}
