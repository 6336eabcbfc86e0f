package headless_test

import (
	"testing"

	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/host/headless"
	"github.com/plus3/lumen/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRendererRecordsThroughView(t *testing.T) {
	r := headless.NewRenderer()
	r.FillRect(vmath.Rect{X: 1, Y: 2, W: 3, H: 4}, host.Red)

	r.BeginView(host.View{Target: vmath.V(100, 0), Offset: vmath.V(50, 50), Zoom: 2})
	r.FillCircle(vmath.V(110, 0), 5, host.Blue)
	r.DrawTexture(nil, vmath.Rect{}, vmath.Rect{}, vmath.Vec2{}, 0, host.White)
	r.EndView()
	r.DrawText("score", vmath.V(10, 10), 20, host.White)

	require.Len(t, r.Ops, 3)
	assert.Equal(t, vmath.Rect{X: 1, Y: 2, W: 3, H: 4}, r.Ops[0].Rect)
	assert.Equal(t, vmath.V(70, 50), r.Ops[1].Center)
	assert.Equal(t, 10.0, r.Ops[1].Radius)
	assert.Equal(t, 1, r.Count(headless.OpText))
	assert.Equal(t, 0, r.Count(headless.OpTexture))

	r.Reset()
	assert.Empty(t, r.Ops)
}

func TestResources(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	res := headless.NewResources(zap.New(core))

	tex := res.CreateColorTexture("paddle", 20, 8, host.Gray)
	w, h := tex.Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 8, h)
	assert.Same(t, tex, res.CreateColorTexture("paddle", 1, 1, host.Red))

	ball := res.CreateCircleTexture("ball", 6, host.White)
	w, _ = ball.Size()
	assert.Equal(t, 12, w)
	assert.Same(t, ball, res.Texture("ball"))
	assert.Equal(t, 2, res.Len())

	assert.Nil(t, res.Texture("missing"))
	assert.Equal(t, 1, logs.FilterMessage("texture not found").Len())
}

func TestInputEdges(t *testing.T) {
	in := headless.NewInput()

	in.SetKey(host.KeySpace, true)
	assert.True(t, in.KeyDown(host.KeySpace))
	assert.True(t, in.KeyPressed(host.KeySpace))
	in.EndFrame()

	assert.True(t, in.KeyDown(host.KeySpace))
	assert.False(t, in.KeyPressed(host.KeySpace))

	in.SetKey(host.KeySpace, false)
	assert.True(t, in.KeyReleased(host.KeySpace))
	in.EndFrame()
	assert.False(t, in.KeyReleased(host.KeySpace))

	in.SetMouse(host.MouseLeft, true)
	in.SetMousePosition(vmath.V(3, 4))
	assert.True(t, in.MousePressed(host.MouseLeft))
	assert.Equal(t, vmath.V(3, 4), in.MousePosition())

	assert.False(t, in.KeyDown(host.Key(-1)))
	assert.False(t, in.KeyDown(host.KeyCount))

	in.SetKey(host.KeyD, true)
	assert.Equal(t, vmath.V(1, 0), host.Movement(in))
}
