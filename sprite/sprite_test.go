package sprite_test

import (
	"testing"

	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/host/headless"
	"github.com/plus3/lumen/sprite"
	"github.com/plus3/lumen/vmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRendererDrawsAtTransform(t *testing.T) {
	res := headless.NewResources(nil)
	scene := ecs.NewScene("test")
	e := scene.CreateEntity("ship")
	e.Transform().Position = vmath.V(100, 200)
	e.Transform().Scale = vmath.V(2, 1)
	e.Transform().Rotation = 30

	r := ecs.AddBehavior(e, sprite.NewRenderer(res.CreateColorTexture("ship", 16, 8, host.Blue)))
	r.FlipX = true
	assert.Equal(t, vmath.V(16, 8), r.Size())

	out := headless.NewRenderer()
	scene.Render(&ecs.RenderFrame{Renderer: out})

	require.Len(t, out.Ops, 1)
	op := out.Ops[0]
	assert.Equal(t, headless.OpTexture, op.Kind)
	assert.Equal(t, vmath.Rect{X: 100, Y: 200, W: 32, H: 8}, op.Rect)
	assert.Equal(t, vmath.V(16, 4), op.Center)
	assert.Equal(t, 30.0, op.Rotation)
	assert.Equal(t, host.White, op.Color)
}

func TestRendererWithoutTextureDrawsNothing(t *testing.T) {
	scene := ecs.NewScene("test")
	ecs.AddBehavior(scene.CreateEntity("ghost"), sprite.NewRenderer(nil))

	out := headless.NewRenderer()
	scene.Render(&ecs.RenderFrame{Renderer: out})
	assert.Empty(t, out.Ops)
}

func TestAnimationAdvances(t *testing.T) {
	res := headless.NewResources(nil)
	scene := ecs.NewScene("test")
	anim := ecs.AddBehavior(scene.CreateEntity("coin"), sprite.NewAnimation(res.CreateColorTexture("sheet", 64, 32, host.Yellow)))
	anim.FramesFromGrid(16, 16, 6, 0.25)

	require.Len(t, anim.Frames, 6)
	assert.Equal(t, vmath.Rect{X: 48, Y: 0, W: 16, H: 16}, anim.Frames[3].Source)
	assert.Equal(t, vmath.Rect{X: 0, Y: 16, W: 16, H: 16}, anim.Frames[4].Source)

	for range 6 {
		scene.Update(ecs.NewUpdateFrame(scene, 0.25))
	}
	assert.Equal(t, 0, anim.Current(), "looped back to the first frame")

	scene.Update(ecs.NewUpdateFrame(scene, 0.25))
	assert.Equal(t, 1, anim.Current())

	anim.Pause()
	scene.Update(ecs.NewUpdateFrame(scene, 0.25))
	assert.Equal(t, 1, anim.Current())

	anim.Stop()
	assert.Equal(t, 0, anim.Current())
	assert.False(t, anim.Playing())
}

func TestNonLoopingAnimationHoldsLastFrame(t *testing.T) {
	scene := ecs.NewScene("test")
	anim := ecs.AddBehavior(scene.CreateEntity("burst"), sprite.NewAnimation(nil))
	anim.Loop = false
	anim.AddFrame(vmath.Rect{W: 8, H: 8}, 0.1)
	anim.AddFrame(vmath.Rect{X: 8, W: 8, H: 8}, 0.1)

	for range 5 {
		scene.Update(ecs.NewUpdateFrame(scene, 0.1))
	}
	assert.Equal(t, 1, anim.Current())
	assert.False(t, anim.Playing())

	out := headless.NewRenderer()
	scene.Render(&ecs.RenderFrame{Renderer: out})
	assert.Empty(t, out.Ops, "nil sheet draws nothing")
}
