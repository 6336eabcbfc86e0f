package launch_test

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/plus3/lumen/config"
	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/engine"
	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/host/headless"
	"github.com/plus3/lumen/launch"
	"github.com/plus3/lumen/physics"
	"github.com/plus3/lumen/vmath"
)

func newEngine(t *testing.T) *engine.Engine {
	scene := ecs.NewScene("launch")
	e := scene.CreateEntity("ball")
	body := physics.AddRigidbody(e)
	body.Drag = 1
	body.Velocity = vmath.V(60, 0)
	return engine.New(scene, engine.WithLogger(zaptest.NewLogger(t)))
}

func TestHeadlessFrames(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Backend = "headless"
	eng := newEngine(t)

	var textures int
	err := launch.Run(context.Background(), cfg, eng, launch.Options{
		Frames: 30,
		Setup: func(res host.Resources) {
			res.CreateCircleTexture("ball", 8, host.White)
			textures++
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, textures)
	assert.Equal(t, 30, eng.GetStats().Frames)

	ball, ok := eng.Scene().FindByName("ball")
	require.True(t, ok)
	assert.InDelta(t, 30.0, ball.Transform().Position.X, 1e-6)
}

type jumper struct {
	ecs.Base
	jumps int
}

func (j *jumper) Update(frame *ecs.UpdateFrame) {
	if frame.Input.KeyPressed(host.KeySpace) {
		j.jumps++
	}
}

func TestHeadlessInstallsScriptedInput(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Backend = "headless"
	eng := newEngine(t)

	require.NoError(t, launch.Run(context.Background(), cfg, eng, launch.Options{Frames: 1}))
	assert.IsType(t, &headless.Input{}, eng.Input())
}

func TestHeadlessAdvancesInputEdges(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Backend = "headless"
	eng := newEngine(t)
	j := ecs.AddBehavior(eng.Scene().CreateEntity("jumper"), &jumper{})

	in := headless.NewInput()
	in.SetKey(host.KeySpace, true)
	eng.SetInput(in)

	require.NoError(t, launch.Run(context.Background(), cfg, eng, launch.Options{Frames: 5}))
	assert.Same(t, in, eng.Input())
	assert.Equal(t, 1, j.jumps)
}

func TestHeadlessUntilCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Backend = "headless"
	cfg.Window.TargetFPS = 200
	eng := newEngine(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, launch.Run(ctx, cfg, eng, launch.Options{}))
	assert.Positive(t, eng.GetStats().Frames)
}

func TestTerminalBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Backend = "terminal"
	cfg.Window.TargetFPS = 100
	eng := newEngine(t)

	screen := tcell.NewSimulationScreen("UTF-8")
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, launch.Run(ctx, cfg, eng, launch.Options{Screen: screen}))
	assert.Positive(t, eng.GetStats().Frames)
}

func TestUnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Backend = "vulkan"
	err := launch.Run(context.Background(), cfg, newEngine(t), launch.Options{})
	assert.ErrorIs(t, err, launch.ErrUnknownBackend)
}
