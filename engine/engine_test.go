package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/plus3/lumen/camera"
	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/engine"
	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/host/headless"
	"github.com/plus3/lumen/physics"
	"github.com/plus3/lumen/vmath"
)

// dot draws a filled circle at its entity's position.
type dot struct {
	ecs.Base
}

func (d *dot) Render(frame *ecs.RenderFrame) {
	frame.Renderer.FillCircle(d.Transform().Position, 4, host.White)
}

// frameLog records the frame numbers it is updated on.
type frameLog struct {
	ecs.Base
	started bool
	frames  []uint64
	elapsed float64
}

func (f *frameLog) Start(*ecs.UpdateFrame) { f.started = true }

func (f *frameLog) Update(frame *ecs.UpdateFrame) {
	f.frames = append(f.frames, frame.Frame)
	f.elapsed = frame.Elapsed
}

type destroyed struct {
	ecs.Base
	called *bool
}

func (d *destroyed) OnDestroy() { *d.called = true }

func ball(w *physics.World, scene *ecs.Scene, pos, vel vmath.Vec2) *physics.Rigidbody {
	e := scene.CreateEntity("ball")
	e.Transform().Position = pos
	body := physics.AddRigidbody(e)
	body.Velocity = vel
	w.AddCircleCollider(e, 16)
	return body
}

func TestStepRunsLifecycleInOrder(t *testing.T) {
	scene := ecs.NewScene("main")
	eng := engine.New(scene, engine.WithLogger(zaptest.NewLogger(t)))
	log := ecs.AddBehavior(scene.CreateEntity("log"), &frameLog{})

	for range 3 {
		require.NoError(t, eng.Step(0.5))
	}

	assert.True(t, log.started)
	assert.Equal(t, []uint64{1, 2, 3}, log.frames)
	assert.InDelta(t, 1.5, log.elapsed, 1e-9)
	assert.Equal(t, 3, eng.Clock().Frames())
	assert.InDelta(t, 0.5, eng.Clock().DeltaTime(), 1e-9)
}

func TestStepResolvesCollisionsAfterUpdate(t *testing.T) {
	scene := ecs.NewScene("main")
	eng := engine.New(scene)
	w, ok := physics.WorldOf(scene)
	require.True(t, ok, "engine provides its world to the scene")
	assert.Same(t, eng.World(), w)

	a := ball(w, scene, vmath.V(0, 0), vmath.V(50, 0))
	b := ball(w, scene, vmath.V(10, 0), vmath.V(-50, 0))

	require.NoError(t, eng.Step(0.01))
	assert.Less(t, a.Velocity.X, 0.0)
	assert.Greater(t, b.Velocity.X, 0.0)
	assert.InDelta(t, -a.Velocity.X, b.Velocity.X, 1e-9)
	assert.Equal(t, 1, w.Stats().Resolved)
}

func TestStepReportsInvalidMass(t *testing.T) {
	scene := ecs.NewScene("main")
	eng := engine.New(scene)
	a := ball(eng.World(), scene, vmath.V(0, 0), vmath.V(50, 0))
	ball(eng.World(), scene, vmath.V(10, 0), vmath.V(-50, 0))
	a.Mass = 0

	err := eng.Step(0.01)
	require.Error(t, err)
	assert.ErrorIs(t, err, physics.ErrInvalidMass)
	assert.Equal(t, 1, eng.Clock().Frames(), "the frame still completes")
}

func TestDrawUsesMainCamera(t *testing.T) {
	scene := ecs.NewScene("main")
	eng := engine.New(scene)
	ecs.AddBehavior(scene.CreateEntity("dot"), &dot{})
	r := headless.NewRenderer()
	res := headless.NewResources(nil)

	require.NoError(t, eng.Step(0.016))
	eng.Draw(r, res)
	require.Len(t, r.Ops, 1)
	assert.Equal(t, vmath.V(0, 0), r.Ops[0].Center)

	camera.AddMain(scene.CreateEntity("camera"), vmath.V(400, 300))
	r.Reset()
	eng.Draw(r, res)
	require.Len(t, r.Ops, 1)
	assert.Equal(t, vmath.V(400, 300), r.Ops[0].Center)
}

func TestDrawSkipsDisabledCamera(t *testing.T) {
	scene := ecs.NewScene("main")
	eng := engine.New(scene)
	ecs.AddBehavior(scene.CreateEntity("dot"), &dot{})
	cam := camera.AddMain(scene.CreateEntity("camera"), vmath.V(400, 300))
	cam.SetEnabled(false)

	r := headless.NewRenderer()
	eng.Draw(r, headless.NewResources(nil))
	require.Len(t, r.Ops, 1)
	assert.Equal(t, vmath.V(0, 0), r.Ops[0].Center)
}

func TestDebugDrawAndOverlay(t *testing.T) {
	scene := ecs.NewScene("main")
	eng := engine.New(scene, engine.WithDebugDraw(true), engine.WithStatsOverlay(true))
	ball(eng.World(), scene, vmath.V(0, 0), vmath.Vec2{})
	ball(eng.World(), scene, vmath.V(100, 0), vmath.Vec2{})
	assert.True(t, eng.DebugDraw())

	r := headless.NewRenderer()
	eng.Draw(r, headless.NewResources(nil))
	assert.Equal(t, 2, r.Count(headless.OpStrokeCircle))
	assert.Equal(t, 1, r.Count(headless.OpText))

	eng.SetDebugDraw(false)
	r.Reset()
	eng.Draw(r, headless.NewResources(nil))
	assert.Equal(t, 0, r.Count(headless.OpStrokeCircle))
}

func TestLoadScene(t *testing.T) {
	first := ecs.NewScene("first")
	eng := engine.New(first)
	var closed bool
	old := first.CreateEntity("old")
	ecs.AddBehavior(old, &destroyed{called: &closed})
	ball(eng.World(), first, vmath.V(0, 0), vmath.Vec2{})
	require.NoError(t, eng.Step(0.1))

	second := ecs.NewScene("second")
	ball(eng.World(), second, vmath.V(0, 0), vmath.Vec2{})
	eng.LoadScene(second)

	assert.True(t, closed)
	assert.Same(t, second, eng.Scene())
	assert.Equal(t, 1, eng.World().Len(), "colliders of the next scene survive")
	assert.Equal(t, 0, eng.Clock().Frames())
	w, ok := physics.WorldOf(second)
	require.True(t, ok)
	assert.Same(t, eng.World(), w)
}

func TestGetStats(t *testing.T) {
	scene := ecs.NewScene("main")
	eng := engine.New(scene)
	ball(eng.World(), scene, vmath.V(0, 0), vmath.Vec2{})
	r := headless.NewRenderer()
	for range 4 {
		require.NoError(t, eng.Step(0.25))
		eng.Draw(r, nil)
	}

	stats := eng.GetStats()
	assert.Equal(t, 4, stats.Frames)
	assert.InDelta(t, 1.0, stats.Elapsed, 1e-9)
	require.Len(t, stats.Phases, 3)
	for _, p := range stats.Phases {
		assert.Equal(t, int64(4), p.ExecutionCount, p.Name)
		assert.LessOrEqual(t, p.MinDuration, p.MaxDuration)
	}
	assert.Equal(t, "physics", stats.Phase(engine.PhasePhysics).Name)
	assert.Equal(t, 1, stats.Scene.LiveEntities)
	assert.Equal(t, 1, stats.Physics.Colliders)
	assert.Equal(t, engine.PhaseStats{}, stats.Phase(engine.Phase(9)))
}

func TestRunStopsOnCancel(t *testing.T) {
	scene := ecs.NewScene("main")
	eng := engine.New(scene)
	log := ecs.AddBehavior(scene.CreateEntity("log"), &frameLog{})

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	eng.Run(ctx, 5*time.Millisecond)

	assert.NotEmpty(t, log.frames)
	assert.Equal(t, len(log.frames), eng.Clock().Frames())
}

func TestClose(t *testing.T) {
	scene := ecs.NewScene("main")
	eng := engine.New(scene)
	ball(eng.World(), scene, vmath.V(0, 0), vmath.Vec2{})
	eng.Close()

	assert.Equal(t, 0, eng.World().Len())
	require.NoError(t, eng.Step(0.1))
	assert.Equal(t, 0, eng.Clock().Frames())
	eng.Close()
}
