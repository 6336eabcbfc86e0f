package ecs_test

import (
	"testing"

	"github.com/plus3/lumen/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTrackedEntity(scene *ecs.Scene, log *recorder, label string) (*ecs.Entity, *Tracker) {
	e := scene.CreateEntity(label)
	p := ecs.AddBehavior(e, &Tracker{Label: label, Log: log})
	return e, p
}

func TestSceneUpdateOrder(t *testing.T) {
	scene := ecs.NewScene("test", ecs.WithLogger(zaptest.NewLogger(t)))
	log := &recorder{}
	newTrackedEntity(scene, log, "a")
	newTrackedEntity(scene, log, "b")

	scene.Update(ecs.NewUpdateFrame(scene, 0.016))
	scene.Update(ecs.NewUpdateFrame(scene, 0.016))

	assert.Equal(t, []string{
		"start a", "start b",
		"update a", "update b",
		"update a", "update b",
	}, log.calls)
}

func TestSceneStartRunsOnce(t *testing.T) {
	scene := ecs.NewScene("test")
	log := &recorder{}
	newTrackedEntity(scene, log, "a")

	frame := ecs.NewUpdateFrame(scene, 0)
	scene.Start(frame)
	scene.Start(frame)
	scene.Update(frame)

	assert.True(t, scene.Started())
	assert.Equal(t, []string{"start a", "update a"}, log.calls)
}

func TestBehaviorAddedAfterStartIsStartedLazily(t *testing.T) {
	scene := ecs.NewScene("test")
	log := &recorder{}
	e, _ := newTrackedEntity(scene, log, "a")
	scene.Update(ecs.NewUpdateFrame(scene, 0.016))

	ecs.AddBehavior(e, &Tracker{Label: "late", Log: log})
	log.calls = nil
	scene.Update(ecs.NewUpdateFrame(scene, 0.016))

	assert.Equal(t, []string{"update a", "start late", "update late"}, log.calls)
}

func TestDisabledBehaviorSkipsHooks(t *testing.T) {
	scene := ecs.NewScene("test")
	log := &recorder{}
	_, p := newTrackedEntity(scene, log, "a")
	p.SetEnabled(false)

	scene.Update(ecs.NewUpdateFrame(scene, 0.016))
	scene.Render(&ecs.RenderFrame{})
	assert.Empty(t, log.calls)

	// Enabling later delivers the skipped Start first.
	p.SetEnabled(true)
	scene.Update(ecs.NewUpdateFrame(scene, 0.016))
	scene.Render(&ecs.RenderFrame{})
	assert.Equal(t, []string{"start a", "update a", "render a"}, log.calls)
}

func TestDeactivatedEntityIsPrunedNextFrame(t *testing.T) {
	scene := ecs.NewScene("test")
	log := &recorder{}
	victim, _ := newTrackedEntity(scene, log, "victim")
	_, killer := newTrackedEntity(scene, log, "killer")
	killer.onUpdate = func(*ecs.UpdateFrame) { victim.Active = false }

	scene.Update(ecs.NewUpdateFrame(scene, 0.016))

	// Still present after the frame it was deactivated in.
	assert.Equal(t, 2, scene.Len())
	_, ok := scene.Entity(victim.Id())
	assert.True(t, ok)
	assert.False(t, victim.Destroyed())

	scene.Update(ecs.NewUpdateFrame(scene, 0.016))
	assert.Equal(t, 1, scene.Len())
	_, ok = scene.Entity(victim.Id())
	assert.False(t, ok)
	assert.True(t, victim.Destroyed())
	assert.Contains(t, log.calls, "destroy victim")
}

func TestEntityDeactivatedBeforeItsTurnIsSkipped(t *testing.T) {
	scene := ecs.NewScene("test")
	log := &recorder{}
	_, killer := newTrackedEntity(scene, log, "killer")
	victim, _ := newTrackedEntity(scene, log, "victim")
	scene.Update(ecs.NewUpdateFrame(scene, 0.016))

	killer.onUpdate = func(*ecs.UpdateFrame) { victim.Destroy() }
	log.calls = nil
	scene.Update(ecs.NewUpdateFrame(scene, 0.016))

	assert.Equal(t, []string{"update killer"}, log.calls)
	assert.Equal(t, 2, scene.Len())
}

func TestSelfDeactivationFinishesEntityPass(t *testing.T) {
	scene := ecs.NewScene("test")
	log := &recorder{}
	e, first := newTrackedEntity(scene, log, "first")
	ecs.AddBehavior(e, &Tracker{Label: "second", Log: log})
	first.onUpdate = func(*ecs.UpdateFrame) { e.Destroy() }
	scene.Start(ecs.NewUpdateFrame(scene, 0))
	log.calls = nil

	scene.Update(ecs.NewUpdateFrame(scene, 0.016))
	assert.Equal(t, []string{"update first", "update second"}, log.calls)
}

func TestEntityCreatedMidPassWaitsForNextFrame(t *testing.T) {
	scene := ecs.NewScene("test")
	log := &recorder{}
	_, spawner := newTrackedEntity(scene, log, "spawner")
	spawned := false
	spawner.onUpdate = func(frame *ecs.UpdateFrame) {
		if spawned {
			return
		}
		spawned = true
		newTrackedEntity(frame.Scene, log, "child")
	}

	scene.Update(ecs.NewUpdateFrame(scene, 0.016))
	assert.Equal(t, []string{"start spawner", "update spawner"}, log.calls)
	assert.Equal(t, 2, scene.Len())

	log.calls = nil
	scene.Update(ecs.NewUpdateFrame(scene, 0.016))
	assert.Equal(t, []string{"update spawner", "start child", "update child"}, log.calls)
}

func TestRenderSkipsInactiveEntities(t *testing.T) {
	scene := ecs.NewScene("test")
	log := &recorder{}
	newTrackedEntity(scene, log, "a")
	b, _ := newTrackedEntity(scene, log, "b")
	b.Active = false

	scene.Render(&ecs.RenderFrame{})
	assert.Equal(t, []string{"render a"}, log.calls)
}

func TestFindEntities(t *testing.T) {
	scene := ecs.NewScene("test")
	a := scene.CreateEntity("a")
	a.Tag = "enemy"
	b := scene.CreateEntity("b")
	b.Tag = "enemy"
	player := scene.CreateEntity("player")
	player.Tag = "player"
	ecs.AddBehavior(player, &Health{Current: 3})

	assert.Equal(t, []*ecs.Entity{a, b}, scene.FindByTag("enemy"))
	assert.Empty(t, scene.FindByTag("missing"))

	got, ok := scene.FindByName("player")
	require.True(t, ok)
	assert.Same(t, player, got)
	_, ok = scene.FindByName("missing")
	assert.False(t, ok)

	assert.Equal(t, []*ecs.Entity{player}, ecs.FindWithBehavior[*Health](scene))
}

func TestVelocityMovesTransform(t *testing.T) {
	scene := ecs.NewScene("test")
	e := scene.CreateEntity("mover")
	ecs.AddBehavior(e, &Velocity{DX: 10, DY: -20})

	for range 10 {
		scene.Update(ecs.NewUpdateFrame(scene, 0.1))
	}
	assert.InDelta(t, 10.0, e.Transform().Position.X, 1e-9)
	assert.InDelta(t, -20.0, e.Transform().Position.Y, 1e-9)
}

func TestSceneClose(t *testing.T) {
	scene := ecs.NewScene("test")
	log := &recorder{}
	a, _ := newTrackedEntity(scene, log, "a")
	b, _ := newTrackedEntity(scene, log, "b")
	b.Active = false

	scene.Close()
	assert.Equal(t, []string{"destroy a", "destroy b"}, log.calls)
	assert.Equal(t, 0, scene.Len())
	assert.True(t, a.Destroyed())

	log.calls = nil
	scene.Update(ecs.NewUpdateFrame(scene, 0.016))
	assert.Empty(t, log.calls)
}

func TestCloseDuringUpdate(t *testing.T) {
	scene := ecs.NewScene("test")
	log := &recorder{}
	a, first := newTrackedEntity(scene, log, "a")
	ecs.AddBehavior(a, &Tracker{Label: "a2", Log: log})
	newTrackedEntity(scene, log, "b")
	deferred := false
	first.onUpdate = func(frame *ecs.UpdateFrame) {
		frame.Scene.Commands().Defer(func() { deferred = true })
		frame.Scene.Close()
	}
	scene.Start(ecs.NewUpdateFrame(scene, 0))
	log.calls = nil

	require.NotPanics(t, func() { scene.Update(ecs.NewUpdateFrame(scene, 0.016)) })
	assert.Equal(t, []string{"update a", "destroy a", "destroy a2", "destroy b"}, log.calls)
	assert.False(t, deferred)
	assert.Equal(t, 0, scene.Commands().Len())
	assert.Equal(t, 0, scene.Len())
}

func TestCloseDuringRender(t *testing.T) {
	scene := ecs.NewScene("test")
	log := &recorder{}
	_, a := newTrackedEntity(scene, log, "a")
	newTrackedEntity(scene, log, "b")
	a.onRender = func(frame *ecs.RenderFrame) { frame.Scene.Close() }

	require.NotPanics(t, func() { scene.Render(&ecs.RenderFrame{}) })
	assert.Equal(t, []string{"render a", "destroy a", "destroy b"}, log.calls)
}

func TestCollectStats(t *testing.T) {
	scene := ecs.NewScene("test")
	for range 3 {
		ecs.AddBehavior(scene.CreateEntity("e"), &Health{})
	}
	scene.CreateEntity("idle").Active = false

	stats := scene.CollectStats()
	assert.Equal(t, 4, stats.LiveEntities)
	assert.Equal(t, 3, stats.ActiveEntities)
	assert.Equal(t, 7, stats.BehaviorCount)
	require.Len(t, stats.Behaviors, 2)
	assert.Equal(t, ecs.BehaviorStats{Name: "ecs.Transform", Count: 4}, stats.Behaviors[0])
	assert.Equal(t, ecs.BehaviorStats{Name: "ecs_test.Health", Count: 3}, stats.Behaviors[1])
}
