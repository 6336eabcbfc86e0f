// Package engine drives a scene through the frame loop: clock tick, Start and
// Update, the physics pass, then Render.
package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/lumen/camera"
	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/physics"
	"github.com/plus3/lumen/vmath"
)

// Engine owns the active scene, the physics world shared across scenes and
// the frame clock. It is not safe for concurrent use.
type Engine struct {
	scene     *ecs.Scene
	world     *physics.World
	clock     *host.FrameClock
	input     host.Input
	phases    [phaseCount]*phaseTimer
	debugDraw bool
	overlay   bool
	closed    bool
	log       *zap.Logger
}

type Option func(*Engine)

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithWorld replaces the default physics world.
func WithWorld(w *physics.World) Option {
	return func(e *Engine) { e.world = w }
}

func WithInput(in host.Input) Option {
	return func(e *Engine) { e.input = in }
}

// WithDebugDraw outlines every collider after the scene renders.
func WithDebugDraw(on bool) Option {
	return func(e *Engine) { e.debugDraw = on }
}

// WithStatsOverlay draws a one-line frame summary in screen space.
func WithStatsOverlay(on bool) Option {
	return func(e *Engine) { e.overlay = on }
}

// New creates an engine running scene. The physics world is provided to the
// scene as a service so behaviors can reach it with physics.WorldOf.
func New(scene *ecs.Scene, opts ...Option) *Engine {
	e := &Engine{
		clock: host.NewFrameClock(),
		input: host.NoInput{},
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.world == nil {
		e.world = physics.NewWorld(physics.WithLogger(e.log))
	}
	for i := range e.phases {
		e.phases[i] = newPhaseTimer()
	}
	e.attach(scene)
	return e
}

func (e *Engine) attach(scene *ecs.Scene) {
	e.scene = scene
	ecs.Provide(scene, e.world)
	e.log.Info("scene loaded", zap.String("scene", scene.Name))
}

func (e *Engine) Scene() *ecs.Scene       { return e.scene }
func (e *Engine) World() *physics.World   { return e.world }
func (e *Engine) Clock() *host.FrameClock { return e.clock }
func (e *Engine) Input() host.Input       { return e.input }
func (e *Engine) SetInput(in host.Input)  { e.input = in }
func (e *Engine) SetDebugDraw(on bool)    { e.debugDraw = on }
func (e *Engine) DebugDraw() bool         { return e.debugDraw }
func (e *Engine) Logger() *zap.Logger     { return e.log }

// Step advances one frame of dt seconds. The clock ticks first, then the scene
// updates (starting it on the first frame), then collisions are checked and
// resolved. A physics error is logged and returned; the frame still completes.
func (e *Engine) Step(dt float64) error {
	if e.closed {
		return nil
	}
	e.clock.Tick(dt)
	frame := &ecs.UpdateFrame{
		DeltaTime: e.clock.DeltaTime(),
		Elapsed:   e.clock.Elapsed(),
		Frame:     uint64(e.clock.Frames()),
		Input:     e.input,
		Scene:     e.scene,
	}

	e.phases[PhaseUpdate].time(func() { e.scene.Update(frame) })

	var err error
	e.phases[PhasePhysics].time(func() { err = e.world.CheckCollisions() })
	if err != nil {
		e.log.Warn("collision pass", zap.Error(err), zap.Int("frame", e.clock.Frames()))
		return fmt.Errorf("frame %d: %w", e.clock.Frames(), err)
	}
	return nil
}

// Draw renders the scene through the main camera's view when the scene has an
// enabled one, otherwise in screen coordinates.
func (e *Engine) Draw(r host.Renderer, res host.Resources) {
	if e.closed {
		return
	}
	e.phases[PhaseRender].time(func() {
		view, ok := e.view()
		if ok {
			r.BeginView(view)
		}
		e.scene.Render(&ecs.RenderFrame{Renderer: r, Resources: res, Scene: e.scene})
		if e.debugDraw {
			e.world.DebugDraw(r)
		}
		if ok {
			r.EndView()
		}
	})
	if e.overlay {
		r.DrawText(e.summary(), vmath.V(8, 8), 16, host.White)
	}
}

func (e *Engine) view() (host.View, bool) {
	cam, ok := camera.Main(e.scene)
	if !ok || !cam.Enabled() {
		return host.View{}, false
	}
	owner := cam.Entity()
	if owner == nil || !owner.Active {
		return host.View{}, false
	}
	return cam.View(), true
}

func (e *Engine) summary() string {
	return fmt.Sprintf("frame %d  entities %d  colliders %d  update %s",
		e.clock.Frames(), e.scene.Len(), e.world.Len(), e.phases[PhaseUpdate].lastDuration)
}

// Run steps the engine at the given interval until ctx is cancelled. It is the
// headless loop; windowed hosts drive Step and Draw from their own callbacks.
func (e *Engine) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			// Step logs collision errors itself and the frame still completes.
			_ = e.Step(dt)
		}
	}
}

// LoadScene closes the current scene, clears every collider that does not
// belong to next from the physics world and resets the clock. next may
// already have registered colliders with World.
func (e *Engine) LoadScene(next *ecs.Scene) {
	prev := e.scene
	prev.Close()
	stale := e.world.Retain(func(c *physics.Collider) bool { return c.Scene() == next })
	e.clock.Reset()
	e.attach(next)
	e.log.Debug("scene closed", zap.String("scene", prev.Name), zap.Int("stale_colliders", stale))
}

// GetStats returns frame timing and a summary of the current scene and world.
func (e *Engine) GetStats() *Stats {
	stats := &Stats{
		Frames:  e.clock.Frames(),
		Elapsed: e.clock.Elapsed(),
		Phases:  make([]PhaseStats, phaseCount),
		Scene:   e.scene.CollectStats(),
		Physics: e.world.Stats(),
	}
	for i, t := range e.phases {
		stats.Phases[i] = t.snapshot(Phase(i).String())
	}
	return stats
}

// Close tears the scene down and empties the world. Further Step and Draw
// calls do nothing.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.scene.Close()
	e.world.Clear()
	e.closed = true
	e.log.Info("engine closed", zap.Int("frames", e.clock.Frames()))
}
