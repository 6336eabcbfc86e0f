package ecs_test

import (
	"fmt"

	"github.com/plus3/lumen/ecs"
)

// recorder collects hook invocations across behaviors in call order.
type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

type Tracker struct {
	ecs.Base
	Label string
	Log   *recorder

	onUpdate func(frame *ecs.UpdateFrame)
	onRender func(frame *ecs.RenderFrame)
}

func (p *Tracker) Start(*ecs.UpdateFrame) { p.Log.add("start %s", p.Label) }

func (p *Tracker) Update(frame *ecs.UpdateFrame) {
	p.Log.add("update %s", p.Label)
	if p.onUpdate != nil {
		p.onUpdate(frame)
	}
}

func (p *Tracker) Render(frame *ecs.RenderFrame) {
	p.Log.add("render %s", p.Label)
	if p.onRender != nil {
		p.onRender(frame)
	}
}

func (p *Tracker) OnDestroy() { p.Log.add("destroy %s", p.Label) }

// Velocity only updates.
type Velocity struct {
	ecs.Base
	DX, DY float64
}

func (v *Velocity) Update(frame *ecs.UpdateFrame) {
	t := v.Transform()
	t.Position.X += v.DX * frame.DeltaTime
	t.Position.Y += v.DY * frame.DeltaTime
}

// Health has no hooks.
type Health struct {
	ecs.Base
	Current, Max int
}
