package script

import (
	"fmt"

	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/physics"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Behavior drives its entity from a Lua module: a global table with optional
// start(self) and update(self, dt) functions. The self table mirrors the transform
// as x, y and rotation, and a rigidbody's velocity as vx and vy; changes are written
// back after each call. Setting self.alive to false destroys the entity.
//
// A script error is logged and disables the behavior.
type Behavior struct {
	ecs.Base
	Engine *Engine
	Module string
	// Params are copied into self before start.
	Params map[string]float64

	self *lua.LTable
}

func New(engine *Engine, module string, params map[string]float64) *Behavior {
	return &Behavior{Engine: engine, Module: module, Params: params}
}

func (b *Behavior) Start(*ecs.UpdateFrame) {
	vm := b.Engine.vm
	b.self = vm.NewTable()
	b.self.RawSetString("alive", lua.LTrue)
	if e := b.Entity(); e != nil {
		b.self.RawSetString("name", lua.LString(e.Name))
		b.self.RawSetString("tag", lua.LString(e.Tag))
	}
	for k, v := range b.Params {
		b.self.RawSetString(k, lua.LNumber(v))
	}
	b.call("start")
}

func (b *Behavior) Update(frame *ecs.UpdateFrame) {
	b.call("update", lua.LNumber(frame.DeltaTime))
}

// Self exposes the instance table, mainly for tests and debugging.
func (b *Behavior) Self() *lua.LTable { return b.self }

func (b *Behavior) call(name string, args ...lua.LValue) {
	e := b.Entity()
	if e == nil || b.self == nil {
		return
	}
	vm := b.Engine.vm
	module, ok := vm.GetGlobal(b.Module).(*lua.LTable)
	if !ok {
		b.fail(fmt.Errorf("module %q is not a table", b.Module))
		return
	}
	fn, ok := module.RawGetString(name).(*lua.LFunction)
	if !ok {
		return
	}

	body, _ := ecs.GetBehavior[*physics.Rigidbody](e)
	b.push(e.Transform(), body)
	err := vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, append([]lua.LValue{b.self}, args...)...)
	if err != nil {
		b.fail(fmt.Errorf("%s.%s: %w", b.Module, name, err))
		return
	}
	b.pull(e, body)
}

func (b *Behavior) push(t *ecs.Transform, body *physics.Rigidbody) {
	b.self.RawSetString("x", lua.LNumber(t.Position.X))
	b.self.RawSetString("y", lua.LNumber(t.Position.Y))
	b.self.RawSetString("rotation", lua.LNumber(t.Rotation))
	if body != nil {
		b.self.RawSetString("vx", lua.LNumber(body.Velocity.X))
		b.self.RawSetString("vy", lua.LNumber(body.Velocity.Y))
	}
}

func (b *Behavior) pull(e *ecs.Entity, body *physics.Rigidbody) {
	t := e.Transform()
	t.Position.X = float64(lua.LVAsNumber(b.self.RawGetString("x")))
	t.Position.Y = float64(lua.LVAsNumber(b.self.RawGetString("y")))
	t.Rotation = float64(lua.LVAsNumber(b.self.RawGetString("rotation")))
	if body != nil {
		body.Velocity.X = float64(lua.LVAsNumber(b.self.RawGetString("vx")))
		body.Velocity.Y = float64(lua.LVAsNumber(b.self.RawGetString("vy")))
	}
	if !lua.LVAsBool(b.self.RawGetString("alive")) {
		e.Destroy()
	}
}

func (b *Behavior) fail(err error) {
	log := b.Engine.log
	if s := b.Scene(); s != nil {
		log = s.Logger()
	}
	log.Error("lua behavior disabled", zap.String("module", b.Module), zap.Error(err))
	b.SetEnabled(false)
}
