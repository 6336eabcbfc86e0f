package ecs

import (
	"iter"
	"reflect"

	"github.com/kamstrup/intmap"
	"github.com/plus3/lumen/vmath"
)

// DefaultTag is the tag of a newly created entity.
const DefaultTag = "Default"

// Entity is a named, tagged container of behaviors. It always carries a Transform as
// its first behavior. Entities are owned by their Scene and created through CreateEntity.
type Entity struct {
	Name   string
	Tag    string
	Active bool

	id        EntityId
	scene     *Scene
	transform *Transform
	slots     []behaviorSlot
	destroyed bool

	// first slot index per behavior type
	firstOfType *intmap.Map[TypeId, int]
}

// behaviorSlot caches the hook interfaces a behavior implements so the frame
// loop never repeats type assertions.
type behaviorSlot struct {
	behavior  Behavior
	base      *Base
	typ       TypeId
	starter   Starter
	updater   Updater
	renderer  Renderable
	destroyer Destroyer
	started   bool
}

func newEntity(s *Scene, name string) *Entity {
	e := &Entity{
		Name:        name,
		Tag:         DefaultTag,
		Active:      true,
		scene:       s,
		firstOfType: intmap.New[TypeId, int](4),
	}
	e.id = s.arena.alloc(e)
	e.transform = AddBehavior(e, &Transform{Scale: vmath.V(1, 1)})
	return e
}

func (e *Entity) Id() EntityId          { return e.id }
func (e *Entity) Scene() *Scene         { return e.scene }
func (e *Entity) Transform() *Transform { return e.transform }

// Destroyed reports whether the entity has been reclaimed by its scene.
func (e *Entity) Destroyed() bool { return e.destroyed }

// Destroy deactivates the entity. It is reclaimed at the start of the next scene update.
func (e *Entity) Destroy() { e.Active = false }

// Len returns the number of attached behaviors, Transform included.
func (e *Entity) Len() int { return len(e.slots) }

// Behaviors yields attached behaviors in attachment order.
func (e *Entity) Behaviors() iter.Seq[Behavior] {
	return func(yield func(Behavior) bool) {
		for i := 0; i < len(e.slots); i++ {
			if !yield(e.slots[i].behavior) {
				return
			}
		}
	}
}

// AddBehavior attaches b to e, binds it to its owner and returns it. Behaviors attached
// after the scene started receive Start lazily, before their first Update.
// It panics if b is already attached or if a second Transform is attached.
func AddBehavior[T Behavior](e *Entity, b T) T {
	e.attach(b)
	return b
}

func (e *Entity) attach(b Behavior) {
	if b == nil {
		panic("ecs: cannot attach a nil behavior")
	}
	base := b.behaviorBase()
	if base.scene != nil {
		panic("ecs: behavior is already attached to an entity")
	}
	if _, ok := b.(*Transform); ok && e.transform != nil {
		panic("ecs: entity already has a Transform")
	}
	if e.destroyed {
		panic("ecs: cannot attach a behavior to a destroyed entity")
	}

	base.owner = e.id
	base.scene = e.scene

	typ := e.scene.registry.idOf(reflect.TypeOf(b))
	slot := behaviorSlot{behavior: b, base: base, typ: typ}
	slot.starter, _ = b.(Starter)
	slot.updater, _ = b.(Updater)
	slot.renderer, _ = b.(Renderable)
	slot.destroyer, _ = b.(Destroyer)

	if _, ok := e.firstOfType.Get(typ); !ok {
		e.firstOfType.Put(typ, len(e.slots))
	}
	e.slots = append(e.slots, slot)
}

// GetBehavior returns the first attached behavior of concrete type T. Disabled
// behaviors are returned too.
func GetBehavior[T Behavior](e *Entity) (T, bool) {
	var zero T
	if e == nil || e.scene == nil {
		return zero, false
	}
	typ, ok := e.scene.registry.lookup(reflect.TypeFor[T]())
	if !ok {
		return zero, false
	}
	idx, ok := e.firstOfType.Get(typ)
	if !ok {
		return zero, false
	}
	return e.slots[idx].behavior.(T), true
}

// GetBehaviors returns every attached behavior of concrete type T in attachment order.
func GetBehaviors[T Behavior](e *Entity) []T {
	if e == nil || e.scene == nil {
		return nil
	}
	typ, ok := e.scene.registry.lookup(reflect.TypeFor[T]())
	if !ok {
		return nil
	}
	var out []T
	for i := range e.slots {
		if e.slots[i].typ == typ {
			out = append(out, e.slots[i].behavior.(T))
		}
	}
	return out
}

// FindBehavior returns the first attached behavior assignable to I, which is usually an
// interface such as Renderable.
func FindBehavior[I any](e *Entity) (I, bool) {
	var zero I
	if e == nil {
		return zero, false
	}
	for i := range e.slots {
		if v, ok := e.slots[i].behavior.(I); ok {
			return v, true
		}
	}
	return zero, false
}

// HasBehavior reports whether any behavior of concrete type T is attached.
func HasBehavior[T Behavior](e *Entity) bool {
	_, ok := GetBehavior[T](e)
	return ok
}

func (e *Entity) start(frame *UpdateFrame) {
	for i := 0; i < len(e.slots); i++ {
		if !e.slots[i].base.Enabled() || e.slots[i].started {
			continue
		}
		e.slots[i].started = true
		if s := e.slots[i].starter; s != nil {
			s.Start(frame)
		}
	}
}

// update runs every enabled behavior. The slice is re-read each iteration because
// hooks may attach behaviors to their own entity; those run in the same pass.
func (e *Entity) update(frame *UpdateFrame) {
	for i := 0; i < len(e.slots) && !e.destroyed; i++ {
		if !e.slots[i].base.Enabled() {
			continue
		}
		if !e.slots[i].started {
			e.slots[i].started = true
			if s := e.slots[i].starter; s != nil {
				s.Start(frame)
			}
		}
		if u := e.slots[i].updater; u != nil {
			u.Update(frame)
		}
	}
}

func (e *Entity) render(frame *RenderFrame) {
	for i := 0; i < len(e.slots) && !e.destroyed; i++ {
		if !e.slots[i].base.Enabled() {
			continue
		}
		if r := e.slots[i].renderer; r != nil {
			r.Render(frame)
		}
	}
}

func (e *Entity) destroy() {
	for i := 0; i < len(e.slots); i++ {
		if d := e.slots[i].destroyer; d != nil {
			d.OnDestroy()
		}
	}
	e.destroyed = true
	e.Active = false
}
