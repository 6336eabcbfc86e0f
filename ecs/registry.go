package ecs

import "reflect"

// TypeId is a stable small integer identifying a concrete behavior type within a registry.
type TypeId uint32

// BehaviorRegistry assigns TypeIds to concrete behavior types. Typed lookups resolve
// through these ids instead of testing every attached behavior's dynamic type.
// Each Scene owns a registry unless one is shared through WithRegistry.
type BehaviorRegistry struct {
	ids   map[reflect.Type]TypeId
	types []reflect.Type
}

// NewBehaviorRegistry creates an empty registry.
func NewBehaviorRegistry() *BehaviorRegistry {
	return &BehaviorRegistry{
		ids: make(map[reflect.Type]TypeId),
	}
}

// RegisterBehavior assigns T its TypeId ahead of first use. Registration is optional:
// unknown types are registered the first time they are attached to an entity.
func RegisterBehavior[T Behavior](r *BehaviorRegistry) TypeId {
	return r.idOf(reflect.TypeFor[T]())
}

func (r *BehaviorRegistry) idOf(t reflect.Type) TypeId {
	if id, ok := r.ids[t]; ok {
		return id
	}
	id := TypeId(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	return id
}

func (r *BehaviorRegistry) lookup(t reflect.Type) (TypeId, bool) {
	id, ok := r.ids[t]
	return id, ok
}

// Name returns a readable name for the type behind id.
func (r *BehaviorRegistry) Name(id TypeId) string {
	if int(id) >= len(r.types) {
		return "unknown"
	}
	t := r.types[id]
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.String()
}

// Len returns the number of registered behavior types.
func (r *BehaviorRegistry) Len() int {
	return len(r.types)
}
