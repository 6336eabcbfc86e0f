package ecs

import "reflect"

// Provide registers v as the scene-wide instance of T, replacing any previous one.
// Services hold state that belongs to no entity, such as the physics world.
func Provide[T any](s *Scene, v T) {
	s.services[reflect.TypeFor[T]()] = v
}

// Service returns the scene-wide instance of T.
func Service[T any](s *Scene) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}
	v, ok := s.services[reflect.TypeFor[T]()]
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// MustService is Service for instances the caller knows were provided.
func MustService[T any](s *Scene) T {
	v, ok := Service[T](s)
	if !ok {
		panic("ecs: no service of type " + reflect.TypeFor[T]().String())
	}
	return v
}
