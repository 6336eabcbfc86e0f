package ecs

import (
	"iter"
	"reflect"

	"go.uber.org/zap"
)

// Scene owns an ordered set of entities and drives their lifecycle.
type Scene struct {
	Name string

	registry *BehaviorRegistry
	arena    arena
	live     []EntityId
	commands *Commands
	services map[reflect.Type]any
	log      *zap.Logger
	started  bool
	closed   bool
}

// SceneOption configures a Scene at construction.
type SceneOption func(*Scene)

// WithLogger routes scene lifecycle logging to l.
func WithLogger(l *zap.Logger) SceneOption {
	return func(s *Scene) { s.log = l }
}

// WithRegistry shares a behavior registry between scenes, keeping TypeIds stable
// across scene loads.
func WithRegistry(r *BehaviorRegistry) SceneOption {
	return func(s *Scene) { s.registry = r }
}

func NewScene(name string, opts ...SceneOption) *Scene {
	s := &Scene{
		Name:     name,
		commands: &Commands{},
		services: make(map[reflect.Type]any),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = NewBehaviorRegistry()
	}
	s.log = s.log.With(zap.String("scene", name))
	return s
}

// CreateEntity appends a new active entity carrying a default Transform.
// Entities created mid-update are first updated on the next frame.
func (s *Scene) CreateEntity(name string) *Entity {
	e := newEntity(s, name)
	s.live = append(s.live, e.id)
	return e
}

// Entity resolves id. Ids of reclaimed entities do not resolve.
func (s *Scene) Entity(id EntityId) (*Entity, bool) {
	e := s.arena.get(id)
	return e, e != nil
}

// Len returns the number of live entities, including ones deactivated but not yet reclaimed.
func (s *Scene) Len() int {
	return len(s.live)
}

// Entities yields live entities in creation order.
func (s *Scene) Entities() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for i := 0; i < len(s.live); i++ {
			if e := s.arena.get(s.live[i]); e != nil {
				if !yield(e) {
					return
				}
			}
		}
	}
}

func (s *Scene) Registry() *BehaviorRegistry { return s.registry }
func (s *Scene) Commands() *Commands         { return s.commands }
func (s *Scene) Logger() *zap.Logger         { return s.log }
func (s *Scene) Started() bool               { return s.started }

// Start delivers Start to every enabled behavior. It runs once per scene;
// later calls are no-ops.
func (s *Scene) Start(frame *UpdateFrame) {
	if s.started {
		return
	}
	s.started = true
	frame.Scene = s

	n := len(s.live)
	for i := 0; i < n && !s.closed; i++ {
		if e := s.arena.get(s.live[i]); e != nil {
			e.start(frame)
		}
	}
	s.log.Debug("scene started", zap.Int("entities", n))
}

// Update reclaims entities deactivated since the last frame, then updates every
// active entity in creation order. The entity count is fixed when the pass begins,
// so entities created during the pass wait for the next frame. Deactivated entities
// stay in place until the next Update, which keeps indices stable mid-pass.
func (s *Scene) Update(frame *UpdateFrame) {
	if s.closed {
		return
	}
	frame.Scene = s
	s.prune()
	if !s.started {
		s.Start(frame)
	}

	n := len(s.live)
	for i := 0; i < n && !s.closed; i++ {
		e := s.arena.get(s.live[i])
		if e == nil || !e.Active {
			continue
		}
		e.update(frame)
	}

	if !s.closed {
		s.commands.flush(s)
	}
}

// Render draws every active entity's enabled Renderable behaviors in creation order.
func (s *Scene) Render(frame *RenderFrame) {
	if s.closed {
		return
	}
	frame.Scene = s

	n := len(s.live)
	for i := 0; i < n && !s.closed; i++ {
		e := s.arena.get(s.live[i])
		if e == nil || !e.Active {
			continue
		}
		e.render(frame)
	}
}

func (s *Scene) prune() {
	kept := s.live[:0]
	pruned := 0
	for _, id := range s.live {
		e := s.arena.get(id)
		if e == nil {
			continue
		}
		if e.Active {
			kept = append(kept, id)
			continue
		}
		e.destroy()
		s.arena.free(id)
		pruned++
	}
	clear(s.live[len(kept):])
	s.live = kept

	if pruned > 0 {
		s.log.Debug("entities reclaimed", zap.Int("count", pruned), zap.Int("live", len(s.live)))
	}
}

// FindByTag returns live entities with the given tag in creation order.
func (s *Scene) FindByTag(tag string) []*Entity {
	var out []*Entity
	for e := range s.Entities() {
		if e.Tag == tag {
			out = append(out, e)
		}
	}
	return out
}

// FindByName returns the first live entity with the given name.
func (s *Scene) FindByName(name string) (*Entity, bool) {
	for e := range s.Entities() {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// FindWithBehavior returns live entities carrying a behavior of concrete type T.
func FindWithBehavior[T Behavior](s *Scene) []*Entity {
	var out []*Entity
	for e := range s.Entities() {
		if HasBehavior[T](e) {
			out = append(out, e)
		}
	}
	return out
}

// Close destroys every entity, delivering OnDestroy, and stops further updates.
// Called from a hook, it ends the current pass after that hook returns and
// drops any queued commands.
func (s *Scene) Close() {
	if s.closed {
		return
	}
	for _, id := range s.live {
		if e := s.arena.get(id); e != nil {
			e.destroy()
			s.arena.free(id)
		}
	}
	s.log.Debug("scene closed", zap.Int("entities", len(s.live)))
	s.live = nil
	s.closed = true
	*s.commands = Commands{}
}
