// Package physics provides shape colliders, point-mass rigidbodies and the World that
// tests every collider pair each frame and resolves collisions with impulses.
package physics

import (
	"errors"
	"fmt"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/vmath"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrInvalidMass is returned when a responding body has a non-positive mass.
var ErrInvalidMass = errors.New("physics: mass must be positive")

const DefaultRestitution = 0.8

// Contact is an overlap detected during the last CheckCollisions pass.
type Contact struct {
	A, B     *Collider
	Trigger  bool
	Resolved bool
}

// Stats describes the last CheckCollisions pass.
type Stats struct {
	Colliders   int
	PairsTested int
	Overlaps    int
	Resolved    int
}

// World holds weak references to colliders. It never owns them: a collider leaves
// the world when its entity is reclaimed, when RemoveCollider is called, or on Clear.
//
// Pair testing is brute force over every registered pair.
type World struct {
	colliders   []*Collider
	slots       *intmap.Map[uint32, int]
	nextHandle  uint32
	restitution float64
	onContact   func(Contact)
	contacts    []Contact
	stats       Stats
	iterating   bool
	holes       bool
	log         *zap.Logger
}

type Option func(*World)

// WithRestitution sets the bounciness used for every collision response.
func WithRestitution(e float64) Option {
	return func(w *World) { w.restitution = e }
}

func WithLogger(l *zap.Logger) Option {
	return func(w *World) { w.log = l }
}

// WithContactHandler calls fn synchronously for every overlap found by CheckCollisions.
// fn may add or remove colliders; removed ones are skipped for the rest of the pass and
// added ones are first tested on the next pass.
func WithContactHandler(fn func(Contact)) Option {
	return func(w *World) { w.onContact = fn }
}

func NewWorld(opts ...Option) *World {
	w := &World{
		slots:       intmap.New[uint32, int](64),
		restitution: DefaultRestitution,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WorldOf returns the World provided to scene, if any.
func WorldOf(scene *ecs.Scene) (*World, bool) {
	return ecs.Service[*World](scene)
}

func (w *World) Restitution() float64 { return w.restitution }

func (w *World) SetRestitution(e float64) { w.restitution = e }

// AddBoxCollider attaches and registers a box collider of the given size.
func (w *World) AddBoxCollider(e *ecs.Entity, size vmath.Vec2) *Collider {
	return w.AddCollider(e, &Collider{Kind: Box, Size: size})
}

// AddCircleCollider attaches and registers a circle collider of the given radius.
func (w *World) AddCircleCollider(e *ecs.Entity, radius float64) *Collider {
	return w.AddCollider(e, &Collider{Kind: Circle, Radius: radius})
}

// AddCollider attaches c to e and registers it.
func (w *World) AddCollider(e *ecs.Entity, c *Collider) *Collider {
	ecs.AddBehavior(e, c)
	w.Register(c)
	return c
}

// Register adds an attached collider to the pair pass. A collider registered with
// another world is moved.
func (w *World) Register(c *Collider) {
	if c.world == w {
		return
	}
	if c.world != nil {
		c.world.RemoveCollider(c)
	}
	w.nextHandle++
	c.handle = w.nextHandle
	c.world = w
	c.seen = true
	w.slots.Put(c.handle, len(w.colliders))
	w.colliders = append(w.colliders, c)
}

// RemoveCollider deregisters c. It reports false if c was not registered here.
func (w *World) RemoveCollider(c *Collider) bool {
	if c == nil || c.world != w {
		return false
	}
	slot, ok := w.slots.Get(c.handle)
	if !ok {
		return false
	}
	w.slots.Del(c.handle)
	w.colliders[slot] = nil
	c.world = nil
	c.handle = 0

	if w.iterating {
		w.holes = true
		return true
	}
	w.compact()
	return true
}

func (w *World) compact() {
	w.colliders = slices.DeleteFunc(w.colliders, func(c *Collider) bool { return c == nil })
	for i, c := range w.colliders {
		w.slots.Put(c.handle, i)
	}
	w.holes = false
}

// Clear deregisters every collider. During a CheckCollisions pass the slots are
// only emptied; the pass compacts them when it ends.
func (w *World) Clear() {
	for _, c := range w.colliders {
		if c != nil {
			c.world = nil
			c.handle = 0
		}
	}
	clear(w.colliders)
	w.slots.Clear()
	if w.iterating {
		w.holes = true
		return
	}
	w.colliders = w.colliders[:0]
	w.contacts = w.contacts[:0]
	w.holes = false
}

// Retain deregisters every collider for which keep returns false and reports
// how many were removed.
func (w *World) Retain(keep func(*Collider) bool) int {
	removed := 0
	wasIterating := w.iterating
	w.iterating = true
	for _, c := range w.colliders {
		if c != nil && !keep(c) && w.RemoveCollider(c) {
			removed++
		}
	}
	w.iterating = wasIterating
	if !w.iterating && w.holes {
		w.compact()
	}
	return removed
}

// Len returns the number of registered colliders.
func (w *World) Len() int {
	return w.slots.Len()
}

// Colliders returns the registered colliders in registration order.
func (w *World) Colliders() []*Collider {
	out := make([]*Collider, 0, w.slots.Len())
	for _, c := range w.colliders {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Collides tests the pair's shapes, ignoring enabled state and registration.
func (w *World) Collides(a, b *Collider) bool {
	return overlaps(a, b)
}

// Overlapping returns the enabled registered colliders currently overlapping c.
// A disabled c overlaps nothing.
func (w *World) Overlapping(c *Collider) []*Collider {
	if !c.Enabled() {
		return nil
	}
	var out []*Collider
	for _, other := range w.colliders {
		if other == nil || other == c || !other.Enabled() {
			continue
		}
		if overlaps(c, other) {
			out = append(out, other)
		}
	}
	return out
}

// Contacts returns the overlaps recorded by the last CheckCollisions pass. The slice
// is reused by the next pass.
func (w *World) Contacts() []Contact { return w.contacts }

func (w *World) Stats() Stats { return w.stats }

// CheckCollisions tests every unordered pair of enabled colliders and applies an impulse
// to each overlapping, approaching pair of non-kinematic bodies. Triggers are recorded as
// contacts without response. Pairs whose bodies have invalid mass are skipped and
// reported together in the returned error.
func (w *World) CheckCollisions() error {
	w.contacts = w.contacts[:0]
	w.iterating = true
	defer func() {
		w.iterating = false
		if w.holes {
			w.compact()
		}
	}()

	var errs error
	n := len(w.colliders)
	stats := Stats{Colliders: w.slots.Len()}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a := w.colliders[i]
			if a == nil || !a.Enabled() {
				break
			}
			b := w.colliders[j]
			if b == nil || !b.Enabled() {
				continue
			}

			stats.PairsTested++
			if !overlaps(a, b) {
				continue
			}
			stats.Overlaps++

			contact := Contact{A: a, B: b, Trigger: a.IsTrigger || b.IsTrigger}
			if !contact.Trigger {
				resolved, err := w.resolve(a, b)
				if err != nil {
					errs = multierr.Append(errs, err)
				}
				contact.Resolved = resolved
				if resolved {
					stats.Resolved++
				}
			}
			w.contacts = append(w.contacts, contact)

			if w.onContact != nil {
				w.onContact(contact)
			}
		}
	}

	w.stats = stats
	if errs != nil {
		w.log.Warn("collision pass skipped pairs", zap.Error(errs))
	}
	return errs
}

// resolve applies equal and opposite impulses along the line between the two shapes.
func (w *World) resolve(a, b *Collider) (bool, error) {
	ra, okA := ecs.GetBehavior[*Rigidbody](a.Entity())
	rb, okB := ecs.GetBehavior[*Rigidbody](b.Entity())
	if !okA || !okB || ra.IsKinematic || rb.IsKinematic {
		return false, nil
	}
	if ra.Mass <= 0 || rb.Mass <= 0 {
		return false, fmt.Errorf("resolve %s/%s: %w", a.Entity().Name, b.Entity().Name, ErrInvalidMass)
	}

	normal := b.WorldPosition().Sub(a.WorldPosition()).Normalize()
	relative := rb.Velocity.Sub(ra.Velocity)
	along := relative.Dot(normal)
	if along > 0 {
		return false, nil
	}

	j := -(1 + w.restitution) * along / (1/ra.Mass + 1/rb.Mass)
	impulse := normal.Scale(j)
	ra.Velocity = ra.Velocity.Sub(impulse.Scale(1 / ra.Mass))
	rb.Velocity = rb.Velocity.Add(impulse.Scale(1 / rb.Mass))
	return true, nil
}

// DebugDraw outlines every registered collider, green for solids and yellow for triggers.
func (w *World) DebugDraw(r host.Renderer) {
	for _, c := range w.colliders {
		if c == nil || !c.Enabled() {
			continue
		}
		col := host.Green
		if c.IsTrigger {
			col = host.Yellow
		}
		switch c.Kind {
		case Box:
			r.StrokeRect(c.Bounds(), 2, col)
		case Circle:
			r.StrokeCircle(c.WorldPosition(), c.Radius, col)
		}
	}
}
