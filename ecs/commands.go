package ecs

// Commands buffers operations that must not run while the scene is mid-pass.
// The buffer is flushed once at the end of every Scene.Update.
type Commands struct {
	destroys []EntityId
	defers   []func()
}

// Defer queues fn to run after every entity has updated.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Destroy queues deactivation of an entity. Stale ids are ignored at flush time.
func (c *Commands) Destroy(id EntityId) {
	c.destroys = append(c.destroys, id)
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.destroys) + len(c.defers)
}

// flush applies destroys before deferred functions. Commands queued during the flush
// itself are kept for the next one.
func (c *Commands) flush(s *Scene) {
	destroys, defers := c.destroys, c.defers
	c.destroys, c.defers = nil, nil

	for _, id := range destroys {
		if e := s.arena.get(id); e != nil {
			e.Active = false
		}
	}
	for _, fn := range defers {
		fn()
	}
}
