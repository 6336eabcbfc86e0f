package ecs

// Behavior is a unit attached to exactly one Entity. Concrete behaviors embed Base,
// which binds them to their owner, and implement whichever lifecycle hooks they need.
type Behavior interface {
	behaviorBase() *Base
}

// Starter runs once, before the behavior's first Update.
type Starter interface {
	Start(frame *UpdateFrame)
}

// Updater runs every frame while the behavior is enabled and its entity active.
type Updater interface {
	Update(frame *UpdateFrame)
}

// Renderable draws during the render pass while the behavior is enabled.
type Renderable interface {
	Render(frame *RenderFrame)
}

// Destroyer runs when the owning entity is reclaimed or the scene closes.
type Destroyer interface {
	OnDestroy()
}

// Base holds the owner handle and enabled flag shared by every behavior.
// It stores the owner's EntityId rather than a pointer, so a behavior that
// outlives its entity resolves to nil instead of dangling.
type Base struct {
	owner    EntityId
	scene    *Scene
	disabled bool
}

func (b *Base) behaviorBase() *Base { return b }

// Owner returns the id of the entity the behavior is attached to.
func (b *Base) Owner() EntityId { return b.owner }

// Scene returns the scene of the owning entity, or nil before attachment.
func (b *Base) Scene() *Scene { return b.scene }

// Entity resolves the owning entity. It returns nil when the behavior is
// unattached or the entity has been reclaimed.
func (b *Base) Entity() *Entity {
	if b.scene == nil {
		return nil
	}
	e, _ := b.scene.Entity(b.owner)
	return e
}

// Transform returns the owning entity's transform, or nil when the entity is gone.
func (b *Base) Transform() *Transform {
	if e := b.Entity(); e != nil {
		return e.transform
	}
	return nil
}

// Enabled reports whether Update and Render are delivered to the behavior.
func (b *Base) Enabled() bool { return !b.disabled }

// SetEnabled toggles Update and Render delivery. A disabled behavior stays attached
// and is still returned by lookups.
func (b *Base) SetEnabled(enabled bool) { b.disabled = !enabled }
