package ecs

import "github.com/plus3/lumen/host"

// UpdateFrame carries per-frame state into Start and Update hooks.
type UpdateFrame struct {
	DeltaTime float64
	Elapsed   float64
	Frame     uint64
	Input     host.Input
	Scene     *Scene
}

// NewUpdateFrame creates a frame for scene with no input attached.
func NewUpdateFrame(scene *Scene, dt float64) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Input:     host.NoInput{},
		Scene:     scene,
	}
}

// Commands returns the scene's deferred command buffer, flushed at the end of Update.
func (f *UpdateFrame) Commands() *Commands {
	return f.Scene.commands
}

// RenderFrame carries the host drawing surfaces into Render hooks.
type RenderFrame struct {
	Renderer  host.Renderer
	Resources host.Resources
	Scene     *Scene
}
