package particles

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/plus3/lumen/ecs"
)

var ErrUnknownPreset = errors.New("particles: unknown preset")

// Presets is a named table of emitter configs, usually loaded from YAML and provided
// to a scene as a service.
type Presets map[string]Config

// Get returns a copy of the named config.
func (p Presets) Get(name string) (Config, error) {
	cfg, ok := p[name]
	if !ok {
		return Config{}, fmt.Errorf("preset %q: %w", name, ErrUnknownPreset)
	}
	return cfg, nil
}

// Attach creates an emitter from the named preset on e.
func (p Presets) Attach(e *ecs.Entity, name string) (*Emitter, error) {
	cfg, err := p.Get(name)
	if err != nil {
		return nil, err
	}
	return AddEmitter(e, cfg)
}

// Names returns the preset names in sorted order.
func (p Presets) Names() []string {
	return slices.Sorted(maps.Keys(p))
}
