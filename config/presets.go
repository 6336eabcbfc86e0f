package config

import (
	"fmt"
	"maps"
	"os"
	"slices"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/plus3/lumen/particles"
)

type presetFile struct {
	Presets map[string]yaml.Node `yaml:"presets"`
}

// LoadPresets reads a YAML table of named emitter configs. Each entry starts
// from particles.DefaultConfig, so a preset only lists what it changes.
func LoadPresets(path string) (particles.Presets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets %s: %w", path, err)
	}
	presets, err := ParsePresets(data)
	if err != nil {
		return nil, fmt.Errorf("parse presets %s: %w", path, err)
	}
	return presets, nil
}

// ParsePresets decodes and validates every preset, reporting all bad entries.
func ParsePresets(data []byte) (particles.Presets, error) {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	out := make(particles.Presets, len(f.Presets))
	var errs error
	for _, name := range slices.Sorted(maps.Keys(f.Presets)) {
		node := f.Presets[name]
		cfg := particles.DefaultConfig()
		if err := node.Decode(&cfg); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("preset %q: %w", name, err))
			continue
		}
		if err := cfg.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("preset %q: %w", name, err))
			continue
		}
		out[name] = cfg
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}
