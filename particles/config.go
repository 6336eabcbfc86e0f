package particles

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/vmath"
	"go.uber.org/multierr"
)

var (
	// ErrInvalidEmissionRate is returned for an emitting emitter whose rate is not
	// positive and finite.
	ErrInvalidEmissionRate = errors.New("particles: emission rate must be positive and finite while emitting")
	ErrInvalidConfig       = errors.New("particles: invalid config")
)

// Shape selects where new particles spawn relative to the emitter's transform.
type Shape uint8

const (
	Point Shape = iota
	Circle
	Box
	Cone
)

var shapeNames = [...]string{"point", "circle", "box", "cone"}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("shape(%d)", s)
}

func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Shape) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range shapeNames {
		if n == name {
			*s = Shape(i)
			return nil
		}
	}
	return fmt.Errorf("unknown emitter shape %q: %w", text, ErrInvalidConfig)
}

// Config describes an emitter. Ranges are sampled uniformly per particle.
type Config struct {
	Shape        Shape   `yaml:"shape" toml:"shape"`
	EmissionRate float64 `yaml:"emission_rate" toml:"emission_rate"`
	MaxParticles int     `yaml:"max_particles" toml:"max_particles"`
	Emitting     bool    `yaml:"emitting" toml:"emitting"`
	Loop         bool    `yaml:"loop" toml:"loop"`
	Duration     float64 `yaml:"duration" toml:"duration"`

	Radius    float64    `yaml:"radius" toml:"radius"`
	BoxSize   vmath.Vec2 `yaml:"box_size" toml:"box_size"`
	ConeAngle float64    `yaml:"cone_angle" toml:"cone_angle"`

	VelocityMin      vmath.Vec2 `yaml:"velocity_min" toml:"velocity_min"`
	VelocityMax      vmath.Vec2 `yaml:"velocity_max" toml:"velocity_max"`
	Acceleration     vmath.Vec2 `yaml:"acceleration" toml:"acceleration"`
	LifetimeMin      float64    `yaml:"lifetime_min" toml:"lifetime_min"`
	LifetimeMax      float64    `yaml:"lifetime_max" toml:"lifetime_max"`
	SizeMin          float64    `yaml:"size_min" toml:"size_min"`
	SizeMax          float64    `yaml:"size_max" toml:"size_max"`
	RotationSpeedMin float64    `yaml:"rotation_speed_min" toml:"rotation_speed_min"`
	RotationSpeedMax float64    `yaml:"rotation_speed_max" toml:"rotation_speed_max"`

	// StartColor tints new particles. RGB moves toward EndColor over the particle's
	// life while alpha fades linearly to zero.
	StartColor color.RGBA `yaml:"start_color" toml:"start_color"`
	EndColor   color.RGBA `yaml:"end_color" toml:"end_color"`
}

func DefaultConfig() Config {
	return Config{
		Shape:            Point,
		EmissionRate:     10,
		MaxParticles:     100,
		Emitting:         true,
		Loop:             true,
		Duration:         5,
		Radius:           10,
		BoxSize:          vmath.V(20, 20),
		ConeAngle:        45,
		VelocityMin:      vmath.V(-50, -50),
		VelocityMax:      vmath.V(50, -100),
		Acceleration:     vmath.V(0, 100),
		LifetimeMin:      1,
		LifetimeMax:      2,
		SizeMin:          2,
		SizeMax:          5,
		RotationSpeedMin: -180,
		RotationSpeedMax: 180,
		StartColor:       host.White,
		EndColor:         color.RGBA{255, 255, 255, 0},
	}
}

// Validate reports every problem with c at once.
func (c Config) Validate() error {
	var err error
	if c.Emitting && !validRate(c.EmissionRate) {
		err = multierr.Append(err, fmt.Errorf("emission_rate %g: %w", c.EmissionRate, ErrInvalidEmissionRate))
	}
	if c.MaxParticles < 0 {
		err = multierr.Append(err, fmt.Errorf("max_particles %d is negative: %w", c.MaxParticles, ErrInvalidConfig))
	}
	if !c.Loop && c.Duration < 0 {
		err = multierr.Append(err, fmt.Errorf("duration %g is negative: %w", c.Duration, ErrInvalidConfig))
	}
	if c.Shape > Cone {
		err = multierr.Append(err, fmt.Errorf("shape %s: %w", c.Shape, ErrInvalidConfig))
	}
	return err
}

// validRate rejects NaN along with non-positive and infinite rates.
func validRate(rate float64) bool {
	return rate > 0 && !math.IsInf(rate, 1)
}
