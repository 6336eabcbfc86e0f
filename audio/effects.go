package audio

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

var ErrUnknownEffect = errors.New("unknown sound effect")

// Effect names one of the procedurally generated sound effects.
type Effect int

const (
	Shoot Effect = iota
	Explosion
	Bounce
	Hit
	Pickup
	effectCount
)

var effectNames = [effectCount]string{
	Shoot:     "shoot",
	Explosion: "explosion",
	Bounce:    "bounce",
	Hit:       "hit",
	Pickup:    "pickup",
}

func (e Effect) String() string {
	if e < 0 || e >= effectCount {
		return fmt.Sprintf("Effect(%d)", int(e))
	}
	return effectNames[e]
}

// ParseEffect maps a lowercase effect name back to its Effect.
func ParseEffect(name string) (Effect, error) {
	for i, n := range effectNames {
		if n == name {
			return Effect(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
}

// Effects lists every known effect in declaration order.
func Effects() []Effect {
	out := make([]Effect, effectCount)
	for i := range out {
		out[i] = Effect(i)
	}
	return out
}

// Duration is the total length of the effect's stream.
func (e Effect) Duration() time.Duration {
	switch e {
	case Shoot:
		return 120 * time.Millisecond
	case Explosion:
		return 450 * time.Millisecond
	case Bounce:
		return 90 * time.Millisecond
	case Hit:
		return 150 * time.Millisecond
	case Pickup:
		return 160 * time.Millisecond
	}
	return 0
}

// Build returns a fresh streamer for e at the given sample rate and gain.
// Gains at or below zero produce a silent stream of the same length.
func Build(e Effect, rate beep.SampleRate, gain float64) (beep.Streamer, error) {
	var s beep.Streamer
	d := e.Duration()
	switch e {
	case Shoot:
		s = NewEnvelope(NewSweep(1400, 300, d, Square, rate), d, 5*time.Millisecond, 80*time.Millisecond, rate)
	case Explosion:
		noise := NewEnvelope(NewTone(0, d, Noise, rate), d, 10*time.Millisecond, 380*time.Millisecond, rate)
		rumble := NewEnvelope(NewSweep(120, 40, d, Sine, rate), d, 10*time.Millisecond, 300*time.Millisecond, rate)
		s = beep.Mix(withGain(noise, 0.7), withGain(rumble, 0.5))
	case Bounce:
		s = NewEnvelope(NewSweep(220, 440, d, Sine, rate), d, 2*time.Millisecond, 60*time.Millisecond, rate)
	case Hit:
		s = NewEnvelope(NewTone(110, d, Saw, rate), d, 2*time.Millisecond, 100*time.Millisecond, rate)
	case Pickup:
		half := d / 2
		first := NewEnvelope(NewTone(987.77, half, Square, rate), half, 2*time.Millisecond, 40*time.Millisecond, rate)
		second := NewEnvelope(NewTone(1318.51, half, Square, rate), half, 2*time.Millisecond, 60*time.Millisecond, rate)
		s = beep.Seq(first, second)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownEffect, e)
	}
	return withGain(s, gain), nil
}

// withGain wraps s in a volume effect. Linear gain is converted to the
// base-2 exponent effects.Volume expects; log2(0) is -Inf, so zero is Silent.
func withGain(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}
