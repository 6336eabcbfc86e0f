// Package audio plays short procedural sound effects through the system
// speaker. It is a gameplay convenience and is never required by the core
// runtime packages.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/plus3/lumen/physics"
)

const DefaultSampleRate = beep.SampleRate(44100)

// Manager mixes sound effects into a single speaker stream.
type Manager struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	master      *effects.Volume
	volume      float64
	gains       map[Effect]float64
	muted       bool
	initialized bool
	log         *zap.Logger
}

type Option func(*Manager)

func WithSampleRate(rate beep.SampleRate) Option {
	return func(m *Manager) { m.rate = rate }
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// WithVolume sets the initial linear master volume.
func WithVolume(v float64) Option {
	return func(m *Manager) { m.volume = v }
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rate:   DefaultSampleRate,
		mixer:  &beep.Mixer{},
		volume: 1,
		gains:  make(map[Effect]float64),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	m.master = &effects.Volume{Streamer: m.mixer, Base: 2}
	m.applyVolume()
	return m
}

// Init opens the speaker and starts streaming the mixer. Calling it again
// after a successful Init is a no-op.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(m.rate, m.rate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(m.master)
	m.initialized = true
	m.log.Info("audio initialized", zap.Int("sample_rate", int(m.rate)))
	return nil
}

func (m *Manager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

func (m *Manager) SampleRate() beep.SampleRate { return m.rate }

// Play queues a fresh instance of e. Without a successful Init it does nothing.
func (m *Manager) Play(e Effect) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	gain, ok := m.gains[e]
	if !ok {
		gain = 1
	}
	s, err := Build(e, m.rate, gain)
	if err != nil {
		m.log.Warn("sound effect skipped", zap.Error(err))
		return
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// SetGain sets the per-effect linear gain applied on top of the master volume.
func (m *Manager) SetGain(e Effect, gain float64) {
	m.mu.Lock()
	m.gains[e] = gain
	m.mu.Unlock()
}

func (m *Manager) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

// SetVolume sets the linear master volume; values <= 0 mute.
func (m *Manager) SetVolume(v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = v
	m.locked(m.applyVolume)
}

func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
	m.locked(m.applyVolume)
}

// Playing reports the number of effects still in the mixer.
func (m *Manager) Playing() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int
	m.locked(func() { n = m.mixer.Len() })
	return n
}

// Stop drops every queued effect.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locked(m.mixer.Clear)
}

func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	m.mixer.Clear()
	speaker.Close()
	m.initialized = false
}

// ContactSound returns a physics contact handler that plays solid for
// resolved contacts and trigger for trigger overlaps. Pass -1 to stay quiet.
func (m *Manager) ContactSound(solid, trigger Effect) func(physics.Contact) {
	return func(c physics.Contact) {
		switch {
		case c.Trigger && trigger >= 0:
			m.Play(trigger)
		case c.Resolved && solid >= 0:
			m.Play(solid)
		}
	}
}

// locked runs fn under the speaker lock once the speaker is streaming.
func (m *Manager) locked(fn func()) {
	if m.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

func (m *Manager) applyVolume() {
	if m.muted || m.volume <= 0 {
		m.master.Silent = true
		return
	}
	m.master.Silent = false
	m.master.Volume = math.Log2(m.volume)
}
