package engine

import (
	"time"

	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/physics"
)

// Phase is one timed step of a frame.
type Phase int

const (
	PhaseUpdate Phase = iota
	PhasePhysics
	PhaseRender
	phaseCount
)

var phaseNames = [phaseCount]string{"update", "physics", "render"}

func (p Phase) String() string { return phaseNames[p] }

// Stats is a snapshot of frame timing and world state.
type Stats struct {
	Frames  int
	Elapsed float64
	Phases  []PhaseStats
	Scene   ecs.SceneStats
	Physics physics.Stats
}

// PhaseStats provides execution statistics for a single frame phase.
type PhaseStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type phaseTimer struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

func newPhaseTimer() *phaseTimer {
	return &phaseTimer{minDuration: time.Duration(1<<63 - 1)}
}

// time runs fn and records how long it took.
func (t *phaseTimer) time(fn func()) {
	start := time.Now()
	fn()
	duration := time.Since(start)

	t.executionCount++
	t.lastDuration = duration
	t.totalDuration += duration
	if duration < t.minDuration {
		t.minDuration = duration
	}
	if duration > t.maxDuration {
		t.maxDuration = duration
	}
}

func (t *phaseTimer) snapshot(name string) PhaseStats {
	s := PhaseStats{
		Name:           name,
		ExecutionCount: t.executionCount,
		MaxDuration:    t.maxDuration,
		LastDuration:   t.lastDuration,
		TotalDuration:  t.totalDuration,
	}
	if t.executionCount > 0 {
		s.MinDuration = t.minDuration
		s.AvgDuration = t.totalDuration / time.Duration(t.executionCount)
	}
	return s
}

// Phase returns the stats for p, or the zero value when p is unknown.
func (s *Stats) Phase(p Phase) PhaseStats {
	if p < 0 || int(p) >= len(s.Phases) {
		return PhaseStats{}
	}
	return s.Phases[p]
}
