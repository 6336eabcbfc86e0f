package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/engine"
	"github.com/plus3/lumen/particles"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Balls    int
	Emitters int
	Render   bool

	// Results
	TotalTime      time.Duration
	FrameTime      Stats
	Particles      int
	Engine         engine.Stats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func particleCount(scene *ecs.Scene) int {
	n := 0
	for _, e := range ecs.FindWithBehavior[*particles.Emitter](scene) {
		if em, ok := ecs.GetBehavior[*particles.Emitter](e); ok {
			n += em.Count()
		}
	}
	return n
}

const reportTemplate = `
# Lumen Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Balls:** {{.Balls}}
- **Emitters:** {{.Emitters}}
- **Rendering:** {{.Render}}

## Performance Results
- **Total Frames:** {{.Engine.Frames}}
- **Total Test Time:** {{.TotalTime}}
- **Frame Time:**
  - **Avg:** {{.FrameTime.Avg}}
  - **Min:** {{.FrameTime.Min}}
  - **Max:** {{.FrameTime.Max}}
{{range .Engine.Phases}}- **{{.Name}}:** avg {{.AvgDuration}}, max {{.MaxDuration}} over {{.ExecutionCount}} runs
{{end}}
## Scene
- Live Entities:  {{.Engine.Scene.LiveEntities}} ({{.Engine.Scene.ActiveEntities}} active)
- Behaviors:      {{.Engine.Scene.BehaviorCount}}
- Free Slots:     {{.Engine.Scene.FreeSlots}}
- Particles:      {{.Particles}}
{{range .Engine.Scene.Behaviors}}- {{.Name}}: {{.Count}}
{{end}}
## Physics (last pass)
- Colliders:      {{.Engine.Physics.Colliders}}
- Pairs Tested:   {{.Engine.Physics.PairsTested}}
- Overlaps:       {{.Engine.Physics.Overlaps}}
- Resolved:       {{.Engine.Physics.Resolved}}

## Memory Usage (MB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc)}}
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}}
- Sys Memory:     {{mb .MemStatsStart.Sys}} (start) -> {{mb .MemStatsEnd.Sys}} (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}`

func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
