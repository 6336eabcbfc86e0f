package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lumen/engine"
)

// PerformanceStats plots frame times and shows the engine's phase timings,
// scene counts and last collision pass.
type PerformanceStats struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	recorded      int
}

func NewPerformanceStats(historyFrames int) *PerformanceStats {
	historyFrames = max(historyFrames, 1)
	return &PerformanceStats{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// Record adds one frame's delta time, in seconds, to the history ring.
func (ps *PerformanceStats) Record(dt float64) {
	ps.frameHistory[ps.frameIndex] = float32(dt * 1000)
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
	ps.recorded = min(ps.recorded+1, ps.historyFrames)
}

// AverageFrameTime returns the mean recorded frame time in milliseconds.
func (ps *PerformanceStats) AverageFrameTime() float32 {
	if ps.recorded == 0 {
		return 0
	}
	var sum float32
	for _, ft := range ps.frameHistory {
		sum += ft
	}
	return sum / float32(ps.recorded)
}

func (ps *PerformanceStats) Render(stats engine.Stats) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Frames: %d (%.1fs)", stats.Frames, stats.Elapsed))
	imgui.Text(fmt.Sprintf("Entities: %d live, %d active", stats.Scene.LiveEntities, stats.Scene.ActiveEntities))
	imgui.Text(fmt.Sprintf("Behaviors: %d", stats.Scene.BehaviorCount))

	if avg := ps.AverageFrameTime(); avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.TreeNodeStr("Phases") {
		if imgui.BeginTableV("PhaseTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Phase")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, p := range stats.Phases {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(p.Name)
				imgui.TableNextColumn()
				imgui.Text(p.LastDuration.String())
				imgui.TableNextColumn()
				imgui.Text(p.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(p.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Behavior Details") {
		if imgui.BeginTableV("BehaviorTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Behavior")
			imgui.TableSetupColumn("Count")
			imgui.TableHeadersRow()

			for _, b := range stats.Scene.Behaviors {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(b.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", b.Count))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Physics") {
		imgui.BulletText(fmt.Sprintf("Colliders: %d", stats.Physics.Colliders))
		imgui.BulletText(fmt.Sprintf("Pairs tested: %d", stats.Physics.PairsTested))
		imgui.BulletText(fmt.Sprintf("Overlaps: %d", stats.Physics.Overlaps))
		imgui.BulletText(fmt.Sprintf("Resolved: %d", stats.Physics.Resolved))
		imgui.TreePop()
	}

	imgui.End()
}
