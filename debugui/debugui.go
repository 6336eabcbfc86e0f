// Package debugui draws Dear ImGui developer windows over a running engine:
// an entity browser, a behavior inspector and frame statistics.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lumen/engine"
)

// Item is an extra window the game wants drawn alongside the built-in ones.
type Item struct {
	Render func()
}

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Games should skip their own pointer handling while WantCaptureMouse is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// UI owns the debug windows for one engine. Build must run between the
// backend's BeginFrame and EndFrame.
type UI struct {
	engine    *engine.Engine
	browser   *EntityBrowser
	inspector *BehaviorInspector
	perf      *PerformanceStats
	items     []Item
	input     InputState
	hidden    bool
}

func New(e *engine.Engine) *UI {
	return &UI{
		engine:    e,
		browser:   NewEntityBrowser(100),
		inspector: NewBehaviorInspector(),
		perf:      NewPerformanceStats(120),
	}
}

func (ui *UI) Browser() *EntityBrowser        { return ui.browser }
func (ui *UI) Performance() *PerformanceStats { return ui.perf }
func (ui *UI) InputState() InputState         { return ui.input }
func (ui *UI) Hidden() bool                   { return ui.hidden }
func (ui *UI) SetHidden(hidden bool)          { ui.hidden = hidden }

// Add registers an extra window.
func (ui *UI) Add(item Item) {
	ui.items = append(ui.items, item)
}

// Build records the frame time and emits every window.
func (ui *UI) Build(dt float64) {
	ui.perf.Record(dt)

	io := imgui.CurrentIO()
	ui.input.WantCaptureMouse = io.WantCaptureMouse()
	ui.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	if ui.hidden {
		return
	}

	scene := ui.engine.Scene()
	ui.browser.Render(scene)
	ui.inspector.Render(scene, ui.browser.Selected())
	ui.perf.Render(*ui.engine.GetStats())

	for _, item := range ui.items {
		item.Render()
	}
}
