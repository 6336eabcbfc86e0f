package debugui

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenOverlay runs a UI on the Ebiten Dear ImGui backend. It satisfies
// ebitenhost.Overlay.
type EbitenOverlay struct {
	ui      *UI
	backend *ebitenbackend.EbitenBackend
}

// NewEbitenOverlay creates the ImGui context and window. It must be called
// before ebitenhost.Run, on the main goroutine.
func NewEbitenOverlay(ui *UI, title string, width, height int) *EbitenOverlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &EbitenOverlay{ui: ui, backend: backend}
}

func (o *EbitenOverlay) UI() *UI { return o.ui }

func (o *EbitenOverlay) Update(dt float64) {
	o.backend.BeginFrame()
	o.ui.Build(dt)
	o.backend.EndFrame()
}

func (o *EbitenOverlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *EbitenOverlay) Layout(width, height int) {
	o.backend.Layout(width, height)
}
