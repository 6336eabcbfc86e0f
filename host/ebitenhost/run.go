package ebitenhost

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/lumen/host"
)

// Overlay draws on top of the game each frame, such as a debug UI.
type Overlay interface {
	// Update builds the overlay for the frame; it runs after the game steps.
	Update(dt float64)
	Draw(screen *ebiten.Image)
	Layout(width, height int)
}

type Options struct {
	Title      string
	Width      int
	Height     int
	TPS        int
	Background color.RGBA
	Logger     *zap.Logger
	Overlay    Overlay

	// Setup runs once before the first frame, with resources ready for use.
	Setup func(res *Resources)

	// QuitKey ends the run when pressed. KeyUnknown disables it.
	QuitKey host.Key
}

// Game adapts a host.Game to ebiten.Game.
type Game struct {
	game    host.Game
	opts    Options
	r       *Renderer
	res     *Resources
	log     *zap.Logger
	started bool
}

func NewGame(game host.Game, opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.TPS <= 0 {
		opts.TPS = ebiten.DefaultTPS
	}
	return &Game{
		game: game,
		opts: opts,
		r:    NewRenderer(nil),
		res:  NewResources(opts.Logger),
		log:  opts.Logger,
	}
}

func (g *Game) Resources() *Resources { return g.res }

func (g *Game) Update() error {
	if !g.started {
		g.started = true
		g.game.SetInput(Input{})
		if g.opts.Setup != nil {
			g.opts.Setup(g.res)
		}
	}
	if g.opts.QuitKey != host.KeyUnknown && (Input{}).KeyPressed(g.opts.QuitKey) {
		return ebiten.Termination
	}

	dt := 1 / float64(ebiten.TPS())
	if err := g.game.Step(dt); err != nil {
		g.log.Warn("frame step", zap.Error(err))
	}
	if g.opts.Overlay != nil {
		g.opts.Overlay.Update(dt)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.opts.Background)
	g.r.SetTarget(screen)
	g.game.Draw(g.r, g.res)
	if g.opts.Overlay != nil {
		g.opts.Overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.opts.Overlay != nil {
		g.opts.Overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and blocks until it is closed or the quit key is pressed.
func Run(game host.Game, opts Options) error {
	g := NewGame(game, opts)
	defer g.res.Close()

	if opts.Width > 0 && opts.Height > 0 {
		ebiten.SetWindowSize(opts.Width, opts.Height)
	}
	if opts.Title != "" {
		ebiten.SetWindowTitle(opts.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.opts.TPS)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
