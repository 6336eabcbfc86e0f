package termhost

import (
	"context"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/host/headless"
	"github.com/plus3/lumen/vmath"
)

type Options struct {
	FPS        int
	CellSize   vmath.Vec2
	Hold       time.Duration
	Background color.RGBA
	Logger     *zap.Logger

	// Setup runs once after the screen is initialised, before the first frame.
	Setup func(r *Renderer, res host.Resources)
}

// Run initialises screen and drives game until ctx is cancelled, Ctrl-C is
// pressed or the screen stops delivering events. Events are read on a
// separate goroutine and handed over through a channel, so game only ever
// runs on the caller's goroutine.
func Run(ctx context.Context, screen tcell.Screen, game host.Game, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}

	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	r := NewRenderer(screen, opts.CellSize)
	if opts.Background != (color.RGBA{}) {
		r.SetBackground(opts.Background)
	}
	res := headless.NewResources(log)
	in := NewInput(r.CellSize(), opts.Hold)
	game.SetInput(in)
	if opts.Setup != nil {
		opts.Setup(r, res)
	}

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC {
					log.Debug("terminal interrupt")
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}
			in.Handle(ev)

		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			in.Advance(now)
			if err := game.Step(dt); err != nil {
				log.Warn("frame step", zap.Error(err))
			}
			r.Clear()
			game.Draw(r, res)
			screen.Show()
		}
	}
}
