// Package launch runs an engine on the backend named by window.backend.
package launch

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/plus3/lumen/config"
	"github.com/plus3/lumen/debugui"
	"github.com/plus3/lumen/engine"
	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/host/ebitenhost"
	"github.com/plus3/lumen/host/headless"
	"github.com/plus3/lumen/host/raylibhost"
	"github.com/plus3/lumen/host/termhost"
)

var ErrUnknownBackend = errors.New("unknown backend")

type Options struct {
	Background color.RGBA

	// Setup runs once the backend's resources exist, before the first frame.
	Setup func(res host.Resources)

	// Windows are extra debug windows shown when debug.imgui is set.
	Windows []debugui.Item

	// Screen replaces the terminal backend's screen, mostly for tests.
	Screen tcell.Screen

	// Frames stops the headless backend after this many frames when positive.
	Frames int
}

// Run blocks until the backend exits. Windowed backends ignore ctx and stop
// when their window closes.
func Run(ctx context.Context, cfg *config.Config, eng *engine.Engine, opts Options) error {
	log := eng.Logger().Named("launch")
	w := cfg.Window
	eng.SetDebugDraw(cfg.Physics.DebugDraw)
	log.Info("starting backend", zap.String("backend", w.Backend), zap.Int("width", w.Width), zap.Int("height", w.Height))

	switch w.Backend {
	case "ebiten":
		var overlay ebitenhost.Overlay
		if cfg.Debug.ImGui {
			ui := debugui.New(eng)
			for _, item := range opts.Windows {
				ui.Add(item)
			}
			overlay = debugui.NewEbitenOverlay(ui, w.Title, w.Width, w.Height)
		}
		return ebitenhost.Run(eng, ebitenhost.Options{
			Title:      w.Title,
			Width:      w.Width,
			Height:     w.Height,
			TPS:        w.TargetFPS,
			Background: opts.Background,
			Logger:     eng.Logger(),
			Overlay:    overlay,
			Setup:      func(res *ebitenhost.Resources) { setup(opts, res) },
			QuitKey:    host.KeyEscape,
		})

	case "raylib":
		raylibhost.Run(eng, raylibhost.Options{
			Title:      w.Title,
			Width:      w.Width,
			Height:     w.Height,
			FPS:        w.TargetFPS,
			Background: opts.Background,
			Logger:     eng.Logger(),
			Setup:      func(res *raylibhost.Resources) { setup(opts, res) },
		})
		return nil

	case "terminal":
		screen := opts.Screen
		if screen == nil {
			var err error
			if screen, err = tcell.NewScreen(); err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
		}
		return termhost.Run(ctx, screen, eng, termhost.Options{
			FPS:        w.TargetFPS,
			Background: opts.Background,
			Logger:     eng.Logger(),
			Setup:      func(_ *termhost.Renderer, res host.Resources) { setup(opts, res) },
		})

	case "headless":
		return runHeadless(ctx, eng, w, opts)
	}
	return fmt.Errorf("%w: %q", ErrUnknownBackend, w.Backend)
}

func setup(opts Options, res host.Resources) {
	if opts.Setup != nil {
		opts.Setup(res)
	}
}

// runHeadless steps and draws into a recording renderer on a ticker. With
// opts.Frames set it runs that many frames back to back at the target rate.
// A scripted headless.Input, installed when the engine has none, has its
// edges advanced after every frame.
func runHeadless(ctx context.Context, eng *engine.Engine, w config.WindowConfig, opts Options) error {
	res := headless.NewResources(eng.Logger())
	renderer := headless.NewRenderer()
	if _, ok := eng.Input().(host.NoInput); ok {
		eng.SetInput(headless.NewInput())
	}
	setup(opts, res)

	frame := func(dt float64) error {
		renderer.Reset()
		if in, ok := eng.Input().(*headless.Input); ok {
			defer in.EndFrame()
		}
		if err := eng.Step(dt); err != nil {
			return err
		}
		eng.Draw(renderer, res)
		return nil
	}

	if opts.Frames > 0 {
		for i := 0; i < opts.Frames; i++ {
			if err := ctx.Err(); err != nil {
				return nil
			}
			if err := frame(w.FrameInterval()); err != nil {
				return err
			}
		}
		return nil
	}

	ticker := time.NewTicker(time.Duration(w.FrameInterval() * float64(time.Second)))
	defer ticker.Stop()
	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if err := frame(dt); err != nil {
				eng.Logger().Warn("frame error", zap.Error(err))
			}
		}
	}
}
