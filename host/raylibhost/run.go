package raylibhost

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/plus3/lumen/host"
)

type Options struct {
	Title      string
	Width      int
	Height     int
	FPS        int
	Background color.RGBA
	Logger     *zap.Logger

	// Setup runs once the window is open, before the first frame.
	Setup func(res *Resources)
}

// Run opens a window and drives game until the window is closed.
func Run(game host.Game, opts Options) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 800, 600
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}

	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	rl.SetTargetFPS(int32(opts.FPS))
	defer rl.CloseWindow()

	res := NewResources(log)
	defer res.Close()
	r := NewRenderer()
	game.SetInput(Input{})
	if opts.Setup != nil {
		opts.Setup(res)
	}

	lastTime := rl.GetTime()
	for !rl.WindowShouldClose() {
		currentTime := rl.GetTime()
		deltaTime := currentTime - lastTime
		lastTime = currentTime

		if err := game.Step(deltaTime); err != nil {
			log.Warn("frame step", zap.Error(err))
		}

		rl.BeginDrawing()
		rl.ClearBackground(opts.Background)
		game.Draw(r, res)
		r.EndView()
		rl.EndDrawing()
	}
}
