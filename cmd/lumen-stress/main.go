package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/plus3/lumen/config"
	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/engine"
	"github.com/plus3/lumen/host/headless"
	"github.com/plus3/lumen/physics"
	"github.com/plus3/lumen/vmath"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	balls := flag.Int("balls", 500, "The number of colliding balls to create.")
	emitters := flag.Int("emitters", 20, "The number of particle emitters to create.")
	seed := flag.Uint64("seed", 1, "Seed for ball placement and emitter streams.")
	render := flag.Bool("render", true, "Draw every frame into a recording renderer.")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile to the working directory.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error.")
	flag.Parse()

	log, err := config.NewLogger(config.LoggingConfig{Level: *logLevel, Format: "console"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		log.Fatal("unknown profile mode", zap.String("profile", *profileMode))
	}

	log.Info("starting stress test")

	size := vmath.V(1920, 1080)
	scene := ecs.NewScene("stress", ecs.WithLogger(log))
	eng := engine.New(scene,
		engine.WithLogger(log),
		engine.WithWorld(physics.NewWorld(physics.WithLogger(log), physics.WithRestitution(1))),
		engine.WithInput(headless.NewInput()),
	)
	defer eng.Close()

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	if err := populate(eng, rng, size, *balls, *emitters); err != nil {
		log.Fatal("populate scene", zap.Error(err))
	}
	log.Info("population complete", zap.Int("entities", scene.Len()))

	report := &Report{
		Duration:       *duration,
		Balls:          *balls,
		Emitters:       *emitters,
		Render:         *render,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", zap.Duration("duration", *duration))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	renderer := headless.NewRenderer()
	resources := headless.NewResources(log)
	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			dt := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			frameStart := time.Now()
			if err := eng.Step(dt.Seconds()); err != nil {
				log.Warn("frame error", zap.Error(err))
			}
			if *render {
				renderer.Reset()
				eng.Draw(renderer, resources)
			}
			report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
			report.Particles = particleCount(scene)
		}
	}

	report.TotalTime = time.Since(startTime)
	report.Engine = *eng.GetStats()
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished", zap.Int("frames", report.Engine.Frames))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}
