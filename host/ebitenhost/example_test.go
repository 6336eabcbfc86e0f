package ebitenhost_test

import (
	"github.com/plus3/lumen/ecs"
	"github.com/plus3/lumen/engine"
	"github.com/plus3/lumen/host"
	"github.com/plus3/lumen/host/ebitenhost"
	"github.com/plus3/lumen/particles"
)

func Example() {
	scene := ecs.NewScene("sparks")
	eng := engine.New(scene)
	defer eng.Close()

	fountain := scene.CreateEntity("fountain")
	fountain.Transform().Position.X = 400
	fountain.Transform().Position.Y = 500
	if _, err := particles.AddEmitter(fountain, particles.DefaultConfig()); err != nil {
		panic(err)
	}

	err := ebitenhost.Run(eng, ebitenhost.Options{
		Title:      "sparks",
		Width:      800,
		Height:     600,
		Background: host.Black,
		QuitKey:    host.KeyEscape,
	})
	if err != nil {
		panic(err)
	}
}
