//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"erode/internal/app"
	"erode/internal/core"
	_ "erode/internal/sims/erosion"

	"github.com/hajimehoshi/ebiten/v2"
)

type sourceCounter interface {
	SourceCount() int
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (available: %v)", cfg.Sim, core.SimNames())
	}

	sim, err := factory(cfg.SimOptions())
	if err != nil {
		log.Fatalf("create %s: %v", cfg.Sim, err)
	}
	if sc, ok := sim.(sourceCounter); ok {
		log.Printf("%d rivers", sc.SourceCount())
	}

	game := app.New(sim, cfg.Scale, cfg.Seed)

	ebiten.SetWindowTitle("erode: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(game.WindowSize())

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
