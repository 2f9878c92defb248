package main

import (
	"flag"
	"log"
	"time"

	"erode/internal/app"
	"erode/internal/core"
	"erode/internal/sims/erosion"
	"erode/internal/tui"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	size := flag.String("size", "256", "grid side length; -set size=... takes precedence")
	flag.Parse()

	opts := cfg.SimOptions()
	if _, ok := opts["size"]; !ok {
		opts["size"] = *size
	}
	world, err := erosion.NewWithConfig(erosion.FromMap(opts))
	if err != nil {
		log.Fatalf("create world: %v", err)
	}
	log.Printf("%d rivers", world.SourceCount())

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("init terminal: %v", err)
	}
	defer screen.Fini()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	view := tui.NewView(world)
	pacer := core.NewFixedStep(cfg.TPS)
	frame := time.NewTicker(50 * time.Millisecond)
	defer frame.Stop()

	seed := world.Config().Seed
	paused := false
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
					return
				case ev.Rune() == ' ':
					paused = !paused
					view.SetPaused(paused)
				case ev.Rune() == 'n' && paused:
					world.Step()
				case ev.Rune() == 'r':
					seed++
					world.Reset(seed)
				case ev.Rune() == 'v':
					next := erosion.VariantConstant
					if world.Config().Params.Variant == erosion.VariantConstant {
						next = erosion.VariantWeighted
					}
					world.SetVariant(next)
				}
			}
		case <-frame.C:
			n := pacer.Pending(8)
			if !paused {
				for i := 0; i < n; i++ {
					world.Step()
				}
			}
			view.Draw(screen)
			screen.Show()
		}
	}
}
