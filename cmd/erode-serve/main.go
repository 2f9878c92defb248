package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"erode/internal/app"
	"erode/internal/sims/erosion"
	"erode/internal/stream"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	addr := flag.String("addr", ":8080", "listen address")
	frame := flag.Duration("frame", 100*time.Millisecond, "broadcast interval")
	resolution := flag.Int("resolution", 128, "side of the downsampled heightmap sent to clients")
	anyOrigin := flag.Bool("allow-any-origin", false, "accept websocket clients from pages on any origin")
	flag.Parse()

	world, err := erosion.NewWithConfig(erosion.FromMap(cfg.SimOptions()))
	if err != nil {
		log.Fatalf("create world: %v", err)
	}
	log.Printf("%d rivers", world.SourceCount())

	srv := stream.NewServer(world, world.Config().Seed, stream.Options{
		TPS:            cfg.TPS,
		Frame:          *frame,
		Resolution:     *resolution,
		AllowAnyOrigin: *anyOrigin,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	httpSrv := &http.Server{Addr: *addr, Handler: srv.Handler()}
	go func() {
		if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("stream loop stopped: %v", err)
		}
		shutdown, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdown)
	}()

	log.Printf("streaming on http://%s/ws", *addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
