package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"erode/internal/core"
	"erode/internal/sims/erosion"

	"github.com/gorilla/websocket"
)

// Options tune the stream loop.
type Options struct {
	// TPS is the simulation tick rate.
	TPS int
	// Frame is the broadcast interval.
	Frame time.Duration
	// Resolution is the side of the downsampled heightmap sent to clients.
	Resolution int
	// MaxCatchUp caps ticks run per frame after a stall.
	MaxCatchUp int
	// AllowAnyOrigin accepts websocket upgrades from pages on any origin.
	// When false only same-host browser origins, or clients sending no Origin
	// header, may connect.
	AllowAnyOrigin bool
}

// DefaultOptions returns 60 TPS, 10 frames per second, 128 cells per side.
func DefaultOptions() Options {
	return Options{TPS: 60, Frame: 100 * time.Millisecond, Resolution: 128, MaxCatchUp: 8}
}

// Command is a client control message. Absent fields are ignored.
type Command struct {
	Paused *bool  `json:"paused,omitempty"`
	Reset  *int64 `json:"reset,omitempty"`

	// Variant switches the droplet update rule, e.g. "weighted" or "constant".
	Variant *string `json:"variant,omitempty"`
}

// Server owns a World and is its only writer: Run steps it and every client
// command is applied from the same goroutine.
type Server struct {
	world    *erosion.World
	opts     Options
	upgrader websocket.Upgrader
	hub      *hub
	commands chan Command

	seed   int64
	paused bool
}

// NewServer wraps world. seed is reported in snapshots until a reset command
// replaces it.
func NewServer(world *erosion.World, seed int64, opts Options) *Server {
	def := DefaultOptions()
	if opts.TPS <= 0 {
		opts.TPS = def.TPS
	}
	if opts.Frame <= 0 {
		opts.Frame = def.Frame
	}
	if opts.Resolution <= 0 {
		opts.Resolution = def.Resolution
	}
	if opts.MaxCatchUp <= 0 {
		opts.MaxCatchUp = def.MaxCatchUp
	}
	if seed == 0 {
		seed = world.Config().Seed
	}
	s := &Server{
		world:    world,
		opts:     opts,
		hub:      newHub(),
		commands: make(chan Command, 16),
		seed:     seed,
	}
	if opts.AllowAnyOrigin {
		s.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return s
}

// Handler routes /ws to the websocket stream and /snapshot to the latest
// frame as plain JSON. Cross-origin pages are rejected on /ws unless
// Options.AllowAnyOrigin is set; /snapshot carries no CORS headers.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/snapshot", s.serveSnapshot)
	return mux
}

// Clients reports the number of connected websocket clients.
func (s *Server) Clients() int { return s.hub.count() }

// Run steps the world at the configured rate and broadcasts a frame every
// interval until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	pacer := core.NewFixedStep(s.opts.TPS)
	ticker := time.NewTicker(s.opts.Frame)
	defer ticker.Stop()
	defer s.hub.closeAll()

	if err := s.publish(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-s.commands:
			s.apply(cmd)
			if err := s.publish(); err != nil {
				return err
			}
		case <-ticker.C:
			n := pacer.Pending(s.opts.MaxCatchUp)
			if !s.paused {
				for i := 0; i < n; i++ {
					s.world.Step()
				}
			}
			if err := s.publish(); err != nil {
				return err
			}
		}
	}
}

func (s *Server) apply(cmd Command) {
	if cmd.Paused != nil {
		s.paused = *cmd.Paused
	}
	if cmd.Reset != nil {
		seed := *cmd.Reset
		if seed == 0 {
			seed = s.world.Config().Seed
		}
		s.seed = seed
		s.world.Reset(seed)
		log.Printf("reset seed %d: %d rivers", seed, s.world.SourceCount())
	}
	if cmd.Variant != nil {
		v, err := erosion.ParseVariant(*cmd.Variant)
		if err != nil {
			log.Printf("ignoring command: %v", err)
			return
		}
		s.world.SetVariant(v)
	}
}

func (s *Server) publish() error {
	snap := TakeSnapshot(s.world, s.opts.Resolution)
	snap.Seed = s.seed
	snap.Paused = s.paused
	msg, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	s.hub.broadcast(msg)
	return nil
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("websocket upgrade error:", err)
		return
	}
	c := s.hub.add(conn)
	defer s.hub.remove(c)

	for {
		var cmd Command
		if err := conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("websocket read error:", err)
			}
			return
		}
		select {
		case s.commands <- cmd:
		case <-r.Context().Done():
			return
		}
	}
}

func (s *Server) serveSnapshot(w http.ResponseWriter, r *http.Request) {
	msg := s.hub.snapshot()
	if msg == nil {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(msg)
}
