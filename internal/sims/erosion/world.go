package erosion

import (
	"erode/internal/core"
	pcore "erode/pkg/core"

	"github.com/go-gl/mathgl/mgl32"
)

// World runs hydraulic erosion over a generated island heightmap.
type World struct {
	cfg Config

	elev    *Elevation
	sources SourceSet
	pool    *Pool
	rng     *pcore.RNG

	tick  uint64
	stats Stats

	display      []uint8
	displayDirty bool
}

// New returns a World of the given size using defaults for everything else.
func New(size int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Size = size
	return NewWithConfig(cfg)
}

// NewWithConfig validates cfg and returns a World seeded with cfg.Seed.
func NewWithConfig(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		cfg:     cfg,
		pool:    NewPool(cfg.RainPerTick * 64),
		display: make([]uint8, cfg.Size*cfg.Size),
	}
	w.Reset(0)
	return w, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "erosion" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.Size, H: w.cfg.Size} }

// Config returns a copy of the active configuration.
func (w *World) Config() Config { return w.cfg }

// Elevation exposes the heightmap.
func (w *World) Elevation() *Elevation { return w.elev }

// Heights exposes the row-major heights by reference.
func (w *World) Heights() []float32 { return w.elev.Heights() }

// Gradient returns the slope at flat index i.
func (w *World) Gradient(i int) mgl32.Vec2 { return w.elev.Gradient(i) }

// Sources exposes the springs.
func (w *World) Sources() []Source { return w.sources.Sources() }

// SourceCount reports how many rivers the last Reset placed.
func (w *World) SourceCount() int { return w.sources.Len() }

// Droplets exposes the live droplets.
func (w *World) Droplets() []Droplet { return w.pool.Droplets() }

// Stats returns the accumulated telemetry since the last Reset.
func (w *World) Stats() Stats { return w.stats }

// Tick returns the number of completed steps since the last Reset.
func (w *World) Tick() uint64 { return w.tick }

// Reset regenerates terrain and sources. A zero seed falls back to the
// configured one.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	heights := GenerateHeights(effective, w.cfg.Size, w.cfg.Terrain)
	elev, err := NewElevation(w.cfg.Size, heights)
	if err != nil {
		// Size was validated at construction.
		panic(err)
	}
	w.elev = elev
	w.rng = pcore.NewRNG(effective)
	w.sources.Clear()
	w.sources.Place(w.elev, w.rng, w.cfg.SourceAttempts, w.cfg.SourceMinHeight, w.cfg.SourceFlux)
	w.pool.Reset()
	w.tick = 0
	w.stats = Stats{}
	w.displayDirty = true
}

// Spawn injects a fresh droplet at pos.
func (w *World) Spawn(pos mgl32.Vec2) {
	w.pool.Spawn(pos)
	w.stats.Spawned++
}

// AddDroplet injects a droplet with arbitrary state.
func (w *World) AddDroplet(d Droplet) {
	w.pool.Add(d)
	w.stats.Spawned++
}

// Step advances the simulation by one tick: rain and springs spawn droplets,
// every droplet erodes in pool order, then spent droplets are removed.
func (w *World) Step() {
	for i := 0; i < w.cfg.RainPerTick; i++ {
		w.Spawn(w.rng.Position(w.cfg.Size))
	}
	w.sources.Tick(w.Spawn)

	w.Erode()

	w.tick++
	w.displayDirty = true
}

// Erode runs the erosion pass and despawn sweep without spawning.
func (w *World) Erode() {
	p := w.cfg.Params
	for i := 0; i < w.pool.Len(); i++ {
		res := p.Advance(w.elev, w.pool.At(i))
		w.stats.record(res)
	}
	if n := w.pool.Len(); n > w.stats.PeakDroplets {
		w.stats.PeakDroplets = n
	}
	w.pool.Retain(func(d *Droplet) bool {
		switch {
		case !d.finite():
			w.stats.Corrupted++
			return false
		case !(d.Water >= p.WaterEpsilon):
			w.stats.Evaporated++
			return false
		case p.MaxLifetime > 0 && d.Age >= p.MaxLifetime:
			w.stats.Expired++
			return false
		}
		return true
	})
}

func init() {
	core.Register("erosion", func(cfg map[string]string) (core.Sim, error) {
		return NewWithConfig(FromMap(cfg))
	})
}
