package erosion

import "fmt"

// Stats accumulates droplet churn and terrain exchange since the last Reset.
type Stats struct {
	Spawned    int
	Evaporated int
	// Expired counts droplets removed by the lifetime cap.
	Expired int
	// Corrupted counts droplets dropped because their state went non-finite.
	Corrupted int
	// Guarded counts updates that kept the previous direction because the new
	// one could not be normalised.
	Guarded int

	Eroded    float64
	Deposited float64

	PeakDroplets int
}

// Removed returns the total number of despawned droplets.
func (s Stats) Removed() int { return s.Evaporated + s.Expired + s.Corrupted }

func (s *Stats) record(r StepResult) {
	if r.Guarded {
		s.Guarded++
	}
	s.Eroded += float64(r.Eroded)
	s.Deposited += float64(r.Deposited)
}

// RunResult captures telemetry from a deterministic headless run used for
// tuning.
type RunResult struct {
	Steps   int
	Sources int
	Live    int

	// LandFraction is the share of cells at or above sea level after the run.
	LandFraction float64
	MinHeight    float32
	MaxHeight    float32

	// MassDelta is the change of the summed heightmap over the run; it tracks
	// Deposited - Eroded up to float rounding.
	MassDelta float64

	Stats Stats
}

// RunScenario builds a World from cfg, resets it with the configured seed and
// advances it steps times.
func RunScenario(cfg Config, steps int) (RunResult, error) {
	world, err := NewWithConfig(cfg)
	if err != nil {
		return RunResult{}, fmt.Errorf("run scenario: %w", err)
	}
	before := world.elev.Grid().Sum()
	for i := 0; i < steps; i++ {
		world.Step()
	}

	res := RunResult{
		Steps:   steps,
		Sources: world.sources.Len(),
		Live:    world.pool.Len(),
		Stats:   world.stats,
	}
	heights := world.Heights()
	land := 0
	res.MinHeight, res.MaxHeight = heights[0], heights[0]
	for _, h := range heights {
		if h >= 0 {
			land++
		}
		res.MinHeight = min(res.MinHeight, h)
		res.MaxHeight = max(res.MaxHeight, h)
	}
	res.LandFraction = float64(land) / float64(len(heights))
	res.MassDelta = world.elev.Grid().Sum() - before
	return res, nil
}

// StatusLine summarises the world state for overlays and terminal viewers.
func (w *World) StatusLine() string {
	return fmt.Sprintf("tick %d  drops %d  sources %d  eroded %.3f  deposited %.3f  %s",
		w.tick, w.pool.Len(), w.sources.Len(), w.stats.Eroded, w.stats.Deposited, w.cfg.Params.Variant)
}
