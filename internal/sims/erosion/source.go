package erosion

import (
	"math"

	pcore "erode/pkg/core"

	"github.com/go-gl/mathgl/mgl32"
)

// Source is a fixed spring that emits droplets at a fractional rate.
type Source struct {
	Position mgl32.Vec2
	Flux     float64

	accumulator float64
}

// NewSource returns a source with an empty accumulator.
func NewSource(pos mgl32.Vec2, flux float64) Source {
	return Source{Position: pos, Flux: flux}
}

// Flow advances the accumulator by one tick and returns how many whole
// droplets are due. The remainder stays in [0, 1).
func (s *Source) Flow() int {
	s.accumulator += s.Flux
	drops := math.Floor(s.accumulator)
	s.accumulator -= drops
	return int(drops)
}

// Accumulator reports the carried fractional flow.
func (s *Source) Accumulator() float64 { return s.accumulator }

// SourceSet is the persistent collection of springs.
type SourceSet struct {
	sources []Source
}

// Add appends a source.
func (s *SourceSet) Add(src Source) { s.sources = append(s.sources, src) }

// Len returns the number of sources.
func (s *SourceSet) Len() int { return len(s.sources) }

// Sources exposes the sources for read access.
func (s *SourceSet) Sources() []Source { return s.sources }

// Clear drops every source.
func (s *SourceSet) Clear() { s.sources = s.sources[:0] }

// Tick runs one emission round, calling emit once per droplet due, and
// returns the number emitted.
func (s *SourceSet) Tick(emit func(pos mgl32.Vec2)) int {
	total := 0
	for i := range s.sources {
		src := &s.sources[i]
		drops := src.Flow()
		for d := 0; d < drops; d++ {
			emit(src.Position)
		}
		total += drops
	}
	return total
}

// Place samples up to attempts random positions, adds a source at each one
// higher than minHeight and returns how many were added.
func (s *SourceSet) Place(elev *Elevation, rng *pcore.RNG, attempts int, minHeight float32, flux float64) int {
	added := 0
	for i := 0; i < attempts; i++ {
		pos := rng.Position(elev.Size())
		if elev.HeightAt(pos) > minHeight {
			s.Add(NewSource(pos, flux))
			added++
		}
	}
	return added
}
