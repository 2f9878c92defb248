package erosion

import (
	"math"

	"erode/internal/core"

	"github.com/ojrac/opensimplex-go"
)

// NoiseField samples seeded fractal Brownian motion built from layered
// opensimplex octaves.
type NoiseField struct {
	noise       opensimplex.Noise
	octaves     int
	frequency   float64
	lacunarity  float64
	persistence float64
}

// NewNoiseField builds a sampler for the provided seed and shape.
func NewNoiseField(seed int64, p TerrainParams) *NoiseField {
	octaves := p.Octaves
	if octaves < 1 {
		octaves = 1
	}
	return &NoiseField{
		noise:       opensimplex.New(seed),
		octaves:     octaves,
		frequency:   p.Frequency,
		lacunarity:  p.Lacunarity,
		persistence: p.Persistence,
	}
}

// Sample evaluates the field at (u, v). The octave sum is normalised by the
// total amplitude so the result stays within roughly [-1, 1].
func (n *NoiseField) Sample(u, v float64) float64 {
	total := 0.0
	amplitude := 1.0
	norm := 0.0
	freq := n.frequency
	for i := 0; i < n.octaves; i++ {
		total += n.noise.Eval2(u*freq, v*freq) * amplitude
		norm += amplitude
		amplitude *= n.persistence
		freq *= n.lacunarity
	}
	if norm == 0 {
		return 0
	}
	return total / norm
}

// GenerateHeights produces the initial island heightmap: fractal noise minus
// the radial distance from the grid centre plus the configured bias.
func GenerateHeights(seed int64, size int, p TerrainParams) []float32 {
	if size <= 0 {
		return nil
	}
	field := NewNoiseField(seed, p)
	grid := core.NewFloatGrid(size)
	heights := grid.Cells()
	n := float64(size)
	for y := 0; y < size; y++ {
		v := 2*float64(y)/n - 1
		for x := 0; x < size; x++ {
			u := 2*float64(x)/n - 1
			h := field.Sample(u, v) - math.Sqrt(u*u+v*v) + p.Bias
			heights[grid.Index(x, y)] = float32(h)
		}
	}
	return heights
}
