package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FloatGrid stores a square grid of float32 cell values in row-major order.
type FloatGrid struct {
	Size int
	data []float32
}

// NewFloatGrid allocates a size*size grid. Non-positive sizes collapse to 1.
func NewFloatGrid(size int) *FloatGrid {
	if size <= 0 {
		size = 1
	}
	return &FloatGrid{Size: size, data: make([]float32, size*size)}
}

// FloatGridFrom wraps an existing row-major slice. It returns nil when the
// slice length is not a perfect square of size.
func FloatGridFrom(size int, data []float32) *FloatGrid {
	if size <= 0 || len(data) != size*size {
		return nil
	}
	return &FloatGrid{Size: size, data: data}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *FloatGrid) Cells() []float32 { return g.data }

// Len returns the number of cells.
func (g *FloatGrid) Len() int { return len(g.data) }

// Index returns the linear slice index for coordinates (x, y).
func (g *FloatGrid) Index(x, y int) int { return y*g.Size + x }

// Coords is the inverse of Index.
func (g *FloatGrid) Coords(i int) (int, int) { return i % g.Size, i / g.Size }

// Unroll projects a continuous position onto the grid, clamping each axis to
// [0, Size-1].
func (g *FloatGrid) Unroll(pos mgl32.Vec2) int {
	return Unroll(pos, g.Size)
}

// Unroll converts a continuous position to a flat index of a size*size grid.
// Positions below zero map to the first row/column, positions at or past size
// map to the last. NaN coordinates map to zero.
func Unroll(pos mgl32.Vec2, size int) int {
	x := clampAxis(pos.X(), size)
	y := clampAxis(pos.Y(), size)
	return x%size + y*size
}

func clampAxis(v float32, size int) int {
	switch {
	case math.IsNaN(float64(v)) || v < 0:
		return 0
	case v >= float32(size):
		return size - 1
	default:
		return int(v)
	}
}

// Sum returns the float64 sum of all cells.
func (g *FloatGrid) Sum() float64 {
	total := 0.0
	for _, v := range g.data {
		total += float64(v)
	}
	return total
}
