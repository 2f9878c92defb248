package erosion

import (
	"fmt"

	"erode/internal/core"

	"github.com/go-gl/mathgl/mgl32"
)

// depositWeights spreads a height change over the 3×3 neighbourhood, indexed by
// Manhattan distance from the centre. 0.4 + 4×0.1 + 4×0.05 = 1.
var depositWeights = [3]float32{0.4, 0.1, 0.05}

// Elevation owns the heightmap mutated by the erosion step.
type Elevation struct {
	grid *core.FloatGrid
}

// NewElevation wraps heights as a size×size grid.
func NewElevation(size int, heights []float32) (*Elevation, error) {
	grid := core.FloatGridFrom(size, heights)
	if grid == nil {
		return nil, fmt.Errorf("%w: %d heights do not form a %d×%d grid", ErrInvalidConfig, len(heights), size, size)
	}
	return &Elevation{grid: grid}, nil
}

// Size returns the grid side length.
func (e *Elevation) Size() int { return e.grid.Size }

// Heights exposes the row-major height slice by reference.
func (e *Elevation) Heights() []float32 { return e.grid.Cells() }

// Grid exposes the underlying float grid.
func (e *Elevation) Grid() *core.FloatGrid { return e.grid }

// Unroll projects pos onto a clamped cell index.
func (e *Elevation) Unroll(pos mgl32.Vec2) int { return e.grid.Unroll(pos) }

// HeightAt returns the height of the cell containing pos.
func (e *Elevation) HeightAt(pos mgl32.Vec2) float32 {
	return e.grid.Cells()[e.grid.Unroll(pos)]
}

// Gradient returns the finite-difference slope of the 2×2 window anchored at
// cell i. The window shifts left on the last column and up on the last row so
// every cell has a gradient.
func (e *Elevation) Gradient(i int) mgl32.Vec2 {
	size := e.grid.Size
	data := e.grid.Cells()
	if size < 2 || i < 0 || i >= len(data) {
		return mgl32.Vec2{}
	}
	x, y := e.grid.Coords(i)
	i = e.grid.Index(min(x, size-2), min(y, size-2))
	right := i + 1
	down := i + size
	diag := i + 1 + size
	return mgl32.Vec2{
		(data[right]-data[i])*0.5 + (data[diag]-data[down])*0.5,
		(data[down]-data[i])*0.5 + (data[diag]-data[right])*0.5,
	}
}

// Deposit adds amount (negative to erode) around the cell containing pos.
// Neighbours past the edge clamp onto the nearest valid cell, so the full
// amount always lands on the grid.
func (e *Elevation) Deposit(pos mgl32.Vec2, amount float32) {
	data := e.grid.Cells()
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			dist := abs(dx) + abs(dy)
			at := pos.Add(mgl32.Vec2{float32(dx), float32(dy)})
			data[e.grid.Unroll(at)] += amount * depositWeights[dist]
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
