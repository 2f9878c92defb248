package erosion

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// minDirectionLength is the shortest vector normalize will accept.
const minDirectionLength = 1e-20

// StepResult reports what a single droplet update did to the terrain.
type StepResult struct {
	HeightDrop float32
	Eroded     float32
	Deposited  float32
	// Guarded is set when the new direction could not be normalised and the
	// previous one was kept.
	Guarded bool
}

// Advance moves d one cell along the terrain and exchanges sediment with elev.
// Callers must run droplets one at a time against a given grid: each call
// reads heights written by the previous one.
// A droplet that is already non-finite is left untouched.
func (p Params) Advance(elev *Elevation, d *Droplet) StepResult {
	var res StepResult
	if !d.finite() {
		return res
	}

	g := elev.Gradient(elev.Unroll(d.Position))
	var want mgl32.Vec2
	if d.Direction == (mgl32.Vec2{}) {
		want = g.Mul(-1)
	} else {
		w := p.Inertia
		if p.Variant == VariantWeighted {
			w *= d.Velocity
		}
		want = d.Direction.Mul(w).Sub(g.Mul(1 - w))
	}
	if dir, ok := normalize(want); ok {
		d.Direction = dir
	} else {
		res.Guarded = true
	}

	oldPos := d.Position
	d.Position = d.Position.Add(d.Direction)

	newHeight := elev.HeightAt(d.Position)
	oldHeight := elev.HeightAt(oldPos)
	drop := oldHeight - newHeight
	res.HeightDrop = drop

	capacityDiff := max(drop, p.MinSlope)*d.Velocity*d.Water*p.Capacity - d.Sediment
	switch {
	case capacityDiff < 0:
		amount := -capacityDiff * p.Deposition
		d.Sediment -= amount
		elev.Deposit(oldPos, amount)
		res.Deposited = amount
	case p.Variant != VariantWeighted || newHeight >= 0:
		amount := min(capacityDiff*p.Erosion, drop)
		if amount > 0 {
			d.Sediment += amount
			elev.Deposit(oldPos, -amount)
			res.Eroded = amount
		}
	}

	d.Velocity = float32(math.Sqrt(float64(max(d.Velocity*d.Velocity+drop, 0))))

	evaporation := p.Evaporation
	if p.Variant == VariantWeighted {
		evaporation *= mgl32.Clamp(1-d.Velocity, 0, 1)
	}
	d.Water *= 1 - evaporation
	d.Age++
	return res
}

func normalize(v mgl32.Vec2) (mgl32.Vec2, bool) {
	l := v.Len()
	if !(l > minDirectionLength) || math.IsInf(float64(l), 0) {
		return v, false
	}
	return v.Mul(1 / l), true
}
