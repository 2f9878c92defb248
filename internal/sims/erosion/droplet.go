package erosion

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Droplet is a transient water parcel carrying sediment downhill.
type Droplet struct {
	Position  mgl32.Vec2
	Direction mgl32.Vec2
	Velocity  float32
	Water     float32
	Sediment  float32
	Age       int
}

// NewDroplet returns a fresh droplet at rest holding a full unit of water.
func NewDroplet(pos mgl32.Vec2) Droplet {
	return Droplet{Position: pos, Water: 1}
}

func (d *Droplet) finite() bool {
	for _, v := range [...]float32{d.Position[0], d.Position[1], d.Direction[0], d.Direction[1], d.Velocity, d.Water, d.Sediment} {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Pool is the dense working set of live droplets. Removal compacts in place,
// so insertion order is preserved and the backing array is reused across
// ticks.
type Pool struct {
	items []Droplet
}

// NewPool allocates a pool with room for capacity droplets.
func NewPool(capacity int) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool{items: make([]Droplet, 0, capacity)}
}

// Spawn adds a fresh droplet at pos.
func (p *Pool) Spawn(pos mgl32.Vec2) { p.items = append(p.items, NewDroplet(pos)) }

// Add appends an arbitrary droplet.
func (p *Pool) Add(d Droplet) { p.items = append(p.items, d) }

// Len returns the number of live droplets.
func (p *Pool) Len() int { return len(p.items) }

// At returns a pointer to the i-th droplet; it is invalidated by Retain.
func (p *Pool) At(i int) *Droplet { return &p.items[i] }

// Droplets exposes the live droplets for read access.
func (p *Pool) Droplets() []Droplet { return p.items }

// Retain keeps droplets for which keep returns true and reports how many were
// removed.
func (p *Pool) Retain(keep func(*Droplet) bool) int {
	n := 0
	for i := range p.items {
		if keep(&p.items[i]) {
			p.items[n] = p.items[i]
			n++
		}
	}
	removed := len(p.items) - n
	p.items = p.items[:n]
	return removed
}

// Reset empties the pool without releasing its storage.
func (p *Pool) Reset() { p.items = p.items[:0] }
