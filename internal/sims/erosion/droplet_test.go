package erosion

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewDropletAtRest(t *testing.T) {
	d := NewDroplet(mgl32.Vec2{1, 1})
	if d.Water != 1 || d.Velocity != 0 || d.Sediment != 0 || d.Direction != (mgl32.Vec2{}) {
		t.Fatalf("unexpected initial droplet %+v", d)
	}
}

func TestPoolRetainPreservesOrderAndStorage(t *testing.T) {
	pool := NewPool(8)
	for i := 0; i < 6; i++ {
		pool.Spawn(mgl32.Vec2{float32(i), 0})
	}
	before := cap(pool.Droplets())

	removed := pool.Retain(func(d *Droplet) bool { return int(d.Position.X())%2 == 0 })
	if removed != 3 {
		t.Fatalf("expected 3 removed, got %d", removed)
	}
	got := pool.Droplets()
	for i, want := range []float32{0, 2, 4} {
		if got[i].Position.X() != want {
			t.Fatalf("slot %d holds x=%f, want %f", i, got[i].Position.X(), want)
		}
	}
	if cap(pool.Droplets()) != before {
		t.Fatal("retain should reuse the backing array")
	}

	pool.Reset()
	if pool.Len() != 0 {
		t.Fatalf("reset left %d droplets", pool.Len())
	}
}
