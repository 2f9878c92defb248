package erosion

import (
	"math"
	"testing"

	pcore "erode/pkg/core"

	"github.com/go-gl/mathgl/mgl32"
)

func newTestElevation(t *testing.T, size int, heights []float32) *Elevation {
	t.Helper()
	if heights == nil {
		heights = make([]float32, size*size)
	}
	elev, err := NewElevation(size, heights)
	if err != nil {
		t.Fatalf("NewElevation: %v", err)
	}
	return elev
}

func approx(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func TestGradientKnownValues(t *testing.T) {
	// High corner top-left.
	elev := newTestElevation(t, 3, []float32{
		1, 0, 0,
		0, 0, 0,
		0, 0, 0,
	})
	if g := elev.Gradient(0); !approx(g.X(), -0.5, 1e-7) || !approx(g.Y(), -0.5, 1e-7) {
		t.Fatalf("gradient at high corner = %v, want (-0.5,-0.5)", g)
	}
	if g := elev.Gradient(4); g != (mgl32.Vec2{}) {
		t.Fatalf("gradient away from the corner should be zero, got %v", g)
	}

	// High corner bottom-right exercises both edge shifts.
	elev = newTestElevation(t, 3, []float32{
		0, 0, 0,
		0, 0, 0,
		0, 0, 1,
	})
	for _, i := range []int{4, 5, 7, 8} {
		if g := elev.Gradient(i); !approx(g.X(), 0.5, 1e-7) || !approx(g.Y(), 0.5, 1e-7) {
			t.Fatalf("gradient(%d) = %v, want (0.5,0.5)", i, g)
		}
	}
	if g := elev.Gradient(2); g != (mgl32.Vec2{}) {
		t.Fatalf("last-column gradient on the top row should use window at 1, got %v", g)
	}
}

func TestGradientStaysInBounds(t *testing.T) {
	rng := pcore.NewRNG(3)
	for size := 2; size <= 7; size++ {
		heights := make([]float32, size*size)
		for i := range heights {
			heights[i] = rng.Float32()*2 - 1
		}
		elev := newTestElevation(t, size, heights)
		for i := range heights {
			g := elev.Gradient(i)
			if math.IsNaN(float64(g.X())) || math.IsNaN(float64(g.Y())) {
				t.Fatalf("size %d index %d produced NaN gradient", size, i)
			}
		}
		if g := elev.Gradient(len(heights)); g != (mgl32.Vec2{}) {
			t.Fatalf("out of range index should yield zero gradient, got %v", g)
		}
	}
}

func TestDepositConservesMassInterior(t *testing.T) {
	elev := newTestElevation(t, 5, nil)
	elev.Deposit(mgl32.Vec2{2.5, 2.5}, 1)

	h := elev.Heights()
	want := map[int]float32{
		12: 0.4,
		7:  0.1, 11: 0.1, 13: 0.1, 17: 0.1,
		6: 0.05, 8: 0.05, 16: 0.05, 18: 0.05,
	}
	var sum float32
	for i, v := range h {
		sum += v
		if w, ok := want[i]; ok {
			if !approx(v, w, 1e-7) {
				t.Fatalf("cell %d = %f, want %f", i, v, w)
			}
		} else if v != 0 {
			t.Fatalf("cell %d outside the neighbourhood changed to %f", i, v)
		}
	}
	if !approx(sum, 1, 1e-6) {
		t.Fatalf("deposit total = %f, want 1", sum)
	}
}

func TestDepositClampsAtCorner(t *testing.T) {
	elev := newTestElevation(t, 3, nil)
	elev.Deposit(mgl32.Vec2{0.5, 0.5}, -2)

	h := elev.Heights()
	expect := []float32{-1.3, -0.3, 0, -0.3, -0.1, 0, 0, 0, 0}
	var sum float32
	for i, v := range h {
		sum += v
		if !approx(v, expect[i], 1e-6) {
			t.Fatalf("cell %d = %f, want %f", i, v, expect[i])
		}
	}
	if !approx(sum, -2, 1e-6) {
		t.Fatalf("edge deposit lost mass: total %f", sum)
	}
}

func TestHeightAtClampsPosition(t *testing.T) {
	elev := newTestElevation(t, 2, []float32{1, 2, 3, 4})
	cases := []struct {
		pos  mgl32.Vec2
		want float32
	}{
		{mgl32.Vec2{-5, -5}, 1},
		{mgl32.Vec2{1.5, 0.2}, 2},
		{mgl32.Vec2{0.2, 9}, 3},
		{mgl32.Vec2{9, 9}, 4},
	}
	for _, tc := range cases {
		if got := elev.HeightAt(tc.pos); got != tc.want {
			t.Fatalf("HeightAt(%v) = %f, want %f", tc.pos, got, tc.want)
		}
	}
}

func TestNewElevationRejectsBadLength(t *testing.T) {
	if _, err := NewElevation(3, make([]float32, 4)); err == nil {
		t.Fatal("expected error for mismatched height count")
	}
}
