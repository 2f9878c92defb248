package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestUnrollClampsEachAxis(t *testing.T) {
	const size = 4
	cases := []struct {
		name string
		pos  mgl32.Vec2
		want int
	}{
		{"origin", mgl32.Vec2{0, 0}, 0},
		{"interior", mgl32.Vec2{1.9, 2.1}, 1 + 2*size},
		{"far negative", mgl32.Vec2{float32(math.Inf(-1)), -1}, 0},
		{"just below zero", mgl32.Vec2{-0.25, -0.5}, 0},
		{"at size", mgl32.Vec2{size, size}, (size - 1) + (size-1)*size},
		{"past size x", mgl32.Vec2{1e9, 1}, (size - 1) + size},
		{"past size y", mgl32.Vec2{2, float32(math.Inf(1))}, 2 + (size-1)*size},
		{"nan", mgl32.Vec2{float32(math.NaN()), float32(math.NaN())}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Unroll(tc.pos, size)
			if got != tc.want {
				t.Fatalf("Unroll(%v) = %d, want %d", tc.pos, got, tc.want)
			}
			if got < 0 || got >= size*size {
				t.Fatalf("Unroll(%v) = %d out of range", tc.pos, got)
			}
		})
	}
}

func TestFloatGridIndexCoords(t *testing.T) {
	g := NewFloatGrid(5)
	if g.Len() != 25 {
		t.Fatalf("expected 25 cells, got %d", g.Len())
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			i := g.Index(x, y)
			gx, gy := g.Coords(i)
			if gx != x || gy != y {
				t.Fatalf("Coords(Index(%d,%d)) = (%d,%d)", x, y, gx, gy)
			}
		}
	}
}

func TestFloatGridFromRejectsMismatchedLength(t *testing.T) {
	if FloatGridFrom(3, make([]float32, 8)) != nil {
		t.Fatal("expected nil for a slice that is not size*size")
	}
	g := FloatGridFrom(2, []float32{1, 2, 3, 4})
	if g == nil || g.Sum() != 10 {
		t.Fatalf("expected wrapped grid summing to 10, got %+v", g)
	}
}
