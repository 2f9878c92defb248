package tui

import (
	"image/color"
	"strings"
	"testing"

	"erode/internal/core"

	"github.com/gdamore/tcell/v2"
)

type fakeSource struct {
	size   core.Size
	cells  []uint8
	status string
}

func (f *fakeSource) Size() core.Size    { return f.size }
func (f *fakeSource) Cells() []uint8     { return f.cells }
func (f *fakeSource) StatusLine() string { return f.status }
func (f *fakeSource) Palette() []color.RGBA {
	return []color.RGBA{{R: 0, G: 0, B: 255, A: 255}, {R: 0, G: 255, B: 0, A: 255}}
}

func newScreen(t *testing.T, w, h int) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)
	screen.Clear()
	return screen
}

func background(t *testing.T, screen tcell.Screen, x, y int) tcell.Color {
	t.Helper()
	_, _, style, _ := screen.GetContent(x, y)
	_, bg, _ := style.Decompose()
	return bg
}

func TestDrawSamplesLeftAndRightHalves(t *testing.T) {
	src := &fakeSource{size: core.Size{W: 4, H: 4}, cells: make([]uint8, 16), status: "tick 3"}
	for y := 0; y < 4; y++ {
		src.cells[y*4+2] = 1
		src.cells[y*4+3] = 1
	}
	screen := newScreen(t, 8, 5)
	NewView(src).Draw(screen)

	blue := tcell.NewRGBColor(0, 0, 255)
	green := tcell.NewRGBColor(0, 255, 0)
	for y := 0; y < 4; y++ {
		if got := background(t, screen, 0, y); got != blue {
			t.Fatalf("cell (0,%d) background %v, want %v", y, got, blue)
		}
		if got := background(t, screen, 7, y); got != green {
			t.Fatalf("cell (7,%d) background %v, want %v", y, got, green)
		}
	}
}

func TestDrawWritesStatusLine(t *testing.T) {
	src := &fakeSource{size: core.Size{W: 2, H: 2}, cells: make([]uint8, 4), status: "tick 3"}
	screen := newScreen(t, 20, 3)
	view := NewView(src)
	view.SetPaused(true)
	view.Draw(screen)

	var b strings.Builder
	for x := 0; x < 20; x++ {
		r, _, _, _ := screen.GetContent(x, 2)
		b.WriteRune(r)
	}
	if got := strings.TrimSpace(b.String()); got != "[paused] tick 3" {
		t.Fatalf("status row %q", got)
	}
}

func TestDrawIgnoresMismatchedCells(t *testing.T) {
	src := &fakeSource{size: core.Size{W: 4, H: 4}, cells: make([]uint8, 3)}
	screen := newScreen(t, 4, 4)
	NewView(src).Draw(screen)
	if got := background(t, screen, 0, 0); got != tcell.ColorDefault {
		t.Fatalf("expected untouched screen, got background %v", got)
	}
}
