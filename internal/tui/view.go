// Package tui renders a palette-indexed simulation onto a terminal screen.
package tui

import (
	"image/color"

	"erode/internal/core"

	"github.com/gdamore/tcell/v2"
)

// Source is the subset of a simulation the terminal view needs.
type Source interface {
	Size() core.Size
	Cells() []uint8
}

type paletteProvider interface {
	Palette() []color.RGBA
}

type statusProvider interface {
	StatusLine() string
}

// View maps grid cells onto terminal cells by nearest sampling. The bottom row
// is reserved for a status line when the source provides one.
type View struct {
	src     Source
	palette []tcell.Color
	status  statusProvider
	paused  bool
}

// NewView builds a view over src. Sources without a palette render in
// greyscale.
func NewView(src Source) *View {
	v := &View{src: src}
	if p, ok := src.(paletteProvider); ok {
		v.palette = convertPalette(p.Palette())
	}
	v.status, _ = src.(statusProvider)
	return v
}

// SetPaused marks the status line as paused.
func (v *View) SetPaused(paused bool) { v.paused = paused }

// Draw paints the current cells. The caller is responsible for Show.
func (v *View) Draw(screen tcell.Screen) {
	cols, rows := screen.Size()
	mapRows := rows
	if v.status != nil && rows > 1 {
		mapRows--
	}
	size := v.src.Size()
	cells := v.src.Cells()
	if cols <= 0 || mapRows <= 0 || len(cells) != size.W*size.H {
		return
	}
	for y := 0; y < mapRows; y++ {
		gy := y * size.H / mapRows
		for x := 0; x < cols; x++ {
			gx := x * size.W / cols
			style := tcell.StyleDefault.Background(v.color(cells[gy*size.W+gx]))
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
	if mapRows < rows {
		v.drawStatus(screen, cols, rows-1)
	}
}

func (v *View) drawStatus(screen tcell.Screen, cols, row int) {
	line := v.status.StatusLine()
	if v.paused {
		line = "[paused] " + line
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	runes := []rune(line)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		screen.SetContent(x, row, r, nil, style)
	}
}

func (v *View) color(c uint8) tcell.Color {
	if len(v.palette) == 0 {
		return tcell.NewRGBColor(int32(c), int32(c), int32(c))
	}
	if int(c) >= len(v.palette) {
		return v.palette[len(v.palette)-1]
	}
	return v.palette[c]
}

func convertPalette(p []color.RGBA) []tcell.Color {
	out := make([]tcell.Color, len(p))
	for i, c := range p {
		out[i] = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return out
}
