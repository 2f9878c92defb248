package erosion

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Tile classifies a cell for display.
type Tile uint8

const (
	TileSea Tile = iota
	TileRock
	TileHerb
	TileWet
	TileSource
)

const (
	displayShadeBits = 5
	displayShadeMask = 1<<displayShadeBits - 1

	// rockSlope is the gradient length above which land reads as bare rock.
	rockSlope = 0.008
)

var erosionPalette = buildErosionPalette()

// Palette exposes the colour palette used for rendering the display buffer.
func (w *World) Palette() []color.RGBA { return erosionPalette }

// Cells exposes the display buffer, one encoded tile per grid cell.
func (w *World) Cells() []uint8 {
	if w.displayDirty {
		w.rebuildDisplay()
		w.displayDirty = false
	}
	return w.display
}

// DecodeDisplay splits a display value into its tile and shade in [0, 1].
func DecodeDisplay(v uint8) (Tile, float32) {
	return Tile(v >> displayShadeBits), float32(v&displayShadeMask) / displayShadeMask
}

func encodeDisplay(tile Tile, shade float32) uint8 {
	s := uint8(mgl32.Clamp(shade, 0, 1)*displayShadeMask + 0.5)
	return uint8(tile)<<displayShadeBits | s
}

// Classify returns the display tile and shade for a bare terrain cell.
func Classify(height, slope float32) (Tile, float32) {
	switch {
	case height < 0:
		return TileSea, -height
	case slope > rockSlope:
		return TileRock, height
	default:
		return TileHerb, height
	}
}

func (w *World) rebuildDisplay() {
	heights := w.elev.Heights()
	for i, h := range heights {
		tile, shade := Classify(h, w.elev.Gradient(i).Len())
		w.display[i] = encodeDisplay(tile, shade)
	}
	for _, src := range w.sources.Sources() {
		w.display[w.elev.Unroll(src.Position)] = encodeDisplay(TileSource, 1)
	}
	for _, d := range w.pool.Droplets() {
		i := w.elev.Unroll(d.Position)
		if tile, _ := DecodeDisplay(w.display[i]); tile == TileSea || tile == TileSource {
			continue
		}
		w.display[i] = encodeDisplay(TileWet, d.Water)
	}
}

func buildErosionPalette() []color.RGBA {
	palette := make([]color.RGBA, 256)
	for i := range palette {
		tile, shade := DecodeDisplay(uint8(i))
		palette[i] = tileColor(tile, shade)
	}
	return palette
}

func tileColor(tile Tile, shade float32) color.RGBA {
	v := shade * 255
	switch tile {
	case TileSea:
		depth := 1 - shade*0.8
		return color.RGBA{R: uint8(3 * depth), G: uint8(13 * depth), B: uint8(51 * depth), A: 255}
	case TileRock:
		return color.RGBA{R: uint8(v), G: uint8(v / 2), B: uint8(v / 3), A: 255}
	case TileHerb:
		return color.RGBA{R: uint8(v / 4), G: uint8(v), B: uint8(v / 3), A: 255}
	case TileWet:
		dry := (1 - shade) * 96
		return color.RGBA{R: uint8(dry), G: uint8(dry), B: uint8(min(v+dry, 255)), A: 255}
	case TileSource:
		return color.RGBA{R: 255, A: 255}
	default:
		return color.RGBA{A: 255}
	}
}
