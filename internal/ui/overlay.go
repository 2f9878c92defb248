//go:build ebiten

package ui

import (
	"image/color"

	"erode/internal/core"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type slopeProvider interface {
	Heights() []float32
	Gradient(i int) mgl32.Vec2
}

type statusProvider interface {
	StatusLine() string
}

// Overlay draws optional debugging visuals on top of the base simulation.
type Overlay struct {
	sim        core.Sim
	scale      int
	showSlope  bool
	showStatus bool

	slopeImg *ebiten.Image
	slopeBuf []byte
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	return &Overlay{sim: sim, scale: scale, showStatus: true}
}

// Update toggles layers: G for the slope heat map, I for the status line.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		o.showSlope = !o.showSlope
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		o.showStatus = !o.showStatus
	}
}

// Draw paints the enabled layers.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.showSlope {
		o.drawSlope(screen)
	}
	if o.showStatus {
		if p, ok := o.sim.(statusProvider); ok {
			ebitenutil.DebugPrint(screen, p.StatusLine())
		}
	}
}

func (o *Overlay) drawSlope(screen *ebiten.Image) {
	p, ok := o.sim.(slopeProvider)
	if !ok {
		return
	}
	size := o.sim.Size()
	total := size.W * size.H
	if len(p.Heights()) != total {
		return
	}
	if o.slopeImg == nil {
		o.slopeImg = ebiten.NewImage(size.W, size.H)
		o.slopeBuf = make([]byte, 4*total)
	}
	for i := 0; i < total; i++ {
		s := mgl32.Clamp(p.Gradient(i).Len()*40, 0, 1)
		c := color.RGBA{R: uint8(255 * s), G: uint8(96 * s), A: uint8(200 * s)}
		o.slopeBuf[4*i+0] = c.R
		o.slopeBuf[4*i+1] = c.G
		o.slopeBuf[4*i+2] = c.B
		o.slopeBuf[4*i+3] = c.A
	}
	o.slopeImg.WritePixels(o.slopeBuf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.slopeImg, op)
}
