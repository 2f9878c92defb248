// Package stream serves erosion world snapshots over websockets.
package stream

import (
	"erode/internal/render"
	"erode/internal/sims/erosion"
)

// Snapshot is the JSON frame pushed to every connected client.
type Snapshot struct {
	Tick   uint64 `json:"tick"`
	Seed   int64  `json:"seed"`
	Paused bool   `json:"paused"`

	// Variant names the droplet update rule in effect.
	Variant string `json:"variant"`

	// Size is the side of the simulated grid; Resolution is the side of the
	// downsampled Heights field.
	Size       int          `json:"size"`
	Resolution int          `json:"resolution"`
	Heights    []float32    `json:"heights"`
	Droplets   [][2]float32 `json:"droplets"`
	Sources    [][2]float32 `json:"sources"`
}

// TakeSnapshot captures w with heights averaged down to resolution cells per
// side. Positions stay in grid coordinates.
func TakeSnapshot(w *erosion.World, resolution int) Snapshot {
	size := w.Config().Size
	if resolution <= 0 || resolution > size {
		resolution = size
	}
	snap := Snapshot{
		Tick:       w.Tick(),
		Variant:    w.Config().Params.Variant.String(),
		Size:       size,
		Resolution: resolution,
		Heights:    render.Downsample(w.Heights(), size, resolution),
	}
	droplets := w.Droplets()
	snap.Droplets = make([][2]float32, len(droplets))
	for i, d := range droplets {
		snap.Droplets[i] = [2]float32{d.Position.X(), d.Position.Y()}
	}
	sources := w.Sources()
	snap.Sources = make([][2]float32, len(sources))
	for i, s := range sources {
		snap.Sources[i] = [2]float32{s.Position.X(), s.Position.Y()}
	}
	return snap
}
