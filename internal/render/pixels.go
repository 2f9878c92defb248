package render

import "image/color"

// FillPaletteRGBA converts cell values into RGBA pixels using a palette. Values
// past the end of the palette use its last entry; an empty palette clears the
// buffer to transparent black.
func FillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(cells)])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Downsample reduces a size×size float field to out×out by averaging square
// blocks. When out is not smaller than size the field is copied.
func Downsample(field []float32, size, out int) []float32 {
	if size <= 0 || out <= 0 || len(field) != size*size {
		return nil
	}
	if out >= size {
		return append([]float32(nil), field...)
	}
	res := make([]float32, out*out)
	counts := make([]int, out*out)
	for y := 0; y < size; y++ {
		oy := y * out / size
		for x := 0; x < size; x++ {
			ox := x * out / size
			res[oy*out+ox] += field[y*size+x]
			counts[oy*out+ox]++
		}
	}
	for i, n := range counts {
		if n > 0 {
			res[i] /= float32(n)
		}
	}
	return res
}
