package texture

import (
	"fmt"
	"math"

	"cloud-shadows/internal/core"
)

// Procedural generates a tileable size x size fBm cloud mask. Each octave is
// periodic value noise on a lattice that divides size, so the result repeats
// seamlessly. The output is normalized to [0,1].
func Procedural(size int, seed int64, octaves int) *Mask {
	if size < 4 {
		size = 4
	}
	if octaves < 1 {
		octaves = 1
	}
	rng := core.NewRNG(seed)
	m := NewMask(size, size)
	acc := make([]float64, size*size)
	amp := 1.0
	cells := 4
	for o := 0; o < octaves && cells <= size; o++ {
		lattice := make([]float32, cells*cells)
		core.FillUnit(rng.Source(), lattice)
		scale := float64(cells) / float64(size)
		for y := 0; y < size; y++ {
			ly := float64(y) * scale
			y0 := int(ly)
			ty := core.Smoothstep(0, 1, ly-float64(y0))
			for x := 0; x < size; x++ {
				lx := float64(x) * scale
				x0 := int(lx)
				tx := core.Smoothstep(0, 1, lx-float64(x0))
				v00 := lattice[core.WrapIndex(y0, cells)*cells+core.WrapIndex(x0, cells)]
				v10 := lattice[core.WrapIndex(y0, cells)*cells+core.WrapIndex(x0+1, cells)]
				v01 := lattice[core.WrapIndex(y0+1, cells)*cells+core.WrapIndex(x0, cells)]
				v11 := lattice[core.WrapIndex(y0+1, cells)*cells+core.WrapIndex(x0+1, cells)]
				top := core.Lerp(float64(v00), float64(v10), tx)
				bottom := core.Lerp(float64(v01), float64(v11), tx)
				acc[y*size+x] += amp * core.Lerp(top, bottom, ty)
			}
		}
		amp *= 0.5
		cells *= 2
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range acc {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	for i, v := range acc {
		if span > 0 {
			m.Pix[i] = float32((v - lo) / span)
		}
	}
	m.name = ProceduralName(seed, octaves)
	return m
}

// ProceduralName is the preset reference that regenerates a procedural mask.
func ProceduralName(seed int64, octaves int) string {
	return fmt.Sprintf("procedural:%d:%d", seed, octaves)
}
