package clouds

import (
	"fmt"

	"cloud-shadows/internal/core"
)

// Buffer is a CPU render target storing RGBA texels as float32.
type Buffer struct {
	res int
	pix []float32
}

// NewBuffer allocates a res x res buffer of transparent black.
func NewBuffer(res int) *Buffer {
	if res < 1 {
		res = 1
	}
	return &Buffer{res: res, pix: make([]float32, res*res*4)}
}

// Resolution returns the side length in texels.
func (b *Buffer) Resolution() int { return b.res }

// Texel returns the RGBA value at (x, y).
func (b *Buffer) Texel(x, y int) Color {
	i := (y*b.res + x) * 4
	p := b.pix[i : i+4 : i+4]
	return Color{R: float64(p[0]), G: float64(p[1]), B: float64(p[2]), A: float64(p[3])}
}

// Alpha returns the shadow mask at (x, y); 1 is fully lit.
func (b *Buffer) Alpha(x, y int) float64 {
	return float64(b.pix[(y*b.res+x)*4+3])
}

// AlphaBytes quantizes the shadow mask into dst, growing it as needed, and
// returns it. Rows run top to bottom.
func (b *Buffer) AlphaBytes(dst []byte) []byte {
	n := b.res * b.res
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = uint8(core.Clamp01(float64(b.pix[i*4+3]))*255 + 0.5)
	}
	return dst
}

func (b *Buffer) fill(c Color) {
	r, g, bl, a := float32(c.R), float32(c.G), float32(c.B), float32(c.A)
	for i := 0; i < len(b.pix); i += 4 {
		b.pix[i], b.pix[i+1], b.pix[i+2], b.pix[i+3] = r, g, bl, a
	}
}

// CPUBlitter evaluates blend passes on the CPU. It is the reference
// implementation of the pass equations and backs headless baking.
type CPUBlitter struct {
	// Live counts buffers allocated and not yet released.
	Live int
}

// NewTarget allocates a Buffer.
func (c *CPUBlitter) NewTarget(res int) Target {
	c.Live++
	return NewBuffer(res)
}

// Clear fills dst with col.
func (c *CPUBlitter) Clear(dst Target, col Color) {
	mustBuffer(dst).fill(col)
}

// Release drops a buffer allocated by NewTarget.
func (c *CPUBlitter) Release(t Target) {
	if t != nil {
		c.Live--
	}
}

// Blit samples the layer texture once per destination texel, converts it to
// cloud cover and blends it into the source alpha. Color channels are copied.
func (c *CPUBlitter) Blit(src, dst Target, pass Pass) {
	in, out := mustBuffer(src), mustBuffer(dst)
	if in == out {
		panic("clouds: blit source and destination alias")
	}
	if in.res != out.res {
		panic(fmt.Sprintf("clouds: blit resolution mismatch %d != %d", in.res, out.res))
	}
	res := in.res
	inv := 1 / float64(res)
	tr, p := pass.Transform, pass.Params
	for y := 0; y < res; y++ {
		v := (float64(y) + 0.5) * inv
		row := y * res * 4
		for x := 0; x < res; x++ {
			u := (float64(x) + 0.5) * inv
			var sample float64
			if pass.Texture != nil {
				sample = pass.Texture.Sample(u*tr[0]+tr[2]-p[0], v*tr[1]+tr[3]-p[1])
			}
			cloud := CloudMask(sample, p[2], p[3])
			i := row + x*4
			copy(out.pix[i:i+3], in.pix[i:i+3])
			out.pix[i+3] = float32(ApplyBlend(pass.Mode, float64(in.pix[i+3]), cloud, pass.Opacity))
		}
	}
}

func mustBuffer(t Target) *Buffer {
	b, ok := t.(*Buffer)
	if !ok {
		panic(fmt.Sprintf("clouds: CPU blitter cannot use target %T", t))
	}
	return b
}
