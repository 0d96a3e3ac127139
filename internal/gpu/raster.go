package gpu

import (
	"cloud-shadows/internal/clouds"
	"cloud-shadows/internal/core"
	"cloud-shadows/internal/texture"
)

// RasterizeTexture renders tex into res x res RGBA bytes with the density in
// every channel. Masks are resampled with bilinear filtering; other textures
// are point sampled at texel centers.
func RasterizeTexture(tex clouds.Texture, res int) []byte {
	buf := make([]byte, res*res*4)
	put := func(i int, v float64) {
		b := uint8(core.Clamp01(v)*255 + 0.5)
		buf[i*4], buf[i*4+1], buf[i*4+2], buf[i*4+3] = b, b, b, 255
	}
	if m, ok := tex.(*texture.Mask); ok {
		scaled := m.Resize(res, res)
		for i, v := range scaled.Pix {
			put(i, float64(v))
		}
		return buf
	}
	inv := 1 / float64(res)
	for y := 0; y < res; y++ {
		for x := 0; x < res; x++ {
			put(y*res+x, tex.Sample((float64(x)+0.5)*inv, (float64(y)+0.5)*inv))
		}
	}
	return buf
}
