package gpu

import (
	"testing"

	"cloud-shadows/internal/texture"
)

func TestRasterizeTexture(t *testing.T) {
	buf := RasterizeTexture(constTex(0.5), 4)
	if len(buf) != 64 {
		t.Fatalf("len = %d", len(buf))
	}
	for i := 0; i < len(buf); i += 4 {
		if buf[i] != 128 || buf[i+3] != 255 {
			t.Fatalf("texel %d = %v", i/4, buf[i:i+4])
		}
	}

	m := texture.NewMask(2, 2)
	for i := range m.Pix {
		m.Pix[i] = 1
	}
	buf = RasterizeTexture(m, 8)
	for i := 0; i < len(buf); i += 4 {
		if buf[i] < 254 {
			t.Fatalf("resampled white texel = %d", buf[i])
		}
	}
}
