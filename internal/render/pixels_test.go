package render

import (
	"image/color"
	"testing"
)

func TestFillCookieRGBAEndpoints(t *testing.T) {
	lit := color.RGBA{R: 250, G: 200, B: 100, A: 255}
	shadow := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	buf := make([]byte, 8)
	FillCookieRGBA(buf, []byte{255, 0}, lit, shadow)

	if buf[0] != 250 || buf[1] != 200 || buf[2] != 100 || buf[3] != 255 {
		t.Fatalf("lit texel = %v", buf[0:4])
	}
	if buf[4] != 10 || buf[5] != 20 || buf[6] != 30 || buf[7] != 255 {
		t.Fatalf("shadow texel = %v", buf[4:8])
	}
}

func TestFillRampRGBA(t *testing.T) {
	ramp := []color.RGBA{{R: 1, A: 255}, {R: 2, A: 255}, {R: 3, A: 255}}
	buf := make([]byte, 12)
	FillRampRGBA(buf, []byte{0, 128, 255}, ramp)
	if buf[0] != 1 || buf[4] != 2 || buf[8] != 3 {
		t.Fatalf("ramp lookup = %v", buf)
	}

	FillRampRGBA(buf, []byte{0, 128, 255}, nil)
	for _, b := range buf {
		if b != 0 {
			t.Fatal("empty ramp must clear the buffer")
		}
	}
}

func TestShadeRampEndpoints(t *testing.T) {
	ramp := ShadeRamp(DefaultLit, DefaultShadow, 8)
	if len(ramp) != 8 {
		t.Fatalf("len = %d", len(ramp))
	}
	if ramp[0] != DefaultShadow || ramp[7] != DefaultLit {
		t.Fatalf("endpoints %v .. %v", ramp[0], ramp[7])
	}
	if len(ShadeRamp(DefaultLit, DefaultShadow, 0)) != 2 {
		t.Fatal("ramp needs at least two steps")
	}
}

func TestHexRoundTrip(t *testing.T) {
	c, err := ParseHex("#2a3b4c")
	if err != nil {
		t.Fatal(err)
	}
	if Hex(c) != "#2a3b4c" {
		t.Fatalf("Hex = %s", Hex(c))
	}
	if _, err := ParseHex("blue"); err == nil {
		t.Fatal("expected a parse error")
	}
}
