package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Default cookie colors: warm sunlight and a cool blue shadow.
var (
	DefaultLit    = color.RGBA{R: 255, G: 244, B: 214, A: 255}
	DefaultShadow = color.RGBA{R: 38, G: 52, B: 84, A: 255}
)

// ShadeRamp returns steps colors blended from shadow to lit in CIE Lab space,
// which keeps the perceived brightness steps even.
func ShadeRamp(lit, shadow color.Color, steps int) []color.RGBA {
	if steps < 2 {
		steps = 2
	}
	from, _ := colorful.MakeColor(shadow)
	to, _ := colorful.MakeColor(lit)
	ramp := make([]color.RGBA, steps)
	for i := range ramp {
		t := float64(i) / float64(steps-1)
		r, g, b := from.BlendLab(to, t).Clamped().RGB255()
		ramp[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return ramp
}

// Hex formats c as #rrggbb.
func Hex(c color.Color) string {
	cc, _ := colorful.MakeColor(c)
	return cc.Hex()
}

// ParseHex reads a #rrggbb color.
func ParseHex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
