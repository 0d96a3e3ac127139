// Package texture provides tileable cloud density maps: decoded images,
// Wallpaper Engine .tex containers and procedural noise.
package texture

import (
	"image"
	"image/color"
	"math"

	"cloud-shadows/internal/core"

	"golang.org/x/image/draw"
)

// Mask is a single-channel density map in [0,1]. It samples with bilinear
// filtering and repeats in both directions.
type Mask struct {
	W, H int
	Pix  []float32
	name string
}

// NewMask allocates an empty w x h mask.
func NewMask(w, h int) *Mask {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Mask{W: w, H: h, Pix: make([]float32, w*h)}
}

// Name is the reference presets use for this mask.
func (m *Mask) Name() string { return m.name }

// SetName changes the preset reference.
func (m *Mask) SetName(name string) { m.name = name }

// At returns the density at texel (x, y), wrapping out-of-range coordinates.
func (m *Mask) At(x, y int) float64 {
	return float64(m.Pix[core.WrapIndex(y, m.H)*m.W+core.WrapIndex(x, m.W)])
}

// Sample reads the mask at normalized coordinates with texel centers at
// (i+0.5)/W.
func (m *Mask) Sample(u, v float64) float64 {
	x := u*float64(m.W) - 0.5
	y := v*float64(m.H) - 0.5
	fx, fy := math.Floor(x), math.Floor(y)
	tx, ty := x-fx, y-fy
	ix, iy := int(fx), int(fy)
	a := core.Lerp(m.At(ix, iy), m.At(ix+1, iy), tx)
	b := core.Lerp(m.At(ix, iy+1), m.At(ix+1, iy+1), tx)
	return core.Lerp(a, b, ty)
}

// FromImage converts img to a mask. Density is the luma of the premultiplied
// color, so opaque grayscale images map directly and white images with an
// alpha channel map their alpha.
func FromImage(img image.Image) *Mask {
	bounds := img.Bounds()
	m := NewMask(bounds.Dx(), bounds.Dy())
	if gray, ok := img.(*image.Gray); ok {
		for y := 0; y < m.H; y++ {
			row := gray.Pix[y*gray.Stride : y*gray.Stride+m.W]
			for x, v := range row {
				m.Pix[y*m.W+x] = float32(v) / 255
			}
		}
		return m
	}
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			luma := (299*float64(r) + 587*float64(g) + 114*float64(b)) / 1000
			m.Pix[y*m.W+x] = float32(luma / 0xffff)
		}
	}
	return m
}

// maskImage adapts a Mask to image.Image.
type maskImage struct{ m *Mask }

func (mi maskImage) ColorModel() color.Model { return color.Gray16Model }
func (mi maskImage) Bounds() image.Rectangle { return image.Rect(0, 0, mi.m.W, mi.m.H) }
func (mi maskImage) At(x, y int) color.Color {
	return color.Gray16{Y: uint16(core.Clamp01(mi.m.At(x, y))*0xffff + 0.5)}
}

// Image exposes the mask as a 16-bit grayscale image without copying.
func (m *Mask) Image() image.Image { return maskImage{m} }

// Resize resamples the mask to w x h with bilinear filtering.
func (m *Mask) Resize(w, h int) *Mask {
	if w == m.W && h == m.H {
		return m
	}
	dst := image.NewGray16(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.BiLinear.Scale(dst, dst.Bounds(), m.Image(), m.Image().Bounds(), draw.Src, nil)
	out := NewMask(dst.Rect.Dx(), dst.Rect.Dy())
	for i := range out.Pix {
		out.Pix[i] = float32(uint16(dst.Pix[i*2])<<8|uint16(dst.Pix[i*2+1])) / 0xffff
	}
	out.name = m.name
	return out
}
