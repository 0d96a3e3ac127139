//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// CookiePainter uploads cookie masks into an RGBA image and draws it.
type CookiePainter struct {
	res int
	img *ebiten.Image
	buf []byte
}

// NewCookiePainter allocates a painter for a res x res cookie.
func NewCookiePainter(res int) *CookiePainter {
	cp := &CookiePainter{}
	cp.resize(res)
	return cp
}

func (cp *CookiePainter) resize(res int) {
	if cp.img != nil {
		cp.img.Deallocate()
	}
	cp.res = res
	cp.buf = make([]byte, 4*res*res)
	cp.img = ebiten.NewImage(res, res)
}

// Blit uploads alpha tinted between shadow and lit and draws it scaled to size
// screen pixels at (x, y). A mask of a different resolution resizes the painter.
func (cp *CookiePainter) Blit(dst *ebiten.Image, alpha []byte, lit, shadow color.Color, x, y, size float64) {
	if len(alpha) != cp.res*cp.res {
		res := 1
		for res*res < len(alpha) {
			res++
		}
		if res*res != len(alpha) {
			return
		}
		cp.resize(res)
	}
	FillCookieRGBA(cp.buf, alpha, lit, shadow)
	cp.img.WritePixels(cp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size/float64(cp.res), size/float64(cp.res))
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(cp.img, op)
}

// Resolution returns the side length of the underlying image.
func (cp *CookiePainter) Resolution() int { return cp.res }
