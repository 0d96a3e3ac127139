//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"math"

	"cloud-shadows/internal/clouds"
	"cloud-shadows/internal/texture"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var layerKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// Overlay draws optional debugging visuals on top of the cookie preview.
type Overlay struct {
	effect   *clouds.Effect
	view     int
	showWind bool
	showList bool
	showMask bool
	selected int

	maskImg *ebiten.Image
	maskBuf []byte
	maskSrc *texture.Mask

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay for an effect previewed in a square of
// view pixels.
func NewOverlay(effect *clouds.Effect, view int) *Overlay {
	o := &Overlay{effect: effect, view: view, showWind: true, showList: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update handles overlay key bindings. Digits toggle layer visibility.
func (o *Overlay) Update() {
	for i, key := range layerKeys {
		if inpututil.IsKeyJustPressed(key) {
			o.effect.ToggleLayer(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyW) {
		o.showWind = !o.showWind
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		o.showList = !o.showList
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		o.showMask = !o.showMask
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if n := o.effect.Layers().Len(); n > 0 {
			o.selected = (o.selected + 1) % n
		}
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if o.view <= 0 {
		return
	}
	layers := o.effect.Layers()
	if o.showMask && o.selected < layers.Len() {
		cfg := &layers.At(o.selected).Config
		if mask, ok := cfg.Texture().(*texture.Mask); ok {
			o.drawMask(screen, mask, color.RGBA{R: 64, G: 164, B: 223})
		}
	}
	if o.showWind {
		o.drawWind(screen, layers)
	}
	o.drawSun(screen)
	if o.showList {
		o.drawLayerList(screen, layers)
	}
}

func (o *Overlay) drawWind(screen *ebiten.Image, layers *clouds.LayerStore) {
	g := o.effect.Global()
	fastest := 0.0
	for _, layer := range layers.All() {
		fastest = max(fastest, layer.Config.Speed())
	}
	if fastest <= 0 {
		return
	}
	cx := float64(o.view) * 0.5
	cy := float64(o.view) * 0.5
	reach := float64(o.view) * 0.35
	for i, layer := range layers.All() {
		if !layer.Config.Visible() {
			continue
		}
		t := layer.Config.Speed() / fastest
		dir := clouds.LayerDirection(layer.Config.Direction(), g.DirectionModifier())
		length := reach * (0.25 + 0.75*t)
		tipX := cx + dir.X*length
		tipY := cy + dir.Y*length
		col := interpolateColor(t)
		if i == o.selected {
			col = color.RGBA{R: 255, G: 210, B: 90, A: 230}
		}
		o.drawLine(screen, cx, cy, tipX, tipY, 2, col)
		heading := math.Atan2(dir.Y, dir.X)
		for _, side := range []float64{-1, 1} {
			a := heading + math.Pi - side*math.Pi/6
			o.drawLine(screen, tipX, tipY, tipX+math.Cos(a)*10, tipY+math.Sin(a)*10, 2, col)
		}
	}
	o.drawPoint(screen, cx, cy, 5, color.RGBA{R: 255, G: 255, B: 255, A: 200})
}

// drawSun plots the light direction on a small compass in the top right
// corner. The needle shortens as the sun climbs towards the zenith.
func (o *Overlay) drawSun(screen *ebiten.Image) {
	light, ok := o.effect.Light().(*clouds.DirectionalLight)
	if !ok {
		return
	}
	const radius = 28.0
	cx := float64(o.view) - radius - 12
	cy := radius + 12
	for step := 0; step < 32; step++ {
		a := float64(step) / 32 * 2 * math.Pi
		o.drawPoint(screen, cx+math.Cos(a)*radius, cy+math.Sin(a)*radius, 2, color.RGBA{R: 200, G: 200, B: 200, A: 160})
	}
	el := light.Elevation() * math.Pi / 180
	az := light.Azimuth() * math.Pi / 180
	reach := radius * math.Cos(el)
	x := cx + math.Sin(az)*reach
	y := cy - math.Cos(az)*reach
	tint := color.RGBA{R: 255, G: 196, B: 64, A: 255}
	angle := clouds.AngleToHorizon(light.Forward())
	if clouds.HorizonFactor(angle, o.effect.Global()) <= 0 {
		tint = color.RGBA{R: 120, G: 120, B: 140, A: 255}
	}
	o.drawLine(screen, cx, cy, x, y, 1.5, tint)
	o.drawPoint(screen, x, y, 7, tint)
	text.Draw(screen, fmt.Sprintf("%.0f°", angle), basicfont.Face7x13, int(cx-radius), int(cy+radius+16), color.White)
}

func (o *Overlay) drawLayerList(screen *ebiten.Image, layers *clouds.LayerStore) {
	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil() + 2
	y := lineHeight + 4
	for i, layer := range layers.All() {
		cfg := &layer.Config
		col := color.RGBA{R: 240, G: 240, B: 240, A: 255}
		if !cfg.Visible() {
			col = color.RGBA{R: 130, G: 130, B: 130, A: 255}
		}
		marker := " "
		if i == o.selected {
			marker = ">"
		}
		label := fmt.Sprintf("%s%d %s [%s] %.2f", marker, i+1, cfg.Name(), cfg.BlendMode(), cfg.Opacity())
		text.Draw(screen, label, face, 8, y, col)
		y += lineHeight
	}
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if o.pixel == nil || size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(color.NRGBA(col))
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(color.NRGBA(col))
	screen.DrawImage(o.pixel, op)
}

// drawMask tints the selected layer's raw texture over the view, stretched to
// a single tile.
func (o *Overlay) drawMask(screen *ebiten.Image, mask *texture.Mask, tint color.RGBA) {
	total := mask.W * mask.H
	if total == 0 || len(mask.Pix) != total {
		return
	}
	if o.maskImg == nil || o.maskImg.Bounds().Dx() != mask.W || o.maskImg.Bounds().Dy() != mask.H {
		if o.maskImg != nil {
			o.maskImg.Deallocate()
		}
		o.maskImg = ebiten.NewImage(mask.W, mask.H)
		o.maskBuf = make([]byte, 4*total)
		o.maskSrc = nil
	}
	if o.maskSrc != mask {
		const (
			maxAlpha      = 140.0
			glowBase      = 0.35
			glowRange     = 0.65
			intensityBias = 0.75
		)
		for i := 0; i < total; i++ {
			base := i * 4
			intensity := clamp01(float64(mask.Pix[i]))
			if intensity == 0 {
				clear(o.maskBuf[base : base+4])
				continue
			}
			alpha := math.Round(maxAlpha * math.Pow(intensity, intensityBias))
			glow := (glowBase + glowRange*math.Sqrt(intensity)) * alpha / 255
			o.maskBuf[base+0] = scaleColorComponent(tint.R, glow)
			o.maskBuf[base+1] = scaleColorComponent(tint.G, glow)
			o.maskBuf[base+2] = scaleColorComponent(tint.B, glow)
			o.maskBuf[base+3] = uint8(alpha)
		}
		o.maskImg.WritePixels(o.maskBuf)
		o.maskSrc = mask
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.view)/float64(mask.W), float64(o.view)/float64(mask.H))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(o.maskImg, op)
}

func interpolateColor(t float64) color.RGBA {
	t = clamp01(t)
	r := uint8(math.Round(80 + 70*t))
	g := uint8(math.Round(170 + 70*t))
	b := uint8(math.Round(230 + 20*t))
	a := uint8(math.Round(150 + 90*t))
	return color.RGBA{R: r, G: g, B: b, A: a}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scaleColorComponent(value uint8, factor float64) uint8 {
	scaled := math.Round(float64(value) * factor)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
