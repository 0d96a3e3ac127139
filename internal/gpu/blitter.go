//go:build ebiten

package gpu

import (
	"fmt"
	"image/color"

	"cloud-shadows/internal/clouds"
	"cloud-shadows/internal/logging"

	"github.com/hajimehoshi/ebiten/v2"
)

// Target is a cookie buffer held in an offscreen ebiten image.
type Target struct {
	img *ebiten.Image
	res int
}

// Resolution returns the side length.
func (t *Target) Resolution() int { return t.res }

// Image exposes the GPU image for drawing.
func (t *Target) Image() *ebiten.Image { return t.img }

// AlphaBytes reads the shadow mask back from the GPU.
func (t *Target) AlphaBytes(dst []byte) []byte {
	pix := make([]byte, t.res*t.res*4)
	t.img.ReadPixels(pix)
	n := t.res * t.res
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = pix[i*4+3]
	}
	return dst
}

type textureKey struct {
	tex clouds.Texture
	res int
}

// Blitter runs blend passes with the Kage shader.
type Blitter struct {
	shader   *ebiten.Shader
	textures map[textureKey]*ebiten.Image
	blank    map[int]*ebiten.Image
}

// NewBlitter compiles the blend shader.
func NewBlitter() (*Blitter, error) {
	shader, err := ebiten.NewShader(blendShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("compile blend shader: %w", err)
	}
	return &Blitter{
		shader:   shader,
		textures: make(map[textureKey]*ebiten.Image),
		blank:    make(map[int]*ebiten.Image),
	}, nil
}

// NewTarget allocates an offscreen image.
func (b *Blitter) NewTarget(res int) clouds.Target {
	return &Target{img: ebiten.NewImage(res, res), res: res}
}

// Clear fills dst with c.
func (b *Blitter) Clear(dst clouds.Target, c clouds.Color) {
	t := mustTarget(dst)
	t.img.Fill(color.RGBA64{
		R: unit16(c.R * c.A),
		G: unit16(c.G * c.A),
		B: unit16(c.B * c.A),
		A: unit16(c.A),
	})
}

// Blit draws one blend pass from src into dst.
func (b *Blitter) Blit(src, dst clouds.Target, pass clouds.Pass) {
	in, out := mustTarget(src), mustTarget(dst)
	if in == out {
		panic("gpu: blit source and destination alias")
	}
	op := &ebiten.DrawRectShaderOptions{Blend: ebiten.BlendCopy}
	op.Images[0] = in.img
	op.Images[1] = b.layerImage(pass.Texture, out.res)
	op.Uniforms = Uniforms(pass)
	out.img.DrawRectShader(out.res, out.res, b.shader, op)
}

// Release frees a target's GPU memory.
func (b *Blitter) Release(t clouds.Target) {
	if t == nil {
		return
	}
	mustTarget(t).img.Deallocate()
}

// ReleaseTextures drops every uploaded layer texture.
func (b *Blitter) ReleaseTextures() {
	for key, img := range b.textures {
		img.Deallocate()
		delete(b.textures, key)
	}
	for res, img := range b.blank {
		img.Deallocate()
		delete(b.blank, res)
	}
}

// layerImage uploads tex at res on first use. A nil texture binds a blank
// image; the shader ignores it.
func (b *Blitter) layerImage(tex clouds.Texture, res int) *ebiten.Image {
	if tex == nil {
		img, ok := b.blank[res]
		if !ok {
			img = ebiten.NewImage(res, res)
			b.blank[res] = img
		}
		return img
	}
	key := textureKey{tex: tex, res: res}
	if img, ok := b.textures[key]; ok {
		return img
	}
	img := ebiten.NewImage(res, res)
	img.WritePixels(RasterizeTexture(tex, res))
	b.textures[key] = img
	logging.Debug("gpu: uploaded layer texture at %dx%d", res, res)
	return img
}

func mustTarget(t clouds.Target) *Target {
	gt, ok := t.(*Target)
	if !ok {
		panic(fmt.Sprintf("gpu: blitter cannot use target %T", t))
	}
	return gt
}

func unit16(v float64) uint16 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xffff
	}
	return uint16(v*0xffff + 0.5)
}
