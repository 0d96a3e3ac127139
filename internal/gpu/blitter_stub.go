//go:build !ebiten

package gpu

import (
	"fmt"

	"cloud-shadows/internal/clouds"
)

// Blitter is unavailable without the ebiten build tag.
type Blitter struct{}

// NewBlitter reports that GPU blending needs the ebiten build tag.
func NewBlitter() (*Blitter, error) {
	return nil, fmt.Errorf("gpu.NewBlitter requires building with the 'ebiten' tag")
}

// NewTarget panics in the headless build.
func (b *Blitter) NewTarget(int) clouds.Target {
	panic("gpu.Blitter requires building with the 'ebiten' tag")
}

// Clear is a no-op placeholder.
func (b *Blitter) Clear(clouds.Target, clouds.Color) {}

// Blit is a no-op placeholder.
func (b *Blitter) Blit(clouds.Target, clouds.Target, clouds.Pass) {}

// Release is a no-op placeholder.
func (b *Blitter) Release(clouds.Target) {}

// ReleaseTextures is a no-op placeholder.
func (b *Blitter) ReleaseTextures() {}
