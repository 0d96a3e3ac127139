package clouds

// Texture is a tileable cloud density source sampled in normalized texture
// space. Implementations must wrap u and v so any real coordinate is valid.
type Texture interface {
	Sample(u, v float64) float64
}

// Named is implemented by textures that can be referenced by name in saved presets.
type Named interface {
	Name() string
}

// Target is a square render buffer owned by a Blitter.
type Target interface {
	Resolution() int
}

// Color is a clear value for a Target.
type Color struct {
	R, G, B, A float64
}

// FullyLit is the cleared cookie: no color, alpha 1 everywhere.
var FullyLit = Color{A: 1}

// Pass is one blend operation from a source buffer into a destination buffer.
type Pass struct {
	Mode BlendMode
	// Texture may be nil; a missing texture samples as clear sky.
	Texture Texture
	// Transform is (tiling.x, tiling.y, offset.x, offset.y).
	Transform [4]float64
	// Params is (animOffset.x, animOffset.y, coverage, softness).
	Params [4]float64
	// Opacity is the layer's final opacity in [0,1].
	Opacity float64
}

// Blitter is the rendering backend the compositor drives. Blit reads src and
// writes dst; callers never pass the same target as both.
type Blitter interface {
	NewTarget(resolution int) Target
	Clear(dst Target, c Color)
	Blit(src, dst Target, pass Pass)
	Release(t Target)
}
