// Package gpu runs cloud blend passes on the GPU through an ebiten Kage
// shader. The shader mirrors clouds.ApplyBlend and clouds.CloudMask.
package gpu

import (
	_ "embed"

	"cloud-shadows/internal/clouds"
)

//go:embed blend.kage
var blendShaderSrc []byte

// ShaderSource returns the Kage source of the blend pass.
func ShaderSource() []byte { return blendShaderSrc }

// Uniforms packs a pass into the shader's uniform map.
func Uniforms(pass clouds.Pass) map[string]any {
	hasTexture := float32(0)
	if pass.Texture != nil {
		hasTexture = 1
	}
	return map[string]any{
		"Mode":       float32(pass.Mode.Pass()),
		"Transform":  vec4(pass.Transform),
		"Params":     vec4(pass.Params),
		"Opacity":    float32(pass.Opacity),
		"HasTexture": hasTexture,
	}
}

func vec4(v [4]float64) []float32 {
	return []float32{float32(v[0]), float32(v[1]), float32(v[2]), float32(v[3])}
}
