package clouds

import (
	"encoding/json"
	"math"

	"cloud-shadows/internal/core"
)

// DefaultLayerName labels layers created without an explicit name.
const DefaultLayerName = "Layer Name"

// LayerConfig is the authored description of one cloud layer. Every numeric
// field is kept inside its valid domain by its setter, so a LayerConfig can
// never hold an out-of-range value.
type LayerConfig struct {
	name      string
	visible   bool
	blendMode BlendMode
	opacity   float64
	coverage  float64
	softness  float64
	speed     float64
	direction float64
	texture   Texture
	tiling    Vec2
	offset    Vec2
}

// NewLayerConfig returns a visible Subtract layer with half coverage and softness.
func NewLayerConfig() LayerConfig {
	return LayerConfig{
		name:      DefaultLayerName,
		visible:   true,
		blendMode: BlendSubtract,
		opacity:   1,
		coverage:  0.5,
		softness:  0.5,
		speed:     1,
		tiling:    Vec2{1, 1},
	}
}

// Name is the label shown in the HUD and logs.
func (c *LayerConfig) Name() string { return c.name }

// SetName replaces the layer label.
func (c *LayerConfig) SetName(name string) { c.name = name }

// Visible reports whether the layer takes part in the composite.
func (c *LayerConfig) Visible() bool { return c.visible }

// SetVisible shows or hides the layer without touching its animation.
func (c *LayerConfig) SetVisible(v bool) { c.visible = v }

// BlendMode is how the layer combines with the layers below it.
func (c *LayerConfig) BlendMode() BlendMode { return c.blendMode }

// Opacity is the layer strength in [0, 1].
func (c *LayerConfig) Opacity() float64 { return c.opacity }

// Coverage is the share of sky the layer covers, in [0, 1].
func (c *LayerConfig) Coverage() float64 { return c.coverage }

// Softness is the width of the cloud edge ramp, in [0, 1].
func (c *LayerConfig) Softness() float64 { return c.softness }

// Speed is the drift speed in world units per second, never negative.
func (c *LayerConfig) Speed() float64 { return c.speed }

// Direction is the drift heading in degrees.
func (c *LayerConfig) Direction() float64 { return c.direction }

// Texture returns the cloud texture, nil when none is assigned.
func (c *LayerConfig) Texture() Texture { return c.texture }

// SetTexture assigns the cloud texture; nil clears it.
func (c *LayerConfig) SetTexture(tex Texture) { c.texture = tex }

// Tiling is the per-axis repeat count, each axis a whole number of at least 1.
func (c *LayerConfig) Tiling() Vec2 { return c.tiling }

// Offset is the static UV offset added after the animation offset.
func (c *LayerConfig) Offset() Vec2 { return c.offset }

// SetOffset stores the static UV offset as given.
func (c *LayerConfig) SetOffset(o Vec2) { c.offset = o }

// SetBlendMode selects the layer's blend equation. Unknown modes fall back to Subtract.
func (c *LayerConfig) SetBlendMode(m BlendMode) {
	if !m.Valid() {
		m = BlendSubtract
	}
	c.blendMode = m
}

// SetOpacity clamps v into [0,1].
func (c *LayerConfig) SetOpacity(v float64) { c.opacity = clampFinite01(v, c.opacity) }

// SetCoverage clamps v into [0,1].
func (c *LayerConfig) SetCoverage(v float64) { c.coverage = clampFinite01(v, c.coverage) }

// SetSoftness clamps v into [0,1].
func (c *LayerConfig) SetSoftness(v float64) { c.softness = clampFinite01(v, c.softness) }

// SetSpeed clamps v to be non-negative. NaN is ignored and +Inf is held at
// the largest finite speed.
func (c *LayerConfig) SetSpeed(v float64) {
	if math.IsNaN(v) {
		return
	}
	c.speed = math.Min(math.Max(v, 0), math.MaxFloat64)
}

// SetDirection clamps v into [0,360] degrees.
func (c *LayerConfig) SetDirection(v float64) {
	if math.IsNaN(v) {
		return
	}
	c.direction = core.Clamp(v, 0, 360)
}

// SetTiling stores t with each axis floored at 1 and rounded to the nearest
// integer, ties to even.
func (c *LayerConfig) SetTiling(t Vec2) {
	c.tiling = Vec2{X: tileAxis(t.X), Y: tileAxis(t.Y)}
}

// TextureTransform packs tiling and static offset into the vector sent with each pass.
func (c *LayerConfig) TextureTransform() [4]float64 {
	return [4]float64{c.tiling.X, c.tiling.Y, c.offset.X, c.offset.Y}
}

func tileAxis(v float64) float64 {
	if math.IsNaN(v) || v < 1 {
		return 1
	}
	if math.IsInf(v, 1) {
		return math.MaxInt32
	}
	return math.RoundToEven(v)
}

// clampFinite01 clamps v into [0, 1], keeping prev when v is NaN.
func clampFinite01(v, prev float64) float64 {
	if math.IsNaN(v) {
		return prev
	}
	return core.Clamp01(v)
}

// LayerState is the runtime state the animation integrator owns.
type LayerState struct {
	AnimationOffset Vec2
}

// Layer pairs an authored configuration with its simulation state.
type Layer struct {
	Config LayerConfig
	State  LayerState
}

// NewLayer wraps cfg with a zeroed animation offset.
func NewLayer(cfg LayerConfig) *Layer {
	return &Layer{Config: cfg}
}

type layerJSON struct {
	Name      string     `json:"name"`
	Visible   bool       `json:"visible"`
	BlendMode BlendMode  `json:"blend_mode"`
	Opacity   float64    `json:"opacity"`
	Coverage  float64    `json:"coverage"`
	Softness  float64    `json:"softness"`
	Speed     float64    `json:"speed"`
	Direction float64    `json:"direction"`
	Texture   string     `json:"texture,omitempty"`
	Tiling    [2]float64 `json:"tiling"`
	Offset    [2]float64 `json:"offset"`
}

// MarshalJSON encodes the static part of the layer. The texture is written by
// name when it implements Named.
func (c LayerConfig) MarshalJSON() ([]byte, error) {
	out := layerJSON{
		Name:      c.name,
		Visible:   c.visible,
		BlendMode: c.blendMode,
		Opacity:   c.opacity,
		Coverage:  c.coverage,
		Softness:  c.softness,
		Speed:     c.speed,
		Direction: c.direction,
		Tiling:    [2]float64{c.tiling.X, c.tiling.Y},
		Offset:    [2]float64{c.offset.X, c.offset.Y},
	}
	if named, ok := c.texture.(Named); ok {
		out.Texture = named.Name()
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a layer, applying every clamp. Missing fields keep
// their NewLayerConfig defaults. The texture reference is left unresolved; use
// TextureRef to read the stored name.
func (c *LayerConfig) UnmarshalJSON(data []byte) error {
	def := NewLayerConfig()
	in := layerJSON{
		Name:      def.name,
		Visible:   def.visible,
		BlendMode: def.blendMode,
		Opacity:   def.opacity,
		Coverage:  def.coverage,
		Softness:  def.softness,
		Speed:     def.speed,
		Tiling:    [2]float64{1, 1},
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*c = def
	c.name = in.Name
	c.visible = in.Visible
	c.SetBlendMode(in.BlendMode)
	c.SetOpacity(in.Opacity)
	c.SetCoverage(in.Coverage)
	c.SetSoftness(in.Softness)
	c.SetSpeed(in.Speed)
	c.SetDirection(in.Direction)
	c.SetTiling(Vec2{in.Tiling[0], in.Tiling[1]})
	c.SetOffset(Vec2{in.Offset[0], in.Offset[1]})
	if in.Texture != "" {
		c.texture = textureRef(in.Texture)
	}
	return nil
}

// TextureRef returns the name of an unresolved texture reference left by
// UnmarshalJSON, or "" when the layer holds a real texture or none.
func (c *LayerConfig) TextureRef() string {
	if ref, ok := c.texture.(textureRef); ok {
		return string(ref)
	}
	return ""
}

// textureRef stands in for a texture that has been named but not loaded. It
// samples as clear sky.
type textureRef string

func (textureRef) Sample(u, v float64) float64 { return 0 }
func (r textureRef) Name() string { return string(r) }
