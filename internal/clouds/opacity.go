package clouds

import "cloud-shadows/internal/core"

// HorizonFactor is the elevation fade applied to every layer. In 2D mode it is
// always 1. In 3D mode it ramps linearly from 0 at the threshold angle to 1 at
// threshold+fade.
func HorizonFactor(angleToHorizon float64, g *GlobalConfig) float64 {
	if g.ProjectionMode() == Mode2D {
		return 1
	}
	return core.Clamp01((angleToHorizon - g.HorizonAngleThreshold()) / g.HorizonAngleFade())
}

// LayerOpacity is the final opacity of one layer pass.
func LayerOpacity(cfg *LayerConfig, angleToHorizon float64, g *GlobalConfig) float64 {
	return HorizonFactor(angleToHorizon, g) * cfg.Opacity() * g.OpacityMultiplier()
}

// BlendParams packs the per-pass shader parameters: the animation offset
// followed by coverage and softness after the global modifiers.
func BlendParams(layer *Layer, g *GlobalConfig) [4]float64 {
	off := layer.State.AnimationOffset
	return [4]float64{
		off.X,
		off.Y,
		core.Clamp01(layer.Config.Coverage() + g.CoverageModifier()),
		core.Clamp01(layer.Config.Softness() + g.SoftnessModifier()),
	}
}
