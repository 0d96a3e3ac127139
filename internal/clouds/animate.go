package clouds

import (
	"math"

	"cloud-shadows/internal/core"
)

// LayerDirection returns the unit wind vector for a layer heading of
// directionDeg rotated by modifierDeg.
func LayerDirection(directionDeg, modifierDeg float64) Vec2 {
	rad := (directionDeg + modifierDeg) * math.Pi / 180
	return Vec2{X: math.Cos(rad), Y: math.Sin(rad)}
}

// AdvanceAnimation moves a layer's animation offset by dt seconds of wind.
// The step is divided by worldSize so apparent speed does not depend on world
// scale, multiplied by the layer tiling so it does not depend on tiling, and
// the result is wrapped into [0, worldSize) on both axes.
func AdvanceAnimation(layer *Layer, worldSize, speedMultiplier, directionModifier, dt float64) {
	if worldSize < WorldSizeMin || math.IsNaN(worldSize) {
		worldSize = WorldSizeMin
	}
	cfg := &layer.Config
	step := LayerDirection(cfg.Direction(), directionModifier).
		Scale(cfg.Speed() * speedMultiplier * dt / worldSize).
		Mul(cfg.Tiling())
	next := layer.State.AnimationOffset.Add(step)
	layer.State.AnimationOffset = Vec2{
		X: core.Repeat(next.X, worldSize),
		Y: core.Repeat(next.Y, worldSize),
	}
}
