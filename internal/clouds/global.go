package clouds

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"cloud-shadows/internal/core"
)

// ProjectionMode selects whether the light's elevation fades the shadows.
type ProjectionMode uint8

const (
	// Mode3D fades shadows out as the light approaches the horizon.
	Mode3D ProjectionMode = iota
	// Mode2D ignores the light angle.
	Mode2D
)

// String returns "3d" or "2d".
func (m ProjectionMode) String() string {
	if m == Mode2D {
		return "2d"
	}
	return "3d"
}

// ParseProjectionMode accepts "3d" or "2d" in any case.
func ParseProjectionMode(s string) (ProjectionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "3d":
		return Mode3D, nil
	case "2d":
		return Mode2D, nil
	}
	return Mode3D, fmt.Errorf("unknown projection mode %q", s)
}

// MarshalText encodes the mode as "3d" or "2d".
func (m ProjectionMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText decodes "3d" or "2d".
func (m *ProjectionMode) UnmarshalText(text []byte) error {
	parsed, err := ParseProjectionMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Bounds for the clamped global settings.
const (
	WorldSizeMin        = 1.0
	ResolutionMin       = 2
	ResolutionMax       = 4096
	ModifierLimit       = 1.0
	DirectionLimit      = 180.0
	HorizonAngleMax     = 90.0
	HorizonAngleFadeMin = 0.1
)

// GlobalConfig holds the settings shared by every layer of one effect.
type GlobalConfig struct {
	mode              ProjectionMode
	worldSize         float64
	resolution        int
	opacityMultiplier float64
	coverageModifier  float64
	softnessModifier  float64
	speedMultiplier   float64
	directionModifier float64
	horizonThreshold  float64
	horizonFade       float64
}

// DefaultGlobalConfig returns the standard settings: 3D projection over a 100
// unit world at 1024 texels with a 10 degree horizon threshold and fade.
func DefaultGlobalConfig() GlobalConfig {
	return GlobalConfig{
		mode:              Mode3D,
		worldSize:         100,
		resolution:        1024,
		opacityMultiplier: 1,
		speedMultiplier:   1,
		horizonThreshold:  10,
		horizonFade:       10,
	}
}

// ProjectionMode reports whether the horizon fade is applied.
func (g *GlobalConfig) ProjectionMode() ProjectionMode { return g.mode }

// WorldSize is the edge length, in world units, covered by one cookie tile.
func (g *GlobalConfig) WorldSize() float64 { return g.worldSize }

// Resolution is the cookie edge length in pixels.
func (g *GlobalConfig) Resolution() int { return g.resolution }

// OpacityMultiplier scales every layer opacity, in [0, 1].
func (g *GlobalConfig) OpacityMultiplier() float64 { return g.opacityMultiplier }

// CoverageModifier is added to every layer coverage, in [-1, 1].
func (g *GlobalConfig) CoverageModifier() float64 { return g.coverageModifier }

// SoftnessModifier is added to every layer softness, in [-1, 1].
func (g *GlobalConfig) SoftnessModifier() float64 { return g.softnessModifier }

// SpeedMultiplier scales drift for all layers. Negative values reverse it.
func (g *GlobalConfig) SpeedMultiplier() float64 { return g.speedMultiplier }

// DirectionModifier rotates every layer heading, in degrees.
func (g *GlobalConfig) DirectionModifier() float64 { return g.directionModifier }

// HorizonAngleThreshold is the sun elevation, in degrees, below which shadows fade out.
func (g *GlobalConfig) HorizonAngleThreshold() float64 { return g.horizonThreshold }

// HorizonAngleFade is the width of that fade in degrees.
func (g *GlobalConfig) HorizonAngleFade() float64 { return g.horizonFade }

// SetProjectionMode stores m as given.
func (g *GlobalConfig) SetProjectionMode(m ProjectionMode) { g.mode = m }

// SetSpeedMultiplier accepts any finite value; negative values reverse the wind.
func (g *GlobalConfig) SetSpeedMultiplier(v float64) {
	g.speedMultiplier = finiteOr(v, g.speedMultiplier)
}

// SetOpacityMultiplier clamps v into [0,1].
func (g *GlobalConfig) SetOpacityMultiplier(v float64) {
	g.opacityMultiplier = clampFinite01(v, g.opacityMultiplier)
}

// SetCoverageModifier clamps v into [-1,1].
func (g *GlobalConfig) SetCoverageModifier(v float64) {
	g.coverageModifier = clampFinite(v, -ModifierLimit, ModifierLimit, g.coverageModifier)
}

// SetSoftnessModifier clamps v into [-1,1].
func (g *GlobalConfig) SetSoftnessModifier(v float64) {
	g.softnessModifier = clampFinite(v, -ModifierLimit, ModifierLimit, g.softnessModifier)
}

// SetDirectionModifier clamps v into [-180,180] degrees.
func (g *GlobalConfig) SetDirectionModifier(v float64) {
	g.directionModifier = clampFinite(v, -DirectionLimit, DirectionLimit, g.directionModifier)
}

// SetHorizonAngleThreshold clamps v into [0,90] degrees.
func (g *GlobalConfig) SetHorizonAngleThreshold(v float64) {
	g.horizonThreshold = clampFinite(v, 0, HorizonAngleMax, g.horizonThreshold)
}

// SetHorizonAngleFade clamps v into [0.1,90] degrees so the fade never divides by zero.
func (g *GlobalConfig) SetHorizonAngleFade(v float64) {
	g.horizonFade = clampFinite(v, HorizonAngleFadeMin, HorizonAngleMax, g.horizonFade)
}

// SetWorldSize floors v at WorldSizeMin.
func (g *GlobalConfig) SetWorldSize(v float64) {
	if math.IsNaN(v) {
		return
	}
	if math.IsInf(v, 1) {
		v = math.MaxFloat64
	}
	g.worldSize = math.Max(v, WorldSizeMin)
}

// SetResolution clamps v into [ResolutionMin, ResolutionMax].
func (g *GlobalConfig) SetResolution(v int) {
	g.resolution = core.ClampInt(v, ResolutionMin, ResolutionMax)
}

// finiteOr returns v, or prev when v is NaN or infinite.
func finiteOr(v, prev float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return prev
	}
	return v
}

// clampFinite clamps v into [lo, hi], keeping prev when v is NaN.
func clampFinite(v, lo, hi, prev float64) float64 {
	if math.IsNaN(v) {
		return prev
	}
	return core.Clamp(v, lo, hi)
}

// FromMap populates a GlobalConfig from flag-style key/value pairs on top of
// the defaults.
func FromMap(cfg map[string]string) GlobalConfig {
	g := DefaultGlobalConfig()
	g.Apply(cfg)
	return g
}

// Apply overrides fields of g from flag-style key/value pairs. Malformed
// values are ignored; accepted values go through the clamping setters.
func (g *GlobalConfig) Apply(cfg map[string]string) {
	if cfg == nil {
		return
	}
	if v, ok := cfg["mode"]; ok {
		if parsed, err := ParseProjectionMode(v); err == nil {
			g.SetProjectionMode(parsed)
		}
	}
	if v, ok := cfg["resolution"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			g.SetResolution(parsed)
		}
	}
	floats := []struct {
		key string
		set func(float64)
	}{
		{"world_size", g.SetWorldSize},
		{"opacity", g.SetOpacityMultiplier},
		{"coverage", g.SetCoverageModifier},
		{"softness", g.SetSoftnessModifier},
		{"speed", g.SetSpeedMultiplier},
		{"direction", g.SetDirectionModifier},
		{"horizon_threshold", g.SetHorizonAngleThreshold},
		{"horizon_fade", g.SetHorizonAngleFade},
	}
	for _, f := range floats {
		if v, ok := cfg[f.key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				f.set(parsed)
			}
		}
	}
}

type globalJSON struct {
	Mode              ProjectionMode `json:"mode"`
	WorldSize         float64        `json:"world_size"`
	Resolution        int            `json:"resolution"`
	OpacityMultiplier float64        `json:"opacity_multiplier"`
	CoverageModifier  float64        `json:"coverage_modifier"`
	SoftnessModifier  float64        `json:"softness_modifier"`
	SpeedMultiplier   float64        `json:"speed_multiplier"`
	DirectionModifier float64        `json:"direction_modifier"`
	HorizonThreshold  float64        `json:"horizon_angle_threshold"`
	HorizonFade       float64        `json:"horizon_angle_fade"`
}

func (g *GlobalConfig) toJSON() globalJSON {
	return globalJSON{
		Mode:              g.mode,
		WorldSize:         g.worldSize,
		Resolution:        g.resolution,
		OpacityMultiplier: g.opacityMultiplier,
		CoverageModifier:  g.coverageModifier,
		SoftnessModifier:  g.softnessModifier,
		SpeedMultiplier:   g.speedMultiplier,
		DirectionModifier: g.directionModifier,
		HorizonThreshold:  g.horizonThreshold,
		HorizonFade:       g.horizonFade,
	}
}

// MarshalJSON encodes the settings with snake_case keys.
func (g GlobalConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.toJSON())
}

// UnmarshalJSON decodes settings through the clamping setters. Missing keys
// keep their DefaultGlobalConfig values.
func (g *GlobalConfig) UnmarshalJSON(data []byte) error {
	def := DefaultGlobalConfig()
	in := def.toJSON()
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*g = def
	g.SetProjectionMode(in.Mode)
	g.SetWorldSize(in.WorldSize)
	g.SetResolution(in.Resolution)
	g.SetOpacityMultiplier(in.OpacityMultiplier)
	g.SetCoverageModifier(in.CoverageModifier)
	g.SetSoftnessModifier(in.SoftnessModifier)
	g.SetSpeedMultiplier(in.SpeedMultiplier)
	g.SetDirectionModifier(in.DirectionModifier)
	g.SetHorizonAngleThreshold(in.HorizonThreshold)
	g.SetHorizonAngleFade(in.HorizonFade)
	return nil
}
