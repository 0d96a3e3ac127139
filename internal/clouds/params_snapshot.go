package clouds

import (
	"strconv"
	"strings"

	"cloud-shadows/internal/core"
)

// Parameters lists the global settings and the layer stack for display.
func (e *Effect) Parameters() core.ParameterSnapshot {
	g := &e.global
	groups := []core.ParameterGroup{
		{
			Name: "Projection",
			Params: []core.Parameter{
				enumParam("mode", "Projection mode", g.ProjectionMode().String(), []string{Mode3D.String(), Mode2D.String()}),
				floatParam("world_size", "World size", g.WorldSize()),
				intParam("resolution", "Resolution", g.Resolution()),
			},
		},
		{
			Name: "Modifiers",
			Params: []core.Parameter{
				floatParam("opacity", "Opacity multiplier", g.OpacityMultiplier()),
				floatParam("coverage", "Coverage modifier", g.CoverageModifier()),
				floatParam("softness", "Softness modifier", g.SoftnessModifier()),
				floatParam("speed", "Speed multiplier", g.SpeedMultiplier()),
				floatParam("direction", "Direction modifier", g.DirectionModifier()),
			},
		},
		{
			Name: "Horizon",
			Params: []core.Parameter{
				floatParam("horizon_threshold", "Horizon threshold", g.HorizonAngleThreshold()),
				floatParam("horizon_fade", "Horizon fade", g.HorizonAngleFade()),
			},
		},
	}
	if e.layers.Len() > 0 {
		layers := core.ParameterGroup{Name: "Layers", Summary: strconv.Itoa(e.layers.Len()) + " layers"}
		for i, l := range e.layers.All() {
			layers.Params = append(layers.Params, core.Parameter{
				Key:   "layer." + strconv.Itoa(i),
				Label: l.Config.Name() + " (" + l.Config.BlendMode().String() + ")",
				Type:  core.ParamTypeBool,
				Value: strconv.FormatBool(l.Config.Visible()),
			})
		}
		groups = append(groups, layers)
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable globals.
func (e *Effect) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "mode", Label: "Mode", Type: core.ParamTypeEnum},
		{Key: "resolution", Label: "Resolution", Type: core.ParamTypeInt, Step: 64, Min: ResolutionMin, Max: ResolutionMax, HasMin: true, HasMax: true},
		{Key: "world_size", Label: "World size", Type: core.ParamTypeFloat, Step: 10, Min: WorldSizeMin, HasMin: true},
		{Key: "opacity", Label: "Opacity", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "coverage", Label: "Coverage", Type: core.ParamTypeFloat, Step: 0.05, Min: -ModifierLimit, Max: ModifierLimit, HasMin: true, HasMax: true},
		{Key: "softness", Label: "Softness", Type: core.ParamTypeFloat, Step: 0.05, Min: -ModifierLimit, Max: ModifierLimit, HasMin: true, HasMax: true},
		{Key: "speed", Label: "Speed", Type: core.ParamTypeFloat, Step: 0.25},
		{Key: "direction", Label: "Direction", Type: core.ParamTypeFloat, Step: 15, Min: -DirectionLimit, Max: DirectionLimit, HasMin: true, HasMax: true},
		{Key: "horizon_threshold", Label: "Horizon", Type: core.ParamTypeFloat, Step: 1, Min: 0, Max: HorizonAngleMax, HasMin: true, HasMax: true},
		{Key: "horizon_fade", Label: "Fade", Type: core.ParamTypeFloat, Step: 1, Min: HorizonAngleFadeMin, Max: HorizonAngleMax, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter routes a HUD edit through the matching clamping setter.
func (e *Effect) SetFloatParameter(key string, value float64) bool {
	g := &e.global
	switch key {
	case "world_size":
		g.SetWorldSize(value)
	case "opacity":
		g.SetOpacityMultiplier(value)
	case "coverage":
		g.SetCoverageModifier(value)
	case "softness":
		g.SetSoftnessModifier(value)
	case "speed":
		g.SetSpeedMultiplier(value)
	case "direction":
		g.SetDirectionModifier(value)
	case "horizon_threshold":
		g.SetHorizonAngleThreshold(value)
	case "horizon_fade":
		g.SetHorizonAngleFade(value)
	default:
		return false
	}
	return true
}

// SetIntParameter handles the resolution control. The buffers are recreated
// on the next update.
func (e *Effect) SetIntParameter(key string, value int) bool {
	if key != "resolution" {
		return false
	}
	e.global.SetResolution(value)
	return true
}

// SetEnumParameter switches the projection mode.
func (e *Effect) SetEnumParameter(key string, value string) bool {
	if key != "mode" {
		return false
	}
	mode, err := ParseProjectionMode(value)
	if err != nil {
		return false
	}
	e.global.SetProjectionMode(mode)
	return true
}

// ToggleLayer flips the visibility of layer i. It reports false when i is out
// of range.
func (e *Effect) ToggleLayer(i int) bool {
	if i < 0 || i >= e.layers.Len() {
		return false
	}
	cfg := &e.layers.At(i).Config
	cfg.SetVisible(!cfg.Visible())
	return true
}

// SetBoolParameter shows or hides a layer through its "layer.N" key.
func (e *Effect) SetBoolParameter(key string, value bool) bool {
	idx, ok := strings.CutPrefix(key, "layer.")
	if !ok {
		return false
	}
	i, err := strconv.Atoi(idx)
	if err != nil || i < 0 || i >= e.layers.Len() {
		return false
	}
	e.layers.At(i).Config.SetVisible(value)
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func enumParam(key, label, value string, options []string) core.Parameter {
	return core.Parameter{
		Key:     key,
		Label:   label,
		Type:    core.ParamTypeEnum,
		Value:   value,
		Options: options,
	}
}
