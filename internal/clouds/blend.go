package clouds

import (
	"fmt"
	"strings"

	"cloud-shadows/internal/core"
)

// BlendMode selects how a layer's cloud mask combines with the running composite.
// The numeric values are the stable pass selectors shared by every Blitter and
// must never be renumbered.
type BlendMode uint8

const (
	BlendSubtract        BlendMode = 0
	BlendMultiplyInverse BlendMode = 1
	BlendColorBurn       BlendMode = 2
	BlendVividLight      BlendMode = 3
	BlendPinLight        BlendMode = 4
)

var blendModeNames = [...]string{
	BlendSubtract:        "subtract",
	BlendMultiplyInverse: "multiply_inverse",
	BlendColorBurn:       "color_burn",
	BlendVividLight:      "vivid_light",
	BlendPinLight:        "pin_light",
}

// BlendModes lists every blend mode in pass-selector order.
func BlendModes() []BlendMode {
	return []BlendMode{BlendSubtract, BlendMultiplyInverse, BlendColorBurn, BlendVividLight, BlendPinLight}
}

// Valid reports whether m is one of the five defined modes.
func (m BlendMode) Valid() bool { return int(m) < len(blendModeNames) }

// Pass returns the shader pass index for m.
func (m BlendMode) Pass() int {
	if !m.Valid() {
		panic(fmt.Sprintf("clouds: blend mode %d has no pass", m))
	}
	return int(m)
}

func (m BlendMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("BlendMode(%d)", m)
	}
	return blendModeNames[m]
}

// ParseBlendMode resolves a blend mode by name. Names are matched case
// insensitively and accept dashes or spaces in place of underscores.
func ParseBlendMode(name string) (BlendMode, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "_", " ", "_").Replace(key)
	for i, n := range blendModeNames {
		if n == key || strings.ReplaceAll(n, "_", "") == key {
			return BlendMode(i), nil
		}
	}
	return BlendSubtract, fmt.Errorf("unknown blend mode %q", name)
}

// MarshalText encodes m by name so saved layers survive reordering of the constants.
func (m BlendMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid blend mode %d", m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText decodes a blend mode name.
func (m *BlendMode) UnmarshalText(text []byte) error {
	parsed, err := ParseBlendMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// CloudMask converts a sampled texture density into cloud cover in [0,1].
// Coverage raises the amount of texture that counts as cloud; softness widens
// the transition band around the threshold.
func CloudMask(sample, coverage, softness float64) float64 {
	threshold := 1 - coverage
	half := softness * 0.5
	return core.Smoothstep(threshold-half, threshold+half, sample)
}

// ApplyBlend combines the running composite value base (1 = fully lit) with a
// layer's cloud cover and returns the new composite, faded toward base by
// opacity. All values are in [0,1].
func ApplyBlend(mode BlendMode, base, cloud, opacity float64) float64 {
	light := 1 - cloud
	var result float64
	switch mode {
	case BlendSubtract:
		result = base - cloud
	case BlendMultiplyInverse:
		result = base * light
	case BlendColorBurn:
		result = colorBurn(base, light)
	case BlendVividLight:
		if light < 0.5 {
			result = colorBurn(base, 2*light)
		} else {
			result = colorDodge(base, 2*(light-0.5))
		}
	case BlendPinLight:
		if light < 0.5 {
			result = min(base, 2*light)
		} else {
			result = max(base, 2*light-1)
		}
	default:
		panic(fmt.Sprintf("clouds: blend mode %d has no equation", mode))
	}
	return core.Lerp(base, core.Clamp01(result), core.Clamp01(opacity))
}

func colorBurn(base, blend float64) float64 {
	if base >= 1 {
		return 1
	}
	if blend <= 0 {
		return 0
	}
	return core.Clamp01(1 - (1-base)/blend)
}

func colorDodge(base, blend float64) float64 {
	if base <= 0 {
		return 0
	}
	if blend >= 1 {
		return 1
	}
	return core.Clamp01(base / (1 - blend))
}
