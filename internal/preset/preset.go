// Package preset stores cloud shadow setups as JSON: the global settings and
// the static part of each layer in composite order.
package preset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cloud-shadows/internal/clouds"
)

// ErrUnknownPreset reports a lookup for a name that was never registered.
var ErrUnknownPreset = errors.New("preset: unknown preset")

// Preset is a saved effect configuration. Animation offsets are runtime state
// and are not persisted.
type Preset struct {
	Name   string               `json:"name"`
	Global clouds.GlobalConfig  `json:"global"`
	Layers []clouds.LayerConfig `json:"layers"`
}

// Resolver turns a texture reference into a texture.
type Resolver func(ref string) (clouds.Texture, error)

// Build creates a fresh layer store from the preset, resolving every texture
// reference through resolve. A nil resolve leaves references unresolved, which
// composite as clear sky.
func (p *Preset) Build(resolve Resolver) (*clouds.LayerStore, error) {
	store := &clouds.LayerStore{}
	for i, cfg := range p.Layers {
		if ref := cfg.TextureRef(); ref != "" && resolve != nil {
			tex, err := resolve(ref)
			if err != nil {
				return nil, fmt.Errorf("preset %s layer %d (%s): %w", p.Name, i, cfg.Name(), err)
			}
			cfg.SetTexture(tex)
		}
		store.Append(cfg)
	}
	return store, nil
}

// FromEffect captures the current settings of e.
func FromEffect(name string, e *clouds.Effect) *Preset {
	return &Preset{
		Name:   name,
		Global: *e.Global(),
		Layers: e.Layers().Configs(),
	}
}

// Parse decodes a preset from JSON.
func Parse(data []byte) (*Preset, error) {
	p := &Preset{Global: clouds.DefaultGlobalConfig()}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse preset: %w", err)
	}
	return p, nil
}

// Load reads a preset file. A missing name defaults to the file's base name.
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if p.Name == "" {
		base := filepath.Base(path)
		p.Name = base[:len(base)-len(filepath.Ext(base))]
	}
	return p, nil
}

// Save writes p as indented JSON, creating parent directories.
func Save(path string, p *Preset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create preset dir: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
