package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"cloud-shadows/internal/clouds"
	"cloud-shadows/internal/logging"
	"cloud-shadows/internal/preset"
	"cloud-shadows/internal/texture"
)

// LoadPreset resolves c.Preset as a file when it names one and as a builtin
// otherwise, then applies the -set overrides to its global settings.
func (c *Config) LoadPreset() (*preset.Preset, error) {
	var (
		p   *preset.Preset
		err error
	)
	if strings.EqualFold(filepath.Ext(c.Preset), ".json") {
		p, err = preset.Load(c.Preset)
	} else if p, err = preset.Get(c.Preset); errors.Is(err, preset.ErrUnknownPreset) {
		err = fmt.Errorf("%w (builtins: %s)", err, strings.Join(preset.Names(), ", "))
	}
	if err != nil {
		return nil, err
	}
	p.Global.Apply(c.Overrides.Map())
	return p, nil
}

// BuildEffect assembles an enabled effect driving a fresh directional light
// from the configuration. The caller owns the blitter.
func (c *Config) BuildEffect(b clouds.Blitter) (*clouds.Effect, *clouds.DirectionalLight, error) {
	if level, err := logging.ParseLevel(c.LogLevel); err == nil {
		logging.SetLevel(level)
	} else {
		logging.Warn("%v; keeping %s", err, logging.CurrentLevel)
	}
	p, err := c.LoadPreset()
	if err != nil {
		return nil, nil, err
	}
	lib := texture.NewLibrary(c.Textures)
	store, err := p.Build(lib.Resolve)
	if err != nil {
		return nil, nil, err
	}
	light := clouds.NewDirectionalLight(c.Elevation, c.Azimuth)
	e := clouds.NewEffect(light, b,
		clouds.WithGlobalConfig(p.Global),
		clouds.WithLayers(store),
		clouds.WithName(p.Name),
	)
	e.Reset(c.Seed)
	if !e.Enable() {
		return nil, nil, fmt.Errorf("effect %s could not be enabled", p.Name)
	}
	logging.Info("preset %s: %d layers, %dpx cookie over %.0f world units",
		p.Name, store.Len(), p.Global.Resolution(), p.Global.WorldSize())
	return e, light, nil
}
