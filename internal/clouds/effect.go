package clouds

import (
	"cloud-shadows/internal/core"
	"cloud-shadows/internal/logging"
)

// Effect binds a layer stack and global settings to a host light. It owns the
// compositor for as long as it is enabled and hands the finished cookie to the
// light after every update.
type Effect struct {
	name    string
	light   Light
	blitter Blitter
	comp    *Compositor
	global  GlobalConfig
	layers  *LayerStore
	enabled bool
	preview bool
	time    float64
}

// Option configures an Effect at construction.
type Option func(*Effect)

// WithGlobalConfig replaces the default global settings.
func WithGlobalConfig(g GlobalConfig) Option {
	return func(e *Effect) { e.global = g }
}

// WithLayers binds a layer store.
func WithLayers(s *LayerStore) Option {
	return func(e *Effect) { e.layers = s }
}

// WithName overrides the effect name reported to front-ends.
func WithName(name string) Option {
	return func(e *Effect) { e.name = name }
}

// NewEffect builds a disabled effect. Call Enable before Update.
func NewEffect(light Light, b Blitter, opts ...Option) *Effect {
	e := &Effect{
		name:    "cloudshadows",
		light:   light,
		blitter: b,
		global:  DefaultGlobalConfig(),
		preview: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Enable checks the host setup and allocates the compositor. A non
// directional light or a missing blitter leaves the effect inert and returns
// false.
func (e *Effect) Enable() bool {
	if e.enabled {
		return true
	}
	if e.light == nil {
		logging.Warn("clouds: %s needs a light to project onto", e.name)
		return false
	}
	if e.light.Type() != LightDirectional {
		logging.Warn("clouds: %s needs a directional light, got %s", e.name, e.light.Type())
		return false
	}
	if e.blitter == nil {
		logging.Warn("clouds: %s has no blend backend", e.name)
		return false
	}
	e.comp = NewCompositor(e.blitter)
	e.enabled = true
	logging.Info("clouds: %s enabled at %d texels", e.name, e.global.Resolution())
	e.Update(0)
	return true
}

// Disable releases the buffers and clears the light's cookie.
func (e *Effect) Disable() {
	if !e.enabled {
		return
	}
	e.comp.Release()
	e.light.SetCookie(nil, 0)
	e.enabled = false
	logging.Info("clouds: %s disabled", e.name)
}

// Enabled reports whether the effect is active.
func (e *Effect) Enabled() bool { return e.enabled }

// SetPreview toggles compositing without tearing down the effect. While
// preview is off the buffers are released and the cookie cleared.
func (e *Effect) SetPreview(on bool) { e.preview = on }

// Preview reports the preview toggle.
func (e *Effect) Preview() bool { return e.preview }

// Update runs one frame: the layers advance by dt and the new cookie is
// assigned to the light along with the world size.
func (e *Effect) Update(dt float64) {
	if !e.enabled {
		return
	}
	if !e.preview {
		e.comp.Release()
		e.light.SetCookie(nil, 0)
		return
	}
	e.time += dt
	angle := AngleToHorizon(e.light.Forward())
	cookie := e.comp.Composite(e.layers, &e.global, angle, dt)
	e.light.SetCookie(cookie, e.global.WorldSize())
}

// Advance is Update under the core.Scene name.
func (e *Effect) Advance(dt float64) { e.Update(dt) }

// Reset zeroes every animation offset. A non-zero seed scatters the layers to
// random starting offsets instead.
func (e *Effect) Reset(seed int64) {
	e.time = 0
	if e.layers == nil {
		return
	}
	e.layers.ResetAnimation()
	if seed == 0 {
		return
	}
	rng := core.NewRNG(seed)
	ws := e.global.WorldSize()
	for _, l := range e.layers.All() {
		l.State.AnimationOffset = Vec2{X: rng.Range(0, ws), Y: rng.Range(0, ws)}
	}
}

// Name identifies the effect.
func (e *Effect) Name() string { return e.name }

// Size is the cookie resolution.
func (e *Effect) Size() core.Size {
	res := e.global.Resolution()
	return core.Size{W: res, H: res}
}

// Time returns the simulated seconds since the last Reset.
func (e *Effect) Time() float64 { return e.time }

// Cookie returns the most recent composite, or nil while disabled.
func (e *Effect) Cookie() Target {
	if e.comp == nil || !e.enabled {
		return nil
	}
	return e.comp.Output()
}

// Stats reports the compositor counters for the last frame.
func (e *Effect) Stats() FrameStats {
	if e.comp == nil {
		return FrameStats{}
	}
	return e.comp.Stats()
}

// Light returns the host light.
func (e *Effect) Light() Light { return e.light }

// Global exposes the global settings for in-place edits.
func (e *Effect) Global() *GlobalConfig { return &e.global }

// Layers returns the bound layer store, which may be nil.
func (e *Effect) Layers() *LayerStore { return e.layers }

// SetLayers rebinds the layer store.
func (e *Effect) SetLayers(s *LayerStore) { e.layers = s }
