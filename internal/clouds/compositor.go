package clouds

import "cloud-shadows/internal/logging"

// FrameStats describes the most recent Composite call.
type FrameStats struct {
	Passes     int
	Swaps      int
	Resolution int
	Recreated  bool
}

// Compositor owns the ping-pong buffers and drives a Blitter through one
// blend pass per visible layer.
type Compositor struct {
	blitter Blitter
	arena   arena
	stats   FrameStats
}

// NewCompositor returns a compositor that allocates its buffers lazily on the
// first Composite call.
func NewCompositor(b Blitter) *Compositor {
	if b == nil {
		panic("clouds: nil blitter")
	}
	return &Compositor{blitter: b}
}

// Composite advances every layer's animation by dt and blends the visible ones
// in store order. It returns the target holding the finished cookie, which
// stays valid until the next Composite or Release. A nil store or a zero
// opacity multiplier yields the cleared, fully lit buffer.
func (c *Compositor) Composite(store *LayerStore, g *GlobalConfig, angleToHorizon, dt float64) Target {
	if g == nil {
		def := DefaultGlobalConfig()
		g = &def
	}
	c.stats = FrameStats{Resolution: g.Resolution()}
	if c.arena.ensure(c.blitter, g.Resolution()) {
		c.stats.Recreated = true
		logging.Debug("clouds: allocated %dx%d cookie buffers", g.Resolution(), g.Resolution())
	}
	c.blitter.Clear(c.arena.input(), FullyLit)

	if store == nil || g.OpacityMultiplier() <= 0 {
		return c.arena.input()
	}

	for _, layer := range store.All() {
		AdvanceAnimation(layer, g.WorldSize(), g.SpeedMultiplier(), g.DirectionModifier(), dt)
		if !layer.Config.Visible() {
			continue
		}
		pass := Pass{
			Mode:      layer.Config.BlendMode(),
			Texture:   layer.Config.Texture(),
			Transform: layer.Config.TextureTransform(),
			Params:    BlendParams(layer, g),
			Opacity:   LayerOpacity(&layer.Config, angleToHorizon, g),
		}
		c.blitter.Blit(c.arena.input(), c.arena.output(), pass)
		c.stats.Passes++
		c.arena.flip()
		c.stats.Swaps++
	}
	return c.arena.input()
}

// Output returns the target from the last Composite call, or nil before the
// first call and after Release.
func (c *Compositor) Output() Target { return c.arena.input() }

// Stats reports counters for the last Composite call.
func (c *Compositor) Stats() FrameStats { return c.stats }

// Release frees both buffers. The next Composite reallocates them.
func (c *Compositor) Release() {
	if c.arena.slots[0] != nil {
		logging.Debug("clouds: released cookie buffers")
	}
	c.arena.release(c.blitter)
	c.stats = FrameStats{}
}
