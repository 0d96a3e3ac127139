package clouds

import (
	"math"
	"testing"
)

func TestCompositeSkipsInvisibleLayerButAdvancesIt(t *testing.T) {
	b := newRecordingBlitter()
	comp := NewCompositor(b)
	g := DefaultGlobalConfig()
	g.SetProjectionMode(Mode2D)

	first := NewLayerConfig()
	first.SetBlendMode(BlendSubtract)
	first.SetOpacity(1)
	hidden := NewLayerConfig()
	hidden.SetVisible(false)
	hidden.SetSpeed(50)
	store := NewLayerStore(first, hidden)

	out := comp.Composite(store, &g, 45, 0.5)

	if len(b.blits) != 1 {
		t.Fatalf("expected 1 blend pass, got %d", len(b.blits))
	}
	stats := comp.Stats()
	if stats.Passes != 1 || stats.Swaps != 1 {
		t.Fatalf("stats = %+v, want one pass and one swap", stats)
	}
	call := b.blits[0]
	if call.pass.Mode != BlendSubtract || call.pass.Opacity != 1 {
		t.Fatalf("pass = %+v", call.pass)
	}
	if out != Target(call.dst) {
		t.Fatal("result must be the last pass destination")
	}
	if len(b.clears) != 1 || b.clears[0] != call.src {
		t.Fatal("the cleared buffer must feed the first pass")
	}
	if store.At(1).State.AnimationOffset == (Vec2{}) {
		t.Fatal("invisible layer animation must still advance")
	}
}

func TestCompositeZeroOpacitySkipsAllPasses(t *testing.T) {
	b := newRecordingBlitter()
	comp := NewCompositor(b)
	g := DefaultGlobalConfig()
	g.SetOpacityMultiplier(0)
	store := NewLayerStore(NewLayerConfig(), NewLayerConfig(), NewLayerConfig())

	out := comp.Composite(store, &g, 60, 1)

	if len(b.blits) != 0 || comp.Stats().Passes != 0 {
		t.Fatalf("expected no passes, got %d", len(b.blits))
	}
	if len(b.clears) != 1 || out != Target(b.clears[0]) {
		t.Fatal("output must be the cleared buffer")
	}
	for _, l := range store.All() {
		if l.State.AnimationOffset != (Vec2{}) {
			t.Fatal("zero opacity skips all per-layer work including animation")
		}
	}

	if out := comp.Composite(nil, &g, 60, 1); out == nil || len(b.blits) != 0 {
		t.Fatal("nil store must produce the cleared buffer")
	}
}

func TestCompositePingPongsBetweenTwoBuffers(t *testing.T) {
	b := newRecordingBlitter()
	comp := NewCompositor(b)
	g := DefaultGlobalConfig()
	g.SetResolution(64)
	modes := []BlendMode{BlendColorBurn, BlendPinLight, BlendSubtract, BlendVividLight, BlendMultiplyInverse}
	store := &LayerStore{}
	for _, m := range modes {
		cfg := NewLayerConfig()
		cfg.SetBlendMode(m)
		store.Append(cfg)
	}

	out := comp.Composite(store, &g, 90, 0.016)

	if b.created != 2 {
		t.Fatalf("created %d targets, want 2", b.created)
	}
	if len(b.blits) != len(modes) {
		t.Fatalf("passes = %d", len(b.blits))
	}
	for i, call := range b.blits {
		if call.pass.Mode != modes[i] {
			t.Fatalf("pass %d mode %v, want %v", i, call.pass.Mode, modes[i])
		}
		if call.src.res != 64 || call.dst.res != 64 {
			t.Fatal("targets must match the configured resolution")
		}
		if i > 0 && call.src != b.blits[i-1].dst {
			t.Fatalf("pass %d must read the previous destination", i)
		}
	}
	if out != Target(b.blits[len(b.blits)-1].dst) {
		t.Fatal("output must be the last destination")
	}
}

func TestCompositeRecreatesOnResolutionChange(t *testing.T) {
	b := newRecordingBlitter()
	comp := NewCompositor(b)
	g := DefaultGlobalConfig()
	g.SetResolution(32)
	store := NewLayerStore(NewLayerConfig())

	comp.Composite(store, &g, 90, 0)
	if !comp.Stats().Recreated {
		t.Fatal("first frame must allocate")
	}
	comp.Composite(store, &g, 90, 0)
	if comp.Stats().Recreated || b.created != 2 {
		t.Fatal("unchanged resolution must reuse buffers")
	}

	g.SetResolution(128)
	out := comp.Composite(store, &g, 90, 0)
	if !comp.Stats().Recreated || b.created != 4 || b.released != 2 {
		t.Fatalf("created=%d released=%d after resolution change", b.created, b.released)
	}
	if out.Resolution() != 128 {
		t.Fatalf("output resolution = %d", out.Resolution())
	}

	comp.Release()
	if len(b.live) != 0 {
		t.Fatalf("%d targets leaked after Release", len(b.live))
	}
	if comp.Output() != nil {
		t.Fatal("released compositor must have no output")
	}
}

func TestCPUCompositeIsOrderSensitive(t *testing.T) {
	g := DefaultGlobalConfig()
	g.SetResolution(4)
	g.SetProjectionMode(Mode2D)

	sub := NewLayerConfig()
	sub.SetBlendMode(BlendSubtract)
	sub.SetTexture(constTexture(0.5))
	sub.SetCoverage(0.5)
	sub.SetSoftness(1)
	sub.SetSpeed(0)

	pin := NewLayerConfig()
	pin.SetBlendMode(BlendPinLight)
	pin.SetTexture(constTexture(0.3))
	pin.SetCoverage(0.5)
	pin.SetSoftness(1)
	pin.SetSpeed(0)

	run := func(layers ...LayerConfig) *Buffer {
		comp := NewCompositor(&CPUBlitter{})
		return comp.Composite(NewLayerStore(layers...), &g, 0, 0).(*Buffer)
	}
	forward := run(sub, pin)
	reverse := run(pin, sub)

	subMask := CloudMask(0.5, 0.5, 1)
	pinMask := CloudMask(0.3, 0.5, 1)
	wantForward := ApplyBlend(BlendPinLight, ApplyBlend(BlendSubtract, 1, subMask, 1), pinMask, 1)
	wantReverse := ApplyBlend(BlendSubtract, ApplyBlend(BlendPinLight, 1, pinMask, 1), subMask, 1)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := forward.Alpha(x, y); math.Abs(got-wantForward) > 1e-5 {
				t.Fatalf("forward texel (%d,%d) = %v, want %v", x, y, got, wantForward)
			}
			if got := reverse.Alpha(x, y); math.Abs(got-wantReverse) > 1e-5 {
				t.Fatalf("reverse texel (%d,%d) = %v, want %v", x, y, got, wantReverse)
			}
			if c := forward.Texel(x, y); c.R != 0 || c.G != 0 || c.B != 0 {
				t.Fatalf("color channels changed: %+v", c)
			}
		}
	}
	if math.Abs(wantForward-wantReverse) < 1e-3 {
		t.Fatal("fixture does not distinguish layer order")
	}
}

func TestCPUCompositeWithoutTextureStaysLit(t *testing.T) {
	g := DefaultGlobalConfig()
	g.SetResolution(8)
	comp := NewCompositor(&CPUBlitter{})
	cfg := NewLayerConfig()
	cfg.SetCoverage(0.2)
	out := comp.Composite(NewLayerStore(cfg), &g, 90, 0).(*Buffer)
	for _, v := range out.AlphaBytes(nil) {
		if v != 255 {
			t.Fatalf("untextured layer darkened the cookie to %d", v)
		}
	}
}

func TestCPUBlitterTracksLiveBuffers(t *testing.T) {
	b := &CPUBlitter{}
	comp := NewCompositor(b)
	g := DefaultGlobalConfig()
	g.SetResolution(16)
	comp.Composite(nil, &g, 0, 0)
	if b.Live != 2 {
		t.Fatalf("live = %d, want 2", b.Live)
	}
	comp.Release()
	if b.Live != 0 {
		t.Fatalf("live = %d after release", b.Live)
	}
}
