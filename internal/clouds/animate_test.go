package clouds

import (
	"math"
	"testing"

	"cloud-shadows/internal/core"
)

func TestAdvanceAnimationScalesByWorldSizeAndTiling(t *testing.T) {
	cfg := NewLayerConfig()
	cfg.SetTiling(Vec2{2, 1})
	cfg.SetSpeed(10)
	cfg.SetDirection(0)
	layer := NewLayer(cfg)
	layer.State.AnimationOffset = Vec2{X: 5}

	AdvanceAnimation(layer, 100, 1, 0, 1)

	off := layer.State.AnimationOffset
	if math.Abs(off.X-5.2) > 1e-12 {
		t.Fatalf("offset.x = %v, want 5.2", off.X)
	}
	if math.Abs(off.Y) > 1e-12 {
		t.Fatalf("offset.y = %v, want 0", off.Y)
	}
}

func TestAdvanceAnimationWraps(t *testing.T) {
	rng := core.NewRNG(42)
	for trial := 0; trial < 50; trial++ {
		worldSize := rng.Range(1, 500)
		cfg := NewLayerConfig()
		cfg.SetSpeed(rng.Range(0, 5000))
		cfg.SetDirection(rng.Range(0, 360))
		cfg.SetTiling(Vec2{rng.Range(1, 8), rng.Range(1, 8)})
		layer := NewLayer(cfg)
		speedMul := rng.Range(-20, 20)
		dirMod := rng.Range(-180, 180)
		for step := 0; step < 200; step++ {
			AdvanceAnimation(layer, worldSize, speedMul, dirMod, rng.Range(0, 0.5))
			off := layer.State.AnimationOffset
			if off.X < 0 || off.X >= worldSize || off.Y < 0 || off.Y >= worldSize {
				t.Fatalf("trial %d step %d: offset %+v escaped [0,%v)", trial, step, off, worldSize)
			}
		}
	}
}

func TestAdvanceAnimationStaysFiniteAtExtremeSpeeds(t *testing.T) {
	cfg := NewLayerConfig()
	cfg.SetSpeed(math.Inf(1))
	if s := cfg.Speed(); math.IsInf(s, 0) || math.IsNaN(s) {
		t.Fatalf("speed = %v, want finite", s)
	}
	cfg.SetDirection(30)
	layer := NewLayer(cfg)
	for _, mul := range []float64{1, 1e10, -1e10} {
		AdvanceAnimation(layer, 100, mul, 0, 1)
		off := layer.State.AnimationOffset
		if math.IsNaN(off.X) || math.IsNaN(off.Y) || off.X < 0 || off.X >= 100 || off.Y < 0 || off.Y >= 100 {
			t.Fatalf("multiplier %v: offset %+v escaped [0,100)", mul, off)
		}
	}

	layer.Config.SetSpeed(1e300)
	AdvanceAnimation(layer, 100, 1e10, 0, 1)
	if off := layer.State.AnimationOffset; math.IsNaN(off.X) || math.IsNaN(off.Y) {
		t.Fatalf("offset went NaN: %+v", off)
	}

	layer.Config.SetSpeed(1)
	layer.Config.SetDirection(0)
	layer.State.AnimationOffset = Vec2{}
	AdvanceAnimation(layer, 10, 1, 0, 1)
	if got := layer.State.AnimationOffset.X; math.Abs(got-0.1) > 1e-12 {
		t.Fatalf("offset.x = %v after returning to a normal speed, want 0.1", got)
	}
}

func TestAdvanceAnimationNegativeStepWrapsFromTop(t *testing.T) {
	cfg := NewLayerConfig()
	cfg.SetDirection(180)
	cfg.SetSpeed(1)
	layer := NewLayer(cfg)

	AdvanceAnimation(layer, 10, 1, 0, 1)

	if got := layer.State.AnimationOffset.X; math.Abs(got-9.9) > 1e-9 {
		t.Fatalf("offset.x = %v, want 9.9", got)
	}
}

func TestLayerDirectionIsUnit(t *testing.T) {
	for dir := 0.0; dir <= 360; dir += 7.5 {
		for mod := -180.0; mod <= 180; mod += 22.5 {
			if l := LayerDirection(dir, mod).Len(); math.Abs(l-1) > 1e-12 {
				t.Fatalf("LayerDirection(%v,%v) has length %v", dir, mod, l)
			}
		}
	}
	if d := LayerDirection(45, 45); math.Abs(d.X) > 1e-12 || math.Abs(d.Y-1) > 1e-12 {
		t.Fatalf("LayerDirection(45,45) = %+v, want (0,1)", d)
	}
}
