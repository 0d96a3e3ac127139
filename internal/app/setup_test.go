package app

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"cloud-shadows/internal/clouds"
	"cloud-shadows/internal/preset"
)

func TestBuildEffectFromBuiltin(t *testing.T) {
	cfg := NewConfig()
	cfg.Overrides = KVList{"resolution=32", "speed=2"}
	b := &clouds.CPUBlitter{}
	e, light, err := cfg.BuildEffect(b)
	if err != nil {
		t.Fatalf("BuildEffect: %v", err)
	}
	if !e.Enabled() {
		t.Fatal("effect must be enabled")
	}
	if e.Global().Resolution() != 32 || e.Global().SpeedMultiplier() != 2 {
		t.Fatalf("overrides not applied: res=%d speed=%v", e.Global().Resolution(), e.Global().SpeedMultiplier())
	}
	if e.Name() != "fair" {
		t.Fatalf("effect named %q, want the preset name", e.Name())
	}
	if e.Layers().Len() != 2 {
		t.Fatalf("fair preset has 2 layers, got %d", e.Layers().Len())
	}
	cookie, size := light.Cookie()
	if cookie == nil || cookie.Resolution() != 32 {
		t.Fatalf("light cookie not assigned: %v", cookie)
	}
	if size != e.Global().WorldSize() {
		t.Fatalf("cookie size %v, want world size %v", size, e.Global().WorldSize())
	}
}

func TestLoadPresetFromFile(t *testing.T) {
	src, err := preset.Get("overcast")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	path := filepath.Join(t.TempDir(), "mine.json")
	if err := preset.Save(path, src); err != nil {
		t.Fatalf("Save: %v", err)
	}
	cfg := NewConfig()
	cfg.Preset = path
	cfg.Overrides = KVList{"mode=2d"}
	p, err := cfg.LoadPreset()
	if err != nil {
		t.Fatalf("LoadPreset: %v", err)
	}
	if len(p.Layers) != len(src.Layers) {
		t.Fatalf("layers = %d, want %d", len(p.Layers), len(src.Layers))
	}
	if p.Global.ProjectionMode() != clouds.Mode2D {
		t.Fatalf("mode override ignored: %v", p.Global.ProjectionMode())
	}
}

func TestLoadPresetUnknown(t *testing.T) {
	cfg := NewConfig()
	cfg.Preset = "no-such-sky"
	_, err := cfg.LoadPreset()
	if !errors.Is(err, preset.ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
	if !strings.Contains(err.Error(), "storm") {
		t.Fatalf("error should list the builtins: %v", err)
	}
}
