package preset

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"cloud-shadows/internal/clouds"
)

func TestBuiltinsParse(t *testing.T) {
	names := Names()
	for _, want := range []string{"fair", "overcast", "storm"} {
		if !slices.Contains(names, want) {
			t.Fatalf("builtin %q missing from %v", want, names)
		}
	}
	storm, err := Get("storm")
	if err != nil {
		t.Fatalf("Get(storm): %v", err)
	}
	if len(storm.Layers) != 4 {
		t.Fatalf("storm has %d layers", len(storm.Layers))
	}
	if storm.Layers[1].BlendMode() != clouds.BlendVividLight || storm.Layers[3].Visible() {
		t.Fatal("storm layers decoded incorrectly")
	}
	if storm.Global.SpeedMultiplier() != 2.5 || storm.Global.DirectionModifier() != -20 {
		t.Fatalf("storm globals decoded incorrectly: %+v", storm.Global)
	}
	if _, err := Get("hurricane"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("err = %v, want ErrUnknownPreset", err)
	}
}

func TestGetReturnsIndependentCopies(t *testing.T) {
	a, _ := Get("fair")
	a.Layers[0].SetOpacity(0)
	b, _ := Get("fair")
	if b.Layers[0].Opacity() == 0 {
		t.Fatal("mutating a preset must not leak into the registry")
	}
}

func TestBuildResolvesTextures(t *testing.T) {
	p, err := Get("overcast")
	if err != nil {
		t.Fatal(err)
	}
	var refs []string
	store, err := p.Build(func(ref string) (clouds.Texture, error) {
		refs = append(refs, ref)
		return constTex(0.5), nil
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if store.Len() != 3 || len(refs) != 3 {
		t.Fatalf("layers=%d refs=%v", store.Len(), refs)
	}
	if store.At(2).Config.Texture() != clouds.Texture(constTex(0.5)) {
		t.Fatal("resolved texture not bound to layer")
	}

	boom := errors.New("boom")
	if _, err := p.Build(func(string) (clouds.Texture, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped resolver error", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := clouds.DefaultGlobalConfig()
	g.SetResolution(333)
	g.SetProjectionMode(clouds.Mode2D)
	layer := clouds.NewLayerConfig()
	layer.SetName("Only")
	layer.SetBlendMode(clouds.BlendColorBurn)
	layer.SetTiling(clouds.Vec2{X: 2, Y: 5})
	src := &Preset{Global: g, Layers: []clouds.LayerConfig{layer}}

	path := filepath.Join(t.TempDir(), "nested", "mine.json")
	if err := Save(path, src); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Name != "mine" {
		t.Fatalf("name = %q, want file base name", got.Name)
	}
	if got.Global != g {
		t.Fatalf("global = %+v", got.Global)
	}
	l := got.Layers[0]
	if l.Name() != "Only" || l.BlendMode() != clouds.BlendColorBurn || l.Tiling() != (clouds.Vec2{X: 2, Y: 5}) {
		t.Fatalf("layer = %s %v %+v", l.Name(), l.BlendMode(), l.Tiling())
	}
}

func TestRegisterAndFromEffect(t *testing.T) {
	store := clouds.NewLayerStore(clouds.NewLayerConfig())
	e := clouds.NewEffect(clouds.NewDirectionalLight(45, 0), &clouds.CPUBlitter{}, clouds.WithLayers(store))
	e.Global().SetWorldSize(42)
	if err := Register(FromEffect("captured", e)); err != nil {
		t.Fatalf("Register: %v", err)
	}
	p, err := Get("captured")
	if err != nil {
		t.Fatal(err)
	}
	if p.Global.WorldSize() != 42 || len(p.Layers) != 1 {
		t.Fatalf("captured preset = %+v", p)
	}
	if err := Register(&Preset{}); err == nil {
		t.Fatal("unnamed presets must be rejected")
	}
}

type constTex float64

func (c constTex) Sample(u, v float64) float64 { return float64(c) }
