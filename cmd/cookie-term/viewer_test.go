package main

import (
	"testing"

	"cloud-shadows/internal/app"
	"cloud-shadows/internal/clouds"

	"github.com/gdamore/tcell/v2"
)

func newTestViewer(t *testing.T) *viewer {
	t.Helper()
	cfg := app.NewConfig()
	cfg.Overrides = app.KVList{"resolution=16"}
	effect, light, err := cfg.BuildEffect(&clouds.CPUBlitter{})
	if err != nil {
		t.Fatalf("BuildEffect: %v", err)
	}
	t.Cleanup(effect.Disable)
	return newViewer(effect, light)
}

func keyRune(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func TestHandleKeyAdjustsEffect(t *testing.T) {
	v := newTestViewer(t)
	g := v.effect.Global()
	opacity := g.OpacityMultiplier()
	v.handleKey(keyRune('-'))
	if g.OpacityMultiplier() >= opacity {
		t.Fatalf("opacity did not drop: %v -> %v", opacity, g.OpacityMultiplier())
	}
	v.handleKey(keyRune(']'))
	if g.CoverageModifier() <= 0 {
		t.Fatalf("coverage modifier = %v", g.CoverageModifier())
	}
	v.handleKey(keyRune('m'))
	if g.ProjectionMode() != clouds.Mode2D {
		t.Fatalf("mode = %v, want 2d", g.ProjectionMode())
	}
	v.handleKey(keyRune('1'))
	if v.effect.Layers().At(0).Config.Visible() {
		t.Fatal("digit 1 must hide the first layer")
	}
	elevation := v.light.Elevation()
	v.handleKey(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	if v.light.Elevation() >= elevation {
		t.Fatal("down arrow must lower the sun")
	}
	if !v.handleKey(keyRune('q')) || !v.handleKey(tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone)) {
		t.Fatal("q and Esc must quit")
	}
}

func TestPausedStepKeepsOffsets(t *testing.T) {
	v := newTestViewer(t)
	v.handleKey(keyRune(' '))
	before := v.effect.Layers().At(0).State.AnimationOffset
	v.step(1)
	if got := v.effect.Layers().At(0).State.AnimationOffset; got != before {
		t.Fatalf("paused step moved the layer: %v -> %v", before, got)
	}
	v.handleKey(keyRune(' '))
	v.step(1)
	if got := v.effect.Layers().At(0).State.AnimationOffset; got == before {
		t.Fatal("running step must move the layer")
	}
}

func TestDrawFillsScreen(t *testing.T) {
	v := newTestViewer(t)
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 6)

	v.draw(screen)
	cells, w, h := screen.GetContents()
	if w != 20 || h != 6 {
		t.Fatalf("screen is %dx%d", w, h)
	}
	if got := cells[0].Runes; len(got) != 1 || got[0] != upperHalf {
		t.Fatalf("top-left cell = %q, want half block", got)
	}
	status := cells[(h-1)*w].Runes
	if len(status) != 1 || status[0] != '3' {
		t.Fatalf("status line starts with %q, want the projection mode", status)
	}
}
