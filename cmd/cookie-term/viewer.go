package main

import (
	"fmt"

	"cloud-shadows/internal/clouds"
	"cloud-shadows/internal/render"

	"github.com/gdamore/tcell/v2"
)

const (
	rampSteps = 24
	upperHalf = '▀'
)

// viewer draws the cookie with half blocks, two mask rows per terminal row,
// and maps keys onto the effect's settings.
type viewer struct {
	effect *clouds.Effect
	light  *clouds.DirectionalLight
	ramp   []tcell.Color
	alpha  []byte
	paused bool
}

func newViewer(effect *clouds.Effect, light *clouds.DirectionalLight) *viewer {
	shades := render.ShadeRamp(render.DefaultLit, render.DefaultShadow, rampSteps)
	ramp := make([]tcell.Color, len(shades))
	for i, c := range shades {
		ramp[i] = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return &viewer{effect: effect, light: light, ramp: ramp}
}

// handleKey applies one key press and reports whether the viewer should quit.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	g := v.effect.Global()
	switch ev.Key() {
	case tcell.KeyEsc, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		v.light.SetElevation(v.light.Elevation() + 2)
	case tcell.KeyDown:
		v.light.SetElevation(v.light.Elevation() - 2)
	case tcell.KeyLeft:
		v.light.SetAzimuth(v.light.Azimuth() - 5)
	case tcell.KeyRight:
		v.light.SetAzimuth(v.light.Azimuth() + 5)
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q':
			return true
		case ' ':
			v.paused = !v.paused
		case '+', '=':
			g.SetOpacityMultiplier(g.OpacityMultiplier() + 0.05)
		case '-':
			g.SetOpacityMultiplier(g.OpacityMultiplier() - 0.05)
		case ']':
			g.SetCoverageModifier(g.CoverageModifier() + 0.05)
		case '[':
			g.SetCoverageModifier(g.CoverageModifier() - 0.05)
		case '}':
			g.SetSoftnessModifier(g.SoftnessModifier() + 0.05)
		case '{':
			g.SetSoftnessModifier(g.SoftnessModifier() - 0.05)
		case 'm':
			if g.ProjectionMode() == clouds.Mode3D {
				g.SetProjectionMode(clouds.Mode2D)
			} else {
				g.SetProjectionMode(clouds.Mode3D)
			}
		case 'r':
			v.effect.Reset(0)
		default:
			if r >= '1' && r <= '9' {
				v.effect.ToggleLayer(int(r - '1'))
			}
		}
	}
	return false
}

// step advances the effect unless paused. Paused frames recomposite in place.
func (v *viewer) step(dt float64) {
	if v.paused {
		dt = 0
	}
	v.effect.Update(dt)
}

func (v *viewer) draw(screen tcell.Screen) {
	screen.Clear()
	w, h := screen.Size()
	if w <= 0 || h <= 1 {
		screen.Show()
		return
	}
	rows := h - 1
	if cookie, _ := v.light.Cookie(); cookie != nil {
		if r, ok := cookie.(interface{ AlphaBytes([]byte) []byte }); ok {
			v.alpha = r.AlphaBytes(v.alpha)
			res := cookie.Resolution()
			for y := 0; y < rows; y++ {
				for x := 0; x < w; x++ {
					top := v.shade(res, x, 2*y, w, 2*rows)
					bottom := v.shade(res, x, 2*y+1, w, 2*rows)
					screen.SetContent(x, y, upperHalf, nil, tcell.StyleDefault.Foreground(top).Background(bottom))
				}
			}
		}
	}
	v.drawStatus(screen, w, rows)
	screen.Show()
}

// shade maps the view pixel (x, y) of a w x h view onto the cookie with
// nearest sampling.
func (v *viewer) shade(res, x, y, w, h int) tcell.Color {
	cx := x * res / w
	cy := y * res / h
	return v.ramp[render.RampIndex(v.alpha[cy*res+cx], len(v.ramp))]
}

func (v *viewer) status() string {
	g := v.effect.Global()
	angle := clouds.AngleToHorizon(v.light.Forward())
	state := ""
	if v.paused {
		state = " [paused]"
	}
	return fmt.Sprintf("%s sun %.0f°/%.0f° (%.0f° to horizon) opacity %.2f coverage %+.2f softness %+.2f passes %d/%d%s",
		g.ProjectionMode(), v.light.Elevation(), v.light.Azimuth(), angle,
		g.OpacityMultiplier(), g.CoverageModifier(), g.SoftnessModifier(),
		v.effect.Stats().Passes, v.effect.Layers().Len(), state)
}

func (v *viewer) drawStatus(screen tcell.Screen, w, row int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	x := 0
	for _, r := range v.status() {
		if x >= w {
			break
		}
		screen.SetContent(x, row, r, nil, style)
		x++
	}
}
