//go:build ebiten

package app

import (
	"fmt"
	"image/color"
	"path/filepath"
	"time"

	"cloud-shadows/internal/bake"
	"cloud-shadows/internal/clouds"
	"cloud-shadows/internal/core"
	"cloud-shadows/internal/logging"
	"cloud-shadows/internal/preset"
	"cloud-shadows/internal/render"
	"cloud-shadows/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 260

// Game adapts a cloud shadow effect to the ebiten.Game interface. The cookie
// is read back every frame and drawn tinted between the lit and shadow colors.
type Game struct {
	effect  *clouds.Effect
	light   *clouds.DirectionalLight
	painter *render.CookiePainter
	hud     *ui.HUD
	overlay *ui.Overlay
	alpha   []byte

	litColor    color.Color
	shadowColor color.Color

	view     int
	dt       float64
	paused   bool
	tickOnce bool
	seed     int64
	saveDir  string
}

// New constructs a Game for the provided effect, previewed in a square of
// view pixels and stepped at tps.
func New(effect *clouds.Effect, light *clouds.DirectionalLight, view, tps int, seed int64) *Game {
	res := effect.Global().Resolution()
	return &Game{
		effect:      effect,
		light:       light,
		painter:     render.NewCookiePainter(res),
		hud:         ui.NewHUD(effect, hudWidth),
		overlay:     ui.NewOverlay(effect, view),
		litColor:    render.DefaultLit,
		shadowColor: render.DefaultShadow,
		view:        view,
		dt:          core.FixedDelta(tps),
		seed:        seed,
		saveDir:     "presets",
	}
}

// Size returns the window size needed for the preview plus the HUD.
func (g *Game) Size() (int, int) { return g.view + hudWidth, g.view }

// Reset reinitializes the layer offsets with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.effect.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the effect.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.effect.SetPreview(!g.effect.Preview())
		logging.Info("preview %v", g.effect.Preview())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.savePreset()
	}
	g.steerSun()

	g.hud.Update(g.view)
	g.overlay.Update()

	if !g.paused || g.tickOnce {
		g.effect.Update(g.dt)
		g.tickOnce = false
	} else {
		// Paused frames still recomposite so sun and HUD edits show up.
		g.effect.Update(0)
	}
	return nil
}

func (g *Game) steerSun() {
	const rate = 30.0
	step := rate * g.dt
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.light.SetElevation(g.light.Elevation() + step)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.light.SetElevation(g.light.Elevation() - step)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.light.SetAzimuth(g.light.Azimuth() - step)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.light.SetAzimuth(g.light.Azimuth() + step)
	}
}

func (g *Game) savePreset() {
	name := fmt.Sprintf("session-%d", time.Now().Unix())
	path := filepath.Join(g.saveDir, name+".json")
	if err := preset.Save(path, preset.FromEffect(name, g.effect)); err != nil {
		logging.Error("save preset: %v", err)
		return
	}
	logging.Info("saved %s", path)
}

// Draw renders the current cookie, the overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if cookie, _ := g.light.Cookie(); cookie != nil {
		alpha, err := bake.Alpha(cookie, g.alpha)
		if err != nil {
			logging.Error("%v", err)
		} else {
			g.alpha = alpha
			g.painter.Blit(screen, alpha, g.litColor, g.shadowColor, 0, 0, float64(g.view))
		}
	}
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.view, g.view)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.Size()
}
