//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"cloud-shadows/internal/app"
	"cloud-shadows/internal/clouds"
	"cloud-shadows/internal/gpu"
	"cloud-shadows/internal/logging"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	var blitter clouds.Blitter
	if cfg.CPU {
		blitter = &clouds.CPUBlitter{}
	} else {
		b, err := gpu.NewBlitter()
		if err != nil {
			log.Fatal(err)
		}
		defer b.ReleaseTextures()
		blitter = b
	}

	effect, light, err := cfg.BuildEffect(blitter)
	if err != nil {
		log.Fatal(err)
	}
	defer effect.Disable()

	game := app.New(effect, light, cfg.View, cfg.TPS, cfg.Seed)
	w, h := game.Size()

	ebiten.SetWindowTitle("cloud shadows: " + cfg.Preset)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	logging.Debug("last frame: %+v", effect.Stats())
}
