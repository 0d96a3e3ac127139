package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"cloud-shadows/internal/app"
	"cloud-shadows/internal/clouds"
	"cloud-shadows/internal/core"
	"cloud-shadows/internal/logging"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.BindScene(flag.CommandLine)
	fps := flag.Int("fps", 20, "frames per second")
	res := flag.Int("res", 96, "cookie resolution used for the terminal preview")
	flag.Parse()

	cfg.Overrides = append(cfg.Overrides, fmt.Sprintf("resolution=%d", *res))
	effect, light, err := cfg.BuildEffect(&clouds.CPUBlitter{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer effect.Disable()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	// tcell owns the terminal; keep log lines from tearing the picture.
	logging.SetLevel(logging.LevelError)

	frames, elapsed := runLoop(newViewer(effect, light), screen, *fps)
	screen.Fini()
	fmt.Fprintf(os.Stderr, "Rendered %d frames in %v (%.2f FPS)\n", frames, elapsed, float64(frames)/elapsed.Seconds())
}

func runLoop(v *viewer, screen tcell.Screen, fps int) (int, time.Duration) {
	if fps <= 0 {
		fps = 20
	}
	keys := make(chan *tcell.EventKey, 16)

	go func() {
		for {
			switch ev := screen.PollEvent().(type) {
			case nil:
				return
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				keys <- ev
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	var frames int
	start := time.Now()
	clock := core.NewFrameClock(0)
	for {
		select {
		case ev := <-keys:
			if v.handleKey(ev) {
				return frames, time.Since(start)
			}
		case <-ticker.C:
			v.step(clock.Tick())
			v.draw(screen)
			frames++
		}
	}
}
