package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/spiro/internal/config"
	"github.com/iburimskiy/spiro/internal/game"
	"github.com/iburimskiy/spiro/internal/pattern"
	"github.com/iburimskiy/spiro/internal/spiro"
)

func main() {
	presetName := flag.String("preset", "chroma", "pattern preset: chroma, classic, ribbon, bloom, random")
	seed := flag.Int64("seed", 0, "random seed (0 uses the clock)")
	verbose := flag.Bool("v", false, "log run lifecycle to stderr")
	flag.Parse()

	preset, err := pattern.ParsePreset(*presetName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *verbose {
		spiro.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Beautiful Loops - R/click: change it up, C: colours, P: preset, Esc/Q: Quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TicksPerSecond)

	g := game.New(preset, spiro.WithRand(rand.New(rand.NewSource(*seed))))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		panic(err)
	}
}
