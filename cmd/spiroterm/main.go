// Command spiroterm draws the animation in a terminal, two pixels per cell.
package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/spiro/internal/config"
	"github.com/iburimskiy/spiro/internal/frame"
	"github.com/iburimskiy/spiro/internal/pattern"
	"github.com/iburimskiy/spiro/internal/raster"
	"github.com/iburimskiy/spiro/internal/spiro"
)

// The pattern is traced on a virtual surface this tall and resampled to the terminal.
const virtualHeight = config.NarrowHeight

const halfBlock = '▀'

type viewer struct {
	screen  tcell.Screen
	clock   *frame.Clock
	driver  *spiro.Driver
	surf    *raster.Surface
	started time.Time

	cols, rows int
}

func newViewer(screen tcell.Screen, rng *rand.Rand, preset pattern.Preset) *viewer {
	v := &viewer{
		screen:  screen,
		clock:   frame.NewClock(),
		started: time.Now(),
	}
	v.driver = spiro.New(v.clock, nil,
		spiro.WithRand(rng),
		spiro.WithPreset(preset),
		spiro.WithClearColor(config.TermBackground),
	)
	return v
}

// resize rebuilds the surface for the current terminal size and restarts the run.
func (v *viewer) resize() {
	cols, rows := v.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	v.cols, v.rows = cols, rows

	vw, vh := virtualSize(cols, rows)
	old := v.surf
	v.surf = raster.New(vw, vh, 1)
	v.driver.SetOuterRadius(config.OuterRadius(vh))
	v.driver.SetSurface(v.surf)
	if old != nil {
		old.Close()
	}
	v.screen.Clear()
}

func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				v.driver.Reset()
			}
		}
	case *tcell.EventResize:
		v.resize()
	}
	return true
}

func (v *viewer) draw() {
	if v.surf == nil {
		return
	}
	img := v.surf.Snapshot(v.cols, v.rows*2)
	for y := 0; y < v.rows; y++ {
		for x := 0; x < v.cols; x++ {
			fg, bg := cellColors(img, x, y)
			v.screen.SetContent(x, y, halfBlock, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
	v.screen.Show()
}

func (v *viewer) run() {
	ticker := time.NewTicker(time.Second / config.TermTickRate)
	defer ticker.Stop()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	v.resize()
	for {
		select {
		case ev := <-events:
			if !v.handle(ev) {
				v.driver.Stop()
				return
			}
		case <-ticker.C:
			v.clock.Step(time.Since(v.started))
			v.draw()
		}
	}
}

// virtualSize keeps the terminal's pixel aspect (cols x 2*rows) at a fixed height.
func virtualSize(cols, rows int) (w, h int) {
	h = virtualHeight
	w = int(math.Round(float64(h) * float64(cols) / float64(2*rows)))
	return max(w, 1), h
}

// cellColors returns the upper and lower pixel of cell (x, y) composited over black.
func cellColors(img *image.RGBA, x, y int) (fg, bg tcell.Color) {
	top := img.RGBAAt(x, 2*y)
	bot := img.RGBAAt(x, 2*y+1)
	// Premultiplied channels are already the colour over black.
	fg = tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))
	bg = tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B))
	return fg, bg
}

func main() {
	presetName := flag.String("preset", "chroma", "pattern preset: chroma, classic, ribbon, bloom, random")
	seed := flag.Int64("seed", 0, "random seed (0 uses the clock)")
	logPath := flag.String("log", "", "write lifecycle logs to this file")
	flag.Parse()

	preset, err := pattern.ParsePreset(*presetName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		spiro.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	newViewer(screen, rand.New(rand.NewSource(*seed)), preset).run()
}
