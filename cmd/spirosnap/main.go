// Command spirosnap renders one seeded pattern headlessly and writes it as a PNG.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gogpu/gg"

	"github.com/iburimskiy/spiro/internal/config"
	"github.com/iburimskiy/spiro/internal/frame"
	"github.com/iburimskiy/spiro/internal/pattern"
	"github.com/iburimskiy/spiro/internal/raster"
	"github.com/iburimskiy/spiro/internal/spiro"
)

// maxPeriodDenominator bounds the search for a closed-curve period.
const maxPeriodDenominator = 64

type options struct {
	width, height int
	scale         float64
	preset        pattern.Preset
	seed          int64
	frames        int
}

func main() {
	var (
		o          options
		presetName string
		out        string
		verbose    bool
	)
	flag.IntVar(&o.width, "w", 800, "image width")
	flag.IntVar(&o.height, "h", 800, "image height")
	flag.Float64Var(&o.scale, "scale", 1, "supersampling factor")
	flag.StringVar(&presetName, "preset", "chroma", "pattern preset: chroma, classic, ribbon, bloom, random")
	flag.Int64Var(&o.seed, "seed", 0, "random seed (0 uses the clock)")
	flag.IntVar(&o.frames, "frames", 0, "stop after this many frames (0 runs to completion)")
	flag.StringVar(&out, "out", "spiro.png", "output file, - for stdout")
	flag.BoolVar(&verbose, "v", false, "log progress to stderr")
	flag.Parse()

	if verbose {
		l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		spiro.SetLogger(l)
		gg.SetLogger(l)
	}

	p, err := pattern.ParsePreset(presetName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	o.preset = p
	if o.seed == 0 {
		o.seed = time.Now().UnixNano()
	}

	if err := run(o, out); err != nil {
		fmt.Fprintln(os.Stderr, "spirosnap:", err)
		os.Exit(1)
	}
}

func run(o options, out string) (err error) {
	surf, err := snap(o)
	if err != nil {
		return err
	}
	defer surf.Close()

	var w io.Writer = os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	return encode(w, surf, o)
}

// snap runs a pattern on a headless surface at fixed 60 Hz steps until it
// completes, closes on itself, or reaches the frame limit.
func snap(o options) (*raster.Surface, error) {
	if o.width <= 0 || o.height <= 0 {
		return nil, fmt.Errorf("invalid size %dx%d", o.width, o.height)
	}

	clock := frame.NewClock()
	surf := raster.New(o.width, o.height, o.scale)
	d := spiro.New(clock, surf,
		spiro.WithRand(rand.New(rand.NewSource(o.seed))),
		spiro.WithPreset(o.preset),
	)
	if !d.Start() {
		surf.Close()
		return nil, errors.New("surface not ready")
	}

	r, _ := d.Run()
	period, closed := r.Config.Curve.Period(maxPeriodDenominator)

	step := time.Second / config.TicksPerSecond
	for {
		clock.Step(clock.Now() + step)
		r, ok := d.Run()
		if !ok || d.State() != spiro.Running {
			break
		}
		if closed && r.Theta > period {
			break
		}
		if o.frames > 0 && r.Ticks >= o.frames {
			break
		}
	}
	d.Stop()

	if err := surf.Err(); err != nil {
		surf.Close()
		return nil, err
	}
	return surf, nil
}

func encode(w io.Writer, surf *raster.Surface, o options) error {
	if o.scale == 1 {
		return surf.EncodePNG(w)
	}
	return png.Encode(w, surf.Snapshot(o.width, o.height))
}
