// Package pattern builds the immutable per-run configuration.
package pattern

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/iburimskiy/spiro/internal/config"
	"github.com/iburimskiy/spiro/internal/curve"
	"github.com/iburimskiy/spiro/internal/palette"
)

// Mode selects what is painted each tick.
type Mode int

const (
	ModeDot Mode = iota
	ModeLine
	ModeHybrid
)

func (m Mode) String() string {
	switch m {
	case ModeDot:
		return "dot"
	case ModeLine:
		return "line"
	case ModeHybrid:
		return "hybrid"
	}
	return "unknown"
}

// Composite is the operator used to combine a mark with what is already painted.
type Composite int

const (
	SourceOver Composite = iota
	Lighter
	Multiply
	Screen
)

func (c Composite) String() string {
	switch c {
	case SourceOver:
		return "source-over"
	case Lighter:
		return "lighter"
	case Multiply:
		return "multiply"
	case Screen:
		return "screen"
	}
	return "unknown"
}

// Config is fixed for the lifetime of a run.
type Config struct {
	Curve     curve.Params
	ThetaIncr float64
	Budget    time.Duration

	Mode            Mode
	PointRadius     float64
	MinPointRadius  float64
	StrokeWidth     float64
	FillAlpha       float64
	LineAlpha       float64
	HybridThreshold float64

	Space      palette.Space
	Composite  Composite
	ShadowBlur float64
	ShadowFade bool

	Seeds [2]float64
}

// Preset names a family of configurations.
type Preset int

const (
	Chroma Preset = iota
	Classic
	Ribbon
	Bloom
	Random
)

var presetNames = map[Preset]string{
	Chroma:  "chroma",
	Classic: "classic",
	Ribbon:  "ribbon",
	Bloom:   "bloom",
	Random:  "random",
}

func (p Preset) String() string {
	if s, ok := presetNames[p]; ok {
		return s
	}
	return "unknown"
}

// ParsePreset accepts a preset name, case-insensitively.
func ParsePreset(s string) (Preset, error) {
	for p, name := range presetNames {
		if strings.EqualFold(s, name) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown preset %q", s)
}

// Generate draws a configuration from rng. The first two draws are always the curve seeds.
func Generate(rng *rand.Rand, preset Preset, outer float64, b config.Bounds) Config {
	seedA := rng.Float64()
	seedB := rng.Float64()

	cfg := Config{
		Curve:           curve.Derive(outer, seedA, seedB, b),
		ThetaIncr:       config.FixedThetaIncr,
		Budget:          config.ChromaBudget,
		Mode:            ModeDot,
		PointRadius:     config.PointRadius,
		MinPointRadius:  config.MinPointRadius,
		StrokeWidth:     config.StrokeWidth,
		FillAlpha:       1,
		LineAlpha:       1,
		HybridThreshold: config.HybridThreshold,
		Space:           palette.LCH,
		Composite:       SourceOver,
		Seeds:           [2]float64{seedA, seedB},
	}

	switch preset {
	case Classic:
		cfg.ThetaIncr = config.ClassicIncrMin + seedA*(config.ClassicIncrMax-config.ClassicIncrMin)
		cfg.Budget = config.ClassicBudget
		cfg.Space = palette.RGB
	case Ribbon:
		cfg.Mode = ModeLine
		cfg.StrokeWidth = 2
		cfg.LineAlpha = 0.8
	case Bloom:
		cfg.Mode = ModeHybrid
		cfg.FillAlpha = 0.85
		cfg.LineAlpha = 0.5
		cfg.Composite = Lighter
		cfg.ShadowBlur = 12
		cfg.ShadowFade = true
	case Random:
		cfg.Mode = Mode(rng.Intn(3))
		cfg.ThetaIncr = 0.03 + rng.Float64()*0.09
		cfg.PointRadius = 8 + float64(rng.Intn(17))
		cfg.StrokeWidth = 1 + rng.Float64()*2
		cfg.FillAlpha = 0.5 + rng.Float64()*0.5
		cfg.LineAlpha = 0.3 + rng.Float64()*0.7
		cfg.HybridThreshold = 0.3 + rng.Float64()*0.6
		cfg.Space = palette.Space(rng.Intn(4))
		cfg.Composite = Composite(rng.Intn(4))
		if rng.Float64() < 0.5 {
			cfg.ShadowBlur = 4 + rng.Float64()*16
			cfg.ShadowFade = true
		}
	}
	return cfg
}
