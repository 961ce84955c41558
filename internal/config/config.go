package config

import (
	"image/color"
	"math"
	"time"
)

const (
	WindowWidth  = 1200
	WindowHeight = 720

	// Below this window width the canvas takes the full width.
	NarrowBreakpoint = 600
	NarrowHeight     = 600

	// Button dimensions
	ButtonWidth  = 140
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = 70

	// Frame pacing
	TicksPerSecond = 60
	TermTickRate   = 30

	// Run budgets
	ChromaBudget  = 60 * time.Second
	ClassicBudget = 120 * time.Second

	// Theta increments
	FixedThetaIncr   = 0.05
	ClassicIncrMin   = 0.08
	ClassicIncrMax   = 0.19
	StrokeLightening = 1.5

	// Mark sizes
	PointRadius     = 20
	MinPointRadius  = 3
	StrokeWidth     = 1
	HybridThreshold = 0.6
)

// TermBackground is the canvas colour behind the terminal view.
var TermBackground = color.NRGBA{R: 16, G: 16, B: 24, A: 255}

// Bounds holds the clamp ranges applied when deriving curve parameters.
type Bounds struct {
	MinOuterRadius float64

	RollingMin   float64
	RollingMax   float64
	RollingFloor float64 // fraction of R
	RollingCeil  float64 // fraction of R
	MinGap       float64
	PullBack     float64

	OffsetMin float64
	OffsetMax float64

	DiffMin  float64
	DiffMax  float64
	RatioMin float64
	RatioMax float64
}

func DefaultBounds() Bounds {
	return Bounds{
		MinOuterRadius: 20,
		RollingMin:     120,
		RollingMax:     400,
		RollingFloor:   0.05,
		RollingCeil:    0.95,
		MinGap:         50,
		PullBack:       100,
		OffsetMin:      70,
		OffsetMax:      320,
		DiffMin:        10,
		DiffMax:        400,
		RatioMin:       0.198,
		RatioMax:       4.7,
	}
}

// Layout returns the canvas size and outer radius for a window of the given size.
func Layout(windowW, windowH int) (w, h int, outer float64) {
	w = int(math.Round(float64(windowW) / 3 * 2))
	h = windowH
	outer = OuterRadius(w)
	if w <= NarrowBreakpoint {
		// R follows the two-thirds width; only the canvas widens.
		outer = math.Round(float64(w) / 2)
		w = windowW
		h = NarrowHeight
	}
	return w, h, outer
}

// OuterRadius is the fixed-circle radius for a canvas of width w on a wide window.
func OuterRadius(w int) float64 {
	return math.Round(float64(w)/2) / 3 * 1.9
}
