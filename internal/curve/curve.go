// Package curve samples the hypocycloid family traced by a point at offset D
// from the centre of a circle of radius Rolling rolling inside a circle of radius R.
package curve

import (
	"math"

	"github.com/iburimskiy/spiro/internal/config"
)

// Params are the fixed parameters of one run. Diff and Ratio are clamped
// independently, so Diff is not always R-Rolling.
type Params struct {
	R       float64
	Rolling float64
	D       float64
	Diff    float64
	Ratio   float64
}

// Derive computes curve parameters from the outer radius and two seeds in [0, 1).
func Derive(outer, seedA, seedB float64, b config.Bounds) Params {
	outer = math.Max(outer, b.MinOuterRadius)

	r := clamp(math.Trunc(outer*seedA), b.RollingMin, b.RollingMax)
	if outer-r < b.MinGap {
		r = outer - b.PullBack
	}
	r = clamp(r, outer*b.RollingFloor, outer*b.RollingCeil)

	d := clamp(math.Trunc(outer*seedB), b.OffsetMin, b.OffsetMax)
	diff := clamp(outer-r, b.DiffMin, b.DiffMax)
	ratio := clamp(diff/r, b.RatioMin, b.RatioMax)

	return Params{R: outer, Rolling: r, D: d, Diff: diff, Ratio: ratio}
}

// Sample returns the point at theta, centred on the origin.
func (p Params) Sample(theta float64) (x, y float64) {
	s, c := math.Sincos(theta)
	sr, cr := math.Sincos(p.Ratio * theta)
	return p.Diff*c + p.D*cr, p.Diff*s + p.D*sr
}

// Extent is an upper bound on the distance of any sampled point from the origin.
func (p Params) Extent() float64 {
	return math.Abs(p.Diff) + math.Abs(p.D)
}

// Period returns 2*pi*q when Ratio is within 1e-9 of p/q for some q <= maxDen.
func (p Params) Period(maxDen int) (float64, bool) {
	for q := 1; q <= maxDen; q++ {
		n := p.Ratio * float64(q)
		if math.Abs(n-math.Round(n)) < 1e-9*float64(q) {
			return 2 * math.Pi * float64(q), true
		}
	}
	return 0, false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
