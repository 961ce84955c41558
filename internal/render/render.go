// Package render paints one mark of the curve per tick onto a Surface.
package render

import (
	"image/color"
	"math"

	"github.com/iburimskiy/spiro/internal/config"
	"github.com/iburimskiy/spiro/internal/palette"
	"github.com/iburimskiy/spiro/internal/pattern"
)

// Surface is a raster owned by the host. Coordinates are surface pixels,
// origin top-left. Colours are passed by value so painting does not allocate.
type Surface interface {
	Size() (w, h int)
	Clear(c color.NRGBA)
	SetComposite(op pattern.Composite)
	// SetShadow sets the glow drawn under subsequent marks; blur <= 0 disables it.
	SetShadow(blur float64, c color.NRGBA)
	FillCircle(x, y, r float64, fill, stroke color.NRGBA, strokeWidth float64)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
}

type Point struct {
	X, Y float64
}

// Pen carries line continuity between ticks.
type Pen struct {
	Prev    Point
	HasPrev bool
}

// Renderer paints marks for one run.
type Renderer struct {
	Config  pattern.Config
	Palette palette.Palette
}

// ToSurface translates a centred curve point to surface pixels.
func ToSurface(w, h int, x, y float64) Point {
	return Point{X: float64(w/2) + x, Y: float64(h/2) + y}
}

// Paint draws the mark for the curve point (x, y) at theta and advances pen.
func (r *Renderer) Paint(s Surface, pen *Pen, theta, x, y float64) {
	cfg := &r.Config
	w, h := s.Size()
	at := ToSurface(w, h, x, y)

	sin, cos := math.Sincos(theta)
	mag := math.Abs(sin)

	fill := withAlpha(r.Palette.At(sin), cfg.FillAlpha)
	stroke := palette.Lighten(r.Palette.At(cos), config.StrokeLightening)

	s.SetComposite(cfg.Composite)
	switch {
	case cfg.ShadowFade:
		s.SetShadow(cfg.ShadowBlur*mag, withAlpha(stroke, mag))
	case cfg.ShadowBlur > 0:
		s.SetShadow(cfg.ShadowBlur, stroke)
	default:
		s.SetShadow(0, stroke)
	}

	radius := dotRadius(mag, cfg.PointRadius, cfg.MinPointRadius)

	switch cfg.Mode {
	case pattern.ModeLine:
		if pen.HasPrev {
			s.StrokeLine(pen.Prev.X, pen.Prev.Y, at.X, at.Y, cfg.StrokeWidth*(1+mag), withAlpha(stroke, cfg.LineAlpha))
		}
	case pattern.ModeHybrid:
		if pen.HasPrev && mag > cfg.HybridThreshold {
			s.StrokeLine(pen.Prev.X, pen.Prev.Y, at.X, at.Y, cfg.StrokeWidth, withAlpha(stroke, cfg.LineAlpha))
		}
		s.FillCircle(at.X, at.Y, math.Max(radius/2, 1), fill, withAlpha(stroke, cfg.FillAlpha), cfg.StrokeWidth/2)
	default:
		s.FillCircle(at.X, at.Y, radius, fill, stroke, cfg.StrokeWidth)
	}

	pen.Prev = at
	pen.HasPrev = true
}

func dotRadius(mag, hi, lo float64) float64 {
	r := math.Trunc(mag * hi)
	if r < lo {
		return lo
	}
	if r > hi {
		return hi
	}
	return r
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	c.A = uint8(a*255 + 0.5)
	return c
}
