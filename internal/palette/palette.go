// Package palette maps a scalar in [-1, 1] onto a two-colour gradient
// interpolated in a perceptual colour space.
package palette

import (
	"image/color"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Space selects the interpolation space.
type Space int

const (
	LCH Space = iota
	Lab
	Luv
	HSV
	RGB
)

var spaceNames = [...]string{"lch", "lab", "luv", "hsv", "rgb"}

func (s Space) String() string {
	if s < 0 || int(s) >= len(spaceNames) {
		return "unknown"
	}
	return spaceNames[s]
}

// Palette is the start/end colour pair of a run.
type Palette struct {
	Start colorful.Color
	End   colorful.Color
	Space Space
}

// New builds a palette from any two colours. Fully transparent inputs fall back to black.
func New(a, b color.Color, s Space) Palette {
	ca, _ := colorful.MakeColor(a)
	cb, _ := colorful.MakeColor(b)
	return Palette{Start: ca, End: cb, Space: s}
}

// Random draws two colours from rng.
func Random(rng *rand.Rand, s Space) Palette {
	pick := func() colorful.Color {
		return colorful.Hsv(rng.Float64()*360, 0.45+rng.Float64()*0.55, 0.5+rng.Float64()*0.5)
	}
	a := pick()
	b := pick()
	return Palette{Start: a, End: b, Space: s}
}

// At maps t in [-1, 1] to a colour; t outside the domain is clamped.
func (p Palette) At(t float64) color.NRGBA {
	if t < -1 {
		t = -1
	} else if t > 1 {
		t = 1
	}
	return toNRGBA(p.blend((t + 1) / 2))
}

func (p Palette) blend(t float64) colorful.Color {
	switch p.Space {
	case Lab:
		return p.Start.BlendLab(p.End, t)
	case Luv:
		return p.Start.BlendLuv(p.End, t)
	case HSV:
		return p.Start.BlendHsv(p.End, t)
	case RGB:
		return p.Start.BlendRgb(p.End, t)
	default:
		return p.Start.BlendHcl(p.End, t)
	}
}

// Lighten scales the Lab lightness of c by k.
func Lighten(c color.NRGBA, k float64) color.NRGBA {
	cc := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	l, a, b := cc.Lab()
	out := toNRGBA(colorful.Lab(l*k, a, b))
	out.A = c.A
	return out
}

// Theme is the page colouring derived from a palette.
type Theme struct {
	Top    color.NRGBA
	Bottom color.NRGBA
	Text   color.NRGBA
}

// Theme puts the brighter colour on text and fades the background from
// the darker colour to the brighter one.
func (p Palette) Theme() Theme {
	bright, dark := p.Start, p.End
	lb, _, _ := bright.Lab()
	ld, _, _ := dark.Lab()
	if ld > lb {
		bright, dark = dark, bright
	}
	return Theme{
		Top:    toNRGBA(scaleL(dark, 0.4)),
		Bottom: toNRGBA(scaleL(bright, 0.5)),
		Text:   toNRGBA(scaleL(bright, 1.8)),
	}
}

func scaleL(c colorful.Color, k float64) colorful.Color {
	l, a, b := c.Lab()
	return colorful.Lab(l*k, a, b)
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
