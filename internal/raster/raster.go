// Package raster is a headless Surface backed by the gg software rasteriser.
package raster

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"github.com/iburimskiy/spiro/internal/pattern"
)

// Surface paints into an in-memory pixmap. Size reports logical pixels;
// the backing pixmap is Scale times larger in each direction.
type Surface struct {
	dc    *gg.Context
	w, h  int
	scale float64

	op     pattern.Composite
	blur   float64
	shadow color.NRGBA

	// Marks under a non source-over composite are drawn into scratch,
	// which only has to cover one mark, and blended back through buf.
	scratch *gg.Context
	buf     *gg.ImageBuf
	region  image.Rectangle
	src     image.Rectangle
	mode    gg.BlendMode
	layered bool

	err error
}

// New returns a w x h surface rendered at scale device pixels per logical pixel.
func New(w, h int, scale float64) *Surface {
	if scale <= 0 {
		scale = 1
	}
	return &Surface{
		dc:    gg.NewContext(int(float64(w)*scale+0.5), int(float64(h)*scale+0.5)),
		w:     w,
		h:     h,
		scale: scale,
	}
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) Scale() float64 { return s.scale }

func (s *Surface) Clear(c color.NRGBA) {
	s.dc.ClearWithColor(toGG(c))
}

func (s *Surface) SetComposite(op pattern.Composite) { s.op = op }

func (s *Surface) SetShadow(blur float64, c color.NRGBA) {
	s.blur = blur
	s.shadow = c
}

func (s *Surface) FillCircle(x, y, r float64, fill, stroke color.NRGBA, strokeWidth float64) {
	k := s.scale
	x, y, r = x*k, y*k, r*k
	reach := r + strokeWidth*k/2
	if s.blur > 0 {
		reach = max(reach, r+s.blur*k)
	}
	dc, ox, oy := s.begin(x-reach, y-reach, x+reach, y+reach)
	x, y = x-ox, y-oy

	if s.blur > 0 {
		s.glowCircle(dc, x, y, r)
	}
	dc.DrawCircle(x, y, r)
	dc.SetRGBA(rgba(fill))
	if strokeWidth > 0 {
		s.keep(dc.FillPreserve())
		dc.SetRGBA(rgba(stroke))
		dc.SetLineWidth(strokeWidth * k)
		s.keep(dc.Stroke())
	} else {
		s.keep(dc.Fill())
	}

	s.end()
}

func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	k := s.scale
	x0, y0, x1, y1 = x0*k, y0*k, x1*k, y1*k
	reach := width * k / 2
	if s.blur > 0 {
		reach = (width + s.blur) * k / 2
	}
	dc, ox, oy := s.begin(min(x0, x1)-reach, min(y0, y1)-reach, max(x0, x1)+reach, max(y0, y1)+reach)
	x0, y0, x1, y1 = x0-ox, y0-oy, x1-ox, y1-oy

	dc.SetLineCap(gg.LineCapRound)
	if s.blur > 0 {
		dc.DrawLine(x0, y0, x1, y1)
		dc.SetRGBA(rgba(fade(s.shadow, 0.35)))
		dc.SetLineWidth((width + s.blur) * k)
		s.keep(dc.Stroke())
	}
	dc.DrawLine(x0, y0, x1, y1)
	dc.SetRGBA(rgba(c))
	dc.SetLineWidth(width * k)
	s.keep(dc.Stroke())

	s.end()
}

// glowCircle approximates a blurred shadow with two translucent halos.
func (s *Surface) glowCircle(dc *gg.Context, x, y, r float64) {
	b := s.blur * s.scale
	dc.DrawCircle(x, y, r+b)
	dc.SetRGBA(rgba(fade(s.shadow, 0.2)))
	s.keep(dc.Fill())
	dc.DrawCircle(x, y, r+b/2)
	dc.SetRGBA(rgba(fade(s.shadow, 0.35)))
	s.keep(dc.Fill())
}

// begin returns the context a mark covering the given backing-pixel bounds
// is drawn on, and the origin of that context in backing pixels.
func (s *Surface) begin(minX, minY, maxX, maxY float64) (dc *gg.Context, ox, oy float64) {
	s.layered = false
	mode, ok := blendMode(s.op)
	if !ok {
		return s.dc, 0, 0
	}
	r := image.Rect(
		int(math.Floor(minX))-1, int(math.Floor(minY))-1,
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	).Intersect(image.Rect(0, 0, s.dc.Width(), s.dc.Height()))
	if r.Empty() {
		// Entirely off the pixmap; nothing it draws is kept.
		return s.dc, 0, 0
	}
	if err := s.reserve(r.Dx(), r.Dy()); err != nil {
		s.keep(err)
		return s.dc, 0, 0
	}
	s.region, s.mode, s.layered = r, mode, true
	return s.scratch, float64(r.Min.X), float64(r.Min.Y)
}

// end blends the scratch region onto the pixmap.
func (s *Surface) end() {
	if !s.layered {
		return
	}
	s.layered = false
	w, h := s.region.Dx(), s.region.Dy()
	stride := s.scratch.Width() * 4
	src, dst := s.scratch.ResizeTarget().Data(), s.buf.Data()
	for y := 0; y < h; y++ {
		row := y * stride
		copy(dst[row:row+w*4], src[row:row+w*4])
	}
	s.buf.InvalidatePremulCache()

	s.src = image.Rect(0, 0, w, h)
	s.dc.DrawImageEx(s.buf, gg.DrawImageOptions{
		X:             float64(s.region.Min.X),
		Y:             float64(s.region.Min.Y),
		SrcRect:       &s.src,
		Interpolation: gg.InterpNearest,
		Opacity:       1,
		BlendMode:     s.mode,
	})
}

// reserve makes scratch at least w x h and clears it. It only grows.
func (s *Surface) reserve(w, h int) error {
	if s.scratch != nil && s.scratch.Width() >= w && s.scratch.Height() >= h {
		s.scratch.Clear()
		return nil
	}
	if s.scratch != nil {
		w, h = max(w, s.scratch.Width()), max(h, s.scratch.Height())
	}
	w, h = roundUp(w, scratchAlign), roundUp(h, scratchAlign)

	buf, err := gg.NewImageBuf(w, h, gg.FormatRGBA8)
	if err != nil {
		return err
	}
	if s.scratch == nil {
		s.scratch = gg.NewContext(w, h)
	} else if err := s.scratch.Resize(w, h); err != nil {
		return err
	}
	s.buf = buf
	s.scratch.Clear()
	return nil
}

const scratchAlign = 64

func roundUp(n, m int) int { return (n + m - 1) / m * m }

// blendMode maps a composite operator onto a gg blend mode; source-over draws directly.
// gg has no additive mode, so lighter is rendered as screen.
func blendMode(op pattern.Composite) (gg.BlendMode, bool) {
	switch op {
	case pattern.Multiply:
		return gg.BlendMultiply, true
	case pattern.Screen, pattern.Lighter:
		return gg.BlendScreen, true
	}
	return gg.BlendNormal, false
}

func (s *Surface) keep(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

// Err returns the first rasterisation error, if any.
func (s *Surface) Err() error { return s.err }

// Image returns the backing pixmap at full resolution.
func (s *Surface) Image() image.Image { return s.dc.Image() }

// Snapshot resamples the pixmap to w x h.
func (s *Surface) Snapshot(w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	src := s.dc.Image()
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

func (s *Surface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

func (s *Surface) Close() error {
	if s.scratch != nil {
		s.scratch.Close()
	}
	return s.dc.Close()
}

func rgba(c color.NRGBA) (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

func toGG(c color.NRGBA) gg.RGBA {
	return gg.RGBA2(rgba(c))
}

func fade(c color.NRGBA, k float64) color.NRGBA {
	c.A = uint8(float64(c.A)*k + 0.5)
	return c
}
