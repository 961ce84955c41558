package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/iburimskiy/spiro/internal/config"
	"github.com/iburimskiy/spiro/internal/curve"
	"github.com/iburimskiy/spiro/internal/palette"
	"github.com/iburimskiy/spiro/internal/pattern"
)

type circle struct {
	x, y, r float64
	fill    color.NRGBA
}

type line struct {
	x0, y0, x1, y1, width float64
}

// recordSurface records paint calls instead of rasterising them.
type recordSurface struct {
	w, h       int
	circles    []circle
	lines      []line
	composites []pattern.Composite
	blurs      []float64
}

func (s *recordSurface) Size() (int, int)                  { return s.w, s.h }
func (s *recordSurface) Clear(color.NRGBA)                 {}
func (s *recordSurface) SetComposite(op pattern.Composite) { s.composites = append(s.composites, op) }
func (s *recordSurface) SetShadow(blur float64, _ color.NRGBA) {
	s.blurs = append(s.blurs, blur)
}
func (s *recordSurface) FillCircle(x, y, r float64, fill, _ color.NRGBA, _ float64) {
	s.circles = append(s.circles, circle{x, y, r, fill})
}
func (s *recordSurface) StrokeLine(x0, y0, x1, y1, width float64, _ color.NRGBA) {
	s.lines = append(s.lines, line{x0, y0, x1, y1, width})
}

func testRenderer(mode pattern.Mode) *Renderer {
	return &Renderer{
		Config: pattern.Config{
			Curve:           curve.Params{R: 200, Rolling: 140, D: 130, Diff: 60, Ratio: 60.0 / 140.0},
			Mode:            mode,
			PointRadius:     config.PointRadius,
			MinPointRadius:  config.MinPointRadius,
			StrokeWidth:     1,
			FillAlpha:       1,
			LineAlpha:       1,
			HybridThreshold: 0.5,
		},
		Palette: palette.New(color.NRGBA{R: 255, A: 255}, color.NRGBA{B: 255, A: 255}, palette.LCH),
	}
}

func TestToSurface(t *testing.T) {
	got := ToSurface(800, 600, 60, 0)
	if got != (Point{X: 460, Y: 300}) {
		t.Errorf("ToSurface = %+v, want {460 300}", got)
	}
	// Odd sizes floor the centre.
	if got := ToSurface(801, 601, 0, 0); got != (Point{X: 400, Y: 300}) {
		t.Errorf("ToSurface odd = %+v, want {400 300}", got)
	}
}

func TestPaintDotAtOrigin(t *testing.T) {
	r := testRenderer(pattern.ModeDot)
	s := &recordSurface{w: 800, h: 600}
	var pen Pen

	x, y := r.Config.Curve.Sample(0)
	r.Paint(s, &pen, 0, x, y)

	if len(s.circles) != 1 {
		t.Fatalf("painted %d circles, want 1", len(s.circles))
	}
	c := s.circles[0]
	if c.x != 590 || c.y != 300 {
		t.Errorf("dot at (%v, %v), want (590, 300)", c.x, c.y)
	}
	if c.r != config.MinPointRadius {
		t.Errorf("radius at theta=0 = %v, want %v", c.r, config.MinPointRadius)
	}
	if c.fill != r.Palette.At(0) {
		t.Errorf("fill = %v, want palette midpoint %v", c.fill, r.Palette.At(0))
	}
	if !pen.HasPrev || pen.Prev != (Point{590, 300}) {
		t.Errorf("pen = %+v, want previous point (590, 300)", pen)
	}
}

func TestDotRadiusFollowsSine(t *testing.T) {
	r := testRenderer(pattern.ModeDot)
	s := &recordSurface{w: 400, h: 400}
	var pen Pen

	r.Paint(s, &pen, math.Pi/2, 0, 0)
	if got := s.circles[0].r; got != config.PointRadius {
		t.Errorf("radius at peak = %v, want %v", got, config.PointRadius)
	}
}

func TestPaintLineNeedsPrevious(t *testing.T) {
	r := testRenderer(pattern.ModeLine)
	s := &recordSurface{w: 800, h: 600}
	var pen Pen

	r.Paint(s, &pen, 0, 10, 10)
	if len(s.lines) != 0 || len(s.circles) != 0 {
		t.Fatalf("first line tick painted %d lines %d circles, want none", len(s.lines), len(s.circles))
	}

	r.Paint(s, &pen, 0.1, 20, 15)
	if len(s.lines) != 1 {
		t.Fatalf("second tick painted %d lines, want 1", len(s.lines))
	}
	l := s.lines[0]
	if l.x0 != 410 || l.y0 != 310 || l.x1 != 420 || l.y1 != 315 {
		t.Errorf("segment = %+v, want (410,310)-(420,315)", l)
	}
}

func TestPaintHybridThreshold(t *testing.T) {
	r := testRenderer(pattern.ModeHybrid)
	s := &recordSurface{w: 800, h: 600}
	var pen Pen

	r.Paint(s, &pen, 0, 0, 0)
	r.Paint(s, &pen, 0.2, 5, 5) // |sin| below threshold
	if len(s.lines) != 0 {
		t.Errorf("line drawn below threshold")
	}
	r.Paint(s, &pen, math.Pi/2, 10, 10)
	if len(s.lines) != 1 {
		t.Errorf("got %d lines above threshold, want 1", len(s.lines))
	}
	if len(s.circles) != 3 {
		t.Errorf("hybrid painted %d dots, want one per tick", len(s.circles))
	}
}

func TestShadowFade(t *testing.T) {
	r := testRenderer(pattern.ModeDot)
	r.Config.ShadowBlur = 10
	r.Config.ShadowFade = true
	r.Config.Composite = pattern.Lighter
	s := &recordSurface{w: 100, h: 100}
	var pen Pen

	r.Paint(s, &pen, 0, 0, 0)
	r.Paint(s, &pen, math.Pi/2, 0, 0)

	if s.blurs[0] != 0 || s.blurs[1] != 10 {
		t.Errorf("blurs = %v, want [0 10]", s.blurs)
	}
	for _, op := range s.composites {
		if op != pattern.Lighter {
			t.Errorf("composite = %v, want lighter", op)
		}
	}
}

func TestPaintDoesNotAllocate(t *testing.T) {
	r := testRenderer(pattern.ModeHybrid)
	s := &nopSurface{w: 800, h: 600}
	var pen Pen
	theta := 0.0

	allocs := testing.AllocsPerRun(200, func() {
		x, y := r.Config.Curve.Sample(theta)
		r.Paint(s, &pen, theta, x, y)
		theta += 0.05
	})
	if allocs != 0 {
		t.Errorf("Paint allocated %v times per tick", allocs)
	}
}

type nopSurface struct{ w, h int }

func (s *nopSurface) Size() (int, int)                                        { return s.w, s.h }
func (s *nopSurface) Clear(color.NRGBA)                                       {}
func (s *nopSurface) SetComposite(pattern.Composite)                          {}
func (s *nopSurface) SetShadow(float64, color.NRGBA)                          {}
func (s *nopSurface) FillCircle(_, _, _ float64, _, _ color.NRGBA, _ float64) {}
func (s *nopSurface) StrokeLine(_, _, _, _, _ float64, _ color.NRGBA)         {}
