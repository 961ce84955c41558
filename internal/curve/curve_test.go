package curve

import (
	"math"
	"math/rand"
	"testing"

	"github.com/iburimskiy/spiro/internal/config"
)

func TestDeriveReferenceSeeds(t *testing.T) {
	p := Derive(200, 0.7001, 0.6501, config.DefaultBounds())

	if p.Rolling != 140 || p.D != 130 || p.Diff != 60 {
		t.Fatalf("Derive = %+v, want Rolling=140 D=130 Diff=60", p)
	}
	if math.Abs(p.Ratio-60.0/140.0) > 1e-12 {
		t.Errorf("Ratio = %v, want %v", p.Ratio, 60.0/140.0)
	}

	x, y := p.Sample(0)
	if x != 190 || y != 0 {
		t.Errorf("Sample(0) = (%v, %v), want (190, 0)", x, y)
	}
}

func TestDerivePullsBackNarrowGap(t *testing.T) {
	// R*seed lands within MinGap of R, so r is pulled back by PullBack.
	p := Derive(300, 0.9, 0.5, config.DefaultBounds())
	if p.Rolling != 200 {
		t.Errorf("Rolling = %v, want 200", p.Rolling)
	}
	if p.Diff != 100 {
		t.Errorf("Diff = %v, want 100", p.Diff)
	}
}

func TestDeriveInvariants(t *testing.T) {
	b := config.DefaultBounds()
	rng := rand.New(rand.NewSource(7))
	outers := []float64{-50, 0, 1, 20, 60, 100, 150, 253.33, 400, 800, 2000}

	for _, outer := range outers {
		for i := 0; i < 500; i++ {
			p := Derive(outer, rng.Float64(), rng.Float64(), b)
			if !(p.Rolling > 0 && p.Rolling < p.R) {
				t.Fatalf("outer=%v: Rolling %v outside (0, %v)", outer, p.Rolling, p.R)
			}
			if !(p.Diff > 0) || !(p.Ratio > 0) {
				t.Fatalf("outer=%v: Diff=%v Ratio=%v must be positive", outer, p.Diff, p.Ratio)
			}
			if p.Ratio < b.RatioMin || p.Ratio > b.RatioMax {
				t.Fatalf("outer=%v: Ratio %v outside [%v, %v]", outer, p.Ratio, b.RatioMin, b.RatioMax)
			}
			if math.IsNaN(p.Ratio) || math.IsInf(p.Ratio, 0) {
				t.Fatalf("outer=%v: Ratio not finite", outer)
			}
		}
	}
}

func TestSampleIsPure(t *testing.T) {
	p := Params{R: 250, Rolling: 130, D: 90, Diff: 120, Ratio: 120.0 / 130.0}
	for theta := 0.0; theta < 50; theta += 0.37 {
		x1, y1 := p.Sample(theta)
		x2, y2 := p.Sample(theta)
		if x1 != x2 || y1 != y2 {
			t.Fatalf("Sample(%v) not deterministic: (%v,%v) vs (%v,%v)", theta, x1, y1, x2, y2)
		}
	}
}

func TestSamplePeriodicForRationalRatio(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		den   float64
	}{
		{"Half", 0.5, 2},
		{"ThreeSevenths", 3.0 / 7.0, 7},
		{"Integer", 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{R: 300, Rolling: 100, D: 80, Diff: 200, Ratio: tt.ratio}
			period, ok := p.Period(64)
			if !ok {
				t.Fatalf("Period not found for ratio %v", tt.ratio)
			}
			if want := 2 * math.Pi * tt.den; math.Abs(period-want) > 1e-12 {
				t.Fatalf("Period = %v, want %v", period, want)
			}
			for theta := 0.0; theta < 10; theta += 0.5 {
				x0, y0 := p.Sample(theta)
				x1, y1 := p.Sample(theta + period)
				if math.Hypot(x1-x0, y1-y0) > 1e-6 {
					t.Errorf("Sample(%v) = (%v,%v) but Sample(+period) = (%v,%v)", theta, x0, y0, x1, y1)
				}
			}
		})
	}
}

func TestPeriodIrrational(t *testing.T) {
	p := Params{Diff: 100, D: 50, Ratio: math.Sqrt2}
	if _, ok := p.Period(32); ok {
		t.Error("Period reported for an irrational ratio")
	}
}

func TestExtentBoundsSamples(t *testing.T) {
	p := Derive(380, 0.42, 0.77, config.DefaultBounds())
	limit := p.Extent()
	for theta := 0.0; theta < 200; theta += 0.05 {
		x, y := p.Sample(theta)
		if math.Hypot(x, y) > limit+1e-9 {
			t.Fatalf("Sample(%v) at distance %v exceeds Extent %v", theta, math.Hypot(x, y), limit)
		}
	}
}
