package config

import "testing"

func TestLayout(t *testing.T) {
	tests := []struct {
		name         string
		winW, winH   int
		wantW, wantH int
		wantOuter    float64
	}{
		{"Wide", 1200, 720, 800, 720, 400.0 / 3 * 1.9},
		{"Breakpoint", 900, 700, 900, 600, 300},
		{"Narrow", 800, 700, 800, 600, 267},
		{"Phone", 600, 900, 600, 600, 200},
		{"Tiny", 300, 500, 300, 600, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, outer := Layout(tt.winW, tt.winH)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Layout(%d, %d) size = %dx%d, want %dx%d", tt.winW, tt.winH, w, h, tt.wantW, tt.wantH)
			}
			if outer != tt.wantOuter {
				t.Errorf("Layout(%d, %d) outer = %v, want %v", tt.winW, tt.winH, outer, tt.wantOuter)
			}
		})
	}
}

func TestDefaultBoundsOrdered(t *testing.T) {
	b := DefaultBounds()
	if b.RollingMin >= b.RollingMax || b.OffsetMin >= b.OffsetMax || b.DiffMin >= b.DiffMax || b.RatioMin >= b.RatioMax {
		t.Fatalf("bounds out of order: %+v", b)
	}
	if b.RollingFloor <= 0 || b.RollingCeil >= 1 || b.RollingFloor >= b.RollingCeil {
		t.Fatalf("rolling fractions must sit inside (0, 1): %+v", b)
	}
}
