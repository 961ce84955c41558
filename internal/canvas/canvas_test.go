package canvas

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/spiro/internal/pattern"
)

func TestBlend(t *testing.T) {
	if Blend(pattern.SourceOver) != ebiten.BlendSourceOver {
		t.Error("source-over should map to BlendSourceOver")
	}
	if Blend(pattern.Lighter) != ebiten.BlendLighter {
		t.Error("lighter should map to BlendLighter")
	}
	if m := Blend(pattern.Multiply); m.BlendFactorSourceRGB != ebiten.BlendFactorDestinationColor {
		t.Errorf("multiply source factor = %v", m.BlendFactorSourceRGB)
	}
	if s := Blend(pattern.Screen); s.BlendFactorDestinationRGB != ebiten.BlendFactorOneMinusSourceColor {
		t.Errorf("screen destination factor = %v", s.BlendFactorDestinationRGB)
	}
}

func TestFade(t *testing.T) {
	got := fade(color.NRGBA{R: 10, G: 20, B: 30, A: 200}, 0.5)
	if got != (color.NRGBA{R: 10, G: 20, B: 30, A: 100}) {
		t.Errorf("fade = %v", got)
	}
}
