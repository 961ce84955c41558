package game

import (
	"fmt"
	"image/color"
	"time"

	"github.com/iburimskiy/spiro/internal/palette"
	"github.com/iburimskiy/spiro/internal/spiro"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerpNRGBA(a, b color.NRGBA, t float64) color.NRGBA {
	t = clamp01(t)
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// gradientPixels returns RGBA pixels for a 1 x h vertical gradient of the theme background.
func gradientPixels(th palette.Theme, h int) []byte {
	pix := make([]byte, 4*h)
	for y := 0; y < h; y++ {
		t := 0.0
		if h > 1 {
			t = float64(y) / float64(h-1)
		}
		c := lerpNRGBA(th.Top, th.Bottom, t)
		pix[4*y+0] = c.R
		pix[4*y+1] = c.G
		pix[4*y+2] = c.B
		pix[4*y+3] = 0xff
	}
	return pix
}

// canvasOrigin places the canvas in the right-hand column, or at the left edge when it fills the window.
func canvasOrigin(windowW, canvasW int) int {
	if canvasW >= windowW {
		return 0
	}
	return windowW - canvasW
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// runSummary is the one-line description shown by the details overlay.
func runSummary(state spiro.State, run spiro.Run) string {
	c := run.Config
	p := c.Curve
	s := fmt.Sprintf("%s %s | seed = %.4f, seedB = %.4f, R = %.1f, r = %.1f, d = %.1f, diff = %.1f, ratio = %.3f, thetaIncr = %.3f | %s %s %s | %s / %s",
		run.Preset, state,
		c.Seeds[0], c.Seeds[1], p.R, p.Rolling, p.D, p.Diff, p.Ratio, c.ThetaIncr,
		c.Mode, c.Space, c.Composite,
		formatDuration(run.Elapsed), formatDuration(c.Budget))
	if !run.Fits {
		s += " | clipped"
	}
	return s
}
