// Package game is the desktop host: it sizes the canvas, paints the page
// around it, routes input to the driver and steps the frame clock.
package game

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/spiro/internal/canvas"
	"github.com/iburimskiy/spiro/internal/config"
	"github.com/iburimskiy/spiro/internal/frame"
	"github.com/iburimskiy/spiro/internal/palette"
	"github.com/iburimskiy/spiro/internal/pattern"
	"github.com/iburimskiy/spiro/internal/spiro"
)

var presetCycle = []pattern.Preset{pattern.Chroma, pattern.Classic, pattern.Ribbon, pattern.Bloom, pattern.Random}

type pick struct {
	palette palette.Palette
	err     error
}

type Game struct {
	clock   *frame.Clock
	driver  *spiro.Driver
	canvas  *canvas.Canvas
	started time.Time
	preset  pattern.Preset

	// layout
	outsideW, outsideH int
	scale              float64
	canvasX            int
	canvasW, canvasH   int

	// page
	theme      palette.Theme
	themeDirty bool
	bg         *ebiten.Image

	// input edge detection
	prevKey map[ebiten.Key]bool

	// button state
	buttonHovered bool
	buttonPressed bool

	// colour picker
	picking bool
	picks   chan pick

	showDetails bool
	lastErr     error
}

// New creates the host. opts configure the driver; the host adds its own transition hook.
func New(preset pattern.Preset, opts ...spiro.Option) *Game {
	g := &Game{
		clock:   frame.NewClock(),
		started: time.Now(),
		preset:  preset,
		scale:   1,
		prevKey: map[ebiten.Key]bool{},
		picks:   make(chan pick, 1),
	}
	opts = append(opts,
		spiro.WithPreset(preset),
		spiro.OnTransition(g.onTransition),
	)
	// No surface yet: the first run starts once Layout has reported a size.
	g.driver = spiro.New(g.clock, nil, opts...)
	return g
}

func (g *Game) onTransition(_, to spiro.State) {
	if to != spiro.Running {
		return
	}
	if run, ok := g.driver.Run(); ok {
		g.theme = run.Palette.Theme()
		g.themeDirty = true
	}
}

func (g *Game) Update() error {
	g.applyLayout()

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	mouseX, mouseY := ebiten.CursorPosition()
	bx, by, bw, bh := g.buttonRect()
	g.buttonHovered = mouseX >= bx && mouseX <= bx+bw && mouseY >= by && mouseY <= by+bh

	if g.buttonHovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.buttonPressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if g.buttonPressed && g.buttonHovered {
			g.driver.Reset()
		} else if !g.buttonPressed && g.inCanvas(mouseX, mouseY) {
			g.driver.Reset()
		}
		g.buttonPressed = false
	}

	if justPressed(ebiten.KeyR) {
		g.driver.Reset()
	}
	if justPressed(ebiten.KeyP) {
		g.cyclePreset()
	}
	if justPressed(ebiten.KeyC) {
		g.pickPalette()
	}
	if justPressed(ebiten.KeyX) {
		g.driver.ReleasePalette()
		g.driver.Reset()
	}
	if justPressed(ebiten.KeyD) {
		g.showDetails = !g.showDetails
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		g.driver.Stop()
		return ebiten.Termination
	}

	select {
	case res := <-g.picks:
		g.picking = false
		switch {
		case errors.Is(res.err, zenity.ErrCanceled):
		case res.err != nil:
			g.lastErr = res.err
		default:
			g.lastErr = nil
			g.driver.SetPalette(res.palette)
		}
	default:
	}

	g.clock.Step(time.Since(g.started))
	return nil
}

// applyLayout replaces the canvas when the window size or device scale changed.
func (g *Game) applyLayout() {
	if g.outsideW <= 0 || g.outsideH <= 0 {
		return
	}
	w, h, outer := config.Layout(g.outsideW, g.outsideH)
	if g.canvas != nil && w == g.canvasW && h == g.canvasH && g.scale == g.canvas.Scale() {
		return
	}

	old := g.canvas
	g.canvas = canvas.New(w, h, g.scale)
	g.canvasW, g.canvasH = w, h
	g.canvasX = canvasOrigin(g.outsideW, w)
	g.themeDirty = true

	g.driver.SetOuterRadius(outer)
	g.driver.SetSurface(g.canvas)
	if old != nil {
		old.Deallocate()
	}
}

func (g *Game) cyclePreset() {
	for i, p := range presetCycle {
		if p == g.preset {
			g.preset = presetCycle[(i+1)%len(presetCycle)]
			break
		}
	}
	g.driver.SetPreset(g.preset)
	g.driver.Reset()
}

// pickPalette asks for two colours on a native dialog without blocking the game loop.
func (g *Game) pickPalette() {
	if g.picking {
		return
	}
	g.picking = true

	var start, end color.Color = color.White, color.Black
	if run, ok := g.driver.Run(); ok {
		start, end = run.Palette.At(-1), run.Palette.At(1)
	}

	go func() {
		a, err := zenity.SelectColor(zenity.Title("Start colour"), zenity.Color(start))
		if err != nil {
			g.picks <- pick{err: err}
			return
		}
		b, err := zenity.SelectColor(zenity.Title("End colour"), zenity.Color(end))
		if err != nil {
			g.picks <- pick{err: err}
			return
		}
		g.picks <- pick{palette: palette.New(a, b, palette.LCH)}
	}()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackground(screen)

	if g.canvas != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(g.canvasX)*g.scale, 0)
		screen.DrawImage(g.canvas.Image(), op)
	}

	g.drawText(screen)
	g.drawButton(screen)
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	h := screen.Bounds().Dy()
	if h <= 0 {
		return
	}
	if g.bg == nil || g.themeDirty || g.bg.Bounds().Dy() != h {
		if g.bg != nil {
			g.bg.Deallocate()
		}
		g.bg = ebiten.NewImage(1, h)
		g.bg.WritePixels(gradientPixels(g.theme, h))
		g.themeDirty = false
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(screen.Bounds().Dx()), 1)
	screen.DrawImage(g.bg, op)
}

func (g *Game) drawText(screen *ebiten.Image) {
	x, y := int(20*g.scale), int(20*g.scale)
	ebitenutil.DebugPrintAt(screen, "Beautiful Loops", x, y)
	ebitenutil.DebugPrintAt(screen, "A hypocycloid traced from two random seeds.", x, y+20)

	status := fmt.Sprintf("Preset: %s | R/click: change it up | P: preset | C: pick colours | X: random colours | D: details | Esc: quit", g.preset)
	if g.picking {
		status = "Choosing colours..."
	}
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, x, screen.Bounds().Dy()-int(24*g.scale))

	if g.showDetails {
		if run, ok := g.driver.Run(); ok {
			ebitenutil.DebugPrintAt(screen, runSummary(g.driver.State(), run), x, screen.Bounds().Dy()-int(44*g.scale))
		}
	}
}

func (g *Game) buttonRect() (x, y, w, h int) {
	s := g.scale
	return int(config.ButtonX * s), int(config.ButtonY * s), int(config.ButtonWidth * s), int(config.ButtonHeight * s)
}

func (g *Game) inCanvas(x, y int) bool {
	if g.canvas == nil {
		return false
	}
	s := g.scale
	cx := int(float64(g.canvasX) * s)
	return x >= cx && x < cx+int(float64(g.canvasW)*s) && y >= 0 && y < int(float64(g.canvasH)*s)
}

func (g *Game) drawButton(screen *ebiten.Image) {
	base := g.theme.Bottom
	var bgColor color.Color
	switch {
	case g.buttonPressed:
		bgColor = lerpNRGBA(base, color.NRGBA{A: 255}, 0.3)
	case g.buttonHovered:
		bgColor = lerpNRGBA(base, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, 0.2)
	default:
		bgColor = base
	}

	x, y, w, h := g.buttonRect()
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), bgColor, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), float32(2*g.scale), g.theme.Text, false)

	text := "CHANGE IT UP!"
	textWidth := len(text) * 6
	ebitenutil.DebugPrintAt(screen, text, x+(w-textWidth)/2, y+(h-16)/2)
}

// Layout sizes the screen in device pixels so the canvas renders crisply.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := 1.0
	if m := ebiten.Monitor(); m != nil {
		s = m.DeviceScaleFactor()
	}
	if s <= 0 {
		s = 1
	}
	g.outsideW, g.outsideH = outsideWidth, outsideHeight
	g.scale = s
	return int(float64(outsideWidth) * s), int(float64(outsideHeight) * s)
}
