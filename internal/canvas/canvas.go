// Package canvas is a Surface backed by a persistent ebiten offscreen image,
// so marks accumulate across frames while the screen is redrawn every frame.
package canvas

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/spiro/internal/pattern"
)

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

func white() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// Canvas is a w x h logical surface with a backing image scale times larger.
type Canvas struct {
	img   *ebiten.Image
	w, h  int
	scale float64

	blur   float64
	shadow color.NRGBA

	op       ebiten.DrawTrianglesOptions
	vertices []ebiten.Vertex
	indices  []uint16
}

func New(w, h int, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	bw := int(math.Ceil(float64(w) * scale))
	bh := int(math.Ceil(float64(h) * scale))
	c := &Canvas{
		img:   ebiten.NewImage(max(bw, 1), max(bh, 1)),
		w:     w,
		h:     h,
		scale: scale,
	}
	c.op.AntiAlias = true
	c.op.Blend = ebiten.BlendSourceOver
	return c
}

// Image returns the backing image for blitting onto the screen.
func (c *Canvas) Image() *ebiten.Image { return c.img }

func (c *Canvas) Scale() float64 { return c.scale }

func (c *Canvas) Size() (int, int) { return c.w, c.h }

func (c *Canvas) Clear(col color.NRGBA) {
	if col.A == 0 {
		c.img.Clear()
		return
	}
	c.img.Fill(col)
}

func (c *Canvas) SetComposite(op pattern.Composite) {
	c.op.Blend = Blend(op)
}

func (c *Canvas) SetShadow(blur float64, col color.NRGBA) {
	c.blur = blur
	c.shadow = col
}

func (c *Canvas) FillCircle(x, y, r float64, fill, stroke color.NRGBA, strokeWidth float64) {
	k := c.scale
	cx, cy := float32(x*k), float32(y*k)

	if c.blur > 0 {
		b := c.blur * k
		c.fillArc(cx, cy, float32(r*k+b), fade(c.shadow, 0.2))
		c.fillArc(cx, cy, float32(r*k+b/2), fade(c.shadow, 0.35))
	}
	c.fillArc(cx, cy, float32(r*k), fill)

	if strokeWidth > 0 {
		var path vector.Path
		path.Arc(cx, cy, float32(r*k), 0, 2*math.Pi, vector.Clockwise)
		path.Close()
		c.vertices, c.indices = path.AppendVerticesAndIndicesForStroke(c.vertices[:0], c.indices[:0], &vector.StrokeOptions{
			Width: float32(strokeWidth * k),
		})
		c.draw(stroke)
	}
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, col color.NRGBA) {
	k := c.scale
	if c.blur > 0 {
		c.strokeSegment(x0*k, y0*k, x1*k, y1*k, (width+c.blur)*k, fade(c.shadow, 0.35))
	}
	c.strokeSegment(x0*k, y0*k, x1*k, y1*k, width*k, col)
}

// Deallocate releases the backing image.
func (c *Canvas) Deallocate() { c.img.Deallocate() }

func (c *Canvas) fillArc(cx, cy, r float32, col color.NRGBA) {
	var path vector.Path
	path.Arc(cx, cy, r, 0, 2*math.Pi, vector.Clockwise)
	path.Close()
	c.vertices, c.indices = path.AppendVerticesAndIndicesForFilling(c.vertices[:0], c.indices[:0])
	c.draw(col)
}

func (c *Canvas) strokeSegment(x0, y0, x1, y1, width float64, col color.NRGBA) {
	var path vector.Path
	path.MoveTo(float32(x0), float32(y0))
	path.LineTo(float32(x1), float32(y1))
	c.vertices, c.indices = path.AppendVerticesAndIndicesForStroke(c.vertices[:0], c.indices[:0], &vector.StrokeOptions{
		Width:   float32(width),
		LineCap: vector.LineCapRound,
	})
	c.draw(col)
}

func (c *Canvas) draw(col color.NRGBA) {
	r := float32(col.R) / 0xff
	g := float32(col.G) / 0xff
	b := float32(col.B) / 0xff
	a := float32(col.A) / 0xff
	for i := range c.vertices {
		c.vertices[i].SrcX = 1
		c.vertices[i].SrcY = 1
		c.vertices[i].ColorR = r
		c.vertices[i].ColorG = g
		c.vertices[i].ColorB = b
		c.vertices[i].ColorA = a
	}
	c.img.DrawTriangles(c.vertices, c.indices, white(), &c.op)
}

// Blend maps a composite operator to an ebiten blend. ebiten composites
// premultiplied colours, so multiply and screen are expressed with factors.
func Blend(op pattern.Composite) ebiten.Blend {
	switch op {
	case pattern.Lighter:
		return ebiten.BlendLighter
	case pattern.Multiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case pattern.Screen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	}
	return ebiten.BlendSourceOver
}

func fade(c color.NRGBA, k float64) color.NRGBA {
	c.A = uint8(float64(c.A)*k + 0.5)
	return c
}
