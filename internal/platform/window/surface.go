package window

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/vovakirdan/tui-fireworks/internal/core"
)

// Surface implements core.Surface on an Ebitengine image.
// Shapes are antialiased; text uses the 7x13 bitmap face.
type Surface struct {
	dst  *ebiten.Image
	face text.Face
}

// NewSurface creates a surface. Bind must be called before drawing.
func NewSurface() *Surface {
	return &Surface{face: text.NewGoXFace(basicfont.Face7x13)}
}

// Bind sets the image the surface draws on.
func (s *Surface) Bind(dst *ebiten.Image) {
	s.dst = dst
}

func rgba(c core.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Fill implements core.Surface.
func (s *Surface) Fill(c core.RGB) {
	s.dst.Fill(rgba(c))
}

// FillCircle implements core.Surface.
func (s *Surface) FillCircle(x, y, r int, c core.RGB) {
	if r <= 0 {
		return
	}
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), rgba(c), true)
}

// StrokeCircle implements core.Surface. The stroke lies inside radius r.
func (s *Surface) StrokeCircle(x, y, r, width int, c core.RGB) {
	if r <= 0 || width <= 0 {
		return
	}
	mid := float32(r) - float32(width)/2
	vector.StrokeCircle(s.dst, float32(x), float32(y), mid, float32(width), rgba(c), true)
}

// Line implements core.Surface.
func (s *Surface) Line(x0, y0, x1, y1, width int, c core.RGB) {
	if width <= 0 {
		return
	}
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), rgba(c), true)
}

// Text implements core.Surface.
func (s *Surface) Text(x, y int, str string, c core.RGB) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(rgba(c))
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(s.dst, str, s.face, op)
}
