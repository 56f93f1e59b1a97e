package core

import "math"

// Surface is a write-only 2D drawable. The simulation renders onto a Surface
// every frame and never reads pixels back.
type Surface interface {
	// Fill paints the whole surface with c.
	Fill(c RGB)
	// FillCircle draws a filled circle of radius r centered at (x, y).
	// A radius of zero or less draws nothing.
	FillCircle(x, y, r int, c RGB)
	// StrokeCircle draws a circle outline of the given width.
	StrokeCircle(x, y, r, width int, c RGB)
	// Line draws a straight line of the given width.
	Line(x0, y0, x1, y1, width int, c RGB)
	// Text draws a single line of text centered at (x, y).
	Text(x, y int, text string, c RGB)
}

// Viewport maps a logical coordinate space onto a destination surface of a
// different size. Shows simulate in display units (e.g. 720x720) and the
// terminal canvas is much smaller.
type Viewport struct {
	dst    Surface
	sx, sy float64
	sr     float64 // radius/width scale
}

// NewViewport creates a viewport that scales srcW x srcH onto dstW x dstH.
func NewViewport(dst Surface, srcW, srcH, dstW, dstH int) *Viewport {
	v := &Viewport{dst: dst, sx: 1, sy: 1, sr: 1}
	if srcW > 0 && srcH > 0 {
		v.sx = float64(dstW) / float64(srcW)
		v.sy = float64(dstH) / float64(srcH)
		v.sr = math.Min(v.sx, v.sy)
	}
	return v
}

func (v *Viewport) x(x int) int { return int(math.Round(float64(x) * v.sx)) }
func (v *Viewport) y(y int) int { return int(math.Round(float64(y) * v.sy)) }

// length scales a radius or stroke width. Anything visible at the source
// scale stays at least one unit wide.
func (v *Viewport) length(n int) int {
	if n <= 0 {
		return 0
	}
	scaled := int(math.Round(float64(n) * v.sr))
	if scaled < 1 {
		return 1
	}
	return scaled
}

// Fill implements Surface.
func (v *Viewport) Fill(c RGB) {
	v.dst.Fill(c)
}

// FillCircle implements Surface.
func (v *Viewport) FillCircle(x, y, r int, c RGB) {
	v.dst.FillCircle(v.x(x), v.y(y), v.length(r), c)
}

// StrokeCircle implements Surface.
func (v *Viewport) StrokeCircle(x, y, r, width int, c RGB) {
	v.dst.StrokeCircle(v.x(x), v.y(y), v.length(r), v.length(width), c)
}

// Line implements Surface.
func (v *Viewport) Line(x0, y0, x1, y1, width int, c RGB) {
	v.dst.Line(v.x(x0), v.y(y0), v.x(x1), v.y(y1), v.length(width), c)
}

// Text implements Surface.
func (v *Viewport) Text(x, y int, text string, c RGB) {
	v.dst.Text(v.x(x), v.y(y), text, c)
}

type opKind uint8

const (
	opFill opKind = iota
	opFillCircle
	opStrokeCircle
	opLine
	opText
)

type drawOp struct {
	kind opKind
	a    [5]int
	c    RGB
	text string
}

// DisplayList records drawing operations so a frame produced during a
// simulation step can be replayed later by the renderer.
type DisplayList struct {
	ops []drawOp
}

// NewDisplayList creates an empty display list.
func NewDisplayList() *DisplayList {
	return &DisplayList{ops: make([]drawOp, 0, 256)}
}

// Replay issues every recorded operation, in order, onto dst.
func (d *DisplayList) Replay(dst Surface) {
	for _, op := range d.ops {
		switch op.kind {
		case opFill:
			dst.Fill(op.c)
		case opFillCircle:
			dst.FillCircle(op.a[0], op.a[1], op.a[2], op.c)
		case opStrokeCircle:
			dst.StrokeCircle(op.a[0], op.a[1], op.a[2], op.a[3], op.c)
		case opLine:
			dst.Line(op.a[0], op.a[1], op.a[2], op.a[3], op.a[4], op.c)
		case opText:
			dst.Text(op.a[0], op.a[1], op.text, op.c)
		}
	}
}

// Fill implements Surface. Everything recorded before a fill is hidden by it,
// so earlier operations are dropped.
func (d *DisplayList) Fill(c RGB) {
	d.ops = append(d.ops[:0], drawOp{kind: opFill, c: c})
}

// FillCircle implements Surface.
func (d *DisplayList) FillCircle(x, y, r int, c RGB) {
	d.ops = append(d.ops, drawOp{kind: opFillCircle, a: [5]int{x, y, r}, c: c})
}

// StrokeCircle implements Surface.
func (d *DisplayList) StrokeCircle(x, y, r, width int, c RGB) {
	d.ops = append(d.ops, drawOp{kind: opStrokeCircle, a: [5]int{x, y, r, width}, c: c})
}

// Line implements Surface.
func (d *DisplayList) Line(x0, y0, x1, y1, width int, c RGB) {
	d.ops = append(d.ops, drawOp{kind: opLine, a: [5]int{x0, y0, x1, y1, width}, c: c})
}

// Text implements Surface.
func (d *DisplayList) Text(x, y int, text string, c RGB) {
	d.ops = append(d.ops, drawOp{kind: opText, a: [5]int{x, y}, c: c, text: text})
}
