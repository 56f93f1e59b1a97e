package core

import (
	"image"
	"image/color"
)

// Label is a text run placed on a Canvas, centered at (X, Y) in pixels.
type Label struct {
	X, Y  int
	Text  string
	Color RGB
}

// Canvas is an in-memory pixel buffer implementing Surface.
// It decouples rendering from the terminal: shows draw pixels and text
// labels, the platform decides how to present them.
type Canvas struct {
	width  int
	height int
	pix    []RGB
	labels []Label
}

// NewCanvas creates a new canvas with the given dimensions in pixels.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Resize changes the canvas dimensions. Content is discarded.
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == c.width && height == c.height && c.pix != nil {
		return
	}
	c.width = width
	c.height = height
	c.pix = make([]RGB, width*height)
	c.labels = c.labels[:0]
}

// Fill implements Surface. It also discards all text labels.
func (c *Canvas) Fill(col RGB) {
	for i := range c.pix {
		c.pix[i] = col
	}
	c.labels = c.labels[:0]
}

// Set paints a single pixel. Out-of-bounds coordinates are silently ignored.
func (c *Canvas) Set(x, y int, col RGB) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.pix[y*c.width+x] = col
}

// At returns the pixel at (x, y); black for out-of-bounds coordinates.
func (c *Canvas) At(x, y int) RGB {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return ColorBlack
	}
	return c.pix[y*c.width+x]
}

// FillCircle implements Surface. A pixel is covered when its distance from
// the center is strictly less than r, so r=1 paints exactly one pixel.
func (c *Canvas) FillCircle(cx, cy, r int, col RGB) {
	if r <= 0 {
		return
	}
	r2 := r * r
	for dy := -r + 1; dy < r; dy++ {
		for dx := -r + 1; dx < r; dx++ {
			if dx*dx+dy*dy < r2 {
				c.Set(cx+dx, cy+dy, col)
			}
		}
	}
}

// StrokeCircle implements Surface.
func (c *Canvas) StrokeCircle(cx, cy, r, width int, col RGB) {
	if r <= 0 || width <= 0 {
		return
	}
	inner := r - width
	if inner < 0 {
		inner = 0
	}
	r2, in2 := r*r, inner*inner
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			d2 := dx*dx + dy*dy
			if d2 < r2 && d2 >= in2 {
				c.Set(cx+dx, cy+dy, col)
			}
		}
	}
}

// Line implements Surface using Bresenham's algorithm. Widths above one
// stamp a small disc at every step.
func (c *Canvas) Line(x0, y0, x1, y1, width int, col RGB) {
	if width <= 0 {
		return
	}
	dx := Abs(x1 - x0)
	dy := -Abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	brush := (width + 1) / 2
	for {
		if width == 1 {
			c.Set(x0, y0, col)
		} else {
			c.FillCircle(x0, y0, brush, col)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Text implements Surface. Labels are kept separately from pixels and are
// laid out by the presenter.
func (c *Canvas) Text(x, y int, text string, col RGB) {
	if text == "" {
		return
	}
	c.labels = append(c.labels, Label{X: x, Y: y, Text: text, Color: col})
}

// Labels returns the text labels drawn since the last Fill.
func (c *Canvas) Labels() []Label {
	return c.labels
}

// Image converts the pixel buffer to an image (labels are not rasterized).
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.width, c.height))
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			p := c.pix[y*c.width+x]
			img.SetRGBA(x, y, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
		}
	}
	return img
}
