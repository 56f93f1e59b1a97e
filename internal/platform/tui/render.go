package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-fireworks/internal/core"
)

// halfBlock paints the upper pixel of a cell in the foreground color and
// the lower pixel in the background color, doubling vertical resolution.
const halfBlock = '▀'

// maxCachedStyles bounds the style cache; trails fade through many colors.
const maxCachedStyles = 4096

type cell struct {
	r      rune
	fg, bg core.RGB
}

type stylePair struct {
	fg, bg core.RGB
}

// Renderer converts a Canvas to styled terminal output.
// Each terminal cell shows two vertically stacked pixels.
type Renderer struct {
	lg     *lipgloss.Renderer
	styles map[stylePair]lipgloss.Style
	cells  []cell
}

// NewRenderer creates a renderer. SSH sessions pass their own lipgloss
// renderer so colors match the remote terminal; nil uses the default.
func NewRenderer(lg *lipgloss.Renderer) *Renderer {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	return &Renderer{
		lg:     lg,
		styles: make(map[stylePair]lipgloss.Style),
	}
}

// CanvasSize returns the canvas size in pixels for a terminal of w x h cells.
func CanvasSize(w, h int) (int, int) {
	return w, h * 2
}

// hexColor formats c for lipgloss.
func hexColor(c core.RGB) lipgloss.Color {
	col := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	return lipgloss.Color(col.Hex())
}

func (r *Renderer) style(p stylePair) lipgloss.Style {
	if s, ok := r.styles[p]; ok {
		return s
	}
	if len(r.styles) >= maxCachedStyles {
		clear(r.styles)
	}
	s := r.lg.NewStyle().Foreground(hexColor(p.fg)).Background(hexColor(p.bg))
	r.styles[p] = s
	return s
}

// Render converts the canvas to a styled string, one line per two pixel rows.
// Text labels replace the cells they cover.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func (r *Renderer) Render(c *core.Canvas) string {
	w := c.Width()
	rows := (c.Height() + 1) / 2
	if w == 0 || rows == 0 {
		return ""
	}

	if cap(r.cells) < w*rows {
		r.cells = make([]cell, w*rows)
	}
	cells := r.cells[:w*rows]
	for row := range rows {
		for x := range w {
			cells[row*w+x] = cell{r: halfBlock, fg: c.At(x, row*2), bg: c.At(x, row*2+1)}
		}
	}

	for _, l := range c.Labels() {
		row := l.Y / 2
		if row < 0 || row >= rows {
			continue
		}
		text := []rune(l.Text)
		x := l.X - len(text)/2
		for i, ch := range text {
			if x+i < 0 || x+i >= w {
				continue
			}
			idx := row*w + x + i
			cells[idx] = cell{r: ch, fg: l.Color, bg: cells[idx].fg}
		}
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(w*rows*4 + rows)

	var run strings.Builder
	for row := range rows {
		if row > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same colors for efficiency
		line := cells[row*w : (row+1)*w]
		x := 0
		for x < w {
			p := stylePair{fg: line[x].fg, bg: line[x].bg}
			run.Reset()
			for x < w && line[x].fg == p.fg && line[x].bg == p.bg {
				run.WriteRune(line[x].r)
				x++
			}
			sb.WriteString(r.style(p).Render(run.String()))
		}
	}
	return sb.String()
}
