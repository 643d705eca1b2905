package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// labelEllipsis marks a label cut to fit its card.
const labelEllipsis = "…"

type cell struct {
	ch   rune
	fg   string
	bg   string
	cont bool // right half of a wide rune
}

// canvas is a grid of terminal cells painted back to front.
type canvas struct {
	width, height int
	cells         []cell
}

func newCanvas(width, height int) *canvas {
	c := &canvas{
		width:  max(width, 0),
		height: max(height, 0),
	}
	c.cells = make([]cell, c.width*c.height)
	for i := range c.cells {
		c.cells[i].ch = ' '
	}
	return c
}

func (c *canvas) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return nil
	}
	return &c.cells[y*c.width+x]
}

// set paints one cell, splitting any wide rune it lands on.
func (c *canvas) set(x, y int, ch rune, fg, bg string) {
	target := c.at(x, y)
	if target == nil {
		return
	}
	if target.cont {
		if left := c.at(x-1, y); left != nil {
			left.ch = ' '
		}
	}
	if right := c.at(x+1, y); right != nil && right.cont {
		right.cont = false
		right.ch = ' '
		right.fg, right.bg = target.fg, target.bg
	}
	*target = cell{ch: ch, fg: fg, bg: bg}
}

// text paints s starting at (x, y). Wide runes take two cells; one that
// would straddle an edge is replaced by a space.
func (c *canvas) text(x, y int, s, fg, bg string) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if w == 2 && (c.at(x, y) == nil || c.at(x+1, y) == nil) {
			c.set(x, y, ' ', fg, bg)
			x += w
			continue
		}
		c.set(x, y, r, fg, bg)
		if w == 2 {
			c.set(x+1, y, ' ', fg, bg)
			c.at(x+1, y).cont = true
		}
		x += w
	}
}

// cardShape is a card rectangle in cells, centered on (cx, cy).
type cardShape struct {
	cx, cy        float64
	width, height int
	// shear shifts each row horizontally by this many cells per row of
	// distance above the center, approximating a clockwise tilt.
	shear float64
	color string
	label string
}

// card paints a bordered card with its label on the middle row.
func (c *canvas) card(s cardShape) {
	if s.width < 2 || s.height < 2 {
		return
	}
	left := int(math.Round(s.cx - float64(s.width)/2))
	top := int(math.Round(s.cy - float64(s.height)/2))
	ink := inkFor(s.color)
	mid := top + s.height/2

	for row := 0; row < s.height; row++ {
		y := top + row
		shift := int(math.Round(float64(mid-y) * s.shear))
		x0 := left + shift
		for col := 0; col < s.width; col++ {
			c.set(x0+col, y, borderRune(row, col, s.width, s.height), ink, s.color)
		}
		if y == mid && s.width > 2 {
			label := runewidth.Truncate(s.label, s.width-2, labelEllipsis)
			lw := runewidth.StringWidth(label)
			c.text(x0+(s.width-lw)/2, y, label, ink, s.color)
		}
	}
}

func borderRune(row, col, w, h int) rune {
	top, bottom := row == 0, row == h-1
	leftEdge, rightEdge := col == 0, col == w-1
	switch {
	case top && leftEdge:
		return '╭'
	case top && rightEdge:
		return '╮'
	case bottom && leftEdge:
		return '╰'
	case bottom && rightEdge:
		return '╯'
	case top || bottom:
		return '─'
	case leftEdge || rightEdge:
		return '│'
	}
	return ' '
}

// Render returns the canvas as styled lines, one per row.
func (c *canvas) Render() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		row := c.cells[y*c.width : (y+1)*c.width]
		var run strings.Builder
		var fg, bg string
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if fg == "" && bg == "" {
				b.WriteString(run.String())
			} else {
				st := lipgloss.NewStyle()
				if fg != "" {
					st = st.Foreground(lipgloss.Color(fg))
				}
				if bg != "" {
					st = st.Background(lipgloss.Color(bg))
				}
				b.WriteString(st.Render(run.String()))
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.cont {
				continue
			}
			if cl.fg != fg || cl.bg != bg {
				flush()
				fg, bg = cl.fg, cl.bg
			}
			run.WriteRune(cl.ch)
		}
		flush()
	}
	return b.String()
}
