package tui

import (
	"bytes"

	"github.com/mattn/go-runewidth"
)

// canvasBuf is a grid of pre-styled cells. A cell may hold a whole styled
// run; the cells it covers are then left empty so rows keep their width.
type canvasBuf struct {
	w     int
	h     int
	cells []string // flat: y*w + x
}

func (c *canvasBuf) Reset() {
	c.w = 0
	c.h = 0
	c.cells = nil
}

func (c *canvasBuf) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		c.Reset()
		return
	}
	n := w * h
	if c.w == w && c.h == h && cap(c.cells) >= n {
		c.cells = c.cells[:n]
		return
	}
	c.w = w
	c.h = h
	c.cells = make([]string, n)
}

func (c *canvasBuf) Fill(cell string) {
	for i := range c.cells {
		c.cells[i] = cell
	}
}

func (c *canvasBuf) Set(x, y int, cell string) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y*c.w+x] = cell
}

// SetRun places a pre-rendered run of the given display width at (x, y).
func (c *canvasBuf) SetRun(x, y, width int, run string) {
	if y < 0 || y >= c.h || x < 0 || x >= c.w {
		return
	}
	c.Set(x, y, run)
	for dx := 1; dx < width; dx++ {
		c.Set(x+dx, y, "")
	}
}

// Text writes s starting at (x, y), styling each rune with style and
// clipping at maxX. Wide runes take two cells.
func (c *canvasBuf) Text(x, y, maxX int, s string, style func(string) string) {
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > maxX {
			return
		}
		c.Set(x, y, style(string(r)))
		if rw == 2 {
			c.Set(x+1, y, "")
		}
		x += rw
	}
}

func (c *canvasBuf) WriteTo(out *bytes.Buffer, leftPad string) {
	for y := 0; y < c.h; y++ {
		if leftPad != "" {
			out.WriteString(leftPad)
		}
		rowOff := y * c.w
		for x := 0; x < c.w; x++ {
			out.WriteString(c.cells[rowOff+x])
		}
		out.WriteByte('\n')
	}
}
