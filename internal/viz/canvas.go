package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sortviz/internal/stepper"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// statePriority decides the color of a cell shared by two bars.
var statePriority = map[stepper.ElementState]int{
	stepper.Normal:   0,
	stepper.Sorted:   1,
	stepper.Compared: 2,
	stepper.Pivot:    3,
}

// Canvas is a grid of braille cells, each holding 2x4 sub-pixels, with one
// element state per cell for coloring.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	States        [][]stepper.ElementState
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		States: make([][]stepper.ElementState, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.States[i] = make([]stepper.ElementState, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel at (x, y); the canvas is Width*2 by Height*4
// sub-pixels with y growing downwards.
func (c *Canvas) Set(x, y int, s stepper.ElementState) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= pixelMap[y%4][x%2]
	if statePriority[s] > statePriority[c.States[row][col]] {
		c.States[row][col] = s
	}
}

// VLine lights column x from sub-pixel row y0 down to the bottom edge.
func (c *Canvas) VLine(x, y0 int, s stepper.ElementState) {
	for y := max(y0, 0); y < c.Height*4; y++ {
		c.Set(x, y, s)
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.States[i][j] = stepper.Normal
		}
	}
}

func (c *Canvas) Render(th Theme) string {
	styles := map[stepper.ElementState]lipgloss.Style{}
	lines := make([]string, c.Height)
	for i, row := range c.Grid {
		var b strings.Builder
		for j, r := range row {
			if r == brailleBlank {
				b.WriteRune(r)
				continue
			}
			s := c.States[i][j]
			st, ok := styles[s]
			if !ok {
				st = lipgloss.NewStyle().Foreground(th.StateColor(s))
				styles[s] = st
			}
			b.WriteString(st.Render(string(r)))
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

// RenderDense draws two bars per terminal cell for sequences wider than the
// available columns. Bars beyond cols*2 are cut off.
func RenderDense(f stepper.Frame, rows, cols int, th Theme) string {
	if rows <= 0 || cols <= 0 {
		return ""
	}
	c := NewCanvas(cols, rows)
	dots := rows * 4
	for i, v := range f.Seq {
		if i >= cols*2 {
			break
		}
		h := 0
		if f.Height > 0 && v > 0 {
			h = max(v*dots/f.Height, 1)
		}
		state := stepper.Normal
		if i < len(f.States) {
			state = f.States[i]
		}
		c.VLine(i, dots-min(h, dots), state)
	}
	return c.Render(th)
}
