package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sortviz/internal/stepper"
)

// Eighth blocks from empty to full; a text row holds eight height units.
var eighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Layout sizes the bar chart in terminal cells.
type Layout struct {
	Rows     int
	BarWidth int
	Gap      bool
	// Dense packs two bars into each cell with braille dots; set when
	// there are more bars than columns.
	Dense bool
}

// LayoutFor fits n bars into a width x height cell area.
func LayoutFor(width, height, n int) Layout {
	l := Layout{Rows: 16, BarWidth: 1}
	if height > 0 {
		l.Rows = clamp(height, 4, 40)
	}
	if width <= 0 || n <= 0 {
		return l
	}
	per := width / n
	switch {
	case n > width:
		l.Dense = true
	case per >= 3:
		l.BarWidth = min(per-1, 4)
		l.Gap = true
	case per == 2:
		l.BarWidth = 1
		l.Gap = true
	}
	return l
}

// barUnits scales a bar value to eighth-cell units for a chart of rows.
func barUnits(v, panelHeight, rows int) int {
	if panelHeight <= 0 || v <= 0 {
		return 0
	}
	u := v * rows * 8 / panelHeight
	if u < 1 {
		u = 1
	}
	return min(u, rows*8)
}

// RenderBars draws the frame as vertical bars, one per element, colored by
// element state. The output has exactly l.Rows lines.
func RenderBars(f stepper.Frame, l Layout, th Theme) string {
	if l.Rows <= 0 {
		return ""
	}
	if l.BarWidth <= 0 {
		l.BarWidth = 1
	}

	styles := map[stepper.ElementState]lipgloss.Style{}
	style := func(s stepper.ElementState) lipgloss.Style {
		st, ok := styles[s]
		if !ok {
			st = lipgloss.NewStyle().Foreground(th.StateColor(s))
			styles[s] = st
		}
		return st
	}

	units := make([]int, len(f.Seq))
	for i, v := range f.Seq {
		units[i] = barUnits(v, f.Height, l.Rows)
	}

	lines := make([]string, l.Rows)
	for r := 0; r < l.Rows; r++ {
		base := (l.Rows - 1 - r) * 8
		var b strings.Builder
		for i := range f.Seq {
			fill := clamp(units[i]-base, 0, 8)
			cell := strings.Repeat(string(eighths[fill]), l.BarWidth)
			state := stepper.Normal
			if i < len(f.States) {
				state = f.States[i]
			}
			if fill > 0 {
				cell = style(state).Render(cell)
			}
			b.WriteString(cell)
			if l.Gap {
				b.WriteByte(' ')
			}
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

// Legend shows the color of every element state.
func Legend(th Theme) string {
	items := []stepper.ElementState{stepper.Normal, stepper.Pivot, stepper.Compared, stepper.Sorted}
	parts := make([]string, len(items))
	for i, s := range items {
		parts[i] = lipgloss.NewStyle().Foreground(th.StateColor(s)).Render("█") + " " + s.String()
	}
	return strings.Join(parts, "  ")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
