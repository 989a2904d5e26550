package tui

import (
	"math"
	"strings"

	"github.com/thruflo/liftlogic/internal/pose"
)

// Plot glyphs.
const (
	plotEmpty   = ' '
	plotLimb    = '.'
	plotJoint   = 'o'
	plotTracked = '@'
)

// Plot draws landmarks on a width x height character grid. Coordinates are
// normalized image coordinates with y growing downward. The joints of triple
// are highlighted and joined by limb segments; joints outside the unit
// square are not drawn.
func Plot(l pose.Landmarks, triple pose.Triple, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(string(plotEmpty), width))
	}

	cell := func(j pose.Joint) (row, col int, ok bool) {
		col = int(math.Round(j.X * float64(width-1)))
		row = int(math.Round(j.Y * float64(height-1)))
		ok = col >= 0 && col < width && row >= 0 && row < height
		return row, col, ok
	}
	set := func(row, col int, r rune) {
		if row >= 0 && row < height && col >= 0 && col < width {
			grid[row][col] = r
		}
	}

	if a, b, c, ok := l.Lookup(triple); ok {
		for _, seg := range [][2]pose.Joint{{a, b}, {b, c}} {
			r0, c0, _ := cell(seg[0])
			r1, c1, _ := cell(seg[1])
			steps := max(abs(r1-r0), abs(c1-c0))
			for i := 1; i < steps; i++ {
				t := float64(i) / float64(steps)
				set(r0+int(math.Round(t*float64(r1-r0))), c0+int(math.Round(t*float64(c1-c0))), plotLimb)
			}
		}
	}

	for name, j := range l {
		row, col, ok := cell(j)
		if !ok {
			continue
		}
		glyph := plotJoint
		if name == triple.A || name == triple.B || name == triple.C {
			glyph = plotTracked
		}
		set(row, col, glyph)
	}

	lines := make([]string, height)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return lines
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
