// Package preview renders an element list as a rough character grid
// for terminal display. It is a debugging aid, not a rendering engine:
// shapes become boxes, arrows become straight lines.
package preview

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"inkling/core"
)

// Cell size of one character in canvas pixels.
const (
	cellW = 10.0
	cellH = 20.0
)

// Render draws the non-deleted elements onto a rune grid and returns
// it as a newline-joined string. Returns "" for an empty diagram.
func Render(elements []core.Element) string {
	bounds := core.BoundsOf(core.Alive(elements))
	if bounds == nil {
		return ""
	}

	cols := int(bounds.Width()/cellW) + 3
	rows := int(bounds.Height()/cellH) + 2
	if cols < 1 || rows < 1 {
		return ""
	}

	grid := newGrid(cols, rows)
	toCol := func(x float64) int { return int((x - bounds.MinX) / cellW) }
	toRow := func(y float64) int { return int((y - bounds.MinY) / cellH) }

	// Arrows first so boxes draw over the line ends.
	for i := range elements {
		el := &elements[i]
		if el.IsDeleted || el.Kind != core.KindArrow || len(el.Points) < 2 {
			continue
		}
		last := el.Points[len(el.Points)-1]
		grid.line(
			toCol(el.X), toRow(el.Y),
			toCol(el.X+last[0]), toRow(el.Y+last[1]),
		)
	}

	for i := range elements {
		el := &elements[i]
		if el.IsDeleted || !el.Kind.IsShape() {
			continue
		}
		x, y := toCol(el.X), toRow(el.Y)
		w := toCol(el.X+el.Width) - x
		h := toRow(el.Y+el.Height) - y
		grid.box(x, y, w, h, el.Kind)
		grid.centeredText(x, y, w, h, core.LabelText(el, elements))
	}

	return grid.String()
}

// grid is a fixed-size rune matrix.
type grid struct {
	cells [][]rune
	cols  int
	rows  int
}

func newGrid(cols, rows int) *grid {
	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = make([]rune, cols)
		for j := range cells[i] {
			cells[i][j] = ' '
		}
	}
	return &grid{cells: cells, cols: cols, rows: rows}
}

func (g *grid) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= g.cols || y >= g.rows {
		return
	}
	g.cells[y][x] = r
}

// box draws a border using rounded corners for ellipses and plain
// corners otherwise; diamonds get angle markers on the sides.
func (g *grid) box(x, y, w, h int, kind core.Kind) {
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	tl, tr, bl, br := '┌', '┐', '└', '┘'
	if kind == core.KindEllipse {
		tl, tr, bl, br = '╭', '╮', '╰', '╯'
	}
	for i := 1; i < w; i++ {
		g.set(x+i, y, '─')
		g.set(x+i, y+h, '─')
	}
	for i := 1; i < h; i++ {
		g.set(x, y+i, '│')
		g.set(x+w, y+i, '│')
	}
	g.set(x, y, tl)
	g.set(x+w, y, tr)
	g.set(x, y+h, bl)
	g.set(x+w, y+h, br)
	if kind == core.KindDiamond {
		g.set(x, y+h/2, '<')
		g.set(x+w, y+h/2, '>')
	}
}

// centeredText writes a label centered in a box, truncated to fit.
func (g *grid) centeredText(x, y, w, h int, text string) {
	text = strings.ReplaceAll(text, "\n", " ")
	width := runewidth.StringWidth(text)
	if width > w-1 {
		text = runewidth.Truncate(text, w-1, "…")
		width = runewidth.StringWidth(text)
	}
	cx := x + (w-width)/2 + 1
	cy := y + h/2
	for _, r := range text {
		g.set(cx, cy, r)
		cx += runewidth.RuneWidth(r)
	}
}

// line draws a crude straight line between two grid points with an
// arrowhead at the target.
func (g *grid) line(x0, y0, x1, y1 int) {
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + dx*i/steps
		y := y0 + dy*i/steps
		ch := '·'
		if abs(dx) > abs(dy) {
			ch = '─'
		} else if abs(dy) > abs(dx) {
			ch = '│'
		}
		g.set(x, y, ch)
	}
	head := 'v'
	switch {
	case abs(dx) > abs(dy) && dx > 0:
		head = '>'
	case abs(dx) > abs(dy):
		head = '<'
	case dy < 0:
		head = '^'
	}
	g.set(x1, y1, head)
}

func (g *grid) String() string {
	lines := make([]string, g.rows)
	for i, row := range g.cells {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
