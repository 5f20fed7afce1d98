// Package pane provides the character-cell buffers the dashboard draws into.
//
// A Grid is a fixed-capacity matrix of styled cells. The screen is a Grid the
// size of the terminal; virtual panes are larger off-screen Grids whose
// content lives in its own address space and is copied onto the screen
// through a movable window with Blit. Writes outside a Grid are clipped
// silently.
package pane

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// PaneCapacity is the row and column capacity of a virtual pane.
const PaneCapacity = 256

// Color is an entry of the dashboard palette.
type Color uint8

const (
	ColorNormal Color = iota
	ColorHeaderNormal
	ColorHeaderHi
	ColorError
	ColorCritical
	ColorWarn
	ColorOK
)

// Attr is a set of text attributes.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrStandout
	AttrDim
	AttrBlink
)

// Style is the look of one cell. It is comparable so runs of equal style can
// be coalesced when rendering.
type Style struct {
	Color Color
	Attr  Attr
}

// With returns s with the attributes a added.
func (s Style) With(a Attr) Style {
	s.Attr |= a
	return s
}

// Has reports whether all attributes in a are set.
func (s Style) Has(a Attr) bool {
	return s.Attr&a == a
}

// Cell is one character position. A Rune of 0 marks the second half of a
// double-width rune.
type Cell struct {
	Rune  rune
	Style Style
}

var blank = Cell{Rune: ' '}

// Grid is a fixed-size matrix of cells.
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// NewGrid allocates a blank rows x cols grid.
func NewGrid(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	g := &Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}
	g.Clear()
	return g
}

// NewPane allocates an off-screen virtual pane.
func NewPane() *Grid {
	return NewGrid(PaneCapacity, PaneCapacity)
}

// Rows returns the row capacity.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the column capacity.
func (g *Grid) Cols() int { return g.cols }

// Clear resets every cell to a blank in the normal style.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = blank
	}
}

// Cell returns the cell at row, col.
func (g *Grid) Cell(row, col int) (Cell, bool) {
	if !g.inside(row, col) {
		return Cell{}, false
	}
	return g.cells[row*g.cols+col], true
}

func (g *Grid) inside(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) set(row, col int, c Cell) {
	if g.inside(row, col) {
		g.cells[row*g.cols+col] = c
	}
}

// Write places text at row, col and returns the number of cells written.
// Text running past the right edge is cut; a row or column outside the grid
// writes nothing.
func (g *Grid) Write(row, col int, text string, style Style) int {
	if row < 0 || row >= g.rows || col >= g.cols {
		return 0
	}
	written := 0
	c := col
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if c < 0 {
			c += w
			continue
		}
		if c+w > g.cols {
			break
		}
		g.set(row, c, Cell{Rune: r, Style: style})
		if w == 2 {
			g.set(row, c+1, Cell{Rune: 0, Style: style})
		}
		c += w
		written += w
	}
	return written
}

// Fill writes width copies of r starting at row, col.
func (g *Grid) Fill(row, col, width int, r rune, style Style) {
	for i := 0; i < width; i++ {
		g.set(row, col+i, Cell{Rune: r, Style: style})
	}
}

// Line returns the plain text of one row.
func (g *Grid) Line(row int) string {
	if row < 0 || row >= g.rows {
		return ""
	}
	var b strings.Builder
	for _, c := range g.cells[row*g.cols : (row+1)*g.cols] {
		if c.Rune != 0 {
			b.WriteRune(c.Rune)
		}
	}
	return b.String()
}

// String returns the plain text of the whole grid, one line per row.
func (g *Grid) String() string {
	lines := make([]string, g.rows)
	for i := range lines {
		lines[i] = g.Line(i)
	}
	return strings.Join(lines, "\n")
}

// Render serialises the grid with styler, rendering each run of equally
// styled cells once.
func (g *Grid) Render(styler func(Style) lipgloss.Style) string {
	var out strings.Builder
	var run strings.Builder
	for row := 0; row < g.rows; row++ {
		if row > 0 {
			out.WriteByte('\n')
		}
		cells := g.cells[row*g.cols : (row+1)*g.cols]
		for i := 0; i < len(cells); {
			style := cells[i].Style
			run.Reset()
			for ; i < len(cells) && cells[i].Style == style; i++ {
				if cells[i].Rune != 0 {
					run.WriteRune(cells[i].Rune)
				}
			}
			out.WriteString(styler(style).Render(run.String()))
		}
	}
	return out.String()
}
