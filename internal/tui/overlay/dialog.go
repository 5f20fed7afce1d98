// Package overlay implements the modal dialog and the alert banner queue.
//
// A Dialog is drawn into its own cell buffer and overlaid onto the screen at
// a rectangle centered on the terminal. Rows written with SetRow and
// SetProgress live in that buffer, so a dialog keeps its content when the
// terminal is resized and only its placement moves.
//
// Alerts is a pure state machine: one alert on display, the rest waiting in
// FIFO order. Every displayed alert carries a generation number and expiry
// requests for any other generation are ignored, so a late timer can never
// dismiss the wrong alert.
package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/buzzdavidson/ozwcommander/internal/tui/pane"
)

// Align is the horizontal alignment of a dialog row.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Dialog styles.
var (
	BackgroundStyle = pane.Style{Color: pane.ColorHeaderHi}
	CaptionStyle    = pane.Style{Color: pane.ColorNormal, Attr: pane.AttrStandout}
	BracketStyle    = pane.Style{Color: pane.ColorNormal, Attr: pane.AttrBold}
	BarEmptyStyle   = pane.Style{Color: pane.ColorNormal}
	BarFilledStyle  = pane.Style{Color: pane.ColorOK, Attr: pane.AttrBold}
	PercentStyle    = pane.Style{Color: pane.ColorNormal, Attr: pane.AttrBold}
)

var border = lipgloss.RoundedBorder()

// Dialog is a modal box with a border, an optional caption, interior text
// rows and a row of buttons.
type Dialog struct {
	Height  int
	Width   int
	Caption string
	Buttons []string

	// Rect is the screen placement.
	Rect pane.Rect

	grid *pane.Grid
	rows map[int]string
}

// Open creates a dialog of height x width centered on a screenW x screenH
// terminal.
func Open(screenW, screenH, height, width int, buttons []string, caption string) *Dialog {
	if height < 3 {
		height = 3
	}
	if width < 4 {
		width = 4
	}
	d := &Dialog{
		Height:  height,
		Width:   width,
		Caption: caption,
		Buttons: append([]string(nil), buttons...),
		grid:    pane.NewGrid(height, width),
		rows:    make(map[int]string),
	}
	d.Reposition(screenW, screenH)
	d.paintFrame()
	return d
}

// Reposition centers the dialog on a terminal of the new size.
func (d *Dialog) Reposition(screenW, screenH int) {
	top := screenH/2 - d.Height/2
	left := screenW/2 - d.Width/2
	if top < 0 {
		top = 0
	}
	if left < 0 {
		left = 0
	}
	d.Rect = pane.Rect{Row: top, Col: left, Height: d.Height, Width: d.Width}
}

func (d *Dialog) paintFrame() {
	g := d.grid
	for r := 0; r < d.Height; r++ {
		g.Fill(r, 0, d.Width, ' ', BackgroundStyle)
	}
	g.Fill(0, 1, d.Width-2, firstRune(border.Top), BackgroundStyle)
	g.Fill(d.Height-1, 1, d.Width-2, firstRune(border.Bottom), BackgroundStyle)
	for r := 1; r < d.Height-1; r++ {
		g.Write(r, 0, border.Left, BackgroundStyle)
		g.Write(r, d.Width-1, border.Right, BackgroundStyle)
	}
	g.Write(0, 0, border.TopLeft, BackgroundStyle)
	g.Write(0, d.Width-1, border.TopRight, BackgroundStyle)
	g.Write(d.Height-1, 0, border.BottomLeft, BackgroundStyle)
	g.Write(d.Height-1, d.Width-1, border.BottomRight, BackgroundStyle)

	if d.Caption != "" {
		label := " " + d.Caption + " "
		col := d.Width/2 - ansi.StringWidth(d.Caption)/2 - 1
		g.Write(0, max(col, 1), ansi.Truncate(label, d.Width-2, ""), CaptionStyle)
	}
	d.paintButtons()
}

func (d *Dialog) paintButtons() {
	if len(d.Buttons) == 0 || d.Height < 3 {
		return
	}
	row := d.Height - 2
	labelWidth := 0
	for _, b := range d.Buttons {
		labelWidth = max(labelWidth, ansi.StringWidth(b))
	}
	interior := d.Width - 2
	if len(d.Buttons) == 1 {
		d.grid.Write(row, 1, Fit(button(d.Buttons[0], labelWidth), interior, AlignCenter), BackgroundStyle)
		return
	}
	cell := interior / len(d.Buttons)
	for i, b := range d.Buttons {
		d.grid.Write(row, 1+i*cell, Fit(button(b, labelWidth), cell, AlignCenter), BackgroundStyle)
	}
}

func button(label string, width int) string {
	return "<" + Fit(label, width, AlignCenter) + ">"
}

// SetRow overwrites interior row with text fitted to the interior width.
// The border rows cannot be written.
func (d *Dialog) SetRow(row int, text string, align Align) {
	if row <= 0 || row >= d.Height-1 {
		return
	}
	d.rows[row] = text
	d.grid.Write(row, 1, Fit(text, d.Width-2, align), BackgroundStyle)
}

// SetProgress draws a bracketed bar on row filled in proportion to
// current/total. A zero or negative total renders as 0%. width <= 0 selects
// two thirds of the dialog width. It returns the ratio drawn.
func (d *Dialog) SetProgress(row, current, total int, showPercent bool, width int) float64 {
	if row <= 0 || row >= d.Height-1 {
		return 0
	}
	delete(d.rows, row)

	span := d.Width - 1
	if width <= 0 {
		width = span * 2 / 3
	}
	width = min(width, d.Width-4)
	if width < 1 {
		return 0
	}
	ratio := Ratio(current, total)
	filled := int(ratio * float64(width))

	g := d.grid
	g.Fill(row, 1, d.Width-2, ' ', BackgroundStyle)
	left := max(span/2-width/2, 2)
	g.Write(row, left-1, "[", BracketStyle)
	g.Write(row, left+width, "]", BracketStyle)
	g.Fill(row, left, width, ' ', BarEmptyStyle)
	g.Fill(row, left, filled, '|', BarFilledStyle)
	if showPercent {
		pct := Percent(current, total)
		g.Write(row, span/2-len(pct)/2, pct, PercentStyle)
	}
	return ratio
}

// Ratio returns current/total clamped to [0,1]; a total of zero or less is 0.
func Ratio(current, total int) float64 {
	if total <= 0 {
		return 0
	}
	r := float64(current) / float64(total)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// Percent formats Ratio(current, total) as a four character label.
func Percent(current, total int) string {
	return fmt.Sprintf("%3.0f%%", Ratio(current, total)*100)
}

// Row returns the text last written to an interior row.
func (d *Dialog) Row(row int) (string, bool) {
	s, ok := d.rows[row]
	return s, ok
}

// Line returns the rendered text of one dialog line, border included.
func (d *Dialog) Line(row int) string {
	return d.grid.Line(row)
}

// Draw overlays the dialog onto dst at its placement.
func (d *Dialog) Draw(dst *pane.Grid) {
	pane.Blit(d.grid, pane.Window{Height: d.Height, Width: d.Width}, dst, d.Rect)
}

// Fit truncates or pads text to exactly width cells.
func Fit(text string, width int, align Align) string {
	if width <= 0 {
		return ""
	}
	text = ansi.Truncate(text, width, "")
	gap := width - ansi.StringWidth(text)
	switch align {
	case AlignCenter:
		left := gap / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", gap-left)
	case AlignRight:
		return strings.Repeat(" ", gap) + text
	default:
		return text + strings.Repeat(" ", gap)
	}
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}
