package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/buzzdavidson/ozwcommander/internal/tui/pane"
)

// Color palette. Each palette entry is a foreground/background pair.
var (
	White  = lipgloss.Color("15")
	Black  = lipgloss.Color("0")
	Green  = lipgloss.Color("2")
	Cyan   = lipgloss.Color("6")
	Yellow = lipgloss.Color("11")
	Red    = lipgloss.Color("1")
)

type colorPair struct {
	fg lipgloss.Color
	bg lipgloss.Color
}

var palette = map[pane.Color]colorPair{
	pane.ColorNormal:       {White, Black},  // selected rows are inverted, sleeping nodes dim
	pane.ColorHeaderNormal: {Black, Green},  // column and menu headers
	pane.ColorHeaderHi:     {White, Cyan},   // active header, dialog background
	pane.ColorError:        {Yellow, Red},   // alert banner
	pane.ColorCritical:     {Red, Black},    // failed nodes
	pane.ColorWarn:         {Yellow, Black}, // low battery, weak signal
	pane.ColorOK:           {Green, Black},  // gauges
}

// Screen styles.
var (
	normal       = pane.Style{Color: pane.ColorNormal}
	dimmed       = pane.Style{Color: pane.ColorNormal, Attr: pane.AttrDim}
	inverted     = pane.Style{Color: pane.ColorNormal, Attr: pane.AttrStandout}
	headerStyle  = pane.Style{Color: pane.ColorHeaderNormal}
	activeHeader = pane.Style{Color: pane.ColorHeaderHi, Attr: pane.AttrBold}
	mnemonicKey  = pane.Style{Color: pane.ColorNormal, Attr: pane.AttrBold}
	alertStyle   = pane.Style{Color: pane.ColorError, Attr: pane.AttrBlink}
	warnStyle    = pane.Style{Color: pane.ColorWarn}
	failedStyle  = pane.Style{Color: pane.ColorCritical, Attr: pane.AttrBold}
)

// CellStyle maps a cell style to its lipgloss rendering.
func CellStyle(s pane.Style) lipgloss.Style {
	pair, ok := palette[s.Color]
	if !ok {
		pair = palette[pane.ColorNormal]
	}
	st := lipgloss.NewStyle().Foreground(pair.fg).Background(pair.bg)
	if s.Has(pane.AttrBold) {
		st = st.Bold(true)
	}
	if s.Has(pane.AttrStandout) {
		st = st.Reverse(true)
	}
	if s.Has(pane.AttrDim) {
		st = st.Faint(true)
	}
	if s.Has(pane.AttrBlink) {
		st = st.Blink(true)
	}
	return st
}
