package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/buzzdavidson/ozwcommander/internal/config"
	"github.com/buzzdavidson/ozwcommander/internal/driver"
	"github.com/buzzdavidson/ozwcommander/internal/tui/layout"
	"github.com/buzzdavidson/ozwcommander/internal/tui/pane"
	"github.com/buzzdavidson/ozwcommander/internal/zwave"
)

// Device list columns.
const (
	colIndicator = iota
	colID
	colName
	colLocation
	colType
	colState
	colBattery
	colSignal
)

// Columns declares the device list.
var Columns = []layout.Column{
	{Title: "", Width: 1},
	{Title: "ID", Width: 4},
	{Title: "Name", Width: 10, Flex: true},
	{Title: "Location", Width: 10, Flex: true},
	{Title: "Type", Width: 20, Flex: true},
	{Title: "State", Width: 9, Optional: true},
	{Title: "Batt", Width: 7, Optional: true},
	{Title: "Signal", Width: 7, Optional: true},
}

// Screen bands.
const (
	bandInfo = iota
	bandList
	bandDetail
	bandMenu
)

// Bands declares the screen rows: system info with the column header on its
// last line, the device list, the detail pane headed by its tabs, the menu.
var Bands = []layout.Band{
	{Name: "info", Height: 5},
	{Name: "list", Height: 5, Flex: true},
	{Name: "detail", Height: 10, Flex: true},
	{Name: "menu", Height: 1},
}

// Tabs are the detail views.
var Tabs = []string{"Info", "Config", "Values", "Classes", "Groups"}

const (
	tabInfo = iota
	tabConfig
	tabValues
	tabClasses
	tabGroups
)

func columnTitles() []string {
	titles := make([]string, len(Columns))
	for i, c := range Columns {
		titles[i] = c.Title
	}
	return titles
}

// labelNodes fills blank names and locations from the settings file.
func labelNodes(nodes []driver.Node, settings *config.Settings) {
	if settings == nil {
		return
	}
	for i := range nodes {
		label := settings.NodeLabel(nodes[i].ID)
		if label == nil {
			continue
		}
		if nodes[i].Name == "" {
			nodes[i].Name = label.Name
		}
		if nodes[i].Location == "" {
			nodes[i].Location = label.Location
		}
	}
}

// sortNodes orders nodes by column. ID, battery and signal compare
// numerically, the rest case-insensitively; ties fall back to the ID.
func sortNodes(nodes []driver.Node, column int) {
	slices.SortStableFunc(nodes, func(a, b driver.Node) int {
		var c int
		switch column {
		case colBattery:
			c = cmp.Compare(a.Battery, b.Battery)
		case colSignal:
			c = cmp.Compare(a.Signal, b.Signal)
		case colID:
		default:
			c = strings.Compare(strings.ToLower(sortKey(a, column)), strings.ToLower(sortKey(b, column)))
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func sortKey(n driver.Node, column int) string {
	switch column {
	case colName:
		return n.Name
	case colLocation:
		return n.Location
	case colType:
		return n.ProductType
	case colState:
		if n.Level >= 0 {
			return fmt.Sprintf("%02d", n.Level)
		}
		return n.State
	}
	return ""
}

// cellText returns the text of one device list cell, at most width-1 cells
// wide so adjacent columns stay separated.
func cellText(n driver.Node, column, width int) string {
	inner := width - 1
	switch column {
	case colID:
		return strconv.Itoa(n.ID)
	case colName:
		return n.Name
	case colLocation:
		return n.Location
	case colType:
		return n.ProductType
	case colState:
		if n.Level >= 0 {
			return gauge(n.Level*100/99, inner)
		}
		if n.State == "" && n.Sleeping {
			return "sleeping"
		}
		return n.State
	case colBattery:
		return gauge(n.Battery, inner)
	case colSignal:
		return gauge(n.Signal, inner)
	}
	return ""
}

// gauge draws pct as a bracketed bar width cells wide. Negative values are
// unknown and draw nothing.
func gauge(pct, width int) string {
	if pct < 0 || width < 3 {
		return ""
	}
	pct = min(pct, 100)
	inner := width - 2
	filled := pct * inner / 100
	return "[" + strings.Repeat("|", filled) + strings.Repeat(" ", inner-filled) + "]"
}

// rowStyle picks the style of a device list row.
func rowStyle(n driver.Node, selected bool) pane.Style {
	style := normal
	switch {
	case n.State == "dead":
		style = failedStyle
	case n.Sleeping || !n.Ready:
		style = dimmed
	}
	if selected {
		style = style.With(pane.AttrStandout)
	}
	return style
}

// detailLines returns the content of a detail tab for n.
func detailLines(n driver.Node, tab int) []string {
	switch tab {
	case tabInfo:
		return infoLines(n)
	case tabConfig:
		if len(n.Config) == 0 {
			return []string{"No configuration parameters"}
		}
		return valueLines(n.Config)
	case tabValues:
		if len(n.Values) == 0 {
			return []string{"No values"}
		}
		return valueLines(n.Values)
	case tabClasses:
		if len(n.Classes) == 0 {
			return []string{"No command classes"}
		}
		lines := make([]string, len(n.Classes))
		for i, c := range n.Classes {
			lines[i] = zwave.ClassName(c)
		}
		return lines
	case tabGroups:
		if len(n.Groups) == 0 {
			return []string{"No association groups"}
		}
		lines := make([]string, len(n.Groups))
		for i, g := range n.Groups {
			lines[i] = fmt.Sprintf("%d %-14s %d/%d  %s", g.Index, g.Label, len(g.Members), g.Max, joinInts(g.Members))
		}
		return lines
	}
	return nil
}

func infoLines(n driver.Node) []string {
	field := func(label, value string) string {
		return fmt.Sprintf("%-14s%s", label+":", value)
	}
	state := n.State
	if n.Level >= 0 {
		state = fmt.Sprintf("%s (level %d)", n.State, n.Level)
	}
	lines := []string{
		field("Name", n.Name),
		field("Location", n.Location),
		field("Manufacturer", n.Manufacturer),
		field("Product", n.Product),
		field("Type", n.ProductType),
		field("Neighbors", joinInts(n.Neighbors)),
		field("Version", n.Version),
		field("State", state),
	}
	if n.Battery >= 0 {
		lines = append(lines, field("Battery", fmt.Sprintf("%d%%", n.Battery)))
	}
	if n.Signal >= 0 {
		lines = append(lines, field("Signal", fmt.Sprintf("%d%%", n.Signal)))
	}
	if n.Sleeping {
		lines = append(lines, field("Sleeping", "yes"))
	}
	return lines
}

func valueLines(values []driver.Value) []string {
	width := 0
	for _, v := range values {
		width = max(width, len(v.Label))
	}
	lines := make([]string, len(values))
	for i, v := range values {
		text := v.Value
		if v.Units != "" {
			text += " " + v.Units
		}
		if v.ReadOnly {
			text += " (read only)"
		}
		lines[i] = fmt.Sprintf("%-*s  %s", width, v.Label, text)
	}
	return lines
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
