package tui

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"

	"github.com/buzzdavidson/ozwcommander/internal/tui/nav"
	"github.com/buzzdavidson/ozwcommander/internal/tui/overlay"
	"github.com/buzzdavidson/ozwcommander/internal/tui/pane"
)

// draw repaints the whole screen grid. Order matters: the banner and the
// dialog are drawn over the base content.
func (c *Commander) draw() {
	c.screen.Clear()
	c.drawSystemInfo()
	c.drawColumnHeaders()
	c.drawList()
	c.drawDetail()
	c.drawMenu()
	c.drawAlert()
	if c.dialog != nil {
		c.dialog.Draw(c.screen)
	}
}

func (c *Commander) drawSystemInfo() {
	if c.drv == nil {
		c.screen.Write(0, 1, "No driver configured", warnStyle)
		return
	}
	g := c.screen
	g.Write(0, 1, c.drv.ControllerDescription(), normal)
	g.Write(1, 1, fmt.Sprintf("Home ID 0x%08x", c.drv.HomeID()), normal)

	col := 1 + g.Write(2, 1, fmt.Sprintf("%d Registered Nodes", c.drv.NodeCount()), normal)
	if c.initialized {
		if sleeping := c.drv.SleepingNodeCount(); sleeping > 0 {
			g.Write(2, col, fmt.Sprintf(" (%d Sleeping)", sleeping), dimmed)
		}
	}

	c.rightPrint(0, c.drv.LibraryName(), normal)
	c.rightPrint(1, "Version "+c.drv.LibraryVersion(), normal)
}

func (c *Commander) rightPrint(row int, text string, style pane.Style) {
	c.screen.Write(row, c.width-ansi.StringWidth(text), text, style)
}

// headerBase is the style of the header row for the pane that does not have
// focus in the given mode.
func headerBase(focused bool) pane.Style {
	if focused {
		return headerStyle
	}
	return inverted
}

func (c *Commander) drawColumnHeaders() {
	row := c.layout.RowOffset(bandList) - 1
	base := headerBase(c.nav.Mode == nav.ModeList)
	c.screen.Fill(row, 0, c.width, ' ', base)
	for _, i := range c.layout.VisibleColumns() {
		style := base
		if i == c.nav.SortColumn {
			style = activeHeader
		}
		c.screen.Write(row, c.layout.ColumnOffset(i), overlay.Fit(Columns[i].Title, c.layout.Columns[i], overlay.AlignLeft), style)
	}
}

func (c *Commander) drawList() {
	c.list.Clear()
	selected := c.nav.Selected()
	for idx, n := range c.nodes {
		if idx >= c.list.Rows() {
			break
		}
		style := rowStyle(n, idx == selected)
		c.list.Fill(idx, 0, c.width, ' ', style)
		for _, i := range c.layout.VisibleColumns() {
			w := c.layout.Columns[i]
			text := cellText(n, i, w)
			if i == colIndicator {
				text = " "
				if idx == selected {
					text = ">"
				}
			}
			c.list.Write(idx, c.layout.ColumnOffset(i), cell(text, w), style)
		}
	}

	top := c.layout.RowOffset(bandList)
	height := c.layout.Rows[bandList]
	pane.Blit(c.list, c.nav.List.Window(c.width), c.screen, pane.Rect{Row: top, Height: height, Width: c.width})
}

// cell fits text to a column, keeping the last position blank as a
// separator.
func cell(text string, width int) string {
	if width <= 1 {
		return overlay.Fit(text, width, overlay.AlignLeft)
	}
	return overlay.Fit(text, width-1, overlay.AlignLeft) + " "
}

func (c *Commander) drawDetail() {
	row := c.layout.RowOffset(bandDetail)
	base := headerBase(c.nav.Mode == nav.ModeDetail)
	c.screen.Fill(row, 0, c.width, ' ', base)
	col := 0
	for i, title := range Tabs {
		style := base
		if i == c.nav.DetailTab {
			style = activeHeader
		}
		col += c.screen.Write(row, col, " "+title+" ", style)
	}

	c.detail.Clear()
	for i, line := range c.detailContent() {
		if i >= c.detail.Rows() {
			break
		}
		c.detail.Write(i, 1, line, normal)
	}
	pane.Blit(c.detail, pane.Window{Top: c.nav.DetailTop, Height: c.detailRows(), Width: c.width},
		c.screen, pane.Rect{Row: row + 1, Height: c.detailRows(), Width: c.width})
}

// detailContent returns the lines of the active tab for the selected node.
func (c *Commander) detailContent() []string {
	n, ok := c.selectedNode()
	if !ok {
		if c.initialized {
			return []string{"No nodes"}
		}
		return []string{"Waiting for the Z-Wave driver"}
	}
	return detailLines(n, c.nav.DetailTab)
}

// detailRows is the height of the detail pane below its tab row.
func (c *Commander) detailRows() int {
	return max(c.layout.Rows[bandDetail]-1, 0)
}

func (c *Commander) drawMenu() {
	row := c.height - 1
	c.screen.Fill(row, 0, c.width, ' ', headerStyle)
	col := 0
	for i, m := range nav.Mnemonics {
		if i > 0 {
			col++
		}
		col += c.screen.Write(row, col, string(m.Key), mnemonicKey)
		col += c.screen.Write(row, col, " "+m.Command.String(), headerStyle)
	}
}

func (c *Commander) drawAlert() {
	text, ok := c.alerts.Current()
	if !ok {
		return
	}
	row := c.height - 1
	c.screen.Fill(row, 0, c.width, ' ', alertStyle)
	c.screen.Write(row, 0, " "+overlay.Fit(text, c.width-2, overlay.AlignLeft), alertStyle)
}
