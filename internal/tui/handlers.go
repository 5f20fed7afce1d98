package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/buzzdavidson/ozwcommander/internal/driver"
	"github.com/buzzdavidson/ozwcommander/internal/logging"
	"github.com/buzzdavidson/ozwcommander/internal/tui/nav"
	"github.com/buzzdavidson/ozwcommander/internal/tui/overlay"
	"github.com/buzzdavidson/ozwcommander/internal/version"
	"github.com/buzzdavidson/ozwcommander/internal/zwave"
)

// levelStep is how far Increase and Decrease move a dimmer.
const levelStep = 10

// handler runs a command on the render goroutine. Work that may block is
// returned as a tea.Cmd.
type handler func(c *Commander) tea.Cmd

// Add and Delete drive inclusion and exclusion, which happen outside the
// dashboard, so they have no handler.
func defaultHandlers() map[nav.Command]handler {
	return map[nav.Command]handler{
		nav.CmdAbout:    (*Commander).handleAbout,
		nav.CmdRefresh:  (*Commander).handleRefresh,
		nav.CmdSetup:    (*Commander).handleSetup,
		nav.CmdIncrease: (*Commander).handleIncrease,
		nav.CmdDecrease: (*Commander).handleDecrease,
		nav.CmdOn:       (*Commander).handleOn,
		nav.CmdOff:      (*Commander).handleOff,
		nav.CmdQuit:     (*Commander).quit,
	}
}

// execute runs the handler for cmd. A command without a handler raises an
// alert naming it.
func (c *Commander) execute(cmd nav.Command) tea.Cmd {
	logging.LogCommand(cmd.String(), c.selectedID())
	h, ok := c.handlers[cmd]
	if !ok {
		logging.Warn("No handler defined for command", zap.String("command", cmd.String()))
		c.alert(fmt.Sprintf("No handler defined for %s", cmd))
		return nil
	}
	return h(c)
}

func (c *Commander) handleAbout() tea.Cmd {
	d := c.openDialog(dialogAbout, 10, 60, []string{"OK"}, "About")
	d.SetRow(2, version.AppName+" "+version.Version, overlay.AlignCenter)
	d.SetRow(3, "Z-Wave network dashboard", overlay.AlignCenter)
	if c.drv != nil {
		d.SetRow(5, c.drv.LibraryName()+" "+c.drv.LibraryVersion(), overlay.AlignCenter)
	}
	d.SetRow(6, c.keys.hint(), overlay.AlignCenter)
	return nil
}

func (c *Commander) handleSetup() tea.Cmd {
	cfg := c.settings.Driver
	d := c.openDialog(dialogSetup, 10, 60, []string{"OK"}, "Setup")
	rows := []struct{ label, value string }{
		{"Driver", cfg.Kind},
		{"Device", cfg.Device},
		{"Config dir", cfg.ConfigDir},
		{"Server", cfg.ServerURL},
		{"Settings", c.configPath},
	}
	for i, r := range rows {
		value := r.value
		if value == "" {
			value = "-"
		}
		d.SetRow(1+i, fmt.Sprintf(" %-11s %s", r.label+":", value), overlay.AlignLeft)
	}
	d.SetRow(7, "Edit the settings file and restart to apply", overlay.AlignCenter)
	return nil
}

func (c *Commander) handleRefresh() tea.Cmd {
	drv := c.drv
	return c.nodeCommand(nav.CmdRefresh, func(ctx context.Context, id int) error {
		return drv.RefreshNode(ctx, id)
	})
}

func (c *Commander) handleIncrease() tea.Cmd {
	drv := c.drv
	return c.nodeCommand(nav.CmdIncrease, func(ctx context.Context, id int) error {
		return drv.SetLevel(ctx, id, levelStep)
	})
}

func (c *Commander) handleDecrease() tea.Cmd {
	drv := c.drv
	return c.nodeCommand(nav.CmdDecrease, func(ctx context.Context, id int) error {
		return drv.SetLevel(ctx, id, -levelStep)
	})
}

func (c *Commander) handleOn() tea.Cmd {
	return c.switchCommand(nav.CmdOn, true)
}

func (c *Commander) handleOff() tea.Cmd {
	return c.switchCommand(nav.CmdOff, false)
}

// switchCommand turns the selected node on or off. Nodes without a switch
// command class are refused before anything is sent.
func (c *Commander) switchCommand(cmd nav.Command, on bool) tea.Cmd {
	if n, ok := c.selectedNode(); ok && c.initialized && !zwave.Switchable(n.Classes) {
		logging.Debug("Node has no switch class", zap.String("command", cmd.String()), zap.Int("node_id", n.ID))
		c.alert(unsupported(cmd, n.ID))
		return nil
	}
	drv := c.drv
	return c.nodeCommand(cmd, func(ctx context.Context, id int) error {
		return drv.SetSwitch(ctx, id, on)
	})
}

// nodeCommand runs f for the selected node off the render goroutine. It
// requires an initialized driver.
func (c *Commander) nodeCommand(cmd nav.Command, f func(ctx context.Context, id int) error) tea.Cmd {
	if !c.initialized || c.drv == nil {
		c.alert("Driver not initialized")
		return nil
	}
	n, ok := c.selectedNode()
	if !ok {
		c.alert("No node selected")
		return nil
	}
	ctx, id := c.ctx, n.ID
	return func() tea.Msg {
		return commandDone{Command: cmd, NodeID: id, Err: f(ctx, id)}
	}
}

func (c *Commander) commandFinished(msg commandDone) {
	if msg.Err == nil {
		logging.Debug("Command completed", zap.String("command", msg.Command.String()), zap.Int("node_id", msg.NodeID))
		return
	}
	logging.Error("Command failed",
		zap.String("command", msg.Command.String()),
		zap.Int("node_id", msg.NodeID),
		zap.Error(msg.Err),
	)
	if errors.Is(msg.Err, driver.ErrNotSupported) {
		c.alert(unsupported(msg.Command, msg.NodeID))
	}
}

func unsupported(cmd nav.Command, nodeID int) string {
	return fmt.Sprintf("%s is not supported by node %d", cmd, nodeID)
}
