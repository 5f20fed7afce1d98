package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/buzzdavidson/ozwcommander/internal/dispatch"
	"github.com/buzzdavidson/ozwcommander/internal/logging"
	"github.com/buzzdavidson/ozwcommander/internal/tui/overlay"
)

const initFailedMessage = "Unable to initialize driver - check configuration"

// handleEvent applies one queued event.
func (c *Commander) handleEvent(e dispatch.Event) tea.Cmd {
	switch e := e.(type) {
	case dispatch.DriverReady:
		c.driverReady(e)
	case dispatch.NodeAdded:
		c.nodeAdded(e)
	case dispatch.NodeReady:
		c.nodeReady(e)
	case dispatch.SystemReady:
		return c.systemReady()
	case dispatch.NodeRemoved:
		logging.Info("Node removed", zap.Int("node_id", e.NodeID))
		c.refreshNodes()
	case dispatch.ValueChanged:
		logging.Debug("Value changed", zap.Int("node_id", e.NodeID), zap.Any("payload", e.Payload))
		c.refreshNodes()
	case dispatch.DriverFailed:
		c.driverFailed(e)
	case dispatch.AlertExpired:
		c.expireAlert(e.Generation)
	case dispatch.InitCheck:
		return c.checkInitialized()
	}
	return nil
}

func (c *Commander) driverReady(e dispatch.DriverReady) {
	logging.Info("Z-Wave driver is ready",
		zap.String("home_id", fmt.Sprintf("0x%08x", e.HomeID)),
		zap.Int("node_count", e.NodeCount),
	)
	c.initialized = true
	c.nodeCount = e.NodeCount
	c.readyCount = 0
	if d := c.progress(); d != nil {
		d.SetRow(2, fmt.Sprintf("Driver initialized with homeid 0x%x", e.HomeID), overlay.AlignCenter)
		d.SetRow(3, fmt.Sprintf("Node Count is now %d", e.NodeCount), overlay.AlignCenter)
	}
	c.refreshNodes()
}

func (c *Commander) nodeAdded(e dispatch.NodeAdded) {
	logging.Debug("Node added", zap.Int("node_id", e.NodeID))
	count := c.nodeCount
	if c.drv != nil {
		count = c.drv.NodeCount()
	}
	c.nodeCount = max(c.nodeCount, count)
	if d := c.progress(); d != nil {
		d.SetRow(3, fmt.Sprintf("Node Count is now %d", count), overlay.AlignCenter)
	}
	c.refreshNodes()
}

func (c *Commander) nodeReady(e dispatch.NodeReady) {
	c.readyCount++
	if d := c.progress(); d != nil {
		d.SetRow(2, "Z-Wave is querying associated devices", overlay.AlignCenter)
		d.SetRow(3, fmt.Sprintf("Node %d is now ready", e.NodeID), overlay.AlignCenter)
		d.SetProgress(5, c.readyCount, c.nodeCount, true, 0)
	}
	c.refreshNodes()
}

func (c *Commander) systemReady() tea.Cmd {
	logging.Info("Z-Wave initialization complete")
	c.alert("Z-Wave initialization complete.")
	c.refreshNodes()
	if c.progress() != nil {
		return c.closeDialog()
	}
	return tea.ClearScreen
}

func (c *Commander) driverFailed(e dispatch.DriverFailed) {
	logging.Error("Z-Wave driver failed", zap.Error(e.Err))
	c.initialized = c.drv != nil && c.drv.Initialized()
	if e.Err != nil {
		c.alert("Driver failed: " + e.Err.Error())
	} else {
		c.alert("Driver failed")
	}
}

func (c *Commander) checkInitialized() tea.Cmd {
	if c.initialized {
		logging.Info("Z-Wave driver initialized successfully")
		return nil
	}
	logging.Warn(initFailedMessage)
	c.alert(initFailedMessage)
	return c.handleSetup()
}
