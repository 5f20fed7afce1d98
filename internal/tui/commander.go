package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/buzzdavidson/ozwcommander/internal/config"
	"github.com/buzzdavidson/ozwcommander/internal/dispatch"
	"github.com/buzzdavidson/ozwcommander/internal/driver"
	"github.com/buzzdavidson/ozwcommander/internal/logging"
	"github.com/buzzdavidson/ozwcommander/internal/timer"
	"github.com/buzzdavidson/ozwcommander/internal/tui/layout"
	"github.com/buzzdavidson/ozwcommander/internal/tui/nav"
	"github.com/buzzdavidson/ozwcommander/internal/tui/overlay"
	"github.com/buzzdavidson/ozwcommander/internal/tui/pane"
)

// Size used until the first tea.WindowSizeMsg arrives.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Options wires a Commander to its collaborators. Nil Settings, Timers and
// Dispatcher are replaced with defaults.
type Options struct {
	Driver     driver.Driver
	Settings   *config.Settings
	Timers     *timer.Service
	Dispatcher *dispatch.Dispatcher
	// ConfigPath is shown in the Setup dialog.
	ConfigPath string
}

type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogProgress
	dialogAbout
	dialogSetup
)

// commandDone reports the outcome of a driver command run off the render
// path.
type commandDone struct {
	Command nav.Command
	NodeID  int
	Err     error
}

// Commander is the dashboard program model. Bubble Tea calls Update and View
// on a single goroutine, which is the only one that touches its state.
type Commander struct {
	ctx    context.Context
	cancel context.CancelFunc

	drv        driver.Driver
	settings   *config.Settings
	timers     *timer.Service
	events     *dispatch.Dispatcher
	configPath string

	keys     keyMap
	handlers map[nav.Command]handler

	width  int
	height int
	spec   layout.Spec
	layout layout.Resolved
	screen *pane.Grid
	list   *pane.Grid
	detail *pane.Grid
	nav    *nav.State

	alerts     overlay.Alerts
	dialog     *overlay.Dialog
	dialogKind dialogKind

	nodes       []driver.Node
	initialized bool
	nodeCount   int
	readyCount  int
}

// New creates the dashboard model with the startup progress dialog open.
func New(ctx context.Context, opts Options) *Commander {
	ctx, cancel := context.WithCancel(ctx)
	c := &Commander{
		ctx:        ctx,
		cancel:     cancel,
		drv:        opts.Driver,
		settings:   opts.Settings,
		timers:     opts.Timers,
		events:     opts.Dispatcher,
		configPath: opts.ConfigPath,
		keys:       newKeyMap(),
		handlers:   defaultHandlers(),
		spec:       layout.Spec{Columns: Columns, Rows: Bands},
		list:       pane.NewPane(),
		detail:     pane.NewPane(),
		nav:        nav.New(columnTitles(), Tabs),
	}
	if c.settings == nil {
		c.settings = config.NewSettings()
	}
	if c.timers == nil {
		c.timers = timer.New()
	}
	if c.events == nil {
		c.events = dispatch.New(dispatch.NewQueue())
	}
	c.resize(defaultWidth, defaultHeight)
	c.openProgress()
	return c
}

// Dispatcher returns the dispatcher the driver reports to.
func (c *Commander) Dispatcher() *dispatch.Dispatcher {
	return c.events
}

// Init starts the driver, arms the readiness check and begins draining the
// event queue.
func (c *Commander) Init() tea.Cmd {
	logging.Info("Initializing Z-Wave driver", zap.Duration("init_timeout", c.settings.InitTimeout()))
	c.postAfter("init_check", c.settings.InitTimeout(), dispatch.InitCheck{})
	return tea.Batch(c.startDriver(), c.events.Wait(c.ctx))
}

// Update applies one message: a key, a resize, a queued event or the result
// of a driver command.
func (c *Commander) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if c.nav.Stopped() {
		return c, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return c, c.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		return c, c.handleKey(msg)

	case dispatch.Event:
		cmd := c.handleEvent(msg)
		return c, tea.Batch(cmd, c.events.Wait(c.ctx))

	case dispatch.Stopped:
		logging.Debug("Event queue stopped", zap.Error(msg.Err))
		return c, nil

	case commandDone:
		c.commandFinished(msg)
		return c, nil
	}
	return c, nil
}

// View draws the screen.
func (c *Commander) View() string {
	c.draw()
	return c.screen.Render(CellStyle)
}

// Screen returns the plain text of the screen.
func (c *Commander) Screen() string {
	c.draw()
	return c.screen.String()
}

// Stopped reports whether Quit was requested.
func (c *Commander) Stopped() bool {
	return c.nav.Stopped()
}

// Shutdown releases the collaborators once the program has exited. Pending
// timers still fire but their events are dropped.
func (c *Commander) Shutdown() {
	c.cancel()
	c.events.Queue().Close()
	c.timers.Close()
	if c.drv != nil {
		if err := c.drv.Stop(); err != nil {
			logging.Warn("Driver stop failed", zap.Error(err))
		}
	}
	c.dialog = nil
	logging.Info("Shutdown complete")
}

func (c *Commander) resize(width, height int) tea.Cmd {
	c.width, c.height = width, height
	c.layout = layout.Compute(width, height, c.spec)
	if c.layout.Degraded {
		logging.Debug("Terminal smaller than layout minimums",
			zap.Int("width", width), zap.Int("height", height))
	}
	c.screen = pane.NewGrid(height, width)
	c.nav.SetVisibleHeight(c.layout.Rows[bandList] - 1)
	if c.nav.SetHiddenColumns(c.layout.Hidden) {
		c.resort()
	}
	if c.dialog != nil {
		c.dialog.Reposition(width, height)
	}
	return tea.ClearScreen
}

func (c *Commander) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, c.keys.Abort) {
		return c.quit()
	}

	if c.dialog != nil {
		switch {
		case key.Matches(msg, c.keys.Close, c.keys.Cancel):
			return c.closeDialog()
		case isMnemonic(msg, nav.CmdQuit):
			return c.quit()
		}
		return nil
	}

	switch {
	case key.Matches(msg, c.keys.Up):
		c.move(-1)
	case key.Matches(msg, c.keys.Down):
		c.move(1)
	case key.Matches(msg, c.keys.Left):
		c.cycle(-1)
	case key.Matches(msg, c.keys.Right):
		c.cycle(1)
	case key.Matches(msg, c.keys.Mode):
		c.nav.ToggleMode()
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1:
		if cmd, ok := nav.Resolve(msg.Runes[0]); ok {
			return c.execute(cmd)
		}
	}
	return nil
}

func isMnemonic(msg tea.KeyMsg, want nav.Command) bool {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return false
	}
	cmd, ok := nav.Resolve(msg.Runes[0])
	return ok && cmd == want
}

func (c *Commander) move(delta int) {
	if c.nav.Mode == nav.ModeDetail {
		c.nav.ScrollDetail(delta, len(c.detailContent()), c.detailRows())
		return
	}
	c.nav.MoveSelection(delta)
}

func (c *Commander) cycle(delta int) {
	c.nav.Cycle(delta)
	if c.nav.Mode == nav.ModeList {
		c.resort()
	}
}

func (c *Commander) quit() tea.Cmd {
	logging.Info("Stop requested")
	c.nav.RequestStop()
	return tea.Quit
}

// alert raises text on the banner, arming its expiry when it is displayed
// immediately.
func (c *Commander) alert(text string) {
	logging.Debug("Alert raised", zap.String("text", text))
	if shown, gen := c.alerts.Raise(text); shown {
		c.postAfter("alert", c.settings.AlertDuration(), dispatch.AlertExpired{Generation: gen})
	}
}

func (c *Commander) expireAlert(gen uint64) {
	t := c.alerts.Expire(gen)
	switch {
	case t.Stale:
		logging.Debug("Ignoring stale alert expiry", zap.Uint64("generation", gen))
	case t.Showing:
		c.postAfter("alert", c.settings.AlertDuration(), dispatch.AlertExpired{Generation: t.Generation})
	}
}

// postAfter arms a timer that posts e. The callback only touches the
// dispatcher.
func (c *Commander) postAfter(tag string, delay time.Duration, e dispatch.Event) {
	events := c.events
	c.timers.Schedule(tag, delay, func() error {
		if !events.Post(e) {
			return dispatch.ErrClosed
		}
		return nil
	})
}

func (c *Commander) openDialog(kind dialogKind, height, width int, buttons []string, caption string) *overlay.Dialog {
	c.dialog = overlay.Open(c.width, c.height, height, width, buttons, caption)
	c.dialogKind = kind
	return c.dialog
}

func (c *Commander) closeDialog() tea.Cmd {
	if c.dialog == nil {
		return nil
	}
	c.dialog = nil
	c.dialogKind = dialogNone
	return tea.ClearScreen
}

func (c *Commander) openProgress() {
	d := c.openDialog(dialogProgress, 10, 60, []string{"Cancel"}, "Progress")
	d.SetRow(2, "Initializing Z-Wave driver", overlay.AlignCenter)
}

// progress returns the startup dialog while it is open.
func (c *Commander) progress() *overlay.Dialog {
	if c.dialogKind != dialogProgress {
		return nil
	}
	return c.dialog
}

func (c *Commander) startDriver() tea.Cmd {
	if c.drv == nil {
		return nil
	}
	drv, ctx, events := c.drv, c.ctx, c.events
	return func() tea.Msg {
		if err := drv.Start(ctx, events); err != nil {
			events.Post(dispatch.DriverFailed{Err: err})
		}
		return nil
	}
}

// refreshNodes takes a fresh snapshot of the node table.
func (c *Commander) refreshNodes() {
	if c.drv == nil {
		return
	}
	id := c.selectedID()
	nodes := c.drv.Nodes()
	labelNodes(nodes, c.settings)
	sortNodes(nodes, c.nav.SortColumn)
	c.nodes = nodes
	c.nav.SetItemCount(len(nodes))
	c.follow(id)
}

// resort re-sorts the current snapshot, keeping the selected node selected.
func (c *Commander) resort() {
	id := c.selectedID()
	sortNodes(c.nodes, c.nav.SortColumn)
	c.follow(id)
}

// follow moves the selection to node id wherever sorting placed it. A node
// that is gone leaves the selection index as it is.
func (c *Commander) follow(id int) {
	if id == 0 {
		return
	}
	for i, n := range c.nodes {
		if n.ID == id {
			c.nav.Select(i)
			return
		}
	}
}

func (c *Commander) selectedNode() (driver.Node, bool) {
	i := c.nav.Selected()
	if i < 0 || i >= len(c.nodes) {
		return driver.Node{}, false
	}
	return c.nodes[i], true
}

func (c *Commander) selectedID() int {
	if n, ok := c.selectedNode(); ok {
		return n.ID
	}
	return 0
}
