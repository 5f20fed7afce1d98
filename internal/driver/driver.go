// Package driver is the boundary between the dashboard and a Z-Wave network.
//
// A Driver owns the network connection and its own goroutines. It reports
// progress and changes by calling a Notifier with one Notification per
// occurrence; the Notifier is expected to hand them to the UI goroutine
// without blocking. Accessors return snapshots and are safe to call from any
// goroutine. Commands block on network I/O and are meant to run off the UI
// goroutine.
//
// Two implementations exist: Simulator, an in-memory network used for demos
// and tests, and ZWaveJS, a client for zwave-js-server.
package driver

import (
	"context"
	"fmt"
	"strings"

	"github.com/buzzdavidson/ozwcommander/internal/config"
)

// Kind identifies a notification.
type Kind int

const (
	KindDriverReady Kind = iota + 1
	KindSystemReady
	KindNodeAdded
	KindNodeReady
	KindNodeRemoved
	KindValueChanged
	KindDriverFailed
)

var kindNames = map[Kind]string{
	KindDriverReady:  "driver_ready",
	KindSystemReady:  "system_ready",
	KindNodeAdded:    "node_added",
	KindNodeReady:    "node_ready",
	KindNodeRemoved:  "node_removed",
	KindValueChanged: "value_changed",
	KindDriverFailed: "driver_failed",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Notification is one report from the driver.
type Notification struct {
	Kind      Kind
	HomeID    uint32
	NodeID    int
	NodeCount int
	Payload   any
	Err       error
}

// Notifier receives notifications. Notify must not block.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) { f(n) }

// Value is one labelled value of a node.
type Value struct {
	Label    string
	Value    string
	Units    string
	ReadOnly bool
}

// Group is an association group.
type Group struct {
	Index   int
	Label   string
	Max     int
	Members []int
}

// Node is a snapshot of one device.
type Node struct {
	ID           int
	Name         string
	Location     string
	Manufacturer string
	Product      string
	ProductType  string // generic device type label
	State        string
	// Battery and Signal are percentages; -1 when the node does not report them.
	Battery int
	Signal  int
	// Level is the multilevel switch position 0-99; -1 when not applicable.
	Level     int
	Sleeping  bool
	Ready     bool
	Version   string
	Neighbors []int
	Classes   []uint8
	Values    []Value
	Config    []Value
	Groups    []Group
}

// Clone returns a deep copy of n.
func (n Node) Clone() Node {
	c := n
	c.Neighbors = append([]int(nil), n.Neighbors...)
	c.Classes = append([]uint8(nil), n.Classes...)
	c.Values = append([]Value(nil), n.Values...)
	c.Config = append([]Value(nil), n.Config...)
	c.Groups = make([]Group, len(n.Groups))
	for i, g := range n.Groups {
		g.Members = append([]int(nil), g.Members...)
		c.Groups[i] = g
	}
	if n.Groups == nil {
		c.Groups = nil
	}
	return c
}

// Driver is a Z-Wave network as seen by the dashboard.
type Driver interface {
	// Start connects and begins reporting to n. It returns once the driver's
	// goroutines are running; readiness arrives as notifications.
	Start(ctx context.Context, n Notifier) error
	Stop() error

	Initialized() bool
	HomeID() uint32
	NodeCount() int
	SleepingNodeCount() int
	Nodes() []Node
	Node(id int) (Node, bool)
	ControllerDescription() string
	LibraryName() string
	LibraryVersion() string

	RefreshNode(ctx context.Context, id int) error
	SetSwitch(ctx context.Context, id int, on bool) error
	SetLevel(ctx context.Context, id int, delta int) error
}

// New creates the driver selected by cfg.
func New(cfg config.Driver) (Driver, error) {
	switch strings.ToLower(cfg.Kind) {
	case "", config.DriverSimulator:
		return NewSimulator(cfg.Device), nil
	case config.DriverZWaveJS:
		if cfg.ServerURL == "" {
			return nil, fmt.Errorf("zwavejs driver requires a server URL")
		}
		return NewZWaveJS(cfg.ServerURL), nil
	default:
		return nil, fmt.Errorf("unknown driver kind %q", cfg.Kind)
	}
}
