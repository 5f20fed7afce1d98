package driver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/buzzdavidson/ozwcommander/internal/logging"
	"github.com/buzzdavidson/ozwcommander/internal/zwave"
)

// DefaultStepDelay is the pause between simulated notifications.
const DefaultStepDelay = 150 * time.Millisecond

// SimOption configures a Simulator.
type SimOption func(*Simulator)

// WithStepDelay sets the pause between notifications during startup.
func WithStepDelay(d time.Duration) SimOption {
	return func(s *Simulator) { s.stepDelay = d }
}

// WithNodes replaces the simulated network.
func WithNodes(nodes []Node) SimOption {
	return func(s *Simulator) {
		s.network = make([]Node, len(nodes))
		for i, n := range nodes {
			s.network[i] = n.Clone()
		}
	}
}

// WithHomeID sets the simulated home id.
func WithHomeID(id uint32) SimOption {
	return func(s *Simulator) { s.homeID = id }
}

// WithStall makes the simulator connect but never report DriverReady, as a
// controller on the wrong serial port would.
func WithStall() SimOption {
	return func(s *Simulator) { s.stall = true }
}

// Simulator is an in-memory Z-Wave network.
type Simulator struct {
	device    string
	homeID    uint32
	stepDelay time.Duration
	stall     bool
	network   []Node

	mu          sync.RWMutex
	nodes       map[int]*Node
	initialized bool
	closed      bool
	notifier    Notifier
	cancel      context.CancelFunc
	done        chan struct{}
}

// NewSimulator creates a simulator for the controller on device.
func NewSimulator(device string, opts ...SimOption) *Simulator {
	if device == "" {
		device = "/dev/ttyUSB0"
	}
	s := &Simulator{
		device:    device,
		homeID:    0x003d8522,
		stepDelay: DefaultStepDelay,
		network:   House(),
		nodes:     make(map[int]*Node),
	}
	for _, opt := range opts {
		opt(s)
	}
	sort.Slice(s.network, func(i, j int) bool { return s.network[i].ID < s.network[j].ID })
	return s
}

// Start begins the simulated startup sequence.
func (s *Simulator) Start(ctx context.Context, n Notifier) error {
	if n == nil {
		return opError("start", 0, errors.New("nil notifier"))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return opError("start", 0, ErrClosed)
	}
	if s.done != nil {
		return opError("start", 0, errors.New("already started"))
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.notifier = n
	s.done = make(chan struct{})
	go s.run(ctx)
	logging.Info("Simulator started", zap.String("device", s.device), zap.Int("nodes", len(s.network)))
	return nil
}

func (s *Simulator) run(ctx context.Context) {
	defer close(s.done)

	if !s.sleep(ctx) || s.stall {
		return
	}
	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()
	s.notify(Notification{Kind: KindDriverReady, HomeID: s.homeID, NodeCount: len(s.network)})

	for i := range s.network {
		node := s.network[i].Clone()
		node.Ready = false
		if !s.sleep(ctx) {
			return
		}
		s.mu.Lock()
		s.nodes[node.ID] = &node
		s.mu.Unlock()
		s.notify(Notification{Kind: KindNodeAdded, HomeID: s.homeID, NodeID: node.ID})

		if !s.sleep(ctx) {
			return
		}
		s.mu.Lock()
		s.nodes[node.ID].Ready = true
		s.mu.Unlock()
		s.notify(Notification{Kind: KindNodeReady, HomeID: s.homeID, NodeID: node.ID})
	}

	if !s.sleep(ctx) {
		return
	}
	s.notify(Notification{Kind: KindSystemReady, HomeID: s.homeID})
}

func (s *Simulator) sleep(ctx context.Context) bool {
	if s.stepDelay <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(s.stepDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (s *Simulator) notify(n Notification) {
	s.mu.RLock()
	notifier := s.notifier
	s.mu.RUnlock()
	if notifier != nil {
		logging.LogDriverEvent(n.Kind.String(), zap.Int("node_id", n.NodeID))
		notifier.Notify(n)
	}
}

// Stop ends the startup sequence and rejects further commands.
func (s *Simulator) Stop() error {
	s.mu.Lock()
	s.closed = true
	cancel, done := s.cancel, s.done
	s.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
	return nil
}

// Initialized reports whether DriverReady has been sent.
func (s *Simulator) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// HomeID returns the network home id once initialized.
func (s *Simulator) HomeID() uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialized {
		return 0
	}
	return s.homeID
}

// NodeCount returns the number of nodes added so far.
func (s *Simulator) NodeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// SleepingNodeCount returns the number of sleeping nodes.
func (s *Simulator) SleepingNodeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.nodes {
		if n.Sleeping {
			count++
		}
	}
	return count
}

// Nodes returns snapshots of every node ordered by id.
func (s *Simulator) Nodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Node returns a snapshot of one node.
func (s *Simulator) Node(id int) (Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[id]
	if !ok {
		return Node{}, false
	}
	return n.Clone(), true
}

// ControllerDescription names the controller.
func (s *Simulator) ControllerDescription() string {
	return "HomeSeer Z-Troller on " + s.device
}

// LibraryName returns the controller library type.
func (s *Simulator) LibraryName() string { return "Installer Library" }

// LibraryVersion returns the controller library version.
func (s *Simulator) LibraryVersion() string { return "Z-Wave 2.78" }

// RefreshNode re-reads a node; the simulator just reports its values again.
func (s *Simulator) RefreshNode(ctx context.Context, id int) error {
	if _, err := s.mutate(ctx, "refresh", id, func(n *Node) error { return nil }); err != nil {
		return err
	}
	s.notify(Notification{Kind: KindValueChanged, HomeID: s.homeID, NodeID: id, Payload: "refresh"})
	return nil
}

// SetSwitch turns a binary or multilevel switch on or off.
func (s *Simulator) SetSwitch(ctx context.Context, id int, on bool) error {
	v, err := s.mutate(ctx, "set_switch", id, func(n *Node) error {
		switch {
		case zwave.Has(n.Classes, zwave.ClassSwitchMultilevel):
			if on {
				setLevel(n, 99)
			} else {
				setLevel(n, 0)
			}
		case zwave.Has(n.Classes, zwave.ClassSwitchBinary):
			n.State = onOff(on)
			setValue(n, "Switch", n.State, "")
		default:
			return ErrNotSupported
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notify(Notification{Kind: KindValueChanged, HomeID: s.homeID, NodeID: id, Payload: v})
	return nil
}

// SetLevel moves a multilevel switch by delta, clamped to 0-99.
func (s *Simulator) SetLevel(ctx context.Context, id int, delta int) error {
	v, err := s.mutate(ctx, "set_level", id, func(n *Node) error {
		if !zwave.Has(n.Classes, zwave.ClassSwitchMultilevel) {
			return ErrNotSupported
		}
		setLevel(n, n.Level+delta)
		return nil
	})
	if err != nil {
		return err
	}
	s.notify(Notification{Kind: KindValueChanged, HomeID: s.homeID, NodeID: id, Payload: v})
	return nil
}

// mutate applies f to node id under the lock and returns the resulting state.
func (s *Simulator) mutate(ctx context.Context, op string, id int, f func(*Node) error) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", opError(op, id, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", opError(op, id, ErrClosed)
	}
	if !s.initialized {
		return "", opError(op, id, ErrNotInitialized)
	}
	n, ok := s.nodes[id]
	if !ok {
		return "", opError(op, id, ErrUnknownNode)
	}
	if err := f(n); err != nil {
		return "", opError(op, id, err)
	}
	return n.State, nil
}

func setLevel(n *Node, level int) {
	if level < 0 {
		level = 0
	}
	if level > 99 {
		level = 99
	}
	n.Level = level
	n.State = onOff(level > 0)
	setValue(n, "Level", strconv.Itoa(level), "%")
}

func setValue(n *Node, label, value, units string) {
	for i := range n.Values {
		if n.Values[i].Label == label {
			n.Values[i].Value = value
			n.Values[i].Units = units
			return
		}
	}
	n.Values = append(n.Values, Value{Label: label, Value: value, Units: units})
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// House returns the demonstration network: a controller, three dimmers, a
// power switch and two battery sensors.
func House() []Node {
	common := []uint8{zwave.ClassBasic, zwave.ClassManufacturerSpecific, zwave.ClassVersion}
	classes := func(extra ...uint8) []uint8 {
		return append(append([]uint8(nil), common...), extra...)
	}
	dimmer := func(id int, name, location string, level int) Node {
		return Node{
			ID: id, Name: name, Location: location,
			Manufacturer: "Leviton", Product: "Scene Capable Dimmer",
			ProductType: zwave.DeviceTypeName(zwave.GenericSwitchMultilevel),
			State:       onOff(level > 0), Level: level, Battery: -1, Signal: 80, Version: "2",
			Neighbors: []int{1, 3, 6},
			Classes:   classes(zwave.ClassSwitchMultilevel, zwave.ClassSwitchAll, zwave.ClassAssociation),
			Values:    []Value{{Label: "Level", Value: strconv.Itoa(level), Units: "%"}},
			Config:    []Value{{Label: "Ramp Rate", Value: "3", Units: "s"}},
			Groups:    []Group{{Index: 1, Label: "Lifeline", Max: 5, Members: []int{1}}},
		}
	}

	return []Node{
		{
			ID: 1, Name: "Controller",
			Manufacturer: "HomeSeer", Product: "Z-Troller",
			ProductType: zwave.DeviceTypeName(zwave.GenericRemoteController),
			State:       "OK", Level: -1, Battery: -1, Signal: -1, Version: "2.78",
			Neighbors: []int{2, 3, 6, 7},
			Classes:   classes(zwave.ClassControllerReplication),
		},
		dimmer(2, "Sconce 1", "Living Room", 60),
		{
			ID: 3, Name: "TV", Location: "Living Room",
			Manufacturer: "Aeon Labs", Product: "Smart Energy Switch",
			ProductType: "Binary Power Switch",
			State:       "on", Level: -1, Battery: -1, Signal: 60, Version: "3",
			Neighbors: []int{2, 4, 5, 6, 7},
			Classes: []uint8{
				zwave.ClassBasic, zwave.ClassHail, zwave.ClassAssociation, zwave.ClassVersion,
				zwave.ClassSwitchAll, zwave.ClassManufacturerSpecific, zwave.ClassConfiguration,
				zwave.ClassSensorMultilevel, zwave.ClassMeter, zwave.ClassSwitchBinary, zwave.ClassProtection,
			},
			Values: []Value{
				{Label: "Switch", Value: "on"},
				{Label: "Power", Value: "84.2", Units: "W", ReadOnly: true},
				{Label: "Energy", Value: "12.7", Units: "kWh", ReadOnly: true},
			},
			Config: []Value{
				{Label: "Report Interval", Value: "600", Units: "s"},
				{Label: "Power Threshold", Value: "10", Units: "W"},
				{Label: "Protection", Value: zwave.Unprotected.String()},
			},
			Groups: []Group{{Index: 1, Label: "Reports", Max: 5, Members: []int{1}}},
		},
		{
			ID: 4, Name: "Liv Rm Motion", Location: "Living Room",
			Manufacturer: "Aeon Labs", Product: "Multi Sensor",
			ProductType: "Motion Sensor",
			State:       "sleeping", Level: -1, Battery: 80, Signal: 80, Sleeping: true, Version: "1",
			Neighbors: []int{3},
			Classes:   classes(zwave.ClassSensorBinary, zwave.ClassSensorMultilevel, zwave.ClassBattery, zwave.ClassWakeUp, zwave.ClassAssociation),
			Values: []Value{
				{Label: "Motion", Value: "idle", ReadOnly: true},
				{Label: "Temperature", Value: "21.5", Units: "C", ReadOnly: true},
				{Label: "Battery", Value: "80", Units: "%", ReadOnly: true},
			},
			Config: []Value{{Label: "Wake-up Interval", Value: "3600", Units: "s"}},
			Groups: []Group{{Index: 1, Label: "Motion", Max: 5, Members: []int{1, 2}}},
		},
		{
			ID: 5, Name: "Sliding Door", Location: "Family Room",
			Manufacturer: "Everspring", Product: "Door/Window Detector",
			ProductType: "Door/Window Sensor",
			State:       "ALARM", Level: -1, Battery: 60, Signal: 40, Sleeping: true, Version: "1",
			Neighbors: []int{3},
			Classes:   classes(zwave.ClassSensorBinary, zwave.ClassAlarm, zwave.ClassBattery, zwave.ClassWakeUp, zwave.ClassAssociation),
			Values: []Value{
				{Label: "Sensor", Value: "open", ReadOnly: true},
				{Label: "Battery", Value: "60", Units: "%", ReadOnly: true},
			},
			Groups: []Group{{Index: 1, Label: "Alarm", Max: 3, Members: []int{1}}},
		},
		dimmer(6, "Sconce 2", "Living Room", 60),
		{
			ID: 7, Name: "Bedroom Lamp", Location: "Master Bed",
			Manufacturer: "Leviton", Product: "Scene Lamp Module",
			ProductType: "Multilevel Scene Switch",
			State:       "on", Level: 99, Battery: -1, Signal: -1, Version: "2",
			Neighbors: []int{1, 3},
			Classes:   classes(zwave.ClassSwitchMultilevel, zwave.ClassSceneActivation),
			Values:    []Value{{Label: "Level", Value: "99", Units: "%"}},
		},
	}
}

// String describes the simulator for logs.
func (s *Simulator) String() string {
	return fmt.Sprintf("simulator(%s, %d nodes)", s.device, len(s.network))
}
