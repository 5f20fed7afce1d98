package driver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/buzzdavidson/ozwcommander/internal/logging"
	"github.com/buzzdavidson/ozwcommander/internal/zwave"
)

const (
	// Time allowed to write a message to the server
	writeWait = 10 * time.Second

	// Time allowed for the server to answer a command
	commandTimeout = 30 * time.Second

	// Time allowed for the version greeting after connecting
	greetingWait = 10 * time.Second
)

type wsResult struct {
	payload json.RawMessage
	err     error
}

// pendingCall is a command awaiting its result. apply, when set, runs on the
// read goroutine before any later message is handled.
type pendingCall struct {
	ch    chan wsResult
	apply func(json.RawMessage) error
}

// ZWaveJS drives a network through a zwave-js-server WebSocket.
type ZWaveJS struct {
	url    string
	dialer *websocket.Dialer

	writeMu sync.Mutex
	nextID  atomic.Uint64

	mu            sync.RWMutex
	conn          *websocket.Conn
	notifier      Notifier
	pending       map[string]pendingCall
	nodes         map[int]*wsNode
	homeID        uint32
	sdkVersion    string
	driverVersion string
	serverVersion string
	initialized   bool
	closed        bool
	greeted       chan struct{}
	done          chan struct{}
	cancel        context.CancelFunc
}

// NewZWaveJS creates a client for the server at url (ws://host:port).
func NewZWaveJS(url string) *ZWaveJS {
	return &ZWaveJS{
		url:     url,
		dialer:  websocket.DefaultDialer,
		pending: make(map[string]pendingCall),
		nodes:   make(map[int]*wsNode),
		greeted: make(chan struct{}),
	}
}

// Start connects to the server and begins the listening handshake.
func (z *ZWaveJS) Start(ctx context.Context, n Notifier) error {
	if n == nil {
		return opError("start", 0, errors.New("nil notifier"))
	}
	z.mu.Lock()
	if z.closed {
		z.mu.Unlock()
		return opError("start", 0, ErrClosed)
	}
	if z.conn != nil {
		z.mu.Unlock()
		return opError("start", 0, errors.New("already started"))
	}
	z.mu.Unlock()

	conn, _, err := z.dialer.DialContext(ctx, z.url, nil)
	if err != nil {
		return opError("connect", 0, err)
	}
	logging.Info("Connected to zwave-js server", zap.String("url", z.url))

	ctx, cancel := context.WithCancel(ctx)
	z.mu.Lock()
	if z.closed || z.conn != nil {
		closed := z.closed
		z.mu.Unlock()
		cancel()
		conn.Close()
		if closed {
			return opError("start", 0, ErrClosed)
		}
		return opError("start", 0, errors.New("already started"))
	}
	z.conn = conn
	z.notifier = n
	z.cancel = cancel
	z.done = make(chan struct{})
	z.mu.Unlock()

	go z.readLoop()
	go z.handshake(ctx)
	return nil
}

func (z *ZWaveJS) handshake(ctx context.Context) {
	select {
	case <-z.greeted:
	case <-ctx.Done():
		return
	case <-time.After(greetingWait):
		z.fail(opError("handshake", 0, errors.New("no version greeting from server")))
		return
	}

	if _, err := z.callWith(ctx, map[string]any{"command": "start_listening"}, z.applyState); err != nil {
		z.fail(opError("start_listening", 0, err))
	}
}

// applyState loads the start_listening state dump and reports the network.
func (z *ZWaveJS) applyState(raw json.RawMessage) error {
	var res wsStartListeningResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}

	z.mu.Lock()
	if res.State.Controller.HomeID != 0 {
		z.homeID = res.State.Controller.HomeID
	}
	z.sdkVersion = res.State.Controller.SDKVersion
	z.initialized = true
	for i := range res.State.Nodes {
		node := res.State.Nodes[i]
		z.nodes[node.NodeID] = &node
	}
	homeID := z.homeID
	nodes := res.State.Nodes
	z.mu.Unlock()

	z.notify(Notification{Kind: KindDriverReady, HomeID: homeID, NodeCount: len(nodes)})
	allReady := true
	for _, node := range nodes {
		z.notify(Notification{Kind: KindNodeAdded, HomeID: homeID, NodeID: node.NodeID})
		if node.Ready {
			z.notify(Notification{Kind: KindNodeReady, HomeID: homeID, NodeID: node.NodeID})
		} else {
			allReady = false
		}
	}
	if allReady {
		z.notify(Notification{Kind: KindSystemReady, HomeID: homeID})
	}
	return nil
}

func (z *ZWaveJS) readLoop() {
	defer close(z.done)
	for {
		msgType, data, err := z.conn.ReadMessage()
		if err != nil {
			z.mu.RLock()
			closed := z.closed
			z.mu.RUnlock()
			if !closed {
				z.fail(opError("read", 0, err))
			}
			z.failPending(err)
			return
		}
		logging.LogWebSocketMessage(z.url, "received", msgType, data)
		z.handleMessage(data)
	}
}

func (z *ZWaveJS) handleMessage(data []byte) {
	var msg wsMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		logging.Warn("Malformed message from zwave-js server", zap.Error(err))
		return
	}

	switch msg.Type {
	case "version":
		z.mu.Lock()
		z.homeID = msg.HomeID
		z.driverVersion = msg.DriverVersion
		z.serverVersion = msg.ServerVersion
		z.mu.Unlock()
		select {
		case <-z.greeted:
		default:
			close(z.greeted)
		}

	case "result":
		z.mu.Lock()
		call, ok := z.pending[msg.MessageID]
		delete(z.pending, msg.MessageID)
		z.mu.Unlock()
		if !ok {
			logging.Debug("Result for unknown message", zap.String("message_id", msg.MessageID))
			return
		}
		if !msg.Success {
			call.ch <- wsResult{err: fmt.Errorf("server error %s: %s", msg.ErrorCode, msg.Message)}
			return
		}
		var err error
		if call.apply != nil {
			err = call.apply(msg.Result)
		}
		call.ch <- wsResult{payload: msg.Result, err: err}

	case "event":
		var ev wsEvent
		if err := json.Unmarshal(msg.Event, &ev); err != nil {
			logging.Warn("Malformed event from zwave-js server", zap.Error(err))
			return
		}
		z.handleEvent(ev)

	default:
		logging.Debug("Ignoring zwave-js message", zap.String("type", msg.Type))
	}
}

func (z *ZWaveJS) handleEvent(ev wsEvent) {
	z.mu.Lock()
	homeID := z.homeID
	var out []Notification

	switch ev.Event {
	case "node added":
		if ev.Node != nil {
			node := *ev.Node
			z.nodes[node.NodeID] = &node
			out = append(out, Notification{Kind: KindNodeAdded, HomeID: homeID, NodeID: node.NodeID})
			if node.Ready {
				out = append(out, Notification{Kind: KindNodeReady, HomeID: homeID, NodeID: node.NodeID})
			}
		}

	case "node removed":
		if ev.Node != nil {
			delete(z.nodes, ev.Node.NodeID)
			out = append(out, Notification{Kind: KindNodeRemoved, HomeID: homeID, NodeID: ev.Node.NodeID})
		}

	case "ready":
		if node, ok := z.nodes[ev.NodeID]; ok {
			if ev.NodeState != nil {
				*node = *ev.NodeState
			}
			node.Ready = true
			out = append(out, Notification{Kind: KindNodeReady, HomeID: homeID, NodeID: ev.NodeID})
		}

	case "value updated", "value added", "value notification":
		if node, ok := z.nodes[ev.NodeID]; ok && ev.Args != nil {
			node.apply(ev.Args)
			changed := Value{Label: ev.Args.PropertyName, Value: formatValue(ev.Args.NewValue)}
			if changed.Label == "" {
				changed.Label = fmt.Sprint(ev.Args.Property)
			}
			out = append(out, Notification{Kind: KindValueChanged, HomeID: homeID, NodeID: ev.NodeID, Payload: changed})
		}

	case "sleep", "wake up", "dead", "alive":
		if node, ok := z.nodes[ev.NodeID]; ok {
			node.Status = map[string]int{
				"sleep":   statusAsleep,
				"wake up": statusAwake,
				"dead":    statusDead,
				"alive":   statusAlive,
			}[ev.Event]
			out = append(out, Notification{Kind: KindValueChanged, HomeID: homeID, NodeID: ev.NodeID, Payload: ev.Event})
		}

	case "all nodes ready":
		out = append(out, Notification{Kind: KindSystemReady, HomeID: homeID})

	default:
		logging.Debug("Ignoring zwave-js event",
			zap.String("source", ev.Source),
			zap.String("event", ev.Event),
		)
	}
	z.mu.Unlock()

	for _, n := range out {
		z.notify(n)
	}
}

// call sends a command and waits for its result.
func (z *ZWaveJS) call(ctx context.Context, cmd map[string]any) (json.RawMessage, error) {
	return z.callWith(ctx, cmd, nil)
}

func (z *ZWaveJS) callWith(ctx context.Context, cmd map[string]any, apply func(json.RawMessage) error) (json.RawMessage, error) {
	id := strconv.FormatUint(z.nextID.Add(1), 10)
	cmd["messageId"] = id
	data, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("encode command: %w", err)
	}

	ch := make(chan wsResult, 1)
	z.mu.Lock()
	if z.closed || z.conn == nil {
		z.mu.Unlock()
		return nil, ErrClosed
	}
	z.pending[id] = pendingCall{ch: ch, apply: apply}
	conn := z.conn
	z.mu.Unlock()

	z.writeMu.Lock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	err = conn.WriteMessage(websocket.TextMessage, data)
	z.writeMu.Unlock()
	if err != nil {
		z.dropPending(id)
		return nil, fmt.Errorf("send command: %w", err)
	}
	logging.LogWebSocketMessage(z.url, "sent", websocket.TextMessage, data)

	timer := time.NewTimer(commandTimeout)
	defer timer.Stop()
	select {
	case res := <-ch:
		return res.payload, res.err
	case <-ctx.Done():
		z.dropPending(id)
		return nil, ctx.Err()
	case <-timer.C:
		z.dropPending(id)
		return nil, fmt.Errorf("command %v timed out", cmd["command"])
	}
}

func (z *ZWaveJS) dropPending(id string) {
	z.mu.Lock()
	delete(z.pending, id)
	z.mu.Unlock()
}

func (z *ZWaveJS) failPending(err error) {
	z.mu.Lock()
	defer z.mu.Unlock()
	for id, call := range z.pending {
		call.ch <- wsResult{err: fmt.Errorf("connection lost: %w", err)}
		delete(z.pending, id)
	}
}

// fail reports err and drops the initialized state; commands are refused
// until the driver is started again.
func (z *ZWaveJS) fail(err error) {
	z.mu.Lock()
	z.initialized = false
	z.mu.Unlock()
	logging.Error("zwave-js driver failed", zap.String("url", z.url), zap.Error(err))
	z.notify(Notification{Kind: KindDriverFailed, Err: err})
}

func (z *ZWaveJS) notify(n Notification) {
	z.mu.RLock()
	notifier := z.notifier
	z.mu.RUnlock()
	if notifier != nil {
		logging.LogDriverEvent(n.Kind.String(), zap.Int("node_id", n.NodeID))
		notifier.Notify(n)
	}
}

// Stop closes the connection.
func (z *ZWaveJS) Stop() error {
	z.mu.Lock()
	if z.closed {
		z.mu.Unlock()
		return nil
	}
	z.closed = true
	conn, cancel, done := z.conn, z.cancel, z.done
	z.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn == nil {
		return nil
	}
	z.writeMu.Lock()
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	z.writeMu.Unlock()
	err := conn.Close()
	<-done
	return err
}

// Initialized reports whether the initial state was received.
func (z *ZWaveJS) Initialized() bool {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.initialized
}

// HomeID returns the network home id.
func (z *ZWaveJS) HomeID() uint32 {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.homeID
}

// NodeCount returns the number of known nodes.
func (z *ZWaveJS) NodeCount() int {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return len(z.nodes)
}

// SleepingNodeCount returns the number of nodes reported asleep.
func (z *ZWaveJS) SleepingNodeCount() int {
	z.mu.RLock()
	defer z.mu.RUnlock()
	count := 0
	for _, n := range z.nodes {
		if n.Status == statusAsleep {
			count++
		}
	}
	return count
}

// Nodes returns snapshots of every node ordered by id.
func (z *ZWaveJS) Nodes() []Node {
	z.mu.RLock()
	defer z.mu.RUnlock()
	out := make([]Node, 0, len(z.nodes))
	for _, n := range z.nodes {
		out = append(out, n.snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Node returns a snapshot of one node.
func (z *ZWaveJS) Node(id int) (Node, bool) {
	z.mu.RLock()
	defer z.mu.RUnlock()
	n, ok := z.nodes[id]
	if !ok {
		return Node{}, false
	}
	return n.snapshot(), true
}

// ControllerDescription names the server.
func (z *ZWaveJS) ControllerDescription() string {
	z.mu.RLock()
	defer z.mu.RUnlock()
	if z.serverVersion == "" {
		return "zwave-js-server at " + z.url
	}
	return fmt.Sprintf("zwave-js-server %s at %s", z.serverVersion, z.url)
}

// LibraryName returns the driver library name.
func (z *ZWaveJS) LibraryName() string {
	z.mu.RLock()
	defer z.mu.RUnlock()
	if z.driverVersion == "" {
		return "zwave-js"
	}
	return "zwave-js " + z.driverVersion
}

// LibraryVersion returns the controller SDK version.
func (z *ZWaveJS) LibraryVersion() string {
	z.mu.RLock()
	defer z.mu.RUnlock()
	if z.sdkVersion == "" {
		return ""
	}
	return "Z-Wave " + z.sdkVersion
}

// RefreshNode asks the server to re-interview a node.
func (z *ZWaveJS) RefreshNode(ctx context.Context, id int) error {
	if _, err := z.lookup("refresh", id); err != nil {
		return err
	}
	if _, err := z.call(ctx, map[string]any{"command": "node.refresh_info", "nodeId": id}); err != nil {
		return opError("refresh", id, err)
	}
	return nil
}

// SetSwitch turns a binary or multilevel switch on or off.
func (z *ZWaveJS) SetSwitch(ctx context.Context, id int, on bool) error {
	node, err := z.lookup("set_switch", id)
	if err != nil {
		return err
	}
	switch {
	case zwave.Has(node.Classes, zwave.ClassSwitchMultilevel):
		level := 0
		if on {
			level = 99
		}
		return z.setValue(ctx, "set_switch", id, zwave.ClassSwitchMultilevel, level)
	case zwave.Has(node.Classes, zwave.ClassSwitchBinary):
		return z.setValue(ctx, "set_switch", id, zwave.ClassSwitchBinary, on)
	default:
		return opError("set_switch", id, ErrNotSupported)
	}
}

// SetLevel moves a multilevel switch by delta, clamped to 0-99.
func (z *ZWaveJS) SetLevel(ctx context.Context, id int, delta int) error {
	node, err := z.lookup("set_level", id)
	if err != nil {
		return err
	}
	if !zwave.Has(node.Classes, zwave.ClassSwitchMultilevel) {
		return opError("set_level", id, ErrNotSupported)
	}
	level := max(0, min(99, max(node.Level, 0)+delta))
	return z.setValue(ctx, "set_level", id, zwave.ClassSwitchMultilevel, level)
}

func (z *ZWaveJS) setValue(ctx context.Context, op string, id int, cc uint8, value any) error {
	_, err := z.call(ctx, map[string]any{
		"command": "node.set_value",
		"nodeId":  id,
		"valueId": map[string]any{
			"commandClass": cc,
			"endpoint":     0,
			"property":     propTargetValue,
		},
		"value": value,
	})
	if err != nil {
		return opError(op, id, err)
	}
	return nil
}

func (z *ZWaveJS) lookup(op string, id int) (Node, error) {
	z.mu.RLock()
	defer z.mu.RUnlock()
	if z.closed {
		return Node{}, opError(op, id, ErrClosed)
	}
	if !z.initialized {
		return Node{}, opError(op, id, ErrNotInitialized)
	}
	n, ok := z.nodes[id]
	if !ok {
		return Node{}, opError(op, id, ErrUnknownNode)
	}
	return n.snapshot(), nil
}
